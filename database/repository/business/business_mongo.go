package businessRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookable/database"
	"bookable/models"
	"bookable/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const opTimeout = 5 * time.Second

// MongoBusinessRepo is the Mongo-backed Repository implementation.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo returns a repo bound to the "businesses" collection.
func NewMongoBusinessRepo() *MongoBusinessRepo {
	return &MongoBusinessRepo{coll: database.DB().Collection("businesses")}
}

func (r *MongoBusinessRepo) Create(ctx context.Context, b *models.Business) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.Conflict("a business with this email already exists")
		}
		return utils.DependencyFailure("failed to create business", err)
	}
	return nil
}

func (r *MongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return r.findOne(ctx, bson.M{"id": id}, fmt.Sprintf("business %q not found", id))
}

func (r *MongoBusinessRepo) GetByEmail(ctx context.Context, email string) (*models.Business, error) {
	return r.findOne(ctx, bson.M{"email": email}, "business not found for email")
}

func (r *MongoBusinessRepo) findOne(ctx context.Context, filter bson.M, notFoundMsg string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var b models.Business
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound(notFoundMsg)
		}
		return nil, utils.DependencyFailure("failed to fetch business", err)
	}
	return &b, nil
}

func (r *MongoBusinessRepo) Update(ctx context.Context, b *models.Business) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": b.ID}, b)
	if err != nil {
		return utils.DependencyFailure("failed to update business", err)
	}
	if res.MatchedCount == 0 {
		return utils.NotFound(fmt.Sprintf("business %q not found", b.ID))
	}
	return nil
}

func (r *MongoBusinessRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return utils.DependencyFailure("failed to delete business", err)
	}
	if res.DeletedCount == 0 {
		return utils.NotFound(fmt.Sprintf("business %q not found", id))
	}
	return nil
}

func (r *MongoBusinessRepo) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, utils.DependencyFailure("failed to list businesses", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, utils.DependencyFailure("failed to decode business id", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
