package offeringRepo

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

// MongoOfferingRepo is the Mongo-backed Repository implementation.
type MongoOfferingRepo struct {
	coll *mongo.Collection
}

// NewMongoOfferingRepo returns a repo bound to the "offerings" collection.
func NewMongoOfferingRepo() *MongoOfferingRepo {
	return &MongoOfferingRepo{coll: database.DB().Collection("offerings")}
}

func (r *MongoOfferingRepo) Create(ctx context.Context, o *models.Offering) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return utils.DependencyFailure("failed to create offering", err)
	}
	return nil
}

func (r *MongoOfferingRepo) GetByID(ctx context.Context, id string) (*models.Offering, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var o models.Offering
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound(fmt.Sprintf("offering %q not found", id))
		}
		return nil, utils.DependencyFailure("failed to fetch offering", err)
	}
	return &o, nil
}

func (r *MongoOfferingRepo) FindByBusiness(ctx context.Context, businessID string) ([]models.Offering, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"businessId": businessID})
	if err != nil {
		return nil, utils.DependencyFailure("failed to list offerings", err)
	}
	defer cur.Close(ctx)

	var out []models.Offering
	if err := cur.All(ctx, &out); err != nil {
		return nil, utils.DependencyFailure("failed to decode offerings", err)
	}
	return out, nil
}

func (r *MongoOfferingRepo) Update(ctx context.Context, o *models.Offering) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": o.ID}, o)
	if err != nil {
		return utils.DependencyFailure("failed to update offering", err)
	}
	if res.MatchedCount == 0 {
		return utils.NotFound(fmt.Sprintf("offering %q not found", o.ID))
	}
	return nil
}

func (r *MongoOfferingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return utils.DependencyFailure("failed to delete offering", err)
	}
	if res.DeletedCount == 0 {
		return utils.NotFound(fmt.Sprintf("offering %q not found", id))
	}
	return nil
}
