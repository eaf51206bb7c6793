package bookingRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// MongoBookingRepo is the Mongo-backed Repository implementation. It holds
// both the bookings collection and the businesses collection because the
// commit touches the embedded slot ledger.
type MongoBookingRepo struct {
	bookingColl  *mongo.Collection
	businessColl *mongo.Collection
}

// NewMongoBookingRepo returns a repo bound to the "bookings" and
// "businesses" collections.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.DB()
	return &MongoBookingRepo{
		bookingColl:  db.Collection("bookings"),
		businessColl: db.Collection("businesses"),
	}
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var b models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound(fmt.Sprintf("booking %q not found", id))
		}
		return nil, utils.DependencyFailure("failed to fetch booking", err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) FindByBusiness(ctx context.Context, businessID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"businessId": businessID})
}

func (r *MongoBookingRepo) FindUpcoming(ctx context.Context, afterUnix int64) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"start.unix": bson.M{"$gte": afterUnix}})
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.bookingColl.Find(ctx, filter, options.Find().SetSort(bson.M{"start.unix": 1}))
	if err != nil {
		return nil, utils.DependencyFailure("failed to list bookings", err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, utils.DependencyFailure("failed to decode bookings", err)
	}
	return out, nil
}

func (r *MongoBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.bookingColl.ReplaceOne(ctx, bson.M{"id": b.ID}, b)
	if err != nil {
		return utils.DependencyFailure("failed to update booking", err)
	}
	if res.MatchedCount == 0 {
		return utils.NotFound(fmt.Sprintf("booking %q not found", b.ID))
	}
	return nil
}
