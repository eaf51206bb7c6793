package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"bookable/models"
	"bookable/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Commit inserts the booking document and embeds its interval into the
// chosen slot of the business document in one transaction. The business
// filter includes the expected version, so a concurrent writer that got
// there first makes the update match nothing and the whole transaction
// aborts with no partially applied state.
func (r *MongoBookingRepo) Commit(ctx context.Context, booking *models.Booking, expectedVersion int) error {
	client := r.businessColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return utils.DependencyFailure("could not start mongo session", err)
	}
	defer sess.EndSession(ctx)

	slotEntry := models.SlotBooking{
		BookingID: booking.ID,
		Start:     booking.Start.Unix,
		End:       booking.End.Unix,
	}

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id":      booking.BusinessID,
			"version": expectedVersion,
			"slots": bson.M{
				"$elemMatch": bson.M{"id": booking.SlotID},
			},
		}
		update := bson.M{
			"$push": bson.M{
				"slots.$.bookings": bson.M{
					"$each": bson.A{slotEntry},
					"$sort": bson.M{"start": 1},
				},
			},
			"$inc": bson.M{"version": 1},
		}

		res, err := r.businessColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("embed slot booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return errVersionConflict
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, errVersionConflict) {
			return utils.Unavailable("the slot was booked by a concurrent request")
		}
		return utils.DependencyFailure("booking transaction failed", err)
	}
	return nil
}

var errVersionConflict = fmt.Errorf("business version conflict")
