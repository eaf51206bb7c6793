package booking

import (
	"context"

	"bookable/models"
)

// Service is the booking write-gate. Submit is the only path in the system
// that creates a Booking.
type Service interface {
	Submit(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	// CheckAvailability answers the advisory question only; it reserves
	// nothing.
	CheckAvailability(ctx context.Context, businessID, offeringID string, sched models.ScheduleInput) (bool, error)
}
