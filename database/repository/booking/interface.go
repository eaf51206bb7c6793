package bookingRepo

import (
	"context"

	"bookable/models"
)

// Repository is the persistence boundary for bookings. Commit is the
// all-or-nothing write used by the booking write-gate.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	FindByBusiness(ctx context.Context, businessID string) ([]models.Booking, error)
	// FindUpcoming returns bookings starting at or after the given unix
	// instant, across all businesses.
	FindUpcoming(ctx context.Context, afterUnix int64) ([]models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	// Commit inserts the booking and appends its interval to the chosen
	// slot in one transaction, guarded by the business document's version.
	// A version mismatch means a concurrent writer won; the caller treats
	// it as the interval no longer being available.
	Commit(ctx context.Context, booking *models.Booking, expectedVersion int) error
}
