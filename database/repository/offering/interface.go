package offeringRepo

import (
	"context"

	"bookable/models"
)

// Repository is the persistence boundary for offerings.
type Repository interface {
	Create(ctx context.Context, o *models.Offering) error
	GetByID(ctx context.Context, id string) (*models.Offering, error)
	FindByBusiness(ctx context.Context, businessID string) ([]models.Offering, error)
	Update(ctx context.Context, o *models.Offering) error
	Delete(ctx context.Context, id string) error
}
