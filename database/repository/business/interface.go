package businessRepo

import (
	"context"

	"bookable/models"
)

// Repository is the persistence boundary for businesses. The engine treats
// it as a document store with read-your-writes within a session.
type Repository interface {
	Create(ctx context.Context, b *models.Business) error
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetByEmail(ctx context.Context, email string) (*models.Business, error)
	Update(ctx context.Context, b *models.Business) error
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}
