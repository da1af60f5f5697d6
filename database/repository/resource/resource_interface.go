package resourceRepo

import (
	"context"

	"reservio/models"
)

// ResourceRepository persists bookable resources. The scheduling core only
// reads; mutation belongs to the admin/maintenance workflow.
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, resourceID string) (*models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	UpdateStatus(ctx context.Context, resourceID, status string) error
	List(ctx context.Context) ([]models.Resource, error)
}
