package timeblockRepo

import (
	"context"

	"reservio/models"
)

// TimeBlockRepository stores the fixed catalog of bookable time periods.
// The catalog is seeded once by an administrator and read-only afterwards.
type TimeBlockRepository interface {
	Seed(ctx context.Context, blocks []models.TimeBlock) error
	GetByID(ctx context.Context, blockID string) (*models.TimeBlock, error)
	List(ctx context.Context) ([]models.TimeBlock, error)
	ListByShift(ctx context.Context, shift string) ([]models.TimeBlock, error)
}
