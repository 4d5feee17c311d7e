package repository

import (
	"context"

	"productlab/studyhub/internal/model"
)

// StudyRepository returns gorm.ErrRecordNotFound from single-row lookups that match nothing.
type StudyRepository interface {
	Create(ctx context.Context, study *model.Study) error
	GetByID(ctx context.Context, id int64) (*model.Study, error)
	GetByIDWithCount(ctx context.Context, id int64) (*model.Study, error)
	ListWithCounts(ctx context.Context) ([]model.Study, error)
	ListPublished(ctx context.Context, today model.Date) ([]model.Study, error)
	Update(ctx context.Context, study *model.Study) error
	Delete(ctx context.Context, id int64) (bool, error)
}
