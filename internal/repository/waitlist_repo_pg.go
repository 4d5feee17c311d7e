package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productlab/studyhub/internal/model"
)

type pgWaitlistRepository struct {
	db *gorm.DB
}

func NewPGWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &pgWaitlistRepository{db: db}
}

func (r *pgWaitlistRepository) Upsert(ctx context.Context, entry *model.WaitlistEntry) error {
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoUpdates: clause.AssignmentColumns([]string{"role"}),
			},
			clause.Returning{},
		).
		Create(entry).Error
}
