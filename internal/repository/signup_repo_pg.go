package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productlab/studyhub/internal/model"
)

type pgSignupRepository struct {
	db *gorm.DB
}

func NewPGSignupRepository(db *gorm.DB) SignupRepository {
	return &pgSignupRepository{db: db}
}

func (r *pgSignupRepository) Transaction(ctx context.Context, fn func(tx SignupRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgSignupRepository{db: tx})
	})
}

func (r *pgSignupRepository) LockStudy(ctx context.Context, studyID int64) (*model.Study, error) {
	var study model.Study
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&study, "id = ?", studyID).Error
	if err != nil {
		return nil, err
	}
	return &study, nil
}

func (r *pgSignupRepository) CountByStudyID(ctx context.Context, studyID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StudySignup{}).
		Where("study_id = ?", studyID).
		Count(&count).Error
	return count, err
}

func (r *pgSignupRepository) GetByStudyAndEmail(ctx context.Context, studyID int64, email string) (*model.StudySignup, error) {
	var signup model.StudySignup
	err := r.db.WithContext(ctx).
		Where("study_id = ? AND email = ?", studyID, email).
		First(&signup).Error
	if err != nil {
		return nil, err
	}
	return &signup, nil
}

func (r *pgSignupRepository) Upsert(ctx context.Context, signup *model.StudySignup) error {
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "study_id"}, {Name: "email"}},
				DoUpdates: clause.AssignmentColumns(model.SignupMutableColumns),
			},
			clause.Returning{},
		).
		Create(signup).Error
}

func (r *pgSignupRepository) GetByID(ctx context.Context, id int64) (*model.StudySignup, error) {
	var signup model.StudySignup
	if err := r.db.WithContext(ctx).First(&signup, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &signup, nil
}

func (r *pgSignupRepository) ListByStudyID(ctx context.Context, studyID int64) ([]model.StudySignup, error) {
	var signups []model.StudySignup
	err := r.db.WithContext(ctx).
		Where("study_id = ?", studyID).
		Order("created_at DESC").
		Find(&signups).Error
	if err != nil {
		return nil, err
	}
	return signups, nil
}

func (r *pgSignupRepository) SetCalendlyScheduled(ctx context.Context, id int64, scheduled bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.StudySignup{}).
		Where("id = ?", id).
		UpdateColumn("calendly_scheduled", scheduled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
