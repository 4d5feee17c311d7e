package repository

import (
	"context"

	"gorm.io/gorm"

	"productlab/studyhub/internal/model"
)

type pgStudyRepository struct {
	db *gorm.DB
}

func NewPGStudyRepository(db *gorm.DB) StudyRepository {
	return &pgStudyRepository{db: db}
}

// withSignupCounts selects every study column plus the live signup count.
func (r *pgStudyRepository) withSignupCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Study{}).
		Select("studies.*, COUNT(study_signups.id) AS signups_count").
		Joins("LEFT JOIN study_signups ON study_signups.study_id = studies.id").
		Group("studies.id")
}

func (r *pgStudyRepository) Create(ctx context.Context, study *model.Study) error {
	return r.db.WithContext(ctx).Create(study).Error
}

func (r *pgStudyRepository) GetByID(ctx context.Context, id int64) (*model.Study, error) {
	var study model.Study
	if err := r.db.WithContext(ctx).First(&study, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &study, nil
}

func (r *pgStudyRepository) GetByIDWithCount(ctx context.Context, id int64) (*model.Study, error) {
	var study model.Study
	if err := r.withSignupCounts(ctx).Where("studies.id = ?", id).Take(&study).Error; err != nil {
		return nil, err
	}
	return &study, nil
}

func (r *pgStudyRepository) ListWithCounts(ctx context.Context) ([]model.Study, error) {
	var studies []model.Study
	if err := r.withSignupCounts(ctx).Order("studies.created_at DESC").Find(&studies).Error; err != nil {
		return nil, err
	}
	return studies, nil
}

func (r *pgStudyRepository) ListPublished(ctx context.Context, today model.Date) ([]model.Study, error) {
	var studies []model.Study
	err := r.withSignupCounts(ctx).
		Where("studies.status = ?", model.StudyStatusPublished).
		Where("(studies.start_date IS NULL OR studies.start_date <= ?)", today).
		Where("(studies.end_date IS NULL OR studies.end_date >= ?)", today).
		Order("studies.created_at DESC").
		Find(&studies).Error
	if err != nil {
		return nil, err
	}
	return studies, nil
}

func (r *pgStudyRepository) Update(ctx context.Context, study *model.Study) error {
	return r.db.WithContext(ctx).Save(study).Error
}

func (r *pgStudyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	// study_signups rows go with it through ON DELETE CASCADE.
	res := r.db.WithContext(ctx).Delete(&model.Study{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
