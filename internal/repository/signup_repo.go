package repository

import (
	"context"

	"productlab/studyhub/internal/model"
)

type SignupRepository interface {
	// Transaction runs fn against a repository bound to a single database transaction.
	Transaction(ctx context.Context, fn func(tx SignupRepository) error) error
	// LockStudy reads the study row and holds it until the enclosing transaction ends.
	LockStudy(ctx context.Context, studyID int64) (*model.Study, error)
	CountByStudyID(ctx context.Context, studyID int64) (int64, error)
	GetByStudyAndEmail(ctx context.Context, studyID int64, email string) (*model.StudySignup, error)
	// Upsert inserts the signup or, on a (study_id, email) conflict, overwrites the
	// mutable columns. signup is refreshed with the stored row.
	Upsert(ctx context.Context, signup *model.StudySignup) error
	GetByID(ctx context.Context, id int64) (*model.StudySignup, error)
	ListByStudyID(ctx context.Context, studyID int64) ([]model.StudySignup, error)
	SetCalendlyScheduled(ctx context.Context, id int64, scheduled bool) error
}
