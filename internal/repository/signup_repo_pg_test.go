package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"productlab/studyhub/internal/model"
	repo "productlab/studyhub/internal/repository"
)

func TestPGSignupRepository_TransactionLocksStudy(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPGSignupRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "studies" WHERE id = \$1 ORDER BY "studies"\."id" LIMIT .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "participant_limit"}).AddRow(int64(5), "published", 2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "study_signups" WHERE study_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectCommit()

	var count int64
	err := r.Transaction(context.Background(), func(tx repo.SignupRepository) error {
		study, err := tx.LockStudy(context.Background(), 5)
		if err != nil {
			return err
		}
		require.Equal(t, model.StudyStatusPublished, study.Status)
		count, err = tx.CountByStudyID(context.Background(), study.ID)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGSignupRepository_TransactionRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPGSignupRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := r.Transaction(context.Background(), func(tx repo.SignupRepository) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGSignupRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPGSignupRepository(db)

	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO "study_signups" .* ON CONFLICT \("study_id","email"\) DO UPDATE SET .*"first_name"="excluded"\."first_name".* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "calendly_scheduled", "created_at"}).AddRow(int64(11), true, created))

	signup := &model.StudySignup{
		StudyID:   5,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	require.NoError(t, r.Upsert(context.Background(), signup))
	require.Equal(t, int64(11), signup.ID)
	require.True(t, signup.CalendlyScheduled)
	require.True(t, created.Equal(signup.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGSignupRepository_SetCalendlyScheduled(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPGSignupRepository(db)

	mock.ExpectExec(`UPDATE "study_signups" SET "calendly_scheduled"=\$1 WHERE id = \$2`).
		WithArgs(true, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "study_signups" SET "calendly_scheduled"=\$1 WHERE id = \$2`).
		WithArgs(false, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, r.SetCalendlyScheduled(context.Background(), 8, true))

	err := r.SetCalendlyScheduled(context.Background(), 9, false)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGSignupRepository_ListByStudyID(t *testing.T) {
	db, mock := newMockDB(t)
	r := repo.NewPGSignupRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "study_signups" WHERE study_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(int64(3), "b@example.com").
			AddRow(int64(2), "a@example.com"))

	signups, err := r.ListByStudyID(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, signups, 2)
	require.Equal(t, "b@example.com", signups[0].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}
