package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"productlab/studyhub/internal/events"
	"productlab/studyhub/internal/metrics"
	"productlab/studyhub/internal/model"
	"productlab/studyhub/internal/repository"
)

type SignupInput struct {
	FirstName       string  `json:"first_name" validate:"required,max=100"`
	LastName        string  `json:"last_name" validate:"required,max=100"`
	Email           string  `json:"email" validate:"required,email,max=255"`
	Role            string  `json:"role" validate:"required,max=100"`
	CompanyName     string  `json:"company_name" validate:"required,max=255"`
	CompanySize     string  `json:"company_size" validate:"required,max=50"`
	YearsExperience string  `json:"years_experience" validate:"required,max=50"`
	Timezone        string  `json:"timezone" validate:"required,max=100"`
	Pronouns        *string `json:"pronouns" validate:"omitempty,max=50"`
}

func (in *SignupInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanySize = strings.TrimSpace(in.CompanySize)
	in.YearsExperience = strings.TrimSpace(in.YearsExperience)
	in.Timezone = strings.TrimSpace(in.Timezone)
	in.Pronouns = trimOptional(in.Pronouns)
}

func (in *SignupInput) toModel(studyID int64) *model.StudySignup {
	return &model.StudySignup{
		StudyID:         studyID,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Role:            in.Role,
		CompanyName:     in.CompanyName,
		CompanySize:     in.CompanySize,
		YearsExperience: in.YearsExperience,
		Timezone:        in.Timezone,
		Pronouns:        in.Pronouns,
	}
}

// SignupResult reports the stored signup; Created is false when an existing
// signup for the same e-mail was updated.
type SignupResult struct {
	Signup  *model.StudySignup `json:"signup"`
	Created bool               `json:"created"`
}

type SignupService interface {
	// Submit admits a participant into a published study, or updates their
	// existing signup. Fails with ErrInvalidInput, ErrStudyUnavailable or ErrStudyFull.
	Submit(ctx context.Context, studyID int64, input SignupInput) (*SignupResult, error)
	SetCalendlyScheduled(ctx context.Context, signupID int64, scheduled bool) (*model.StudySignup, error)
}

const confirmationSendTimeout = 15 * time.Second

type signupService struct {
	signupRepo repository.SignupRepository
	publisher  events.EventPublisher
	mailer     MailSender
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewSignupService builds the admission service. publisher and mailer are
// optional; a nil mailer disables confirmation e-mails.
func NewSignupService(signupRepo repository.SignupRepository, publisher events.EventPublisher, mailer MailSender, logger *zap.Logger) SignupService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &signupService{
		signupRepo: signupRepo,
		publisher:  publisher,
		mailer:     mailer,
		validate:   newValidator(),
		logger:     logger,
	}
}

func (s *signupService) Submit(ctx context.Context, studyID int64, input SignupInput) (*SignupResult, error) {
	input.normalize()
	if err := validateInput(s.validate, &input); err != nil {
		metrics.SignupAdmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	signup := input.toModel(studyID)
	var (
		study   *model.Study
		created bool
	)
	err := s.signupRepo.Transaction(ctx, func(tx repository.SignupRepository) error {
		// The row lock serialises admissions per study so the count below stays accurate.
		var err error
		study, err = tx.LockStudy(ctx, studyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudyUnavailable
			}
			return fmt.Errorf("lock study: %w", err)
		}
		if study.Status != model.StudyStatusPublished {
			return ErrStudyUnavailable
		}

		_, err = tx.GetByStudyAndEmail(ctx, studyID, signup.Email)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return fmt.Errorf("find existing signup: %w", err)
		}

		// A participant who already holds a slot may always resubmit.
		if created {
			count, err := tx.CountByStudyID(ctx, studyID)
			if err != nil {
				return fmt.Errorf("count signups: %w", err)
			}
			if !study.HasCapacityFor(count) {
				return ErrStudyFull
			}
		}

		if err := tx.Upsert(ctx, signup); err != nil {
			if repository.IsForeignKeyViolation(err) {
				return ErrStudyUnavailable
			}
			return fmt.Errorf("upsert signup: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.SignupAdmissions.WithLabelValues(admissionOutcome(err)).Inc()
		return nil, err
	}

	outcome := metrics.OutcomeUpdated
	if created {
		outcome = metrics.OutcomeCreated
	}
	metrics.SignupAdmissions.WithLabelValues(outcome).Inc()

	s.logger.Info("signup accepted",
		zap.Int64("study_id", studyID),
		zap.Int64("signup_id", signup.ID),
		zap.Bool("created", created),
	)
	if err := s.publisher.PublishSignupAccepted(ctx, signup, created); err != nil {
		s.logger.Warn("publish signup event failed", zap.Int64("signup_id", signup.ID), zap.Error(err))
	}
	if s.mailer != nil {
		go s.sendConfirmation(context.WithoutCancel(ctx), study, signup, created)
	}

	return &SignupResult{Signup: signup, Created: created}, nil
}

func (s *signupService) sendConfirmation(ctx context.Context, study *model.Study, signup *model.StudySignup, created bool) {
	ctx, cancel := context.WithTimeout(ctx, confirmationSendTimeout)
	defer cancel()

	subject, body := signupConfirmation(study, signup, created)
	if err := s.mailer.Send(ctx, signup.Email, subject, body); err != nil {
		s.logger.Warn("send signup confirmation failed", zap.Int64("signup_id", signup.ID), zap.Error(err))
	}
}

func admissionOutcome(err error) string {
	switch {
	case errors.Is(err, ErrStudyFull):
		return metrics.OutcomeFull
	case errors.Is(err, ErrStudyUnavailable):
		return metrics.OutcomeUnavailable
	}
	return metrics.OutcomeError
}

func (s *signupService) SetCalendlyScheduled(ctx context.Context, signupID int64, scheduled bool) (*model.StudySignup, error) {
	if err := s.signupRepo.SetCalendlyScheduled(ctx, signupID, scheduled); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, fmt.Errorf("update signup: %w", err)
	}

	signup, err := s.signupRepo.GetByID(ctx, signupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, fmt.Errorf("get signup: %w", err)
	}
	return signup, nil
}

var _ SignupService = (*signupService)(nil)
