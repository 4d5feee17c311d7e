package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"productlab/studyhub/internal/model"
	"productlab/studyhub/internal/repository"
)

// StudyInput is the admin-editable part of a study. Update replaces every field
// except Status, which keeps its stored value when omitted.
type StudyInput struct {
	Name             string      `json:"name" validate:"required,max=255"`
	Description      string      `json:"description" validate:"required"`
	UserType         string      `json:"user_type" validate:"max=100"`
	Location         string      `json:"location" validate:"omitempty,oneof=Remote In-Person Hybrid"`
	Status           string      `json:"status" validate:"omitempty,oneof=draft published"`
	ParticipantLimit *int        `json:"participant_limit" validate:"omitempty,min=0"`
	CalendlyLink     *string     `json:"calendly_link" validate:"omitempty,url"`
	StartDate        *model.Date `json:"start_date"`
	EndDate          *model.Date `json:"end_date"`
}

func (in *StudyInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.UserType = strings.TrimSpace(in.UserType)
	in.Location = strings.TrimSpace(in.Location)
	in.Status = strings.TrimSpace(in.Status)
	in.CalendlyLink = trimOptional(in.CalendlyLink)
	if in.StartDate != nil && in.StartDate.IsZero() {
		in.StartDate = nil
	}
	if in.EndDate != nil && in.EndDate.IsZero() {
		in.EndDate = nil
	}
}

func (in *StudyInput) applyTo(study *model.Study) {
	study.Name = in.Name
	study.Description = in.Description
	study.UserType = in.UserType
	study.Location = model.StudyLocation(in.Location)
	if in.Status != "" {
		study.Status = model.StudyStatus(in.Status)
	}
	study.ParticipantLimit = in.ParticipantLimit
	study.CalendlyLink = in.CalendlyLink
	study.StartDate = in.StartDate
	study.EndDate = in.EndDate
}

type StudyService interface {
	// ListVisible returns the studies the public may see today, newest first.
	ListVisible(ctx context.Context) ([]model.Study, error)
	// GetVisible returns ErrStudyNotFound for drafts and out-of-window studies alike.
	GetVisible(ctx context.Context, id int64) (*model.Study, error)

	ListAll(ctx context.Context) ([]model.Study, error)
	Get(ctx context.Context, id int64) (*model.Study, error)
	Create(ctx context.Context, input StudyInput) (*model.Study, error)
	Update(ctx context.Context, id int64, input StudyInput) (*model.Study, error)
	Delete(ctx context.Context, id int64) error
	ListSignups(ctx context.Context, studyID int64) ([]model.StudySignup, error)
	ExportSignupsCSV(ctx context.Context, studyID int64) (*SignupExport, error)
}

type studyService struct {
	studyRepo  repository.StudyRepository
	signupRepo repository.SignupRepository
	validate   *validator.Validate
	loc        *time.Location
	now        func() time.Time
}

// NewStudyService evaluates visibility windows against the calendar day in loc.
func NewStudyService(studyRepo repository.StudyRepository, signupRepo repository.SignupRepository, loc *time.Location) StudyService {
	if loc == nil {
		loc = time.UTC
	}
	return &studyService{
		studyRepo:  studyRepo,
		signupRepo: signupRepo,
		validate:   newValidator(),
		loc:        loc,
		now:        time.Now,
	}
}

func (s *studyService) today() model.Date {
	return model.DateOf(s.now().In(s.loc))
}

func (s *studyService) ListVisible(ctx context.Context) ([]model.Study, error) {
	studies, err := s.studyRepo.ListPublished(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("list published studies: %w", err)
	}
	for i := range studies {
		studies[i].Annotate()
	}
	return studies, nil
}

func (s *studyService) GetVisible(ctx context.Context, id int64) (*model.Study, error) {
	study, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !study.VisibleOn(s.today()) {
		return nil, ErrStudyNotFound
	}
	return study, nil
}

func (s *studyService) ListAll(ctx context.Context) ([]model.Study, error) {
	studies, err := s.studyRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list studies: %w", err)
	}
	for i := range studies {
		studies[i].Annotate()
	}
	return studies, nil
}

func (s *studyService) Get(ctx context.Context, id int64) (*model.Study, error) {
	study, err := s.studyRepo.GetByIDWithCount(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudyNotFound
		}
		return nil, fmt.Errorf("get study: %w", err)
	}
	study.Annotate()
	return study, nil
}

func (s *studyService) validateStudy(input *StudyInput) error {
	input.normalize()
	if err := validateInput(s.validate, input); err != nil {
		return err
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}
	return nil
}

func (s *studyService) Create(ctx context.Context, input StudyInput) (*model.Study, error) {
	if err := s.validateStudy(&input); err != nil {
		return nil, err
	}

	study := &model.Study{Status: model.StudyStatusDraft}
	input.applyTo(study)
	if err := s.studyRepo.Create(ctx, study); err != nil {
		return nil, fmt.Errorf("create study: %w", err)
	}
	study.Annotate()
	return study, nil
}

func (s *studyService) Update(ctx context.Context, id int64, input StudyInput) (*model.Study, error) {
	if err := s.validateStudy(&input); err != nil {
		return nil, err
	}

	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudyNotFound
		}
		return nil, fmt.Errorf("get study: %w", err)
	}

	input.applyTo(study)
	if err := s.studyRepo.Update(ctx, study); err != nil {
		return nil, fmt.Errorf("update study: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *studyService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.studyRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete study: %w", err)
	}
	if !deleted {
		return ErrStudyNotFound
	}
	return nil
}

func (s *studyService) ListSignups(ctx context.Context, studyID int64) ([]model.StudySignup, error) {
	if _, err := s.requireStudy(ctx, studyID); err != nil {
		return nil, err
	}
	signups, err := s.signupRepo.ListByStudyID(ctx, studyID)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	return signups, nil
}

func (s *studyService) requireStudy(ctx context.Context, id int64) (*model.Study, error) {
	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudyNotFound
		}
		return nil, fmt.Errorf("get study: %w", err)
	}
	return study, nil
}

var _ StudyService = (*studyService)(nil)
