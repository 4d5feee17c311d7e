package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"productlab/studyhub/internal/model"
	"productlab/studyhub/internal/repository"
)

type WaitlistInput struct {
	Email string  `json:"email" validate:"required,email,max=255"`
	Role  *string `json:"role" validate:"omitempty,max=100"`
}

type WaitlistService interface {
	Join(ctx context.Context, input WaitlistInput) (*model.WaitlistEntry, error)
}

type waitlistService struct {
	waitlistRepo repository.WaitlistRepository
	validate     *validator.Validate
}

func NewWaitlistService(waitlistRepo repository.WaitlistRepository) WaitlistService {
	return &waitlistService{waitlistRepo: waitlistRepo, validate: newValidator()}
}

func (s *waitlistService) Join(ctx context.Context, input WaitlistInput) (*model.WaitlistEntry, error) {
	input.Email = normalizeEmail(input.Email)
	input.Role = trimOptional(input.Role)
	if err := validateInput(s.validate, &input); err != nil {
		return nil, err
	}

	entry := &model.WaitlistEntry{Email: input.Email, Role: input.Role}
	if err := s.waitlistRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("join waitlist: %w", err)
	}
	return entry, nil
}

var _ WaitlistService = (*waitlistService)(nil)
