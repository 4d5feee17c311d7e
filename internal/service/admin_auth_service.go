package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"productlab/studyhub/internal/repository"
	"productlab/studyhub/pkg/crypto"
	jwtpkg "productlab/studyhub/pkg/jwt"
)

// AdminCredential is the single fixed admin login. PasswordHash (bcrypt) wins over Password.
type AdminCredential struct {
	Username     string
	Password     string
	PasswordHash string
}

type AdminSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AdminAuthService interface {
	// Authorize checks an Authorization header value, either "Basic" with the
	// admin credential or "Bearer" with a live session token, and returns the subject.
	Authorize(ctx context.Context, authorization string) (string, error)
	Login(ctx context.Context, username, password string) (*AdminSession, error)
	Logout(ctx context.Context, token string) error
}

type adminAuthService struct {
	credential AdminCredential
	sessions   repository.SessionStore
	jwtManager *jwtpkg.Manager
}

func NewAdminAuthService(credential AdminCredential, sessions repository.SessionStore, jwtManager *jwtpkg.Manager) AdminAuthService {
	return &adminAuthService{
		credential: credential,
		sessions:   sessions,
		jwtManager: jwtManager,
	}
}

func (s *adminAuthService) checkCredential(username, password string) bool {
	userOK := crypto.EqualConstantTime(username, s.credential.Username)
	var passOK bool
	if s.credential.PasswordHash != "" {
		passOK = crypto.CheckPassword(password, s.credential.PasswordHash)
	} else {
		passOK = s.credential.Password != "" && crypto.EqualConstantTime(password, s.credential.Password)
	}
	return userOK && passOK
}

func (s *adminAuthService) Authorize(ctx context.Context, authorization string) (string, error) {
	scheme, value, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok {
		return "", ErrUnauthorized
	}
	value = strings.TrimSpace(value)

	switch strings.ToLower(scheme) {
	case "basic":
		raw, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return "", ErrUnauthorized
		}
		username, password, ok := strings.Cut(string(raw), ":")
		if !ok || !s.checkCredential(username, password) {
			return "", ErrUnauthorized
		}
		return username, nil

	case "bearer":
		claims, err := s.jwtManager.Validate(value)
		if err != nil {
			return "", ErrUnauthorized
		}
		subject, err := s.sessions.Lookup(ctx, claims.ID)
		if err != nil {
			return "", fmt.Errorf("lookup admin session: %w", err)
		}
		if subject == "" || subject != claims.Subject {
			return "", ErrUnauthorized
		}
		return subject, nil
	}
	return "", ErrUnauthorized
}

func (s *adminAuthService) Login(ctx context.Context, username, password string) (*AdminSession, error) {
	if !s.checkCredential(username, password) {
		return nil, ErrUnauthorized
	}

	token, claims, err := s.jwtManager.GenerateSessionToken(username)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	if err := s.sessions.Save(ctx, claims.ID, username, s.jwtManager.SessionTTL()); err != nil {
		return nil, fmt.Errorf("store admin session: %w", err)
	}
	return &AdminSession{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *adminAuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("revoke admin session: %w", err)
	}
	return nil
}

var _ AdminAuthService = (*adminAuthService)(nil)
