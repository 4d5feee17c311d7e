package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productlab/studyhub/internal/repository"
	"productlab/studyhub/pkg/crypto"
	jwtpkg "productlab/studyhub/pkg/jwt"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func newAdminAuth(t *testing.T, cred AdminCredential) AdminAuthService {
	t.Helper()
	return NewAdminAuthService(cred, repository.NewMemorySessionStore(), jwtpkg.NewManager(testSigningKey, "studyhub", time.Hour))
}

func TestAuthorize_Basic(t *testing.T) {
	svc := newAdminAuth(t, AdminCredential{Username: "admin", Password: "hunter2"})
	ctx := context.Background()

	subject, err := svc.Authorize(ctx, basicAuth("admin", "hunter2"))
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	for _, header := range []string{
		"",
		"Basic",
		basicAuth("admin", "wrong"),
		basicAuth("root", "hunter2"),
		"Basic !!!not-base64",
		"Basic " + base64.StdEncoding.EncodeToString([]byte("adminhunter2")),
		"Digest abc",
	} {
		_, err := svc.Authorize(ctx, header)
		assert.ErrorIs(t, err, ErrUnauthorized, header)
	}
}

func TestAuthorize_BcryptHash(t *testing.T) {
	hash, err := crypto.HashPassword("hunter2")
	require.NoError(t, err)
	svc := newAdminAuth(t, AdminCredential{Username: "admin", Password: "ignored", PasswordHash: hash})

	_, err = svc.Authorize(context.Background(), basicAuth("admin", "hunter2"))
	require.NoError(t, err)

	_, err = svc.Authorize(context.Background(), basicAuth("admin", "ignored"))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_EmptyPasswordNeverMatches(t *testing.T) {
	svc := newAdminAuth(t, AdminCredential{Username: "admin"})
	_, err := svc.Authorize(context.Background(), basicAuth("admin", ""))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	svc := newAdminAuth(t, AdminCredential{Username: "admin", Password: "hunter2"})

	_, err := svc.Login(ctx, "admin", "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	session, err := svc.Login(ctx, "admin", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	subject, err := svc.Authorize(ctx, "Bearer "+session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.Authorize(ctx, "Bearer "+session.Token)
	assert.ErrorIs(t, err, ErrUnauthorized, "revoked session must be rejected")

	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), ErrUnauthorized)
}

func TestAuthorize_TokenFromAnotherStoreIsRejected(t *testing.T) {
	ctx := context.Background()
	cred := AdminCredential{Username: "admin", Password: "hunter2"}
	issuer := newAdminAuth(t, cred)
	other := newAdminAuth(t, cred)

	session, err := issuer.Login(ctx, "admin", "hunter2")
	require.NoError(t, err)

	_, err = other.Authorize(ctx, "Bearer "+session.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
