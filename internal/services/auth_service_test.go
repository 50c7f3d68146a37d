package services

import (
	"context"
	"testing"
	"time"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/auth"
	"castlink_backend/internal/models"
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	auth.Init("test-secret", time.Minute)
}

func TestRegisterAndLogin(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewAuthService(reg)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Айгерим",
		Email:    "aigerim@example.com",
		Password: "secret1",
		Role:     models.UserRoleTalent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.UserRoleTalent, resp.User.Role)

	claims, err := auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, string(models.UserRoleTalent), claims.Role)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "aigerim@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewAuthService(reg)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "x", Email: "x@example.com", Password: "123", Role: models.UserRoleTalent,
	})
	assert.ErrorIs(t, err, appErrors.ErrWeakPassword)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Name: "x", Email: "x@example.com", Password: "secret1", Role: models.UserRole("admin"),
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidUserRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewAuthService(reg)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Name: "first", Email: "dup@example.com", Password: "secret1", Role: models.UserRoleTalent,
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, appErrors.ErrEmailAlreadyExists)
}

func TestRegisterEmailLockedForever(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewAuthService(reg)
	lifecycle := NewLifecycleService(reg)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "gone", Email: "gone@example.com", Password: "secret1", Role: models.UserRoleTalent,
	})
	require.NoError(t, err)

	actor := policyActor(resp.User.ID, models.UserRoleTalent)
	require.NoError(t, lifecycle.DeactivateAccount(ctx, actor))

	// Email деактивированного аккаунта заблокирован навсегда, и это
	// отдельный исход, а не обычный конфликт.
	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Name: "newcomer", Email: "gone@example.com", Password: "secret1", Role: models.UserRoleTalent,
	})
	assert.ErrorIs(t, err, appErrors.ErrEmailLocked)
}

func TestLoginFailures(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewAuthService(reg)
	lifecycle := NewLifecycleService(reg)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "user", Email: "user@example.com", Password: "secret1", Role: models.UserRoleDirector,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	// Деактивированный аккаунт не логинится.
	require.NoError(t, lifecycle.DeactivateAccount(ctx, policyActor(resp.User.ID, models.UserRoleDirector)))
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}
