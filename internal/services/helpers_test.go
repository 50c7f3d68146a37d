package services

import (
	"context"
	"testing"

	"castlink_backend/internal/models"
	"castlink_backend/internal/policy"
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/storage"

	"github.com/stretchr/testify/require"
)

// Тесты сервисов ходят в реестр в памяти с теми же контрактами, что и
// GORM-реализация. Postgres для них не нужен.

func newTestStorage(t *testing.T) storage.Storage {
	t.Helper()
	st, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return st
}

func seedUser(t *testing.T, reg *repositories.MemoryRegistry, name string, role models.UserRole) (*models.User, policy.Actor) {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, reg.Users().Create(context.Background(), user))
	return user, policy.Actor{ID: user.ID, Role: user.Role}
}

func seedCasting(t *testing.T, reg *repositories.MemoryRegistry, ownerID, title string) *models.Casting {
	t.Helper()
	casting := &models.Casting{
		Title:       title,
		Description: "описание роли",
		RoleType:    "actor",
		Location:    "Almaty",
		PostedBy:    ownerID,
		IsActive:    true,
	}
	require.NoError(t, reg.Castings().Create(context.Background(), casting))
	return casting
}

func seedApplication(t *testing.T, reg *repositories.MemoryRegistry, castingID, applicantID string) *models.Application {
	t.Helper()
	app := &models.Application{
		CastingID:   castingID,
		ApplicantID: applicantID,
		Message:     "хочу эту роль",
		Status:      models.ApplicationStatusPending,
	}
	require.NoError(t, reg.Applications().Create(context.Background(), app))
	return app
}

func strPtr(s string) *string { return &s }

func policyActor(id string, role models.UserRole) policy.Actor {
	return policy.Actor{ID: id, Role: role}
}
