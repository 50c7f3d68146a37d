package services

import (
	"context"
	"testing"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/models"
	"castlink_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeactivateAccountDirectorCascadesCastings(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewLifecycleService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	talent, _ := seedUser(t, reg, "talent", models.UserRoleTalent)

	c1 := seedCasting(t, reg, director.ID, "роль 1")
	c2 := seedCasting(t, reg, director.ID, "роль 2")
	app := seedApplication(t, reg, c1.ID, talent.ID)

	require.NoError(t, svc.DeactivateAccount(ctx, directorActor))

	// Аккаунт погашен, логин больше невозможен.
	_, err := reg.Users().FindActiveByID(ctx, director.ID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	// Все кастинги режиссера деактивированы с отметкой времени.
	for _, id := range []string{c1.ID, c2.ID} {
		c, err := reg.Castings().FindByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, c.IsActive)
		assert.NotNil(t, c.DeletedAt)
	}

	// Заявки под кастингами не трогаются: их невидимость выводится
	// через состояние кастинга.
	got, err := reg.Applications().FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.False(t, got.ApplicantDeleted)
	assert.Equal(t, models.ApplicationStatusPending, got.Status)
}

func TestDeactivateAccountTalentFlagsApplications(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewLifecycleService(reg)
	ctx := context.Background()

	director, _ := seedUser(t, reg, "director", models.UserRoleDirector)
	talent, talentActor := seedUser(t, reg, "talent", models.UserRoleTalent)

	c1 := seedCasting(t, reg, director.ID, "роль 1")
	c2 := seedCasting(t, reg, director.ID, "роль 2")
	a1 := seedApplication(t, reg, c1.ID, talent.ID)
	a2 := seedApplication(t, reg, c2.ID, talent.ID)

	require.NoError(t, svc.DeactivateAccount(ctx, talentActor))

	for _, id := range []string{a1.ID, a2.ID} {
		got, err := reg.Applications().FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.ApplicantDeleted)
		// Статус и сообщение сохраняются.
		assert.Equal(t, models.ApplicationStatusPending, got.Status)
		assert.NotEmpty(t, got.Message)
	}

	// Кастинги чужие, каскад таланта их не касается.
	c, err := reg.Castings().FindByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.True(t, c.IsActive)
}

func TestDeactivateAccountAlreadyDeactivated(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewLifecycleService(reg)
	ctx := context.Background()

	_, talentActor := seedUser(t, reg, "talent", models.UserRoleTalent)

	require.NoError(t, svc.DeactivateAccount(ctx, talentActor))
	// Повторная деактивация уже погашенного аккаунта - NotFound.
	assert.ErrorIs(t, svc.DeactivateAccount(ctx, talentActor), appErrors.ErrUserNotFound)
}

func TestStampCastingUpdateWithApplications(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewLifecycleService(reg)
	ctx := context.Background()

	director, _ := seedUser(t, reg, "director", models.UserRoleDirector)
	talent, _ := seedUser(t, reg, "talent", models.UserRoleTalent)
	casting := seedCasting(t, reg, director.ID, "роль")
	seedApplication(t, reg, casting.ID, talent.ID)

	casting.Title = "роль (обновлено)"
	require.NoError(t, svc.StampCastingUpdate(ctx, casting, ""))

	got, err := reg.Castings().FindByID(ctx, casting.ID)
	require.NoError(t, err)
	assert.Equal(t, "роль (обновлено)", got.Title)
	assert.True(t, got.IsUpdated)
	require.NotNil(t, got.LastUpdatedAt)
	assert.Equal(t, "Casting details were updated after you applied", got.UpdateNote)
}

func TestStampCastingUpdateCustomNote(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewLifecycleService(reg)
	ctx := context.Background()

	director, _ := seedUser(t, reg, "director", models.UserRoleDirector)
	talent, _ := seedUser(t, reg, "talent", models.UserRoleTalent)
	casting := seedCasting(t, reg, director.ID, "роль")
	seedApplication(t, reg, casting.ID, talent.ID)

	require.NoError(t, svc.StampCastingUpdate(ctx, casting, "Дата проб перенесена"))

	got, err := reg.Castings().FindByID(ctx, casting.ID)
	require.NoError(t, err)
	assert.Equal(t, "Дата проб перенесена", got.UpdateNote)
}

func TestStampCastingUpdateWithoutApplications(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := NewLifecycleService(reg)
	ctx := context.Background()

	director, _ := seedUser(t, reg, "director", models.UserRoleDirector)
	casting := seedCasting(t, reg, director.ID, "роль")

	casting.Location = "Astana"
	require.NoError(t, svc.StampCastingUpdate(ctx, casting, ""))

	// Без заявок правка проходит тихо: никаких меток об изменении.
	got, err := reg.Castings().FindByID(ctx, casting.ID)
	require.NoError(t, err)
	assert.Equal(t, "Astana", got.Location)
	assert.False(t, got.IsUpdated)
	assert.Nil(t, got.LastUpdatedAt)
	assert.Empty(t, got.UpdateNote)
}
