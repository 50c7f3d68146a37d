package services

import (
	"context"
	"testing"
	"time"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/models"
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCastingService(reg *repositories.MemoryRegistry) CastingService {
	return NewCastingService(reg, NewLifecycleService(reg))
}

func TestCreateCastingOnlyDirector(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	_, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	_, talentActor := seedUser(t, reg, "talent", models.UserRoleTalent)

	req := &dto.CreateCastingRequest{
		Title:        "Главная роль",
		Description:  "полный метр",
		RoleType:     "actor",
		Location:     "Almaty",
		AuditionDate: time.Now().Add(72 * time.Hour),
	}

	resp, err := svc.CreateCasting(ctx, directorActor, req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, directorActor.ID, resp.PostedBy)
	assert.Equal(t, "any", resp.Gender)
	assert.Nil(t, resp.AgeRange)

	_, err = svc.CreateCasting(ctx, talentActor, req)
	assert.ErrorIs(t, err, appErrors.ErrNotAuthorized)
}

func TestCreateCastingRoleCriteria(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	_, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)

	resp, err := svc.CreateCasting(ctx, directorActor, &dto.CreateCastingRequest{
		Title:        "Role with criteria",
		Description:  "short film",
		RoleType:     "actor",
		Location:     "Astana",
		AuditionDate: time.Now().Add(48 * time.Hour),
		Gender:       "female",
		AgeRange:     &dto.AgeRange{Min: 18, Max: 30},
	})
	require.NoError(t, err)
	assert.Equal(t, "female", resp.Gender)
	require.NotNil(t, resp.AgeRange)
	assert.Equal(t, 18, resp.AgeRange.Min)
	assert.Equal(t, 30, resp.AgeRange.Max)

	// Правка критериев через частичное обновление.
	newGender := "any"
	updated, err := svc.UpdateCasting(ctx, resp.ID, directorActor, &dto.UpdateCastingRequest{
		Gender:   &newGender,
		AgeRange: &dto.AgeRange{Min: 20, Max: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, "any", updated.Gender)
	require.NotNil(t, updated.AgeRange)
	assert.Equal(t, 40, updated.AgeRange.Max)
}

func TestSearchCastingsPagination(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, _ := seedUser(t, reg, "director", models.UserRoleDirector)

	// Явные CreatedAt, чтобы порядок "новые сверху" был детерминирован.
	base := time.Now().Add(-time.Hour)
	titles := []string{"Роль 1", "Роль 2", "Роль 3", "Роль 4", "Роль 5"}
	for i, title := range titles {
		casting := &models.Casting{
			Title:       title,
			Description: "описание",
			RoleType:    "actor",
			Location:    "Almaty",
			PostedBy:    director.ID,
			IsActive:    true,
		}
		casting.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, reg.Castings().Create(ctx, casting))
	}

	page1, total, err := svc.SearchCastings(ctx, dto.SearchCastingsRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Роль 5", page1[0].Title)
	assert.Equal(t, "Роль 4", page1[1].Title)

	page3, total, err := svc.SearchCastings(ctx, dto.SearchCastingsRequest{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page3, 1)
	assert.Equal(t, "Роль 1", page3[0].Title)

	// Страница за пределами выдачи: пусто, но total сохраняется.
	empty, total, err := svc.SearchCastings(ctx, dto.SearchCastingsRequest{Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, empty)
}

func TestGetCastingVisibility(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	casting := seedCasting(t, reg, director.ID, "роль")

	resp, err := svc.GetCasting(ctx, casting.ID)
	require.NoError(t, err)
	assert.Equal(t, casting.ID, resp.ID)
	require.NotNil(t, resp.Poster)
	assert.Equal(t, director.Name, resp.Poster.Name)

	require.NoError(t, svc.DeleteCasting(ctx, casting.ID, directorActor))

	// Удаленный кастинг отвечает 410, несуществующий - 404.
	_, err = svc.GetCasting(ctx, casting.ID)
	assert.ErrorIs(t, err, appErrors.ErrCastingUnavailable)

	_, err = svc.GetCasting(ctx, "missing-id")
	assert.ErrorIs(t, err, appErrors.ErrCastingNotFound)
}

func TestSearchCastingsExcludesDeleted(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	kept := seedCasting(t, reg, director.ID, "Остается")
	removed := seedCasting(t, reg, director.ID, "Уходит")

	require.NoError(t, svc.DeleteCasting(ctx, removed.ID, directorActor))

	items, total, err := svc.SearchCastings(ctx, dto.SearchCastingsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ID)
}

func TestSearchCastingsFilters(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, _ := seedUser(t, reg, "director", models.UserRoleDirector)

	a := &models.Casting{Title: "Драма в горах", Description: "x", RoleType: "actor", Location: "Almaty", PostedBy: director.ID, IsActive: true}
	b := &models.Casting{Title: "Комедия", Description: "городская история", RoleType: "extra", Location: "Astana", PostedBy: director.ID, IsActive: true}
	require.NoError(t, reg.Castings().Create(ctx, a))
	require.NoError(t, reg.Castings().Create(ctx, b))

	// Подстрока без учета регистра по title/description.
	items, _, err := svc.SearchCastings(ctx, dto.SearchCastingsRequest{Search: "драма"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)

	// Точный фильтр по локации без учета регистра.
	items, _, err = svc.SearchCastings(ctx, dto.SearchCastingsRequest{Location: "astana"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)

	items, _, err = svc.SearchCastings(ctx, dto.SearchCastingsRequest{RoleType: "actor"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
}

func TestUpdateCastingAuthorization(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	_, otherActor := seedUser(t, reg, "rival", models.UserRoleDirector)
	casting := seedCasting(t, reg, director.ID, "роль")

	_, err := svc.UpdateCasting(ctx, casting.ID, otherActor, &dto.UpdateCastingRequest{Title: strPtr("чужое")})
	assert.ErrorIs(t, err, appErrors.ErrNotAuthorized)

	resp, err := svc.UpdateCasting(ctx, casting.ID, directorActor, &dto.UpdateCastingRequest{Title: strPtr("новое название")})
	require.NoError(t, err)
	assert.Equal(t, "новое название", resp.Title)
	// Заявок нет, метка изменения не ставится.
	assert.False(t, resp.IsUpdated)
}

func TestUpdateCastingStampsWhenApplied(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	talent, _ := seedUser(t, reg, "talent", models.UserRoleTalent)
	casting := seedCasting(t, reg, director.ID, "роль")
	seedApplication(t, reg, casting.ID, talent.ID)

	resp, err := svc.UpdateCasting(ctx, casting.ID, directorActor, &dto.UpdateCastingRequest{
		Location:   strPtr("Astana"),
		UpdateNote: "Локация изменилась",
	})
	require.NoError(t, err)
	assert.True(t, resp.IsUpdated)
	assert.NotNil(t, resp.LastUpdatedAt)
	assert.Equal(t, "Локация изменилась", resp.UpdateNote)
}

func TestDeleteCastingTwice(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	casting := seedCasting(t, reg, director.ID, "роль")

	require.NoError(t, svc.DeleteCasting(ctx, casting.ID, directorActor))

	// Повторное удаление - ошибка состояния, а не тихий успех.
	err := svc.DeleteCasting(ctx, casting.ID, directorActor)
	assert.ErrorIs(t, err, appErrors.ErrCastingDeleted)
}

func TestUpdateDeletedCasting(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	casting := seedCasting(t, reg, director.ID, "роль")
	require.NoError(t, svc.DeleteCasting(ctx, casting.ID, directorActor))

	_, err := svc.UpdateCasting(ctx, casting.ID, directorActor, &dto.UpdateCastingRequest{Title: strPtr("поздно")})
	assert.ErrorIs(t, err, appErrors.ErrCastingDeleted)
}

func TestGetMyCastingsIncludesDeleted(t *testing.T) {
	reg := repositories.NewMemoryRegistry()
	svc := newCastingService(reg)
	ctx := context.Background()

	director, directorActor := seedUser(t, reg, "director", models.UserRoleDirector)
	_, talentActor := seedUser(t, reg, "talent", models.UserRoleTalent)

	seedCasting(t, reg, director.ID, "живой")
	gone := seedCasting(t, reg, director.ID, "удаленный")
	require.NoError(t, svc.DeleteCasting(ctx, gone.ID, directorActor))

	items, err := svc.GetMyCastings(ctx, directorActor)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.GetMyCastings(ctx, talentActor)
	assert.ErrorIs(t, err, appErrors.ErrNotAuthorized)
}
