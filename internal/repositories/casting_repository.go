package repositories

import (
	"context"
	"errors"
	"time"

	"castlink_backend/internal/models"

	"gorm.io/gorm"
)

// CastingSearchCriteria - фильтры публичного листинга. search ищет
// подстроку без учета регистра; roleType и location - точное совпадение
// без учета регистра. Только активные записи.
type CastingSearchCriteria struct {
	Search   string
	RoleType string
	Location string
	Page     int
	PageSize int
}

type CastingRepository interface {
	Create(ctx context.Context, casting *models.Casting) error
	FindByID(ctx context.Context, id string) (*models.Casting, error)
	FindActiveByID(ctx context.Context, id string) (*models.Casting, error)
	Update(ctx context.Context, casting *models.Casting) error
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
	Search(ctx context.Context, criteria CastingSearchCriteria) ([]models.Casting, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Casting, error)
	ActiveIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	DeactivateByOwner(ctx context.Context, ownerID string, deletedAt time.Time) (int64, error)
}

type castingRepository struct {
	db *gorm.DB
}

func (r *castingRepository) Create(ctx context.Context, casting *models.Casting) error {
	return r.db.WithContext(ctx).Create(casting).Error
}

func (r *castingRepository) FindByID(ctx context.Context, id string) (*models.Casting, error) {
	var casting models.Casting
	err := r.db.WithContext(ctx).First(&casting, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCastingNotFound
		}
		return nil, err
	}
	return &casting, nil
}

func (r *castingRepository) FindActiveByID(ctx context.Context, id string) (*models.Casting, error) {
	var casting models.Casting
	err := r.db.WithContext(ctx).Preload("Poster").
		First(&casting, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCastingNotFound
		}
		return nil, err
	}
	return &casting, nil
}

func (r *castingRepository) Update(ctx context.Context, casting *models.Casting) error {
	return r.db.WithContext(ctx).Save(casting).Error
}

// SoftDelete помечает кастинг удаленным. Запись остается ради
// исторических заявок.
func (r *castingRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Casting{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_at": deletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCastingNotFound
	}
	return nil
}

func (r *castingRepository) Search(ctx context.Context, criteria CastingSearchCriteria) ([]models.Casting, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Casting{}).
		Where("is_active = ?", true)

	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR role_type ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if criteria.RoleType != "" {
		query = query.Where("LOWER(role_type) = LOWER(?)", criteria.RoleType)
	}
	if criteria.Location != "" {
		query = query.Where("LOWER(location) = LOWER(?)", criteria.Location)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var castings []models.Casting
	err := query.Preload("Poster").Order("created_at DESC").Find(&castings).Error
	if err != nil {
		return nil, 0, err
	}
	return castings, total, nil
}

// ListByOwner возвращает кастинги владельца, активные и неактивные -
// его собственная историческая запись.
func (r *castingRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Casting, error) {
	var castings []models.Casting
	err := r.db.WithContext(ctx).
		Where("posted_by = ?", ownerID).
		Order("created_at DESC").
		Find(&castings).Error
	if err != nil {
		return nil, err
	}
	return castings, nil
}

func (r *castingRepository) ActiveIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Casting{}).
		Where("posted_by = ? AND is_active = ?", ownerID, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeactivateByOwner гасит все кастинги режиссера одним UPDATE -
// половинчатое состояние каскада снаружи не наблюдаемо.
func (r *castingRepository) DeactivateByOwner(ctx context.Context, ownerID string, deletedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Casting{}).
		Where("posted_by = ? AND is_active = ?", ownerID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_at": deletedAt,
		})
	return result.RowsAffected, result.Error
}
