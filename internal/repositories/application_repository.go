package repositories

import (
	"context"
	"errors"

	"castlink_backend/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error)
	ListByCasting(ctx context.Context, castingID string) ([]models.Application, error)
	ListByCastingIDs(ctx context.Context, castingIDs []string) ([]models.Application, error)
	CountByCasting(ctx context.Context, castingID string) (int64, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id string) error
	MarkApplicantDeleted(ctx context.Context, applicantID string) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// Create вставляет заявку. Пара (casting, applicant) уникальна; арбитром
// при конкурентной повторной подаче выступает составной индекс, а не
// предварительное чтение.
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	err := r.db.WithContext(ctx).Create(app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Preload("Casting").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).Preload("Casting").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListByCasting(ctx context.Context, castingID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).Preload("Casting").Preload("Applicant").
		Where("casting_id = ?", castingID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListByCastingIDs(ctx context.Context, castingIDs []string) ([]models.Application, error) {
	if len(castingIDs) == 0 {
		return nil, nil
	}
	var apps []models.Application
	err := r.db.WithContext(ctx).Preload("Casting").Preload("Applicant").
		Where("casting_id IN ?", castingIDs).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) CountByCasting(ctx context.Context, castingID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("casting_id = ?", castingID).
		Count(&count).Error
	return count, err
}

func (r *applicationRepository) Update(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// Delete - физическое удаление: отзыв заявки самим талантом.
func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// MarkApplicantDeleted помечает все заявки таланта одним UPDATE.
// Статус и сообщение не трогаются, связь с кастингом сохраняется.
func (r *applicationRepository) MarkApplicantDeleted(ctx context.Context, applicantID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("applicant_id = ?", applicantID).
		Update("applicant_deleted", true)
	return result.RowsAffected, result.Error
}
