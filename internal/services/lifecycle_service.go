package services

import (
	"context"
	"time"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/logger"
	"castlink_backend/internal/models"
	"castlink_backend/internal/policy"
	"castlink_backend/internal/repositories"
)

// Дефолтный текст уведомления, если режиссер не приложил свою заметку.
const defaultUpdateNote = "Casting details were updated after you applied"

// LifecycleService выполняет каскадные эффекты жизненного цикла:
// деактивацию аккаунта с зависимыми записями и пометку "кастинг изменился
// после вашей заявки". Каждый каскад - одна транзакция; половинчатое
// состояние снаружи не наблюдаемо.
type LifecycleService interface {
	DeactivateAccount(ctx context.Context, actor policy.Actor) error
	StampCastingUpdate(ctx context.Context, casting *models.Casting, note string) error
}

type lifecycleService struct {
	registry repositories.Registry
}

func NewLifecycleService(registry repositories.Registry) LifecycleService {
	return &lifecycleService{registry: registry}
}

// DeactivateAccount гасит аккаунт и его зависимости.
// Режиссер: все его кастинги переводятся в isActive=false с deletedAt -
// заявки под ними не помечаются, их невидимость выводится через кастинг.
// Талант: все его заявки получают applicantDeleted=true; статус,
// сообщение и связь с кастингом не трогаются.
func (s *lifecycleService) DeactivateAccount(ctx context.Context, actor policy.Actor) error {
	now := time.Now()

	err := s.registry.InTransaction(ctx, func(reg repositories.Registry) error {
		user, err := reg.Users().FindActiveByID(ctx, actor.ID)
		if err != nil {
			return err
		}

		if err := reg.Users().Deactivate(ctx, user.ID); err != nil {
			return err
		}

		switch user.Role {
		case models.UserRoleDirector:
			affected, err := reg.Castings().DeactivateByOwner(ctx, user.ID, now)
			if err != nil {
				return err
			}
			logger.CtxInfo(ctx, "director account deactivated",
				"user_id", user.ID, "castings_deactivated", affected)
		case models.UserRoleTalent:
			affected, err := reg.Applications().MarkApplicantDeleted(ctx, user.ID)
			if err != nil {
				return err
			}
			logger.CtxInfo(ctx, "talent account deactivated",
				"user_id", user.ID, "applications_flagged", affected)
		}
		return nil
	})

	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.DatabaseError(err)
	}
	return nil
}

// StampCastingUpdate сохраняет правку кастинга. Если по кастингу уже есть
// хотя бы одна заявка, в той же транзакции записываются
// isUpdated/lastUpdatedAt/updateNote - все три вместе и никогда раньше
// первой заявки. При нуле заявок это обычное обновление полей.
func (s *lifecycleService) StampCastingUpdate(ctx context.Context, casting *models.Casting, note string) error {
	err := s.registry.InTransaction(ctx, func(reg repositories.Registry) error {
		count, err := reg.Applications().CountByCasting(ctx, casting.ID)
		if err != nil {
			return err
		}

		if count > 0 {
			now := time.Now()
			casting.IsUpdated = true
			casting.LastUpdatedAt = &now
			if note != "" {
				casting.UpdateNote = note
			} else {
				casting.UpdateNote = defaultUpdateNote
			}
		}

		return reg.Castings().Update(ctx, casting)
	})
	if err != nil {
		return appErrors.DatabaseError(err)
	}
	return nil
}
