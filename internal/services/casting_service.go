package services

import (
	"context"
	"time"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/models"
	"castlink_backend/internal/policy"
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/services/dto"
)

type CastingService interface {
	CreateCasting(ctx context.Context, actor policy.Actor, req *dto.CreateCastingRequest) (*dto.CastingResponse, error)
	GetCasting(ctx context.Context, castingID string) (*dto.CastingResponse, error)
	SearchCastings(ctx context.Context, req dto.SearchCastingsRequest) ([]*dto.CastingResponse, int64, error)
	GetMyCastings(ctx context.Context, actor policy.Actor) ([]*dto.CastingResponse, error)
	UpdateCasting(ctx context.Context, castingID string, actor policy.Actor, req *dto.UpdateCastingRequest) (*dto.CastingResponse, error)
	DeleteCasting(ctx context.Context, castingID string, actor policy.Actor) error
}

type castingService struct {
	registry  repositories.Registry
	lifecycle LifecycleService
}

func NewCastingService(registry repositories.Registry, lifecycle LifecycleService) CastingService {
	return &castingService{registry: registry, lifecycle: lifecycle}
}

func (s *castingService) CreateCasting(ctx context.Context, actor policy.Actor, req *dto.CreateCastingRequest) (*dto.CastingResponse, error) {
	if !actor.IsDirector() {
		return nil, appErrors.ErrNotAuthorized
	}

	gender := req.Gender
	if gender == "" {
		gender = "any"
	}

	casting := &models.Casting{
		Title:        req.Title,
		Description:  req.Description,
		RoleType:     req.RoleType,
		Location:     req.Location,
		AuditionDate: req.AuditionDate,
		Gender:       gender,
		AgeRange:     dto.FormatAgeRange(req.AgeRange),
		PostedBy:     actor.ID,
		IsActive:     true,
	}

	if err := s.registry.Castings().Create(ctx, casting); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return dto.NewCastingResponse(casting), nil
}

// GetCasting - публичная карточка: только активные кастинги.
func (s *castingService) GetCasting(ctx context.Context, castingID string) (*dto.CastingResponse, error) {
	casting, err := s.registry.Castings().FindActiveByID(ctx, castingID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrCastingNotFound) {
			// Удаленный кастинг отвечает 410, никогда не существовавший - 404.
			if _, ferr := s.registry.Castings().FindByID(ctx, castingID); ferr == nil {
				return nil, appErrors.ErrCastingUnavailable
			}
			return nil, appErrors.ErrCastingNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	return dto.NewCastingResponse(casting), nil
}

func (s *castingService) SearchCastings(ctx context.Context, req dto.SearchCastingsRequest) ([]*dto.CastingResponse, int64, error) {
	castings, total, err := s.registry.Castings().Search(ctx, repositories.CastingSearchCriteria{
		Search:   req.Search,
		RoleType: req.RoleType,
		Location: req.Location,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, appErrors.DatabaseError(err)
	}

	responses := make([]*dto.CastingResponse, 0, len(castings))
	for i := range castings {
		responses = append(responses, dto.NewCastingResponse(&castings[i]))
	}
	return responses, total, nil
}

// GetMyCastings - режиссер видит свои кастинги, активные и удаленные
// вперемешку: это его собственная историческая запись.
func (s *castingService) GetMyCastings(ctx context.Context, actor policy.Actor) ([]*dto.CastingResponse, error) {
	if !actor.IsDirector() {
		return nil, appErrors.ErrNotAuthorized
	}

	castings, err := s.registry.Castings().ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	responses := make([]*dto.CastingResponse, 0, len(castings))
	for i := range castings {
		responses = append(responses, dto.NewCastingResponse(&castings[i]))
	}
	return responses, nil
}

// UpdateCasting применяет правку полей и делегирует координатору
// жизненного цикла запись метаданных "кастинг изменился".
func (s *castingService) UpdateCasting(ctx context.Context, castingID string, actor policy.Actor, req *dto.UpdateCastingRequest) (*dto.CastingResponse, error) {
	casting, err := s.findCasting(ctx, castingID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutateCasting(casting, actor); err != nil {
		return nil, err
	}

	if req.Title != nil {
		casting.Title = *req.Title
	}
	if req.Description != nil {
		casting.Description = *req.Description
	}
	if req.RoleType != nil {
		casting.RoleType = *req.RoleType
	}
	if req.Location != nil {
		casting.Location = *req.Location
	}
	if req.AuditionDate != nil {
		casting.AuditionDate = *req.AuditionDate
	}
	if req.Gender != nil {
		casting.Gender = *req.Gender
	}
	if req.AgeRange != nil {
		casting.AgeRange = dto.FormatAgeRange(req.AgeRange)
	}

	if err := s.lifecycle.StampCastingUpdate(ctx, casting, req.UpdateNote); err != nil {
		return nil, err
	}
	return dto.NewCastingResponse(casting), nil
}

// DeleteCasting - soft delete. Повторное удаление отклоняется.
func (s *castingService) DeleteCasting(ctx context.Context, castingID string, actor policy.Actor) error {
	casting, err := s.findCasting(ctx, castingID)
	if err != nil {
		return err
	}

	if err := policy.CanMutateCasting(casting, actor); err != nil {
		return err
	}

	if err := s.registry.Castings().SoftDelete(ctx, castingID, time.Now()); err != nil {
		if appErrors.Is(err, repositories.ErrCastingNotFound) {
			// Кто-то успел удалить между чтением и записью.
			return appErrors.ErrCastingDeleted
		}
		return appErrors.DatabaseError(err)
	}
	return nil
}

func (s *castingService) findCasting(ctx context.Context, castingID string) (*models.Casting, error) {
	casting, err := s.registry.Castings().FindByID(ctx, castingID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrCastingNotFound) {
			return nil, appErrors.ErrCastingNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	return casting, nil
}
