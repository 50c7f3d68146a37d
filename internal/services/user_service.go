package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/auth"
	"castlink_backend/internal/models"
	"castlink_backend/internal/policy"
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/services/dto"
	"castlink_backend/internal/storage"
)

// MediaUploadFunc - общая сигнатура методов загрузки медиа профиля.
type MediaUploadFunc func(ctx context.Context, actor policy.Actor, filename, contentType string, file io.Reader) (string, error)

type UserService interface {
	GetCurrentUser(ctx context.Context, actor policy.Actor) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, actor policy.Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetTalentProfile(ctx context.Context, talentID string, actor policy.Actor) (*dto.TalentProfileResponse, error)
	GetDirectorProfile(ctx context.Context, directorID string) (*dto.DirectorProfileResponse, error)
	UploadAvatar(ctx context.Context, actor policy.Actor, filename, contentType string, file io.Reader) (string, error)
	UploadIntroVideo(ctx context.Context, actor policy.Actor, filename, contentType string, file io.Reader) (string, error)
}

type userService struct {
	registry repositories.Registry
	files    storage.Storage
}

func NewUserService(registry repositories.Registry, files storage.Storage) UserService {
	return &userService{registry: registry, files: files}
}

func (s *userService) GetCurrentUser(ctx context.Context, actor policy.Actor) (*dto.UserResponse, error) {
	user, err := s.findActiveUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile - частичное обновление своего профиля. Смена email
// проходит через тот же constraint уникальности, что и регистрация.
func (s *userService) UpdateProfile(ctx context.Context, actor policy.Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.findActiveUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Password != nil {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			return nil, appErrors.ErrWeakPassword
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.registry.Users().Update(ctx, user); err != nil {
		if appErrors.Is(err, repositories.ErrEmailTaken) {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		return nil, appErrors.DatabaseError(err)
	}
	return dto.NewUserResponse(user), nil
}

// GetTalentProfile - анкета таланта с историей его заявок. Доступна
// режиссерам и самому таланту.
func (s *userService) GetTalentProfile(ctx context.Context, talentID string, actor policy.Actor) (*dto.TalentProfileResponse, error) {
	if !actor.IsDirector() && actor.ID != talentID {
		return nil, appErrors.ErrNotAuthorized
	}

	user, err := s.findActiveUser(ctx, talentID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.UserRoleTalent {
		return nil, appErrors.ErrUserNotFound
	}

	apps, err := s.registry.Applications().ListByApplicant(ctx, talentID)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.TalentProfileResponse{
		UserResponse: *dto.NewUserResponse(user),
		Applications: make([]dto.MyApplicationResponse, 0, len(apps)),
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, dto.NewMyApplicationResponse(&apps[i]))
	}
	return resp, nil
}

// GetDirectorProfile - публичный профиль режиссера вместе с его
// активными кастингами.
func (s *userService) GetDirectorProfile(ctx context.Context, directorID string) (*dto.DirectorProfileResponse, error) {
	user, err := s.findActiveUser(ctx, directorID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.UserRoleDirector {
		return nil, appErrors.ErrUserNotFound
	}

	castings, err := s.registry.Castings().ListByOwner(ctx, directorID)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.DirectorProfileResponse{
		UserResponse: *dto.NewUserResponse(user),
		Castings:     make([]dto.CastingResponse, 0, len(castings)),
	}
	for i := range castings {
		if !castings[i].IsActive {
			continue
		}
		resp.Castings = append(resp.Castings, *dto.NewCastingResponse(&castings[i]))
	}
	return resp, nil
}

func (s *userService) UploadAvatar(ctx context.Context, actor policy.Actor, filename, contentType string, file io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", appErrors.NewBadRequestError("Avatar must be an image")
	}
	return s.uploadMedia(ctx, actor, "avatars", filename, contentType, file, func(u *models.User, ref string) {
		u.AvatarRef = ref
	})
}

func (s *userService) UploadIntroVideo(ctx context.Context, actor policy.Actor, filename, contentType string, file io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return "", appErrors.NewBadRequestError("Intro video must be a video file")
	}
	return s.uploadMedia(ctx, actor, "intro_videos", filename, contentType, file, func(u *models.User, ref string) {
		u.IntroVideoRef = ref
	})
}

// uploadMedia кладет файл в blob-хранилище и сохраняет непрозрачную
// ссылку в профиле. Старый файл не удаляется, ссылка просто замещается.
func (s *userService) uploadMedia(ctx context.Context, actor policy.Actor, prefix, filename, contentType string, file io.Reader, attach func(*models.User, string)) (string, error) {
	user, err := s.findActiveUser(ctx, actor.ID)
	if err != nil {
		return "", err
	}

	ref := fmt.Sprintf("%s/%s/%d%s", prefix, user.ID, time.Now().UnixNano(), filepath.Ext(filename))
	if err := s.files.Save(ctx, ref, file, contentType); err != nil {
		return "", appErrors.InternalError(err)
	}

	attach(user, ref)
	if err := s.registry.Users().Update(ctx, user); err != nil {
		return "", appErrors.DatabaseError(err)
	}
	return ref, nil
}

func (s *userService) findActiveUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.registry.Users().FindActiveByID(ctx, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	return user, nil
}
