package services

import (
	"context"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/auth"
	"castlink_backend/internal/models"
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/services/dto"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	registry repositories.Registry
}

func NewAuthService(registry repositories.Registry) AuthService {
	return &authService{registry: registry}
}

// Register - регистрация нового пользователя.
// Email деактивированного аккаунта заблокирован навсегда: такой запрос
// отклоняется отдельным исходом, а не обычным "уже существует".
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.ErrWeakPassword
	}
	if !models.ValidRole(req.Role) {
		return nil, appErrors.ErrInvalidUserRole
	}

	existing, err := s.registry.Users().FindByEmail(ctx, req.Email)
	if err == nil {
		if !existing.IsActive {
			return nil, appErrors.ErrEmailLocked
		}
		return nil, appErrors.ErrEmailAlreadyExists
	}
	if !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.DatabaseError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}

	// Constraint хранилища - арбитр при гонке одновременных регистраций.
	if err := s.registry.Users().Create(ctx, user); err != nil {
		if appErrors.Is(err, repositories.ErrEmailTaken) {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		return nil, appErrors.DatabaseError(err)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserSummary(user),
	}, nil
}

// Login - аутентификация. Логиниться могут только активные аккаунты.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.registry.Users().FindActiveByEmail(ctx, req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserSummary(user),
	}, nil
}
