package handlers

import (
	"castlink_backend/internal/services"
	"castlink_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	CastingHandler     *CastingHandler
	ApplicationHandler *ApplicationHandler
	HealthHandler      *HealthHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, sc.AuthService),
		UserHandler:        NewUserHandler(base, sc.UserService, sc.LifecycleService),
		CastingHandler:     NewCastingHandler(base, sc.CastingService, sc.ApplicationService),
		ApplicationHandler: NewApplicationHandler(base, sc.ApplicationService),
		HealthHandler:      NewHealthHandler(),
	}
}
