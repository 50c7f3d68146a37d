package services

import (
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	CastingService     CastingService
	ApplicationService ApplicationService
	LifecycleService   LifecycleService
}

// NewServiceContainer собирает сервисы поверх общего реестра репозиториев.
func NewServiceContainer(registry repositories.Registry, files storage.Storage) *ServiceContainer {
	lifecycle := NewLifecycleService(registry)
	return &ServiceContainer{
		AuthService:        NewAuthService(registry),
		UserService:        NewUserService(registry, files),
		CastingService:     NewCastingService(registry, lifecycle),
		ApplicationService: NewApplicationService(registry, files),
		LifecycleService:   lifecycle,
	}
}
