package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Сентинельные ошибки хранилища. Сервисы переводят их в appErrors.
var (
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailTaken               = errors.New("email already taken")
	ErrCastingNotFound          = errors.New("casting not found")
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists")
)

// Registry - единая точка доступа к хранилищу. Каскады жизненного цикла
// выполняются через InTransaction, чтобы атомарность была свойством кода,
// а не дисциплиной вызывающего.
type Registry interface {
	Users() UserRepository
	Castings() CastingRepository
	Applications() ApplicationRepository

	// InTransaction выполняет fn над транзакционной копией реестра.
	// Частично выполненный каскад не виден ни одному читателю.
	InTransaction(ctx context.Context, fn func(Registry) error) error
}

type gormRegistry struct {
	db           *gorm.DB
	users        UserRepository
	castings     CastingRepository
	applications ApplicationRepository
}

// NewRegistry создает реестр репозиториев поверх GORM-подключения.
func NewRegistry(db *gorm.DB) Registry {
	return &gormRegistry{
		db:           db,
		users:        &userRepository{db: db},
		castings:     &castingRepository{db: db},
		applications: &applicationRepository{db: db},
	}
}

func (r *gormRegistry) Users() UserRepository               { return r.users }
func (r *gormRegistry) Castings() CastingRepository         { return r.castings }
func (r *gormRegistry) Applications() ApplicationRepository { return r.applications }

func (r *gormRegistry) InTransaction(ctx context.Context, fn func(Registry) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRegistry(tx))
	})
}
