package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage - blob-хранилище для медиа профилей и портфолио.
// Ядро оперирует только непрозрачными ссылками (ключами), содержимое
// файлов не разбирается.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL - публичная ссылка на файл.
	GetURL(ctx context.Context, key string) (string, error)

	// GetSignedURL - временная подписанная ссылка для приватных файлов.
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type Config struct {
	Type      string // local или cloudflare_r2
	BasePath  string // для local
	BaseURL   string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
