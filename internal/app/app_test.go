package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"castlink_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Собирает полный router поверх пустого *gorm.DB: health не трогает
// базу, поэтому достаточно проверить что граф зависимостей собирается.
func TestSetupRouterHealth(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Upload.MaxSize = 10 * 1024 * 1024

	router := SetupRouter(cfg, nil)
	require.NotNil(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
