package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megawarez/internal/config"
	"megawarez/internal/logging"
)

func TestNew_MemoryWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{
		App:     config.AppConfig{Env: "test"},
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Redis:   config.RedisConfig{Addr: mr.Addr()},
		Auth:    config.AuthConfig{BcryptCost: 4},
	}
	ctx := context.Background()

	a, err := New(ctx, cfg, logging.Nop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, mr.Keys())

	require.NoError(t, a.Close(ctx))
	assert.NoError(t, a.Close(ctx))
}

func TestClose_ReportsFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, rdb.Close())

	a := &App{log: logging.Nop(), redis: rdb}
	err := a.Close(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, redis.ErrClosed)
	assert.Contains(t, err.Error(), "close redis")
}
