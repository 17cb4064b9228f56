package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.DB.Driver)
	assert.Equal(t, "Transferencia", cfg.Webhook.DefaultPaymentMethod)
	assert.Equal(t, 5*time.Minute, cfg.Redis.FeeTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("WEBHOOK_API_KEY", "abc")
	t.Setenv("JOBS_ENABLED", "false")
	t.Setenv("DB_USER", "ventas")
	t.Setenv("DB_PASSWORD", "p@ss")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "abc", cfg.Webhook.APIKey)
	assert.False(t, cfg.Jobs.Enabled)
	assert.Contains(t, cfg.DB.ConnectionString(), "ventas:p%40ss@")
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}
