package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "STATE_KEY", "REPORT_CACHE_TTL", "DEFAULT_CONFIRM_RATE", "JWT_SECRET", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "coinnecta_data_v5", cfg.StateKey)
	assert.Equal(t, 15*time.Minute, cfg.ReportCacheTTL)
	assert.True(t, decimal.NewFromInt(90).Equal(cfg.DefaultConfirmRate))
	assert.True(t, decimal.NewFromInt(60).Equal(cfg.DefaultDeliverRate))
	assert.False(t, cfg.AuthEnabled())
	assert.Len(t, cfg.CORSOrigins, 2)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "coinnecta")
	t.Setenv("REPORT_CACHE_TTL", "not-a-duration")
	t.Setenv("MAX_UPLOAD_SIZE_BYTES", "2048")
	t.Setenv("DEFAULT_DELIVER_RATE", "72.5")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Contains(t, cfg.DatabaseDSN, "@db:")
	assert.Contains(t, cfg.DatabaseDSN, "/coinnecta?")
	assert.Equal(t, 15*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, int64(2048), cfg.MaxUploadSizeBytes)
	assert.True(t, decimal.RequireFromString("72.5").Equal(cfg.DefaultDeliverRate))
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	cfg := &Config{StoreDriver: "mysql", StateKey: "k", MaxUploadSizeBytes: 1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{StoreDriver: DriverSQLite, StateKey: "", MaxUploadSizeBytes: 1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{StoreDriver: DriverSQLite, StateKey: "k", MaxUploadSizeBytes: 0}
	assert.Error(t, cfg.Validate())

	cfg = &Config{StoreDriver: DriverSQLite, StateKey: "k", MaxUploadSizeBytes: 1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{StoreDriver: DriverSQLite, StateKey: "k", MaxUploadSizeBytes: 1, CORSOrigins: []string{"http://localhost:5173"}}
	assert.NoError(t, cfg.Validate())
}
