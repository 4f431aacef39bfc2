package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_URL", "GRPC_ADDR", "LONG_LINE_THRESHOLD", "QUEUE_WORKERS", "PROCESS_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, DefaultSQLiteDSN, cfg.Database.DSN)
	assert.Equal(t, ":8080", cfg.Server.GRPCAddr)
	assert.Equal(t, 30, cfg.Extract.LongLineThreshold)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Queue.ProcessTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://cards@localhost/cards")
	t.Setenv("LONG_LINE_THRESHOLD", "0")
	t.Setenv("QUEUE_WORKERS", "not-a-number")
	t.Setenv("PROCESS_TIMEOUT", "15s")
	t.Setenv("OCR_TSV_CONFIDENCE", "true")

	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://cards@localhost/cards", cfg.Database.DSN)
	assert.Equal(t, 0, cfg.Extract.LongLineThreshold)
	assert.Equal(t, 4, cfg.Queue.Workers, "unparsable values fall back to the default")
	assert.Equal(t, 15*time.Second, cfg.Queue.ProcessTimeout)
	assert.True(t, cfg.OCR.EnableTSVConfidence)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }},
		{"empty addr", func(c *Config) { c.Server.GRPCAddr = "" }},
		{"negative threshold", func(c *Config) { c.Extract.LongLineThreshold = -1 }},
		{"no workers", func(c *Config) { c.Queue.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			cfg.Database.Driver = "sqlite"
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}
