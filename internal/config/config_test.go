package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ".", cfg.ExportDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIAGEDESK_DB_PATH", "/tmp/clinic.db")
	t.Setenv("TRIAGEDESK_LOG_LEVEL", "debug")
	t.Setenv("TRIAGEDESK_EXPORT_DIR", "/tmp/exports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/clinic.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
}
