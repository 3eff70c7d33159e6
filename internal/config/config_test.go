package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_path": "/tmp/atic.db",
		"log_level": "debug",
		"retention_days": 90
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/atic.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 90, cfg.RetentionDays)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestMergeWithDefaults_FillsEmptyFields(t *testing.T) {
	cfg := Config{LogLevel: "warn"}

	merged := cfg.MergeWithDefaults()
	assert.Equal(t, "warn", merged.LogLevel, "explicit values survive")
	assert.Equal(t, DefaultDatabasePath, merged.DatabasePath)
	assert.Equal(t, DefaultModel, merged.Model)
	assert.Equal(t, DefaultRetentionDays, merged.RetentionDays)
	assert.Equal(t, DefaultCodeTimeoutSeconds, merged.CodeTimeoutSeconds)
}

func TestFromEnv_OverridesCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("ATIC_LOG_LEVEL", "error")

	cfg := Config{GeminiAPIKey: "file-key", LogLevel: "info"}
	cfg.FromEnv()
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestValidate_GeminiKeyRequiredOnlyForCoaching(t *testing.T) {
	cfg := (&Config{}).MergeWithDefaults()

	report := cfg.Validate(false)
	assert.True(t, report.Valid)
	assert.NotEmpty(t, report.MissingOptional)

	report = cfg.Validate(true)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "GEMINI_API_KEY")
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := Config{LogLevel: "loud"}

	report := cfg.Validate(false)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors[0], "LogLevel")
}

func TestValidate_WarnsOnConflictingBackends(t *testing.T) {
	cfg := Config{
		DatabaseURL:  "postgres://localhost/atic",
		DatabasePath: "/custom/atic.db",
		GeminiAPIKey: "key",
	}

	report := cfg.Validate(false)
	assert.True(t, report.Valid)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "database_url wins")
}
