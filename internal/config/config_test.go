package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"user_id": "550e8400-e29b-41d4-a716-446655440000",
		"api_key": "test-key",
		"timeout_seconds": 60,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", cfg.UserID)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_SearchKeysPaired(t *testing.T) {
	cfg := &Config{SearchAPIKey: "key"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be set together")

	cfg = &Config{SearchAPIKey: "key", SearchCX: "cx"}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{TimeoutSeconds: -1}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestValidate_MissingJDFile(t *testing.T) {
	cfg := &Config{JD: "/nonexistent/jd.txt"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "job description file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{UserID: "from-flags"}
	defaults := Config{
		UserID:         "from-file",
		APIKey:         "file-key",
		TimeoutSeconds: 45,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "from-flags", merged.UserID)
	assert.Equal(t, "file-key", merged.APIKey)
	assert.Equal(t, 45, merged.TimeoutSeconds)
}
