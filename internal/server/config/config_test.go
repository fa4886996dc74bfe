package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "documents", cfg.S3Bucket)
	assert.Empty(t, cfg.SecretKey, "secret must not have a default")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Error(t, cfg.Validate(), "missing secret must be fatal")

	cfg.SecretKey = "s"
	require.NoError(t, cfg.Validate())

	cfg.TokenValidityDuration = 0
	require.Error(t, cfg.Validate())
}

func TestParseJSON_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	content := map[string]any{
		"endpoint_addr":           ":9999",
		"secret_key":              "json-secret",
		"token_validity_duration": "30m",
	}
	data, err := json.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	oldArgs := os.Args
	os.Args = []string{"test", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "documents", cfg.S3Bucket)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("BIOPORTAL_SECRET_KEY", "env-secret")
	t.Setenv("BIOPORTAL_S3_BUCKET", "env-bucket")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, "env-bucket", cfg.S3Bucket)
	assert.Equal(t, ":8080", cfg.EndpointAddr)
}

func TestParseFlags_Overlay(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test", "-a", ":7070", "-s", "flag-secret", "-t", "15"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.TokenValidityDuration)
}
