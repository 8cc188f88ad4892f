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

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "config.json")

	jsonBody := `{
		"app": {
			"version": "2.0.0",
			"kdf_iterations": 120000,
			"log_path": "/tmp/app.log"
		},
		"storage": { "db": { "dsn": "file:json.db" } },
		"session": {
			"short_ttl": "6h",
			"long_ttl": "168h",
			"sweep_interval": "30s"
		},
		"export": { "dir": "/out", "skip_card": true }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, 120000, cfg.App.KDFIterations)
	assert.Equal(t, "/tmp/app.log", cfg.App.LogPath)
	assert.Equal(t, "file:json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 6*time.Hour, cfg.Session.ShortTTL)
	assert.Equal(t, 168*time.Hour, cfg.Session.LongTTL)
	assert.Equal(t, 30*time.Second, cfg.Session.SweepInterval)
	assert.Equal(t, "/out", cfg.Export.Dir)
	assert.True(t, cfg.Export.SkipCard)
	assert.Empty(t, cfg.JSONFilePath, "a JSON file cannot point at another JSON file")
}

func TestParseJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"session":{"short_ttl":"x"}}`), 0o600))

	_, err := parseJSON(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = parseJSON(broken)
	assert.Error(t, err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))

	out, err := json.Marshal(Duration(2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, `"2h0m0s"`, string(out))
}
