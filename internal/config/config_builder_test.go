package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	cfg := defaults()
	cfg.Storage.DB.DSN = "file:test.db"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
	assert.Empty(t, b.rest)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "file:env.db"}}, App: App{Version: "2.0.0"}},
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "file:flag.db"}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "file:flag.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, DefaultShortTTL, cfg.Session.ShortTTL, "zero fields keep the default")
	assert.Equal(t, DefaultExportDir, cfg.Export.Dir)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	require.Len(t, b.configs, 1)

	d := b.configs[0]
	assert.Equal(t, DefaultVersion, d.App.Version)
	assert.Equal(t, DefaultKDFIterations, d.App.KDFIterations)
	assert.Equal(t, 24*time.Hour, d.Session.ShortTTL)
	assert.Equal(t, 720*time.Hour, d.Session.LongTTL)
	assert.Empty(t, d.Storage.DB.DSN)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_AppendsConfig(t *testing.T) {
	t.Setenv("STORAGE_DB_DSN", "file:env.db")

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "file:env.db", b.configs[0].Storage.DB.DSN)
}

func TestWithEnv_BadValueRecordsError(t *testing.T) {
	t.Setenv("SESSION_SHORT_TTL", "forever")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_KeepsRemainingArgs(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-d", "file:f.db", "export", "-profile"})
	require.NoError(t, b.err)
	assert.Equal(t, []string{"export", "-profile"}, b.rest)
	assert.Equal(t, "file:f.db", b.configs[0].Storage.DB.DSN)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-nope"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LoadsFileFromEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{"db": map[string]any{"dsn": "file:json.db"}},
		"session": map[string]any{"long_ttl": "48h"},
	})

	b := newConfigBuilder().withDefaults().withFlags([]string{"-c", path})
	b = b.withJSON()
	require.NoError(t, b.err)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "file:json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 48*time.Hour, cfg.Session.LongTTL)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	b = b.withJSON()
	assert.Error(t, b.err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_EndToEnd(t *testing.T) {
	t.Setenv("APP_VERSION", "3.1.4")
	t.Setenv("EXPORT_DIR", "/tmp/env-exports")

	cfg, rest, err := GetStructuredConfig([]string{"-d", "file:e2e.db", "-o", "/tmp/flag-exports", "unlock", "-remember"})
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", cfg.App.Version)
	assert.Equal(t, "file:e2e.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/flag-exports", cfg.Export.Dir)
	assert.Equal(t, []string{"unlock", "-remember"}, rest)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "memory dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "shared memory dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "file:x?mode=memory" }, wantErr: ErrInvalidStorageConfigs},
		{name: "weak kdf", mutate: func(c *StructuredConfig) { c.App.KDFIterations = 1000 }, wantErr: ErrInvalidAppConfigs},
		{name: "no version", mutate: func(c *StructuredConfig) { c.App.Version = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "long shorter than short", mutate: func(c *StructuredConfig) { c.Session.LongTTL = time.Hour }, wantErr: ErrInvalidSessionConfigs},
		{name: "zero sweep", mutate: func(c *StructuredConfig) { c.Session.SweepInterval = 0 }, wantErr: ErrInvalidSessionConfigs},
		{name: "no export dir", mutate: func(c *StructuredConfig) { c.Export.Dir = "" }, wantErr: ErrInvalidExportConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
