package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadINIWithLegacyKey(t *testing.T) {
	path := writeFile(t, "settings.ini", "[database]\ndb_path = tracker.db\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "tracker.db", cfg.Database.Path)
	assert.True(t, cfg.Exports.ChartsEnabled)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Server.AllowedOrigins)
}

func TestLoadAllowedOrigins(t *testing.T) {
	path := writeFile(t, "settings.ini", "[server]\nport = 9090\nallowed_origins = http://a.local, http://b.local\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.AllowedOrigins)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "settings.yaml", "database:\n  path: other.db\nexports:\n  charts_enabled: false\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Database.Path)
	assert.False(t, cfg.Exports.ChartsEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "settings.ini", "[database]\npath = file.db\n")
	t.Setenv("DATABASE_PATH", "env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database.Path)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	require.Error(t, err)
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	path := writeFile(t, "settings.ini", "[database]\ndriver = postgres\n")

	_, err := Load(path)
	require.Error(t, err)
}
