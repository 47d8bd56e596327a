package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "config.json")

	require.NoError(t, ConfigLoad(path))
	assert.FileExists(t, path)

	cfg := ConfigGet()
	require.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)
}

func TestConfigLoadMergesFileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_type":"memory","default_weight_kg":82.5}`), 0644))

	require.NoError(t, ConfigLoad(path))
	cfg := ConfigGet()
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, 82.5, cfg.DefaultWeightKg)
	assert.Equal(t, "ironpulse", cfg.KeyPrefix)
	assert.Equal(t, 250, cfg.QuickHydrationMl)
}

func TestConfigLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("IRONPULSE_DATABASE_TYPE", "memory")
	t.Setenv("IRONPULSE_QUICK_HYDRATION_ML", "300")

	require.NoError(t, ConfigLoad(path))
	cfg := ConfigGet()
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, 300, cfg.QuickHydrationMl)
}

func TestConfigLoadRejectsUnknownDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_type":"postgres"}`), 0644))

	assert.Error(t, ConfigLoad(path))
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.HydrationTargetMl = 3000

	require.NoError(t, ConfigSave(cfg, path))
	require.NoError(t, ConfigLoad(path))
	assert.Equal(t, cfg, ConfigGet())
}
