package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/sessiontable/pkg/sat"
)

func TestLoadDefaults(t *testing.T) {
	//** Arrange
	t.Chdir(t.TempDir()) // No .env file around

	//** Act
	cfg, err := Load("")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "gini", cfg.Engine.Name)
	assert.Equal(t, 60*time.Second, cfg.Engine.TimeBudget)
	assert.Empty(t, cfg.Engine.Paths)
	assert.Equal(t, 0, cfg.Model.Workers)
	assert.True(t, cfg.Model.Precheck)
	assert.Equal(t, LogConfig{Level: "info", Format: "console"}, cfg.Log)
}

func TestLoadFromEnvironment(t *testing.T) {
	//** Arrange
	t.Chdir(t.TempDir())
	t.Setenv("ENGINE", "Kissat")
	t.Setenv("KISSAT_PATH", "/opt/kissat/bin/kissat")
	t.Setenv("TIME_BUDGET", "90s")
	t.Setenv("WORKERS", "3")
	t.Setenv("PRECHECK", "false")

	//** Act
	cfg, err := Load("")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "kissat", cfg.Engine.Name)
	assert.Equal(t, sat.Paths{"kissat": "/opt/kissat/bin/kissat"}, cfg.Engine.Paths)
	assert.Equal(t, 90*time.Second, cfg.Engine.TimeBudget)
	assert.Equal(t, 3, cfg.Model.Workers)
	assert.False(t, cfg.Model.Precheck)
}

func TestLoadFromDotEnv(t *testing.T) {
	//** Arrange
	directory := t.TempDir()
	t.Chdir(directory)
	// Registered so the variables loaded from .env are dropped when the test ends
	t.Setenv("ENGINE", "")
	t.Setenv("TIME_BUDGET", "")
	require.NoError(t, os.WriteFile(filepath.Join(directory, ".env"), []byte("ENGINE=gophersat\nTIME_BUDGET=not-a-duration\n"), 0o644))

	//** Act
	cfg, err := Load("")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "gophersat", cfg.Engine.Name)
	assert.Equal(t, 60*time.Second, cfg.Engine.TimeBudget) // Malformed durations fall back to the default
}

func TestLoadFromConfigFile(t *testing.T) {
	//** Arrange
	t.Chdir(t.TempDir())
	file := filepath.Join(t.TempDir(), "sessiontable.yaml")
	require.NoError(t, os.WriteFile(file, []byte("engine: cadical\ncadical_path: /usr/local/bin/cadical\ntime_budget: 5s\nlog_format: json\n"), 0o644))

	//** Act
	cfg, err := Load(file)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "cadical", cfg.Engine.Name)
	assert.Equal(t, sat.Paths{"cadical": "/usr/local/bin/cadical"}, cfg.Engine.Paths)
	assert.Equal(t, 5*time.Second, cfg.Engine.TimeBudget)
	assert.Equal(t, "json", cfg.Log.Format)

	//** Act
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))

	//** Assert
	assert.Error(t, err)
}
