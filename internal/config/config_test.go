package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `environment: production
log:
  level: debug
server:
  addr: ":9000"
dataset:
  path: "data/fleet.xlsx"
  fetch_timeout_seconds: 30
store:
  path: "/var/lib/fleet.db"
analysis:
  drop_threshold: -15
  consistency_threshold: 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "data/fleet.xlsx", cfg.Dataset.Path)
	assert.Equal(t, 30*time.Second, cfg.Dataset.FetchTimeout())
	assert.Equal(t, "/var/lib/fleet.db", cfg.Store.Path)
	assert.Equal(t, -15.0, cfg.Analysis.Drop())
	assert.Equal(t, 20.0, cfg.Analysis.ConsistencyThreshold)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server": {"addr": ":7000"}, "dataset": {"sheets_id": "abc"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "abc", cfg.Dataset.SheetsID)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 12*time.Second, cfg.Dataset.FetchTimeout())
	assert.Equal(t, "fleet.db", cfg.Store.Path)
	assert.Equal(t, -10.0, cfg.Analysis.Drop())
	assert.Equal(t, 15.0, cfg.Analysis.ConsistencyThreshold)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_ZeroDropThresholdIsKept(t *testing.T) {
	path := writeFile(t, "config.yaml", "analysis:\n  drop_threshold: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Analysis.Drop())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  addr: \":9000\"\nstore:\n  path: file.db\n")
	t.Setenv("FLEET_SERVER__ADDR", ":9999")
	t.Setenv("FLEET_DATASET__SHEETS_ID", "sheet-xyz")
	t.Setenv("FLEET_LOG__LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "sheet-xyz", cfg.Dataset.SheetsID)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "file.db", cfg.Store.Path)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"positive drop":        "analysis:\n  drop_threshold: 5\n",
		"negative consistency": "analysis:\n  consistency_threshold: -1\n",
		"unknown level":        "log:\n  level: verbose\n",
		"negative timeout":     "dataset:\n  fetch_timeout_seconds: -3\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", data))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "x = 1"))
	assert.Error(t, err)
}
