package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := load("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.Engine.EvalTimeout.Std())
	assert.Equal(t, "stl", cfg.Export.Format)
	assert.Equal(t, 4, cfg.Export.Workers)
	assert.True(t, cfg.Graph.ValidateOnLoad)
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name, file, body string
	}{
		{"yaml", "geograph.yaml", `
logging:
  level: debug
  development: true
engine:
  eval_timeout: 1m30s
export:
  directory: /tmp/out
  workers: 2
random:
  seed: 42
graph:
  validate_on_load: false
`},
		{"toml", "geograph.toml", `
[logging]
level = "debug"
development = true

[engine]
eval_timeout = "1m30s"

[export]
directory = "/tmp/out"
workers = 2

[random]
seed = 42

[graph]
validate_on_load = false
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(writeFile(t, tt.file, tt.body), env(nil))
			require.NoError(t, err)
			assert.Equal(t, "debug", cfg.Logging.Level)
			assert.True(t, cfg.Logging.Development)
			assert.Equal(t, 90*time.Second, cfg.Engine.EvalTimeout.Std())
			assert.Equal(t, "/tmp/out", cfg.Export.Directory)
			assert.Equal(t, "stl", cfg.Export.Format, "unset keys keep their default")
			assert.Equal(t, 2, cfg.Export.Workers)
			assert.Equal(t, int64(42), cfg.Random.Seed)
			assert.False(t, cfg.Graph.ValidateOnLoad)
		})
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "c.yml", "logging:\n  level: debug\nrandom:\n  seed: 1\n")
	cfg, err := load(path, env(map[string]string{
		"GEOGRAPH_LOG_LEVEL":        "warn",
		"GEOGRAPH_SEED":             "99",
		"GEOGRAPH_EVAL_TIMEOUT":     "250ms",
		"GEOGRAPH_EXPORT_WORKERS":   "8",
		"GEOGRAPH_VALIDATE_ON_LOAD": "false",
		"GEOGRAPH_EXPORT_DIR":       "",
	}))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, int64(99), cfg.Random.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.EvalTimeout.Std())
	assert.Equal(t, 8, cfg.Export.Workers)
	assert.False(t, cfg.Graph.ValidateOnLoad)
	assert.Equal(t, ".", cfg.Export.Directory, "empty values are ignored")
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("GEOGRAPH_LOG_LEVEL", "error")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestHomeDirectoryExpansion(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)
	cfg, err := load("", env(map[string]string{"GEOGRAPH_EXPORT_DIR": "~/meshes"}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "meshes"), cfg.Export.Directory)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		env  map[string]string
		want string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") }, nil, "no such file"},
		{"unsupported type", func(t *testing.T) string { return writeFile(t, "c.ini", "x=1") }, nil, "unsupported file type"},
		{"bad yaml", func(t *testing.T) string { return writeFile(t, "c.yaml", "logging: [") }, nil, "parse"},
		{"bad duration", func(t *testing.T) string { return writeFile(t, "c.toml", "[engine]\neval_timeout = \"soon\"") }, nil, "invalid duration"},
		{"bad env int", nil, map[string]string{"GEOGRAPH_SEED": "x"}, "GEOGRAPH_SEED"},
		{"bad env bool", nil, map[string]string{"GEOGRAPH_LOG_DEVELOPMENT": "maybe"}, "GEOGRAPH_LOG_DEVELOPMENT"},
		{"bad level", nil, map[string]string{"GEOGRAPH_LOG_LEVEL": "loud"}, "Logging.Level must be one of"},
		{"bad format", nil, map[string]string{"GEOGRAPH_EXPORT_FORMAT": "obj"}, "Export.Format must be one of"},
		{"no workers", nil, map[string]string{"GEOGRAPH_EXPORT_WORKERS": "0"}, "Export.Workers must be at least 1"},
		{"zero timeout", nil, map[string]string{"GEOGRAPH_EVAL_TIMEOUT": "0s"}, "Engine.EvalTimeout must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.path != nil {
				path = tt.path(t)
			}
			_, err := load(path, env(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
