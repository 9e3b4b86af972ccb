package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jsig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
classpath:
  - build/classes
  - lib/guava.jar
format: json
verbosity: 2
workers: 3
metrics_file: out/jsig.prom
trace: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"build/classes", "lib/guava.jar"}, cfg.ClassPath)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "out/jsig.prom", cfg.MetricsFile)
	assert.True(t, cfg.Trace)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "verbosity: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "line", cfg.Format)
	assert.Equal(t, Default().Workers, cfg.Workers)
}

func TestLoadDefaultFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing explicit file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"bad yaml", func(t *testing.T) string { return writeConfig(t, "format: [json\n") }},
		{"bad format", func(t *testing.T) string { return writeConfig(t, "format: xml\n") }},
		{"bad workers", func(t *testing.T) string { return writeConfig(t, "workers: 0\n") }},
		{"bad verbosity", func(t *testing.T) string { return writeConfig(t, "verbosity: -1\n") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			assert.Error(t, err)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.ClassPath = []string{"a", "b.jar"}
	data, err := cfg.Marshal()
	require.NoError(t, err)

	loaded, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
