package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "moviestats/internal/errors"
)

var envVars = []string{
	"MOVIESTATS_LOGGING_LEVEL", "MOVIESTATS_LOGGING_OUTPUT", "MOVIESTATS_LOGGING_FILE_PATH",
	"MOVIESTATS_CATALOG_FILE",
	"MOVIESTATS_TELEMETRY_ENVIRONMENT", "MOVIESTATS_TELEMETRY_TRACE_EXPORTER",
	"MOVIESTATS_TELEMETRY_SAMPLE_RATIO", "MOVIESTATS_TELEMETRY_METRICS_FILE",
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		if val, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, val) })
			os.Unsetenv(name)
		}
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moviestats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "./data/peliculas.csv", cfg.Catalog.File)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, "logs/moviestats.log", cfg.Logging.FilePath)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
				assert.Empty(t, cfg.Telemetry.MetricsFile)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"MOVIESTATS_CATALOG_FILE":             "/srv/catalog.csv",
				"MOVIESTATS_LOGGING_LEVEL":            "DEBUG",
				"MOVIESTATS_TELEMETRY_TRACE_EXPORTER": "stdout",
				"MOVIESTATS_TELEMETRY_SAMPLE_RATIO":   "0.5",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/catalog.csv", cfg.Catalog.File)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
				assert.Equal(t, 0.5, cfg.Telemetry.SampleRatio)
			},
		},
		{
			name: "file overrides defaults",
			file: `
catalog:
  file: movies.xlsx
logging:
  level: warn
  output: both
  file_path: /tmp/ms.log
telemetry:
  metrics_file: /tmp/ms.prom
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "movies.xlsx", cfg.Catalog.File)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, "/tmp/ms.log", cfg.Logging.FilePath)
				assert.Equal(t, "/tmp/ms.prom", cfg.Telemetry.MetricsFile)
				// untouched sections keep their defaults
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "environment wins over file",
			file: "catalog:\n  file: from-file.csv\nlogging:\n  level: warn\n",
			env:  map[string]string{"MOVIESTATS_CATALOG_FILE": "from-env.csv"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env.csv", cfg.Catalog.File)
				assert.Equal(t, "warn", cfg.Logging.Level)
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"MOVIESTATS_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "invalid trace exporter",
			env:     map[string]string{"MOVIESTATS_TELEMETRY_TRACE_EXPORTER": "otlp"},
			wantErr: true,
		},
		{
			name:    "sample ratio out of range",
			env:     map[string]string{"MOVIESTATS_TELEMETRY_SAMPLE_RATIO": "1.5"},
			wantErr: true,
		},
		{
			name:    "unparseable sample ratio",
			env:     map[string]string{"MOVIESTATS_TELEMETRY_SAMPLE_RATIO": "lots"},
			wantErr: true,
		},
		{
			name:    "empty catalog file",
			file:    "catalog:\n  file: \"\"\n",
			wantErr: true,
		},
		{
			name:    "file output without path",
			file:    "logging:\n  output: file\n  file_path: \"\"\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "catalog: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_NoConfigFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogFile, cfg.Catalog.File)
}

func TestLoad_DiscoversConfigsDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "moviestats.yaml"),
		[]byte("catalog:\n  file: discovered.csv\n"), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "discovered.csv", cfg.Catalog.File)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultCatalogFile, cfg.Catalog.File)
	assert.Equal(t, TraceExporterNone, cfg.Telemetry.TraceExporter)
}

func TestConfigString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "catalog=./data/peliculas.csv")
	assert.Contains(t, s, "log_level=info")
}
