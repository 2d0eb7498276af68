package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "enrichcli/internal/errors"
)

// writeConfigFile drops a config.yaml into a temp dir and makes it the
// working directory so Load picks it up.
func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "Date", cfg.Pipeline.DateColumn)
	assert.Equal(t, "2006-01-02", cfg.Pipeline.DateLayout)
	assert.Equal(t, "Volume", cfg.Pipeline.VolumeColumn)
	assert.Equal(t, []string{"Open", "High", "Low", "Close"}, cfg.Pipeline.PriceColumns)
	assert.Equal(t, DefaultWindows, cfg.Pipeline.Windows)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ENRICH_PIPELINE_WINDOWS", "2,3")
	t.Setenv("ENRICH_PIPELINE_DATE_COLUMN", "TradingDate")
	t.Setenv("ENRICH_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2,3", cfg.Pipeline.Windows)
	assert.Equal(t, "TradingDate", cfg.Pipeline.DateColumn)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	writeConfigFile(t, `
pipeline:
  windows: "2,3"
  date_column: TradeDate
`)

	cfg, err := Load()
	require.NoError(t, err)

	// File values survive the env pass when no env vars are set.
	assert.Equal(t, "2,3", cfg.Pipeline.Windows)
	assert.Equal(t, "TradeDate", cfg.Pipeline.DateColumn)

	// Keys the file does not name keep their defaults.
	assert.Equal(t, "Volume", cfg.Pipeline.VolumeColumn)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	writeConfigFile(t, `
pipeline:
  windows: "2,3"
  date_column: TradeDate
`)
	t.Setenv("ENRICH_PIPELINE_WINDOWS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7", cfg.Pipeline.Windows)
	assert.Equal(t, "TradeDate", cfg.Pipeline.DateColumn)
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	t.Setenv("ENRICH_LOGGING_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, ierrors.IsType(err, ierrors.ErrTypeConfig))
}

func TestLoadRejectsInvalidWindows(t *testing.T) {
	t.Setenv("ENRICH_PIPELINE_WINDOWS", "5,fifty")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, ierrors.IsType(err, ierrors.ErrTypeConfig))
}

func TestParseWindows(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
		wantErr  bool
	}{
		{
			name:     "default list",
			input:    "5,50,100,200",
			expected: []int{5, 50, 100, 200},
		},
		{
			name:     "single window",
			input:    "20",
			expected: []int{20},
		},
		{
			name:     "whitespace tolerated",
			input:    " 2 , 3 ",
			expected: []int{2, 3},
		},
		{
			name:     "order preserved",
			input:    "200,5",
			expected: []int{200, 5},
		},
		{
			name:    "non-numeric token",
			input:   "5,abc",
			wantErr: true,
		},
		{
			name:    "zero window",
			input:   "0",
			wantErr: true,
		},
		{
			name:    "negative window",
			input:   "5,-3",
			wantErr: true,
		},
		{
			name:    "float token",
			input:   "5.5",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := ParseWindows(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierrors.IsType(err, ierrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, windows)
		})
	}
}

func TestDefaultMatchesLoadedDefaults(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}
