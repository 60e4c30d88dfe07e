package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 60.0, cfg.Input.MinutesPerUnit())
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "allocator.yaml")
	content := `output:
  format: JSON
  explain: true
input:
  unit: minutes
logging:
  level: debug
  dir: /tmp/allocator-logs
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.Explain)
	assert.Equal(t, UnitMinutes, cfg.Input.Unit)
	assert.Equal(t, 1.0, cfg.Input.MinutesPerUnit())
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "/tmp/allocator-logs", cfg.Logging.Dir)
}

func TestLoadSearchesConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "study-time-allocator")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName+".yaml"), []byte("output:\n  format: csv\n"), 0644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, cfg.Output.Format)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	isolate(t)
	t.Setenv("STUDY_ALLOCATOR_OUTPUT_FORMAT", "csv")
	t.Setenv("STUDY_ALLOCATOR_INPUT_UNIT", "minutes")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, FormatCSV, cfg.Output.Format)
	assert.Equal(t, UnitMinutes, cfg.Input.Unit)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolate(t)
	v := viper.New()
	v.Set("output.format", "xml")
	v.Set("input.unit", "days")
	v.Set("logging.level", "trace")

	_, err := Load(v, "")
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
	assert.Contains(t, err.Error(), "3 validation errors")
	assert.Contains(t, err.Error(), "output.format")
}

func TestValidationErrorSingle(t *testing.T) {
	errs := ValidationErrors{{Field: "input.unit", Value: "days", Message: "must be one of hours, minutes"}}
	assert.Equal(t, "input.unit: must be one of hours, minutes (got: days)", errs.Error())
}
