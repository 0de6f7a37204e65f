package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// isolate points Load at an empty working directory so no stray config or
// .env file leaks into the test, and clears DRILL_ variables.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, name := range []string{
		"DRILL_SESSION_ANSWER_SHEET",
		"DRILL_SESSION_GRADE_SHEET",
		"DRILL_SESSION_OUTPUT_PREFIX",
		"DRILL_SESSION_INCLUDE_NEW",
		"DRILL_LOG_LEVEL",
		"DRILL_LOG_FORMAT",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Setenv("HOME", dir)

	return dir
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("drill", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// TestLoadDefaults verifies that the Load function sets the expected default values
func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{Flags: newFlags(t, "-a", "capitals.csv")})

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, "capitals.csv", cfg.Session.AnswerSheet)
	assert.Equal(t, "", cfg.Session.GradeSheet, "default is a fresh start")
	assert.Equal(t, "grades_of_", cfg.Session.OutputPrefix)
	assert.False(t, cfg.Session.IncludeNew)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

// TestLoadMissingAnswerSheet verifies the fatal error for a missing answer sheet.
func TestLoadMissingAnswerSheet(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{Flags: newFlags(t)})

	assert.ErrorIs(t, err, domain.ErrMissingAnswerSheet)
	assert.Nil(t, cfg, "Config should be nil when an error occurs")
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DRILL_SESSION_ANSWER_SHEET", "env.csv")
	t.Setenv("DRILL_SESSION_GRADE_SHEET", "env-grades.db")
	t.Setenv("DRILL_SESSION_INCLUDE_NEW", "true")
	t.Setenv("DRILL_LOG_LEVEL", "debug")
	t.Setenv("DRILL_LOG_FORMAT", "json")

	cfg, err := Load(LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.Session.AnswerSheet)
	assert.Equal(t, "env-grades.db", cfg.Session.GradeSheet)
	assert.True(t, cfg.Session.IncludeNew)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

// TestLoadFlagsOverrideEnv verifies flag precedence.
func TestLoadFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DRILL_SESSION_ANSWER_SHEET", "env.csv")
	t.Setenv("DRILL_LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{Flags: newFlags(t, "--answer-sheet", "flag.csv", "--log-level", "error")})

	require.NoError(t, err)
	assert.Equal(t, "flag.csv", cfg.Session.AnswerSheet)
	assert.Equal(t, "error", cfg.Log.Level)
}

// TestLoadConfigFile verifies values from an explicit YAML config file.
func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := "session:\n  answer_sheet: file.csv\n  output_prefix: saved_\nlog:\n  level: info\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(LoadOptions{ConfigFile: path})

	require.NoError(t, err)
	assert.Equal(t, "file.csv", cfg.Session.AnswerSheet)
	assert.Equal(t, "saved_", cfg.Session.OutputPrefix)
	assert.Equal(t, "info", cfg.Log.Level)
}

// TestLoadSearchesConfigDir verifies that drill.yaml in ./config is picked up.
func TestLoadSearchesConfigDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "drill.yaml"),
		[]byte("session:\n  answer_sheet: searched.csv\n"), 0o600))

	cfg, err := Load(LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, "searched.csv", cfg.Session.AnswerSheet)
}

// TestLoadExplicitConfigFileMissing verifies that a named config file must exist.
func TestLoadExplicitConfigFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.yaml")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config file")
}

// TestLoadDotEnv verifies that a .env file feeds environment variables.
func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DRILL_SESSION_ANSWER_SHEET=dotenv.csv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DRILL_SESSION_ANSWER_SHEET") })

	cfg, err := Load(LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, "dotenv.csv", cfg.Session.AnswerSheet)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{
			name: "Invalid log level",
			args: []string{"-a", "x.csv", "--log-level", "chatty"},
		},
		{
			name: "Invalid log format",
			args: []string{"-a", "x.csv", "--log-format", "xml"},
		},
		{
			name: "Output prefix with a path separator",
			args: []string{"-a", "x.csv"},
			env:  map[string]string{"DRILL_SESSION_OUTPUT_PREFIX": "out/"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(LoadOptions{Flags: newFlags(t, tc.args...)})

			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg)
		})
	}
}
