package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultEngine, cfg.Engine)
	assert.Equal(t, DefaultMaxLimit, cfg.MaxLimit)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.NotNil(t, cfg.RLS)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlgate.yaml")
	content := "engine: mysql\nmax_limit: 500\nrls:\n  dsn: postgres://localhost/meta\n  database_id: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Engine)
	assert.Equal(t, 500, cfg.MaxLimit)
	assert.Equal(t, "postgres://localhost/meta", cfg.RLS.DSN)
	assert.Equal(t, 7, cfg.RLS.DatabaseID)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: mysql\n"), 0o600))

	t.Setenv("SQLGATE_ENGINE", "trino")
	t.Setenv("SQLGATE_RLS__SCHEMA", "analytics")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "trino", cfg.Engine)
	assert.Equal(t, "analytics", cfg.RLS.Schema)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("SQLGATE_ENGINE", "trino")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("engine", "", "")
	flags.Int("database-id", 0, "")
	require.NoError(t, flags.Parse([]string{"--engine", "hive", "--database-id", "42"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "hive", cfg.Engine)
	assert.Equal(t, 42, cfg.RLS.DatabaseID)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("engine", "sqlite", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	// Flag defaults do not override config defaults.
	assert.Equal(t, DefaultEngine, cfg.Engine)
}
