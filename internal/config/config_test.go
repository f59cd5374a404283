package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netxplore/internal/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "netxplore.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("addr", "", "")
	fs.String("db", "", "")
	fs.String("log-level", "", "")
	fs.Int("max-nodes", 0, "")
	fs.Bool("verbose", false, "")
	require.NoError(t, fs.Parse(args))

	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "netxplore.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2000, cfg.Limits.MaxNodes)
	assert.Equal(t, 0.85, cfg.Metrics.Damping)
	assert.Empty(t, cfg.File)
	assert.Len(t, cfg.MetricOptions(), 3)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9000"
  request_timeout: 5s
store:
  path: /tmp/file.db
log:
  level: debug
limits:
  max_nodes: 10
`)
	t.Setenv("NETXPLORE_STORE_PATH", "/tmp/env.db")
	t.Setenv("NETXPLORE_LIMITS_MAX_NODES", "20")

	cfg, err := config.Load(path, flagSet(t, "--max-nodes=30", "--verbose"))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr, "file beats default")
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/env.db", cfg.Store.Path, "env beats file")
	assert.Equal(t, 30, cfg.Limits.MaxNodes, "flag beats env")
	assert.Equal(t, path, cfg.File)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("", flagSet(t))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2000, cfg.Limits.MaxNodes)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte("log:\n  format: console\n"), 0o600))
	t.Chdir(dir)

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, config.DefaultFile, cfg.File)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := config.Load(writeFile(t, "log:\n  level: loud\n"), nil)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeFile(t, "metrics:\n  damping: 1.5\n"), nil)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}
