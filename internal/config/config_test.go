package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.App.Port)
	require.Equal(t, "/auth/login/", cfg.App.LoginURL)
	require.Equal(t, "postgres", cfg.Storage.Type)
	require.Equal(t, "access_token", cfg.Auth.CookieName)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "secret", cfg.Auth.AccessSecret)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "app:\n  port: \"9000\"\nstorage:\n  type: sqlite\n  path: /tmp/x.db\nauth:\n  token_ttl: 1h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(yaml), 0o644))
	t.Setenv("ACCESS_SECRET", "secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.App.Port)
	require.Equal(t, "sqlite", cfg.Storage.Type)
	require.Equal(t, "/tmp/x.db", cfg.Storage.Path)
	require.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadRequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ACCESS_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrNoAccessSecret)
}
