package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "newsly")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func TestLoadAppConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NEWSLY_API_BASE", "")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, 15, cfg.TimeoutSec)
	require.Equal(t, "TechPulse", cfg.DefaultSourceName)
	require.Equal(t, "Daily Brief Newsly", cfg.SiteName)
	require.Equal(t, 10, cfg.RelatedLimit)
	require.NotEmpty(t, cfg.SessionDBPath)
}

func TestLoadAppConfigFromFile(t *testing.T) {
	writeConfig(t, `
api:
  base_url: https://news.example.com/
  timeout: 30
brand:
  default_source: Example Wire
  site_name: Example Brief
related_limit: 5
`)
	t.Setenv("NEWSLY_API_BASE", "")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	require.Equal(t, "https://news.example.com", cfg.BaseURL, "trailing slash is trimmed")
	require.Equal(t, 30, cfg.TimeoutSec)
	require.Equal(t, "Example Wire", cfg.DefaultSourceName)
	require.Equal(t, "Example Brief", cfg.SiteName)
	require.Equal(t, 5, cfg.RelatedLimit)
}

func TestLoadAppConfigMalformedFileKeepsDefaults(t *testing.T) {
	writeConfig(t, "api: [broken")
	t.Setenv("NEWSLY_API_BASE", "")

	cfg, err := LoadAppConfig()
	require.NoError(t, err, "the client must always be able to start")
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestEnvOverrideWinsOverFile(t *testing.T) {
	writeConfig(t, `
api:
  base_url: https://file.example.com
`)
	t.Setenv("NEWSLY_API_BASE", "http://localhost:8080/")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestSessionDBPathExpansion(t *testing.T) {
	writeConfig(t, `
session_db_path: ~/state/newsly.db
`)
	t.Setenv("NEWSLY_API_BASE", "")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "state", "newsly.db"), cfg.SessionDBPath)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, home, ExpandPath("~"))
	require.Equal(t, filepath.Join(home, "x"), ExpandPath("~/x"))
	require.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	require.Equal(t, "", ExpandPath(""))
}
