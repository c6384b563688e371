package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MayankLuthyagi/newsly/internal/config"
)

func readYAML(t *testing.T, path string) map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(b, &doc))
	return doc
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	err := writeConfig(path, userAnswers{
		BaseURL:       "https://news.example.com/",
		DefaultSource: "Example Wire",
		SiteName:      "Example Brief",
	})
	require.NoError(t, err)

	doc := readYAML(t, path)
	api := doc["api"].(map[string]any)
	require.Equal(t, "https://news.example.com", api["base_url"], "trailing slash is trimmed")
	brand := doc["brand"].(map[string]any)
	require.Equal(t, "Example Wire", brand["default_source"])
	require.Equal(t, "Example Brief", brand["site_name"])
}

func TestWriteConfigOmitsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := writeConfig(path, userAnswers{
		BaseURL:       config.DefaultBaseURL,
		DefaultSource: config.DefaultSourceName,
	})
	require.NoError(t, err)

	doc := readYAML(t, path)
	require.NotContains(t, doc, "api")
	require.NotContains(t, doc, "brand")
}

func TestWrittenConfigRoundTripsThroughLoader(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NEWSLY_API_BASE", "")

	path := filepath.Join(home, ".config", "newsly", "config.yaml")
	require.NoError(t, writeConfig(path, userAnswers{BaseURL: "https://news.example.com"}))

	cfg, err := config.LoadAppConfig()
	require.NoError(t, err)
	require.Equal(t, "https://news.example.com", cfg.BaseURL)
}
