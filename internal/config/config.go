package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the content service the hosted deployment talks to.
const DefaultBaseURL = "https://website-news-backend.onrender.com"

// DefaultSourceName is the brand shown when a record carries no source_name.
const DefaultSourceName = "TechPulse"

type ConfigLoad func() (AppConfig, error)

func AppConfigLoader() ConfigLoad {
	return LoadAppConfig
}

// AppConfig carries the settings the client needs to talk to the
// content service and render its output.
type AppConfig struct {
	BaseURL           string
	TimeoutSec        int
	DefaultSourceName string
	SiteName          string
	RelatedLimit      int
	SessionDBPath     string
}

func (c AppConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// LoadAppConfig parses ~/.config/newsly/config.yaml. A missing or
// malformed file yields the defaults; the client must always be able
// to start.
func LoadAppConfig() (AppConfig, error) {
	ac := AppConfig{
		BaseURL:           DefaultBaseURL,
		TimeoutSec:        15,
		DefaultSourceName: DefaultSourceName,
		SiteName:          "Daily Brief Newsly",
		RelatedLimit:      10,
		SessionDBPath:     FallbackSessionDBPath(),
	}

	cfgPath, err := defaultConfigPath()
	if err == nil {
		if b, err := os.ReadFile(cfgPath); err == nil {
			var raw map[string]any
			if err := yaml.Unmarshal(b, &raw); err == nil {
				applyRaw(&ac, raw)
			}
		}
	}

	// env override wins even over the file
	if v := strings.TrimSpace(os.Getenv("NEWSLY_API_BASE")); v != "" {
		ac.BaseURL = strings.TrimSuffix(v, "/")
	}

	return ac, nil
}

func applyRaw(ac *AppConfig, raw map[string]any) {
	if api, ok := raw["api"].(map[string]any); ok {
		if v, ok := api["base_url"].(string); ok && strings.TrimSpace(v) != "" {
			ac.BaseURL = strings.TrimSuffix(strings.TrimSpace(v), "/")
		}
		if v, ok := api["timeout"].(int); ok && v > 0 {
			ac.TimeoutSec = v
		} else if vf, ok := api["timeout"].(float64); ok && int(vf) > 0 {
			ac.TimeoutSec = int(vf)
		}
	}

	if brand, ok := raw["brand"].(map[string]any); ok {
		if v, ok := brand["default_source"].(string); ok && strings.TrimSpace(v) != "" {
			ac.DefaultSourceName = strings.TrimSpace(v)
		}
		if v, ok := brand["site_name"].(string); ok && strings.TrimSpace(v) != "" {
			ac.SiteName = strings.TrimSpace(v)
		}
	}

	if v, ok := raw["related_limit"].(int); ok && v > 0 {
		ac.RelatedLimit = v
	} else if vf, ok := raw["related_limit"].(float64); ok && int(vf) > 0 {
		ac.RelatedLimit = int(vf)
	}

	if v, ok := raw["session_db_path"].(string); ok && strings.TrimSpace(v) != "" {
		ac.SessionDBPath = ExpandPath(strings.TrimSpace(v))
	}
}

// FallbackSessionDBPath is where the admin session lives when the
// config file does not say otherwise.
func FallbackSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsly.db"
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Newsly", "newsly.db")
	}
	return filepath.Join(home, ".local", "share", "newsly", "newsly.db")
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "newsly", "config.yaml"), nil
}

// ExpandPath expands leading ~ and environment variables in a filesystem path.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	return p
}
