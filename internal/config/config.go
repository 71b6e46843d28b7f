package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/model"
)

// Config holds application configuration.
type Config struct {
	APIURL          string         `yaml:"api_url"`          // base URL of the bookmark API, ex: http://localhost:8080/api
	Timeout         time.Duration  `yaml:"timeout"`          // per-request HTTP timeout, 0 = none
	DefaultCategory model.Category `yaml:"default_category"` // preset for the add form
	Language        string         `yaml:"language"`         // "zh-CN", "en"; empty = from LANG
	// PersistFavorites sends favorite toggles to the API. Off by default:
	// favorites then live only for the session.
	PersistFavorites bool `yaml:"persist_favorites"`

	LogLevel  string `yaml:"log_level"` // "debug" | "info" | "warn" | "error"
	LogFile   string `yaml:"log_file"`  // TUI log destination
	PrettyLog bool   `yaml:"pretty_log"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures the reference API server.
type ServerConfig struct {
	Listen          string        `yaml:"listen"`           // ex: ":8080"
	DBPath          string        `yaml:"db_path"`          // SQLite database file
	AllowedOrigins  []string      `yaml:"allowed_origins"`  // CORS origins, "*" for any
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // graceful shutdown deadline
}

// Default returns the default configuration.
func Default() Config {
	dir := defaultDir()
	return Config{
		APIURL:          "http://localhost:8080/api",
		Timeout:         30 * time.Second,
		DefaultCategory: model.CategoryOther,
		LogLevel:        "info",
		LogFile:         filepath.Join(dir, "shuqian.log"),
		Server: ServerConfig{
			Listen:          ":8080",
			DBPath:          filepath.Join(dir, "bookmarks.db"),
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// Load reads config from the YAML file, applies environment overrides and
// validates the result. Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: defaults still apply if the file can't be written
		_ = Save(path, &cfg)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the YAML file, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q", c.APIURL)
	}
	if !c.DefaultCategory.Valid() {
		return fmt.Errorf("invalid default_category %q", c.DefaultCategory)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// DefaultPath returns the default config path: ~/.config/shuqian/config.yaml
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "shuqian")
}

func applyEnv(cfg *Config) {
	cfg.APIURL = getenv("SHUQIAN_API_URL", cfg.APIURL)
	cfg.Timeout = mustDuration("SHUQIAN_TIMEOUT", cfg.Timeout)
	cfg.DefaultCategory = model.Category(getenv("SHUQIAN_DEFAULT_CATEGORY", string(cfg.DefaultCategory)))
	cfg.Language = getenv("SHUQIAN_LANG", cfg.Language)
	cfg.PersistFavorites = mustBool("SHUQIAN_PERSIST_FAVORITES", cfg.PersistFavorites)
	cfg.LogLevel = getenv("SHUQIAN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getenv("SHUQIAN_LOG_FILE", cfg.LogFile)
	cfg.PrettyLog = mustBool("SHUQIAN_PRETTY_LOG", cfg.PrettyLog)

	cfg.Server.Listen = getenv("SHUQIAN_LISTEN", cfg.Server.Listen)
	cfg.Server.DBPath = getenv("SHUQIAN_DB_PATH", cfg.Server.DBPath)
	if v := os.Getenv("SHUQIAN_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitAndTrim(v)
	}
	cfg.Server.ShutdownTimeout = mustDuration("SHUQIAN_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
