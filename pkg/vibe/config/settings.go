// Package config holds the keyring-backed credential store and the settings
// loaded from settings.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	constants "github.com/ImGajeed76/vibepalette/pkg"
	"gopkg.in/yaml.v3"
)

// SettingsFile is looked up inside the data directory when no explicit
// settings path is given.
const SettingsFile = "settings.yaml"

const (
	DefaultAPIURL        = "https://api.openai.com/v1/chat/completions"
	DefaultModel         = "gpt-3.5-turbo"
	DefaultFallbackDelay = 1500 * time.Millisecond
)

// Settings holds everything tunable outside the keyring.
type Settings struct {
	DataDir        string        `yaml:"data_dir"`
	APIURL         string        `yaml:"api_url"`
	Model          string        `yaml:"model"`
	FallbackDelay  time.Duration `yaml:"fallback_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // 0 waits indefinitely
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		DataDir:       DefaultDataDir(),
		APIURL:        DefaultAPIURL,
		Model:         DefaultModel,
		FallbackDelay: DefaultFallbackDelay,
		LogLevel:      "info",
	}
}

// DefaultDataDir is the per-user directory palettes are stored in.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + constants.AppName
	}
	return filepath.Join(dir, constants.AppName)
}

// LoadSettings applies, in order: defaults, the YAML file, then VIBE_*
// environment variables. A non-empty dataDir overrides all of them. An empty
// path means <data dir>/settings.yaml; a missing file is not an error.
func LoadSettings(path, dataDir string) (*Settings, error) {
	cfg := DefaultSettings()
	cfg.DataDir = getEnvOrDefault("VIBE_DATA_DIR", cfg.DataDir)
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if path == "" {
		path = filepath.Join(cfg.DataDir, SettingsFile)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settings %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return &cfg, nil
}

func (s *Settings) applyEnv() error {
	s.DataDir = getEnvOrDefault("VIBE_DATA_DIR", s.DataDir)
	s.APIURL = getEnvOrDefault("VIBE_API_URL", s.APIURL)
	s.Model = getEnvOrDefault("VIBE_MODEL", s.Model)
	s.LogFile = getEnvOrDefault("VIBE_LOG_FILE", s.LogFile)
	s.LogLevel = strings.ToLower(getEnvOrDefault("VIBE_LOG_LEVEL", s.LogLevel))

	var err error
	if s.FallbackDelay, err = durationFromEnv("VIBE_FALLBACK_DELAY", s.FallbackDelay); err != nil {
		return err
	}
	if s.RequestTimeout, err = durationFromEnv("VIBE_REQUEST_TIMEOUT", s.RequestTimeout); err != nil {
		return err
	}
	return nil
}

// Validate checks the settings and reports every problem at once.
func (s *Settings) Validate() error {
	var errs []string

	if s.DataDir == "" {
		errs = append(errs, "data_dir is required")
	}
	if u, err := url.Parse(s.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api_url must be an http(s) URL: %q", s.APIURL))
	}
	if s.Model == "" {
		errs = append(errs, "model is required")
	}
	if s.FallbackDelay < 0 {
		errs = append(errs, "fallback_delay cannot be negative")
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, "request_timeout cannot be negative")
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New("settings validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}
	return nil
}

// ParseLevel maps a log level name onto slog.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", name)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationFromEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
