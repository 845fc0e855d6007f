package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/tailscale/hujson"
)

const (
	configDirName  = ".modrow"
	configFileName = "config.json"

	// DefaultAPIBaseURL is the Modrinth API host.
	DefaultAPIBaseURL = "https://api.modrinth.com"
	// DefaultWorkers is the number of packages reconciled concurrently.
	DefaultWorkers = 5

	defaultUserAgent      = "barysiuk/modrow"
	defaultRequestTimeout = 30 * time.Second
	defaultDirectory      = "./mods"
	defaultLoader         = "fabric"
)

// Environment variables that override the config file.
const (
	EnvAPIURL  = "MODROW_API_URL"
	EnvWorkers = "MODROW_WORKERS"
)

// ConfigManager handles reading and writing the modrow configuration.
type ConfigManager struct {
	configDir string
	mu        sync.RWMutex
}

// NewConfigManager creates a ConfigManager using the default config path (~/.modrow/).
func NewConfigManager() (*ConfigManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &ConfigManager{
		configDir: filepath.Join(home, configDirName),
	}, nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config directory.
// Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{configDir: dir}
}

// ConfigDir returns the configuration directory path.
func (cm *ConfigManager) ConfigDir() string {
	return cm.configDir
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return filepath.Join(cm.configDir, configFileName)
}

// Load reads the config from disk. Returns default config if file doesn't exist.
// The file may contain comments and trailing commas.
func (cm *ConfigManager) Load() (*Config, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	data, err := os.ReadFile(cm.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Settings.fillDefaults()
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (cm *ConfigManager) Save(cfg *Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(cm.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	// Write atomically: write to temp file then rename
	tmpPath := cm.ConfigPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.ConfigPath()); err != nil {
		_ = os.Remove(tmpPath) // clean up on failure
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			APIBaseURL:       DefaultAPIBaseURL,
			UserAgent:        defaultUserAgent,
			Workers:          DefaultWorkers,
			RequestTimeout:   defaultRequestTimeout.String(),
			DefaultDirectory: defaultDirectory,
			DefaultLoader:    defaultLoader,
		},
	}
}

func (s *Settings) fillDefaults() {
	d := DefaultConfig().Settings
	if s.APIBaseURL == "" {
		s.APIBaseURL = d.APIBaseURL
	}
	if s.UserAgent == "" {
		s.UserAgent = d.UserAgent
	}
	if s.Workers <= 0 {
		s.Workers = d.Workers
	}
	if s.RequestTimeout == "" {
		s.RequestTimeout = d.RequestTimeout
	}
	if s.DefaultDirectory == "" {
		s.DefaultDirectory = d.DefaultDirectory
	}
	if s.DefaultLoader == "" {
		s.DefaultLoader = d.DefaultLoader
	}
}

// ApplyEnv overrides settings from MODROW_* environment variables.
func (s *Settings) ApplyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		s.APIBaseURL = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvWorkers, v)
		}
		s.Workers = n
	}
	return nil
}

// Timeout parses RequestTimeout, falling back to the default when unset.
func (s *Settings) Timeout() (time.Duration, error) {
	if s.RequestTimeout == "" {
		return defaultRequestTimeout, nil
	}
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid requestTimeout %q: %w", s.RequestTimeout, err)
	}
	return d, nil
}

// Set updates a single setting by its JSON key.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "apiBaseURL":
		s.APIBaseURL = value
	case "userAgent":
		s.UserAgent = value
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("workers must be a positive integer, got %q", value)
		}
		s.Workers = n
	case "requestTimeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid requestTimeout %q: %w", value, err)
		}
		s.RequestTimeout = value
	case "defaultDirectory":
		s.DefaultDirectory = value
	case "defaultLoader":
		s.DefaultLoader = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
