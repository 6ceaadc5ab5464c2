// Package config handles the XDG configuration directory, the config file
// and credential file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskhub"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// TokenFile is the stored credential pair filename.
	TokenFile = "token.json"

	// UserFile is the stored user profile filename.
	UserFile = "user.json"

	// DefaultBaseURL is used when neither the environment nor the config
	// file provides one.
	DefaultBaseURL = "http://localhost:8000/api"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 10 * time.Second

	// BaseURLEnv overrides the configured base URL when set.
	BaseURLEnv = "TASKHUB_BASE_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the backend API base URL.
	BaseURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings is the on-disk shape of config.yaml.
type fileSettings struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// New creates a Config with the default or specified config directory and
// loads config.yaml if present. Resolution order for the base URL:
// TASKHUB_BASE_URL, config.yaml, built-in default.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if env := os.Getenv(BaseURLEnv); env != "" {
		cfg.BaseURL = env
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// loadFile applies settings from config.yaml when the file exists.
func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fs.BaseURL != "" {
		c.BaseURL = fs.BaseURL
	}
	if fs.Timeout != "" {
		d, err := time.ParseDuration(fs.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout in %s: %q", ConfigFile, fs.Timeout)
		}
		c.Timeout = d
	}
	return nil
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored credential pair.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// UserPath returns the path to the stored user profile.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the credential pair file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
