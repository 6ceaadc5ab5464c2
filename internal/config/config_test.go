package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskhub/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Errorf("base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("timeout %v", cfg.Timeout)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "base_url: https://tasks.example.com/api\ntimeout: 30s\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://tasks.example.com/api" {
		t.Errorf("base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout %v", cfg.Timeout)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "base_url: https://from-file.example.com/api\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.BaseURLEnv, "https://from-env.example.com/api")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://from-env.example.com/api" {
		t.Errorf("env must win, got %q", cfg.BaseURL)
	}
}

func TestInvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	for _, timeout := range []string{"soon", "-5s", "0"} {
		yaml := "timeout: " + timeout + "\n"
		if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(yaml), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := config.New(dir); err == nil {
			t.Errorf("timeout %q: expected error", timeout)
		}
	}
}

func TestInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("base_url: [broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.New(dir); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestHasToken(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HasToken() {
		t.Error("fresh dir must have no token")
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasToken() {
		t.Error("token file not detected")
	}
}
