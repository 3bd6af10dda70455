// main_test.go
package main

import (
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("LIBRE_FREESYTLE_EMAIL", "ada@example.com")
	t.Setenv("LIBRE_FREESYTLE_PASSWORD", "hunter2")
	t.Setenv("LIBRE_API_URL", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Email != "ada@example.com" {
		t.Errorf("Email = %q, want ada@example.com", cfg.Email)
	}
	if cfg.Password != "hunter2" {
		t.Errorf("Password = %q, want hunter2", cfg.Password)
	}
	if cfg.BaseURL != "" {
		t.Errorf("BaseURL = %q, want empty", cfg.BaseURL)
	}
}

func TestLoadConfigMissingEmail(t *testing.T) {
	t.Setenv("LIBRE_FREESYTLE_EMAIL", "")
	t.Setenv("LIBRE_FREESYTLE_PASSWORD", "hunter2")

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig accepted a missing email")
	}
}

func TestLoadConfigMissingPassword(t *testing.T) {
	t.Setenv("LIBRE_FREESYTLE_EMAIL", "ada@example.com")
	t.Setenv("LIBRE_FREESYTLE_PASSWORD", "")

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig accepted a missing password")
	}
}

func TestLoadConfigBaseURLOverride(t *testing.T) {
	t.Setenv("LIBRE_FREESYTLE_EMAIL", "ada@example.com")
	t.Setenv("LIBRE_FREESYTLE_PASSWORD", "hunter2")
	t.Setenv("LIBRE_API_URL", "https://api-eu.libreview.io")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.BaseURL != "https://api-eu.libreview.io" {
		t.Errorf("BaseURL = %q, want override", cfg.BaseURL)
	}
}
