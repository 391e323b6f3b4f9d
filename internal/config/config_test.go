package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should succeed, got %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.UI.Debounce.Duration() != 300*time.Millisecond {
		t.Errorf("default debounce = %v, want 300ms", cfg.UI.Debounce.Duration())
	}
	if cfg.UI.SceneSettle.Duration() != 10*time.Second {
		t.Errorf("default scene settle = %v, want 10s", cfg.UI.SceneSettle.Duration())
	}
	if cfg.Hue.Timeout.Duration() != 30*time.Second {
		t.Errorf("default hue timeout = %v, want 30s", cfg.Hue.Timeout.Duration())
	}
	if cfg.Hue.RetryMultiplier != 2.0 {
		t.Errorf("default retry multiplier = %v, want 2.0", cfg.Hue.RetryMultiplier)
	}
	if cfg.UI.BrightnessStep == 0 {
		t.Error("brightness step should have a non-zero default")
	}
	if cfg.Database.Path == "" {
		t.Error("database path should have a default")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
hue:
  bridge: 192.168.1.10
  timeout: 5s
ui:
  debounce: 150ms
  locale: fr
cache:
  ttl: 1m
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hue.Bridge != "192.168.1.10" {
		t.Errorf("bridge = %q", cfg.Hue.Bridge)
	}
	if cfg.Hue.Timeout.Duration() != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Hue.Timeout.Duration())
	}
	if cfg.UI.Debounce.Duration() != 150*time.Millisecond {
		t.Errorf("debounce = %v, want 150ms", cfg.UI.Debounce.Duration())
	}
	if cfg.UI.Locale != "fr" {
		t.Errorf("locale = %q, want fr", cfg.UI.Locale)
	}
	if cfg.Cache.TTL.Duration() != time.Minute {
		t.Errorf("cache ttl = %v, want 1m", cfg.Cache.TTL.Duration())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
hue:
  bridge: 10.0.0.1
`)
	t.Setenv("HUE_BRIDGE", "10.0.0.2")
	t.Setenv("HUE_USERNAME", "secret-user")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hue.Bridge != "10.0.0.2" {
		t.Errorf("env should override file, bridge = %q", cfg.Hue.Bridge)
	}
	if cfg.Hue.Username != "secret-user" {
		t.Errorf("username = %q", cfg.Hue.Username)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("HUEPANEL_TEST_VAR", "hello")

	out := expandEnvVars("value: ${HUEPANEL_TEST_VAR}")
	if out != "value: hello" {
		t.Errorf("expandEnvVars = %q", out)
	}

	out = expandEnvVars("value: ${HUEPANEL_UNSET_VAR:fallback}")
	if out != "value: fallback" {
		t.Errorf("expandEnvVars with default = %q", out)
	}

	out = expandEnvVars("value: ${HUEPANEL_UNSET_VAR}")
	if out != "value: " {
		t.Errorf("expandEnvVars unset without default = %q", out)
	}
}

func TestDuration_Decode(t *testing.T) {
	var d Duration
	if err := d.Decode("45s"); err != nil {
		t.Fatal(err)
	}
	if d.Duration() != 45*time.Second {
		t.Errorf("Decode = %v, want 45s", d.Duration())
	}
	if err := d.Decode("nope"); err == nil {
		t.Error("Decode should reject invalid durations")
	}
}
