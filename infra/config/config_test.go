package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"SERVICE", "IDENTIFIER", "APP_PASSWORD", "DEFAULT_DOMAIN", "TIMELINE_LIMIT", "ACTOR_LIMIT", "REFRESH_SECONDS", "FULLTEXT_SEARCH", "IMAGE_PREVIEW", "STATE", "LOG_FILE", "LOG_LEVEL"} {
		t.Setenv(envPrefix+k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceURL != "https://bsky.social" || cfg.DefaultDomain != "bsky.social" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.TimelineLimit != 50 || cfg.ActorLimit != 10 || cfg.RefreshInterval() != 30*time.Second {
		t.Fatalf("unexpected numeric defaults: %#v", cfg)
	}
	if cfg.FullTextSearch || cfg.HasCredentials() || cfg.LogLevel != "info" || !cfg.ImagePreview {
		t.Fatalf("unexpected flags: %#v", cfg)
	}
	if !strings.HasSuffix(cfg.UIStatePath, filepath.Join(".config", "terminalsky", "ui_state.json")) {
		t.Fatalf("unexpected state path: %q", cfg.UIStatePath)
	}
}

func TestLoad_ParsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TERMINALSKY_SERVICE", "https://pds.example.com/")
	t.Setenv("TERMINALSKY_IDENTIFIER", "alice")
	t.Setenv("TERMINALSKY_APP_PASSWORD", "xxxx-xxxx")
	t.Setenv("TERMINALSKY_DEFAULT_DOMAIN", "Example.COM")
	t.Setenv("TERMINALSKY_TIMELINE_LIMIT", "25")
	t.Setenv("TERMINALSKY_REFRESH_SECONDS", "60")
	t.Setenv("TERMINALSKY_FULLTEXT_SEARCH", "yes")
	t.Setenv("TERMINALSKY_IMAGE_PREVIEW", "false")
	t.Setenv("TERMINALSKY_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceURL != "https://pds.example.com" {
		t.Fatalf("service must be normalized: %q", cfg.ServiceURL)
	}
	if cfg.DefaultDomain != "example.com" || cfg.TimelineLimit != 25 || cfg.RefreshInterval() != time.Minute {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if !cfg.HasCredentials() || !cfg.FullTextSearch || cfg.ImagePreview || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected flags: %#v", cfg)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"SERVICE", "http://insecure.local", "only https"},
		{"SERVICE", "not a url", "TERMINALSKY_SERVICE"},
		{"TIMELINE_LIMIT", "0", "TERMINALSKY_TIMELINE_LIMIT"},
		{"TIMELINE_LIMIT", "101", "TERMINALSKY_TIMELINE_LIMIT"},
		{"TIMELINE_LIMIT", "lots", "must be an integer"},
		{"REFRESH_SECONDS", "1", "TERMINALSKY_REFRESH_SECONDS"},
		{"FULLTEXT_SEARCH", "maybe", "true or false"},
		{"IMAGE_PREVIEW", "sometimes", "true or false"},
		{"LOG_LEVEL", "loud", "TERMINALSKY_LOG_LEVEL"},
	}
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(envPrefix+tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestUIState_LoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ui_state.json")

	st, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("missing state should not error: %v", err)
	}
	if st != (UIState{}) {
		t.Fatalf("expected empty state for missing file")
	}

	want := UIState{Identifier: "alice.bsky.social"}
	if err := SaveUIState(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("load after save failed: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected loaded state got=%#v want=%#v", got, want)
	}

	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt state failed: %v", err)
	}
	if _, err := LoadUIState(path); err == nil {
		t.Fatalf("expected parse error for invalid json")
	}
}
