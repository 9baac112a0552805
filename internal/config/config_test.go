package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPEAKSHARP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("base_url = %q, want default", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Backend.Timeout)
	}
	if cfg.Backend.Offline {
		t.Error("offline should default to false")
	}
	if cfg.Practice.SpeechType != "Prepared Speech" {
		t.Errorf("speech_type = %q, want %q", cfg.Practice.SpeechType, "Prepared Speech")
	}
	if cfg.Practice.Duration != "5-7" {
		t.Errorf("duration = %q, want %q", cfg.Practice.Duration, "5-7")
	}
	if cfg.Practice.WeeklyGoal != 3 {
		t.Errorf("weekly_goal = %d, want 3", cfg.Practice.WeeklyGoal)
	}
	if cfg.Database.Path == "" {
		t.Error("database path should have a default")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[backend]
base_url = "https://api.speaksharp.example"
timeout = "5s"
offline = true

[practice]
speech_type = "Icebreaker"
duration = "4-6"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPEAKSHARP_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "https://api.speaksharp.example" {
		t.Errorf("base_url = %q, want file value", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Backend.Timeout)
	}
	if !cfg.Backend.Offline {
		t.Error("offline should be true from file")
	}
	if cfg.Practice.SpeechType != "Icebreaker" {
		t.Errorf("speech_type = %q, want %q", cfg.Practice.SpeechType, "Icebreaker")
	}
	// keys absent from the file keep their defaults
	if cfg.Practice.WeeklyGoal != 3 {
		t.Errorf("weekly_goal = %d, want default 3", cfg.Practice.WeeklyGoal)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SPEAKSHARP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("SPEAKSHARP_BACKEND_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("SPEAKSHARP_BACKEND_OFFLINE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:9999" {
		t.Errorf("base_url = %q, want env value", cfg.Backend.BaseURL)
	}
	if !cfg.Backend.Offline {
		t.Error("offline should be true from env")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SPEAKSHARP_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Backend.BaseURL = "http://saved.example"
	cfg.Practice.WeeklyGoal = 5
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Backend.BaseURL != "http://saved.example" {
		t.Errorf("base_url = %q after round trip", got.Backend.BaseURL)
	}
	if got.Practice.WeeklyGoal != 5 {
		t.Errorf("weekly_goal = %d after round trip", got.Practice.WeeklyGoal)
	}
}
