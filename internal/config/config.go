package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend    BackendConfig
	Database   DatabaseConfig
	Audio      AudioConfig
	Practice   PracticeConfig
	Onboarding OnboardingConfig
	UI         UIConfig
	Log        LogConfig
}

// BackendConfig holds Speak Sharp API settings.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Offline bool          `mapstructure:"offline"`
	Gender  string        `mapstructure:"gender"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AudioConfig holds recording settings. TakePath, when set, points at a
// pre-recorded file attached to each take; live capture is not part of
// this build.
type AudioConfig struct {
	TakePath       string `mapstructure:"take_path"`
	TranscriptPath string `mapstructure:"transcript_path"`
}

// PracticeConfig holds defaults for new practice sessions.
type PracticeConfig struct {
	SpeechType string `mapstructure:"speech_type"`
	Duration   string `mapstructure:"duration"`
	WeeklyGoal int    `mapstructure:"weekly_goal"`
}

// OnboardingConfig remembers first-run progress across launches.
type OnboardingConfig struct {
	Complete bool `mapstructure:"complete"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat string `mapstructure:"date_format"`
	Timezone   string `mapstructure:"timezone"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix SPEAKSHARP_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", "30s")
	v.SetDefault("backend.offline", false)
	v.SetDefault("backend.gender", "unspecified")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "speaksharp", "speaksharp.db"))
	v.SetDefault("audio.take_path", "")
	v.SetDefault("audio.transcript_path", "")
	v.SetDefault("practice.speech_type", "Prepared Speech")
	v.SetDefault("practice.duration", "5-7")
	v.SetDefault("practice.weekly_goal", 3)
	v.SetDefault("onboarding.complete", false)
	v.SetDefault("ui.date_format", "02/01")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "speaksharp", "speaksharp.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SPEAKSHARP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "speaksharp"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPEAKSHARP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// This is primarily used by the TUI settings screen for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("SPEAKSHARP_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "speaksharp", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.base_url", cfg.Backend.BaseURL)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())
	v.Set("backend.offline", cfg.Backend.Offline)
	v.Set("backend.gender", cfg.Backend.Gender)
	v.Set("database.path", cfg.Database.Path)
	v.Set("audio.take_path", cfg.Audio.TakePath)
	v.Set("audio.transcript_path", cfg.Audio.TranscriptPath)
	v.Set("practice.speech_type", cfg.Practice.SpeechType)
	v.Set("practice.duration", cfg.Practice.Duration)
	v.Set("practice.weekly_goal", cfg.Practice.WeeklyGoal)
	v.Set("onboarding.complete", cfg.Onboarding.Complete)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
