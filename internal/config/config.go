// Package config loads the bot configuration from a YAML file.
// Flag overrides for the common knobs live in cmd/bluetrivia.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration
type Config struct {
	DBPath string `yaml:"db_path"`

	Log struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`

	Admin struct {
		Addr string `yaml:"addr"` // empty disables the admin API
	} `yaml:"admin"`

	Bsky struct {
		Host     string `yaml:"host"`
		Handle   string `yaml:"handle"`
		Password string `yaml:"password"`
	} `yaml:"bsky"`

	TMDB struct {
		APIKey       string `yaml:"api_key"`
		ImageQuality int    `yaml:"image_quality"`
	} `yaml:"tmdb"`

	Game GameConfig `yaml:"game"`
}

// GameConfig holds the round-loop tuning knobs. Durations are
// operational settings, not part of the scoring algorithm.
type GameConfig struct {
	Threshold      int    `yaml:"threshold"`
	CollectWindow  string `yaml:"collect_window"`
	InterRoundWait string `yaml:"inter_round_wait"`
	SkipCooldown   string `yaml:"skip_cooldown"`
	ErrorCooldown  string `yaml:"error_cooldown"`
	ManualAdvance  bool   `yaml:"manual_advance"`
	BonusPoints    []int  `yaml:"bonus_points"` // placement bonuses for 1st, 2nd, 3rd correct
}

// Defaults returns a Config with every knob at its default value
func Defaults() Config {
	cfg := Config{}
	cfg.DBPath = "bluetrivia.db"
	cfg.Log.Level = "info"
	cfg.Bsky.Host = "https://bsky.social"
	cfg.TMDB.ImageQuality = 75
	cfg.Game.Threshold = 80
	cfg.Game.CollectWindow = "30m"
	cfg.Game.InterRoundWait = "30m"
	cfg.Game.SkipCooldown = "5m"
	cfg.Game.ErrorCooldown = "5m"
	cfg.Game.BonusPoints = []int{3, 2, 1}
	return cfg
}

// Load reads YAML config from path, applied on top of Defaults.
// A missing file is not an error; env and flags can carry everything.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the parts of the config that would otherwise fail
// deep inside a round
func (c Config) Validate() error {
	if c.Game.Threshold < 0 || c.Game.Threshold > 100 {
		return fmt.Errorf("threshold must be in [0,100], got %d", c.Game.Threshold)
	}
	for _, raw := range []string{c.Game.CollectWindow, c.Game.InterRoundWait, c.Game.SkipCooldown, c.Game.ErrorCooldown} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty
// or unparsable
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// CollectWindowDuration returns the reply-collection window
func (g GameConfig) CollectWindowDuration() time.Duration {
	return Duration(g.CollectWindow, 30*time.Minute)
}

// InterRoundWaitDuration returns the pause between completed rounds
func (g GameConfig) InterRoundWaitDuration() time.Duration {
	return Duration(g.InterRoundWait, 30*time.Minute)
}

// SkipCooldownDuration returns the shortened pause after a skipped round
func (g GameConfig) SkipCooldownDuration() time.Duration {
	return Duration(g.SkipCooldown, 5*time.Minute)
}

// ErrorCooldownDuration returns the pause before retrying a failed round
func (g GameConfig) ErrorCooldownDuration() time.Duration {
	return Duration(g.ErrorCooldown, 5*time.Minute)
}
