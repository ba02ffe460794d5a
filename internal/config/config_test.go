package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Game.Threshold != 80 {
		t.Errorf("expected default threshold 80, got %d", cfg.Game.Threshold)
	}
	if cfg.DBPath != "bluetrivia.db" {
		t.Errorf("expected default db path, got %s", cfg.DBPath)
	}
	if got := cfg.Game.CollectWindowDuration(); got != 30*time.Minute {
		t.Errorf("expected default collect window 30m, got %v", got)
	}
	if len(cfg.Game.BonusPoints) != 3 || cfg.Game.BonusPoints[0] != 3 {
		t.Errorf("expected default bonus points {3,2,1}, got %v", cfg.Game.BonusPoints)
	}
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db_path: /data/trivia.db
log:
  level: debug
  json: true
admin:
  addr: ":8090"
game:
  threshold: 90
  collect_window: 1m
  skip_cooldown: 30s
  manual_advance: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/data/trivia.db" {
		t.Errorf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Admin.Addr != ":8090" {
		t.Errorf("unexpected admin addr: %s", cfg.Admin.Addr)
	}
	if cfg.Game.Threshold != 90 {
		t.Errorf("expected threshold 90, got %d", cfg.Game.Threshold)
	}
	if got := cfg.Game.CollectWindowDuration(); got != time.Minute {
		t.Errorf("expected collect window 1m, got %v", got)
	}
	if got := cfg.Game.SkipCooldownDuration(); got != 30*time.Second {
		t.Errorf("expected skip cooldown 30s, got %v", got)
	}
	if !cfg.Game.ManualAdvance {
		t.Error("expected manual_advance true")
	}
	// Untouched knobs keep their defaults
	if got := cfg.Game.InterRoundWaitDuration(); got != 30*time.Minute {
		t.Errorf("expected inter-round wait to stay at 30m, got %v", got)
	}
}

func TestLoad_RejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("game:\n  threshold: 150\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for threshold out of range")
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("game:\n  collect_window: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unparsable duration")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		raw      string
		fallback time.Duration
		expected time.Duration
	}{
		{"", time.Minute, time.Minute},
		{"90s", time.Minute, 90 * time.Second},
		{"junk", 5 * time.Minute, 5 * time.Minute},
	}

	for _, tt := range tests {
		if got := Duration(tt.raw, tt.fallback); got != tt.expected {
			t.Errorf("Duration(%q) = %v, want %v", tt.raw, got, tt.expected)
		}
	}
}
