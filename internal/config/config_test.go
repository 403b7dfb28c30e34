package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func pointEnvAtMissingConfig(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
}

func TestLoadConfigDefaults(t *testing.T) {
	pointEnvAtMissingConfig(t)
	t.Setenv("TIMEZONE", "UTC")

	cfg := LoadConfig()

	if cfg.ReportOutputDir != "./reports" {
		t.Fatalf("unexpected output dir default: %q", cfg.ReportOutputDir)
	}
	if cfg.TeamName != "My Team" {
		t.Fatalf("unexpected team name default: %q", cfg.TeamName)
	}
	if cfg.TopRecurring != 10 {
		t.Fatalf("unexpected top_recurring default: %d", cfg.TopRecurring)
	}
	if cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}
	if !cfg.FallbackTime.IsZero() {
		t.Fatalf("expected zero fallback time by default, got %v", cfg.FallbackTime)
	}
}

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
team_name: "Incident Response"
input_glob: "./data/*.csv"
top_recurring: 5
fallback_timestamp: "2024-03-01T12:00:00Z"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("TOP_RECURRING", "7")

	cfg := LoadConfig()

	if cfg.TeamName != "Incident Response" {
		t.Fatalf("expected yaml team name, got %q", cfg.TeamName)
	}
	if cfg.InputGlob != "./data/*.csv" {
		t.Fatalf("expected yaml input glob, got %q", cfg.InputGlob)
	}
	if cfg.TopRecurring != 7 {
		t.Fatalf("expected env to override yaml, got %d", cfg.TopRecurring)
	}

	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if !cfg.FallbackTime.Equal(want) {
		t.Fatalf("expected parsed fallback timestamp, got %v", cfg.FallbackTime)
	}
}

func TestLoadConfigAcceptsCronSchedule(t *testing.T) {
	pointEnvAtMissingConfig(t)
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("REPORT_SCHEDULE", "0 9 * * 1-5")

	cfg := LoadConfig()
	if cfg.ReportSchedule != "0 9 * * 1-5" {
		t.Fatalf("unexpected schedule: %q", cfg.ReportSchedule)
	}
}
