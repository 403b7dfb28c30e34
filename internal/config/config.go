package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// InputGlob selects the spreadsheet files to load when no paths are given
	// on the command line.
	InputGlob string `yaml:"input_glob"`

	ReportOutputDir string `yaml:"report_output_dir"`
	TeamName        string `yaml:"team_name"`
	Timezone        string `yaml:"timezone"`
	TopRecurring    int    `yaml:"top_recurring"`

	// FallbackTimestamp (RFC3339) fills date columns missing from a source
	// file. Empty means wall-clock time at normalization.
	FallbackTimestamp string `yaml:"fallback_timestamp"`

	// ReportSchedule is a 5-field cron expression; empty disables the
	// scheduler and the pipeline runs once.
	ReportSchedule string `yaml:"report_schedule"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	ReportChannelID string `yaml:"report_channel_id"`

	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	LLMModel        string `yaml:"llm_model"`

	// ExportDBPath, when set, writes each run's dataset and results to a
	// SQLite file for downstream tooling.
	ExportDBPath string `yaml:"export_db_path"`

	Location     *time.Location `yaml:"-"`
	FallbackTime time.Time      `yaml:"-"`
}

func LoadConfig() Config {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.InputGlob, "INPUT_GLOB")
	envOverride(&cfg.ReportOutputDir, "REPORT_OUTPUT_DIR")
	envOverride(&cfg.TeamName, "TEAM_NAME")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverrideInt(&cfg.TopRecurring, "TOP_RECURRING")
	envOverride(&cfg.FallbackTimestamp, "FALLBACK_TIMESTAMP")
	envOverride(&cfg.ReportSchedule, "REPORT_SCHEDULE")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.ReportChannelID, "REPORT_CHANNEL_ID")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.ExportDBPath, "EXPORT_DB_PATH")

	// Defaults
	if cfg.ReportOutputDir == "" {
		cfg.ReportOutputDir = "./reports"
	}
	if cfg.TeamName == "" {
		cfg.TeamName = "My Team"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.TopRecurring == 0 {
		cfg.TopRecurring = 10
	}

	// Validate
	if cfg.TopRecurring < 1 {
		log.Fatalf("invalid top_recurring '%d': must be >= 1", cfg.TopRecurring)
	}

	if cfg.Timezone == "Local" {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	if cfg.FallbackTimestamp != "" {
		ts, err := time.Parse(time.RFC3339, cfg.FallbackTimestamp)
		if err != nil {
			log.Fatalf("invalid fallback_timestamp '%s': %v", cfg.FallbackTimestamp, err)
		}
		cfg.FallbackTime = ts
	}

	if cfg.ReportSchedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(cfg.ReportSchedule); err != nil {
			log.Fatalf("invalid report_schedule '%s': %v", cfg.ReportSchedule, err)
		}
	}

	if cfg.ReportChannelID != "" && cfg.SlackBotToken == "" {
		log.Fatalf("slack_bot_token is required when report_channel_id is set")
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
