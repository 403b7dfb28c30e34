package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"

	"incidentlens/internal/analysis"
	"incidentlens/internal/config"
	"incidentlens/internal/export"
	"incidentlens/internal/ingest"
	"incidentlens/internal/llm"
	"incidentlens/internal/notify"
	"incidentlens/internal/report"
)

// Main is the process entry point: resolve input files, run the pipeline
// once, and keep re-running on the configured schedule if one is set.
func Main() {
	cfg := config.LoadConfig()

	paths, err := resolveInputs(cfg, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to resolve input files: %v", err)
	}

	os.MkdirAll(cfg.ReportOutputDir, 0755)

	if err := RunOnce(cfg, paths); err != nil {
		log.Fatalf("Analysis run failed: %v", err)
	}

	if cfg.ReportSchedule != "" {
		runReportScheduler(cfg)
	}
}

func resolveInputs(cfg config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.InputGlob == "" {
		return nil, fmt.Errorf("no input files on the command line and input_glob is not set")
	}
	paths, err := filepath.Glob(cfg.InputGlob)
	if err != nil {
		return nil, fmt.Errorf("bad input_glob '%s': %w", cfg.InputGlob, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("input_glob '%s' matched no files", cfg.InputGlob)
	}
	sort.Strings(paths)
	return paths, nil
}

// RunOnce executes the whole pipeline: load and normalize the source files,
// run every analysis over the canonical dataset, render and write the report,
// then deliver and export as configured.
func RunOnce(cfg config.Config, paths []string) error {
	loaded, err := ingest.LoadAndNormalize(paths, ingest.Options{FallbackTime: cfg.FallbackTime})
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	for file, columns := range loaded.UnmappedColumns {
		log.Printf("Unmapped columns in %s: %s", file, strings.Join(columns, ", "))
	}

	dataset := loaded.Dataset
	log.Printf("Canonical dataset ready: %d records from %d files", len(dataset), len(paths))

	summary := analysis.Summarize(dataset)
	in := report.Input{
		TeamName:    cfg.TeamName,
		GeneratedAt: time.Now().In(cfg.Location),
		Summary:     summary,
		Recurring:   analysis.TopRecurringIssues(dataset, cfg.TopRecurring),
		SLA:         analysis.AnalyzeSLA(dataset),
		TeamTrends:  analysis.TeamTrends(dataset),
		TeamSummary: analysis.TeamPerformanceSummary(dataset),
		TechDebt:    analysis.CalculateTechDebtIndicators(dataset),
		Monthly:     analysis.MonthlyTrends(dataset),
		Categories:  analysis.CategoryDistribution(dataset),
		Priorities:  analysis.PriorityAnalysis(dataset),
	}

	if cfg.AnthropicAPIKey != "" {
		narrative, err := llm.NarrativeSummary(context.Background(), cfg.AnthropicAPIKey, cfg.LLMModel, summary, in.SLA, in.TechDebt)
		if err != nil {
			log.Printf("Narrative summary unavailable: %v", err)
		} else {
			in.Narrative = narrative
		}
	}

	content := report.Build(in)
	path, err := report.WriteReportFile(content, cfg.ReportOutputDir, in.GeneratedAt, cfg.TeamName)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Printf("Report written to %s", path)

	if cfg.ExportDBPath != "" {
		snap := export.Snapshot{
			Dataset:    dataset,
			Summary:    summary,
			Recurring:  in.Recurring,
			SLA:        in.SLA,
			TeamTrends: in.TeamTrends,
			TechDebt:   in.TechDebt,
			Monthly:    in.Monthly,
			Categories: in.Categories,
			Priorities: in.Priorities,
		}
		runID, err := export.Write(cfg.ExportDBPath, snap, in.GeneratedAt)
		if err != nil {
			log.Printf("Export error: %v", err)
		} else {
			log.Printf("Results exported to %s (run %s)", cfg.ExportDBPath, runID)
		}
	}

	if cfg.ReportChannelID != "" {
		api := slack.New(cfg.SlackBotToken)
		if err := notify.PostReportSummary(api, cfg.ReportChannelID, cfg.TeamName, summary, path); err != nil {
			log.Printf("Slack post error: %v", err)
		}
	}

	return nil
}

// runReportScheduler blocks, re-running the pipeline on the configured cron
// schedule. The input glob is re-expanded on every tick so newly dropped
// files are picked up.
func runReportScheduler(cfg config.Config) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(cfg.ReportSchedule)
	if err != nil {
		log.Fatalf("invalid report_schedule '%s': %v", cfg.ReportSchedule, err)
	}
	log.Printf("Report regeneration scheduled (cron: %s)", cfg.ReportSchedule)

	for {
		now := time.Now().In(cfg.Location)
		next := sched.Next(now)
		wait := next.Sub(now)
		log.Printf("Next report run at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

		time.Sleep(wait)

		paths, err := resolveInputs(cfg, nil)
		if err != nil {
			log.Printf("Scheduled run skipped: %v", err)
			continue
		}
		if err := RunOnce(cfg, paths); err != nil {
			log.Printf("Scheduled run failed: %v", err)
		}
	}
}
