package export

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"incidentlens/internal/analysis"
	"incidentlens/internal/domain"
)

// Snapshot is one load's canonical dataset plus every analysis result,
// written as a SQLite artifact for downstream dashboard tooling.
type Snapshot struct {
	Dataset    domain.Dataset
	Summary    domain.Summary
	Recurring  []analysis.RecurringIssue
	SLA        []analysis.SLAResult
	TeamTrends []analysis.TeamPeriodStats
	TechDebt   analysis.TechDebtIndicators
	Monthly    []analysis.MonthlyCount
	Categories []analysis.CategoryCount
	Priorities []analysis.PriorityStats
}

const exportSchema = `
CREATE TABLE IF NOT EXISTS export_runs (
	run_id          TEXT PRIMARY KEY,
	generated_at    DATETIME NOT NULL,
	total_incidents INTEGER NOT NULL,
	avg_resolution  REAL NOT NULL,
	overdue         INTEGER NOT NULL,
	unique_teams    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS incidents (
	run_id          TEXT NOT NULL,
	incident_id     TEXT NOT NULL,
	title           TEXT NOT NULL,
	category        TEXT NOT NULL,
	priority        TEXT NOT NULL,
	status          TEXT NOT NULL,
	assigned_team   TEXT NOT NULL,
	created_date    DATETIME,
	resolved_date   DATETIME,
	resolution_time REAL,
	month_year      TEXT,
	week_year       TEXT,
	is_overdue      INTEGER NOT NULL,
	source_file     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_incidents_run ON incidents(run_id);
CREATE TABLE IF NOT EXISTS recurring_issues (
	run_id             TEXT NOT NULL,
	category           TEXT NOT NULL,
	title              TEXT NOT NULL,
	frequency          INTEGER NOT NULL,
	avg_resolution     REAL NOT NULL,
	top_team           TEXT NOT NULL,
	cumulative_percent REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS sla_performance (
	run_id          TEXT NOT NULL,
	priority        TEXT NOT NULL,
	sla_threshold   REAL NOT NULL,
	total_incidents INTEGER NOT NULL,
	sla_met         INTEGER NOT NULL,
	sla_percentage  REAL NOT NULL,
	avg_resolution  REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS team_trends (
	run_id             TEXT NOT NULL,
	team               TEXT NOT NULL,
	month_year         TEXT NOT NULL,
	total_incidents    INTEGER NOT NULL,
	avg_resolution     REAL NOT NULL,
	overdue_incidents  INTEGER NOT NULL,
	overdue_percentage REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS tech_debt_by_team (
	run_id     TEXT NOT NULL,
	team       TEXT NOT NULL,
	debt_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS monthly_trends (
	run_id         TEXT NOT NULL,
	month_year     TEXT NOT NULL,
	incident_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS category_distribution (
	run_id   TEXT NOT NULL,
	category TEXT NOT NULL,
	count    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS priority_stats (
	run_id            TEXT NOT NULL,
	priority          TEXT NOT NULL,
	incident_count    INTEGER NOT NULL,
	mean_resolution   REAL NOT NULL,
	median_resolution REAL NOT NULL,
	stddev_resolution REAL NOT NULL
);
`

// Write stores the snapshot at path and returns the run id tagging the rows.
func Write(path string, snap Snapshot, generatedAt time.Time) (string, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	if _, err := db.Exec(exportSchema); err != nil {
		return "", fmt.Errorf("creating export schema: %w", err)
	}

	runID := uuid.NewString()
	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO export_runs (run_id, generated_at, total_incidents, avg_resolution, overdue, unique_teams)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, generatedAt, snap.Summary.TotalIncidents, snap.Summary.AvgResolutionTime,
		snap.Summary.OverdueIncidents, snap.Summary.UniqueTeams,
	); err != nil {
		return "", err
	}

	for _, rec := range snap.Dataset {
		if _, err := tx.Exec(
			`INSERT INTO incidents (run_id, incident_id, title, category, priority, status, assigned_team,
			 created_date, resolved_date, resolution_time, month_year, week_year, is_overdue, source_file)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.IncidentID, rec.Title, rec.Category, rec.Priority, rec.Status, rec.AssignedTeam,
			timeOrNil(rec.CreatedDate), timeOrNil(rec.ResolvedDate), floatOrNil(rec.ResolutionTime),
			rec.MonthYear, rec.WeekYear, rec.IsOverdue, rec.SourceFile,
		); err != nil {
			return "", err
		}
	}

	for _, issue := range snap.Recurring {
		if _, err := tx.Exec(
			`INSERT INTO recurring_issues (run_id, category, title, frequency, avg_resolution, top_team, cumulative_percent)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, issue.Category, issue.Title, issue.Frequency, issue.AvgResolutionTime,
			issue.TopTeam, issue.CumulativePercent,
		); err != nil {
			return "", err
		}
	}

	for _, r := range snap.SLA {
		if _, err := tx.Exec(
			`INSERT INTO sla_performance (run_id, priority, sla_threshold, total_incidents, sla_met, sla_percentage, avg_resolution)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, r.Priority, r.SLAThreshold, r.TotalIncidents, r.SLAMet, r.SLAPercentage, r.AvgResolutionTime,
		); err != nil {
			return "", err
		}
	}

	for _, t := range snap.TeamTrends {
		if _, err := tx.Exec(
			`INSERT INTO team_trends (run_id, team, month_year, total_incidents, avg_resolution, overdue_incidents, overdue_percentage)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, t.Team, t.MonthYear, t.TotalIncidents, t.AvgResolutionTime, t.OverdueIncidents, t.OverduePercentage,
		); err != nil {
			return "", err
		}
	}

	for _, d := range snap.TechDebt.DebtByTeam {
		if _, err := tx.Exec(
			`INSERT INTO tech_debt_by_team (run_id, team, debt_count) VALUES (?, ?, ?)`,
			runID, d.Team, d.DebtCount,
		); err != nil {
			return "", err
		}
	}

	for _, m := range snap.Monthly {
		if _, err := tx.Exec(
			`INSERT INTO monthly_trends (run_id, month_year, incident_count) VALUES (?, ?, ?)`,
			runID, m.MonthYear, m.IncidentCount,
		); err != nil {
			return "", err
		}
	}

	for _, c := range snap.Categories {
		if _, err := tx.Exec(
			`INSERT INTO category_distribution (run_id, category, count) VALUES (?, ?, ?)`,
			runID, c.Category, c.Count,
		); err != nil {
			return "", err
		}
	}

	for _, p := range snap.Priorities {
		if _, err := tx.Exec(
			`INSERT INTO priority_stats (run_id, priority, incident_count, mean_resolution, median_resolution, stddev_resolution)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, p.Priority, p.IncidentCount, p.MeanResolution, p.MedianResolution, p.StdDevResolution,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

func timeOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func floatOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
