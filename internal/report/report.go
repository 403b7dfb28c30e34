package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"incidentlens/internal/analysis"
	"incidentlens/internal/domain"
)

const noDataLine = "No data available."

// Input carries everything the Markdown report renders: the dataset summary
// plus the five analysis results. Narrative is an optional LLM-written
// paragraph placed under the header.
type Input struct {
	TeamName    string
	GeneratedAt time.Time
	Narrative   string

	Summary     domain.Summary
	Recurring   []analysis.RecurringIssue
	SLA         []analysis.SLAResult
	TeamTrends  []analysis.TeamPeriodStats
	TeamSummary []analysis.TeamSummary
	TechDebt    analysis.TechDebtIndicators
	Monthly     []analysis.MonthlyCount
	Categories  []analysis.CategoryCount
	Priorities  []analysis.PriorityStats
}

// Build renders the full incident analysis report as Markdown. Every empty
// analysis renders a "no data" line instead of an empty table.
func Build(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Incident Analysis Report - %s\n\n", in.TeamName)
	fmt.Fprintf(&b, "Generated %s\n\n", in.GeneratedAt.Format("2006-01-02 15:04"))

	if in.Narrative != "" {
		b.WriteString(strings.TrimSpace(in.Narrative))
		b.WriteString("\n\n")
	}

	writeSummary(&b, in.Summary)
	writeRecurring(&b, in.Recurring)
	writeSLA(&b, in.SLA)
	writeTeams(&b, in.TeamTrends, in.TeamSummary)
	writeTechDebt(&b, in.TechDebt)
	writeTrends(&b, in.Monthly, in.Categories, in.Priorities)

	return b.String()
}

func writeSummary(b *strings.Builder, s domain.Summary) {
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "- Total incidents: %d\n", s.TotalIncidents)
	fmt.Fprintf(b, "- Average resolution time: %.1f hours\n", s.AvgResolutionTime)
	fmt.Fprintf(b, "- Overdue incidents: %d\n", s.OverdueIncidents)
	fmt.Fprintf(b, "- Unique teams: %d\n", s.UniqueTeams)
	if s.DateRange.Start != nil && s.DateRange.End != nil {
		fmt.Fprintf(b, "- Date range: %s to %s\n",
			s.DateRange.Start.Format("2006-01-02"), s.DateRange.End.Format("2006-01-02"))
	}
	b.WriteString("\n")
}

func writeRecurring(b *strings.Builder, issues []analysis.RecurringIssue) {
	b.WriteString("## Top Recurring Issues\n\n")
	if len(issues) == 0 {
		b.WriteString(noDataLine + "\n\n")
		return
	}
	b.WriteString("| Category | Title | Frequency | Avg Resolution (h) | Top Team | Cumulative % |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, issue := range issues {
		fmt.Fprintf(b, "| %s | %s | %d | %.1f | %s | %.1f |\n",
			issue.Category, issue.Title, issue.Frequency, issue.AvgResolutionTime,
			issue.TopTeam, issue.CumulativePercent)
	}
	b.WriteString("\n")
}

func writeSLA(b *strings.Builder, results []analysis.SLAResult) {
	b.WriteString("## SLA Performance\n\n")
	if len(results) == 0 {
		b.WriteString(noDataLine + "\n\n")
		return
	}
	b.WriteString("| Priority | Threshold (h) | Total | Met | Met % | Avg Resolution (h) |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range results {
		fmt.Fprintf(b, "| %s | %.0f | %d | %d | %.1f | %.1f |\n",
			r.Priority, r.SLAThreshold, r.TotalIncidents, r.SLAMet, r.SLAPercentage, r.AvgResolutionTime)
	}
	b.WriteString("\n")
}

func writeTeams(b *strings.Builder, trends []analysis.TeamPeriodStats, summaries []analysis.TeamSummary) {
	b.WriteString("## Team Trends\n\n")
	if len(trends) == 0 {
		b.WriteString(noDataLine + "\n\n")
	} else {
		b.WriteString("| Team | Month | Incidents | Avg Resolution (h) | Overdue | Overdue % |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, t := range trends {
			fmt.Fprintf(b, "| %s | %s | %d | %.1f | %d | %.1f |\n",
				t.Team, t.MonthYear, t.TotalIncidents, t.AvgResolutionTime,
				t.OverdueIncidents, t.OverduePercentage)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Team Totals\n\n")
	if len(summaries) == 0 {
		b.WriteString(noDataLine + "\n\n")
		return
	}
	b.WriteString("| Team | Incidents | Avg Resolution (h) | Overdue |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, s := range summaries {
		fmt.Fprintf(b, "| %s | %d | %.1f | %d |\n",
			s.Team, s.TotalIncidents, s.AvgResolutionTime, s.OverdueIncidents)
	}
	b.WriteString("\n")
}

func writeTechDebt(b *strings.Builder, debt analysis.TechDebtIndicators) {
	b.WriteString("## Technical Debt\n\n")
	fmt.Fprintf(b, "- Tech-debt share of incidents: %.1f%%\n\n", debt.TotalDebtPercentage)
	if len(debt.DebtIncidents) == 0 {
		b.WriteString(noDataLine + "\n\n")
		return
	}

	b.WriteString("### By Team\n\n")
	b.WriteString("| Team | Debt Incidents |\n|---|---|\n")
	for _, t := range debt.DebtByTeam {
		fmt.Fprintf(b, "| %s | %d |\n", t.Team, t.DebtCount)
	}
	b.WriteString("\n### Monthly Trend\n\n")
	b.WriteString("| Month | Debt Incidents |\n|---|---|\n")
	for _, p := range debt.DebtTrend {
		fmt.Fprintf(b, "| %s | %d |\n", p.MonthYear, p.DebtIncidents)
	}
	b.WriteString("\n")
}

func writeTrends(b *strings.Builder, monthly []analysis.MonthlyCount, categories []analysis.CategoryCount, priorities []analysis.PriorityStats) {
	b.WriteString("## Trends\n\n")

	b.WriteString("### Monthly Volume\n\n")
	if len(monthly) == 0 {
		b.WriteString(noDataLine + "\n\n")
	} else {
		b.WriteString("| Month | Incidents |\n|---|---|\n")
		for _, m := range monthly {
			fmt.Fprintf(b, "| %s | %d |\n", m.MonthYear, m.IncidentCount)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Category Distribution\n\n")
	if len(categories) == 0 {
		b.WriteString(noDataLine + "\n\n")
	} else {
		b.WriteString("| Category | Count |\n|---|---|\n")
		for _, c := range categories {
			fmt.Fprintf(b, "| %s | %d |\n", c.Category, c.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Resolution Time by Priority\n\n")
	if len(priorities) == 0 {
		b.WriteString(noDataLine + "\n\n")
		return
	}
	b.WriteString("| Priority | Count | Mean (h) | Median (h) | Std Dev (h) |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, p := range priorities {
		fmt.Fprintf(b, "| %s | %d | %.1f | %.1f | %.1f |\n",
			p.Priority, p.IncidentCount, p.MeanResolution, p.MedianResolution, p.StdDevResolution)
	}
	b.WriteString("\n")
}

// WriteReportFile writes the report under outputDir as <team>_<yyyymmdd>.md
// and returns the full path.
func WriteReportFile(content, outputDir string, reportDate time.Time, teamName string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%s.md", sanitizeFilename(teamName), reportDate.Format("20060102"))
	path := filepath.Join(outputDir, filename)
	return path, os.WriteFile(path, []byte(content), 0644)
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	return replacer.Replace(s)
}
