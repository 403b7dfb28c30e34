package analysis

import (
	"sort"

	"incidentlens/internal/domain"
)

// TeamPeriodStats is one (team, month) cell of the team trend table.
type TeamPeriodStats struct {
	Team              string
	MonthYear         string
	TotalIncidents    int
	AvgResolutionTime float64
	OverdueIncidents  int
	OverduePercentage float64
}

// TeamSummary collapses a team's record across all periods.
type TeamSummary struct {
	Team              string
	TotalIncidents    int
	AvgResolutionTime float64
	OverdueIncidents  int
}

// TeamTrends groups by (assigned team, month) and reports volume, mean
// resolution time, and overdue rate per cell, sorted by team then month.
// Records without a created date have no month bucket and drop out.
func TeamTrends(dataset domain.Dataset) []TeamPeriodStats {
	if len(dataset) == 0 {
		return nil
	}

	type key struct{ team, month string }
	grouped := make(map[key][]domain.IncidentRecord)
	for _, rec := range dataset {
		if rec.MonthYear == "" {
			continue
		}
		k := key{rec.AssignedTeam, rec.MonthYear}
		grouped[k] = append(grouped[k], rec)
	}

	stats := make([]TeamPeriodStats, 0, len(grouped))
	for k, records := range grouped {
		overdue := 0
		for _, r := range records {
			if r.IsOverdue {
				overdue++
			}
		}
		stats = append(stats, TeamPeriodStats{
			Team:              k.team,
			MonthYear:         k.month,
			TotalIncidents:    len(records),
			AvgResolutionTime: meanResolution(records),
			OverdueIncidents:  overdue,
			OverduePercentage: float64(overdue) / float64(len(records)) * 100,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Team != stats[j].Team {
			return stats[i].Team < stats[j].Team
		}
		return stats[i].MonthYear < stats[j].MonthYear
	})
	return stats
}

// TeamPerformanceSummary reports per-team totals with no time dimension.
func TeamPerformanceSummary(dataset domain.Dataset) []TeamSummary {
	if len(dataset) == 0 {
		return nil
	}

	grouped := make(map[string][]domain.IncidentRecord)
	for _, rec := range dataset {
		grouped[rec.AssignedTeam] = append(grouped[rec.AssignedTeam], rec)
	}

	summaries := make([]TeamSummary, 0, len(grouped))
	for team, records := range grouped {
		overdue := 0
		for _, r := range records {
			if r.IsOverdue {
				overdue++
			}
		}
		summaries = append(summaries, TeamSummary{
			Team:              team,
			TotalIncidents:    len(records),
			AvgResolutionTime: meanResolution(records),
			OverdueIncidents:  overdue,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Team < summaries[j].Team })
	return summaries
}
