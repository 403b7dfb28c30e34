package analysis

import "incidentlens/internal/domain"

// Summarize computes the overview metrics for a dataset: totals, mean
// resolution time, overdue count, distinct teams, and the created-date span.
func Summarize(dataset domain.Dataset) domain.Summary {
	summary := domain.Summary{TotalIncidents: len(dataset)}
	if len(dataset) == 0 {
		return summary
	}

	teams := make(map[string]struct{})
	for _, rec := range dataset {
		teams[rec.AssignedTeam] = struct{}{}
		if rec.IsOverdue {
			summary.OverdueIncidents++
		}
		if rec.CreatedDate != nil {
			if summary.DateRange.Start == nil || rec.CreatedDate.Before(*summary.DateRange.Start) {
				summary.DateRange.Start = rec.CreatedDate
			}
			if summary.DateRange.End == nil || rec.CreatedDate.After(*summary.DateRange.End) {
				summary.DateRange.End = rec.CreatedDate
			}
		}
	}
	summary.UniqueTeams = len(teams)
	summary.AvgResolutionTime = meanResolution(dataset)
	return summary
}
