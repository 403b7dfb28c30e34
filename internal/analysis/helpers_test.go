package analysis

import "incidentlens/internal/domain"

func hoursPtr(h float64) *float64 { return &h }

// rec builds a minimal record for analyzer tests. IsOverdue follows the
// global 24h rule so tests stay consistent with normalization.
func rec(category, title, priority, team string, resolution *float64, month string) domain.IncidentRecord {
	return domain.IncidentRecord{
		IncidentID:     "test",
		Title:          title,
		Category:       category,
		Priority:       priority,
		Status:         "Resolved",
		AssignedTeam:   team,
		ResolutionTime: resolution,
		MonthYear:      month,
		IsOverdue:      resolution != nil && *resolution > 24,
	}
}
