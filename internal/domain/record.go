package domain

import "time"

// IncidentRecord is one row of the canonical dataset. Every text field is
// non-empty after normalization ("Unknown" when the source had nothing);
// the date and resolution fields stay nil when the source value could not
// be parsed.
type IncidentRecord struct {
	IncidentID     string
	Title          string
	Category       string
	Priority       string
	Status         string
	AssignedTeam   string
	CreatedDate    *time.Time
	ResolvedDate   *time.Time
	ResolutionTime *float64 // hours; may be negative when dates are inverted
	MonthYear      string   // "2024-01", empty when CreatedDate is nil
	WeekYear       string   // "2024-W05", empty when CreatedDate is nil
	IsOverdue      bool     // resolution time over the global 24h threshold
	SourceFile     string
}

// Dataset is the canonical, normalized incident collection. Analyzers treat
// it as read-only; a new load replaces it wholesale.
type Dataset []IncidentRecord

// DateRange is the span of created dates across a dataset.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Summary holds the overview metrics shown before any per-analysis drill-down.
type Summary struct {
	TotalIncidents    int
	AvgResolutionTime float64
	OverdueIncidents  int
	UniqueTeams       int
	DateRange         DateRange
}
