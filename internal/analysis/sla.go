package analysis

import (
	"strings"

	"incidentlens/internal/domain"
)

// SLAThreshold is the maximum allowed resolution time for a priority tier.
type SLAThreshold struct {
	Priority string
	Hours    float64
}

// SLAThresholds is the fixed priority ladder. Matching is by case-insensitive
// substring, so "P1-Critical" counts under Critical. Each tier is evaluated
// independently over the full dataset; a record naming two tiers appears in
// both rows.
var SLAThresholds = []SLAThreshold{
	{"Critical", 4},
	{"High", 8},
	{"Medium", 24},
	{"Low", 72},
}

// SLAResult holds compliance metrics for one priority tier.
type SLAResult struct {
	Priority          string
	SLAThreshold      float64
	TotalIncidents    int
	SLAMet            int
	SLAPercentage     float64
	AvgResolutionTime float64
}

// AnalyzeSLA computes per-tier compliance. A record meets its SLA when its
// resolution time is known and within the threshold; records without a
// resolution time count toward the total but never toward SLAMet. Tiers with
// no matching records are omitted entirely.
func AnalyzeSLA(dataset domain.Dataset) []SLAResult {
	if len(dataset) == 0 {
		return nil
	}

	var results []SLAResult
	for _, threshold := range SLAThresholds {
		var matched []domain.IncidentRecord
		met := 0
		for _, rec := range dataset {
			if !strings.Contains(strings.ToLower(rec.Priority), strings.ToLower(threshold.Priority)) {
				continue
			}
			matched = append(matched, rec)
			if rec.ResolutionTime != nil && *rec.ResolutionTime <= threshold.Hours {
				met++
			}
		}
		if len(matched) == 0 {
			continue
		}
		results = append(results, SLAResult{
			Priority:          threshold.Priority,
			SLAThreshold:      threshold.Hours,
			TotalIncidents:    len(matched),
			SLAMet:            met,
			SLAPercentage:     float64(met) / float64(len(matched)) * 100,
			AvgResolutionTime: meanResolution(matched),
		})
	}
	return results
}
