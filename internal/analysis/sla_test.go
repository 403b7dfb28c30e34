package analysis

import (
	"testing"

	"incidentlens/internal/domain"
)

func TestAnalyzeSLAMissedCritical(t *testing.T) {
	dataset := domain.Dataset{
		rec("Infra", "Outage", "Critical", "Platform", hoursPtr(5), "2024-01"),
	}

	results := AnalyzeSLA(dataset)
	if len(results) != 1 {
		t.Fatalf("expected only the Critical row, got %d rows", len(results))
	}

	r := results[0]
	if r.Priority != "Critical" || r.SLAThreshold != 4 {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.TotalIncidents != 1 || r.SLAMet != 0 || r.SLAPercentage != 0 {
		t.Fatalf("expected total=1 met=0 pct=0, got %+v", r)
	}
	if r.AvgResolutionTime != 5 {
		t.Fatalf("expected avg 5h, got %v", r.AvgResolutionTime)
	}
}

func TestAnalyzeSLASubstringMatch(t *testing.T) {
	dataset := domain.Dataset{
		rec("Infra", "Outage", "P1-Critical", "Platform", hoursPtr(3), "2024-01"),
		rec("Infra", "Slow query", "high", "Platform", hoursPtr(10), "2024-01"),
	}

	results := AnalyzeSLA(dataset)
	if len(results) != 2 {
		t.Fatalf("expected Critical and High rows, got %d", len(results))
	}
	if results[0].Priority != "Critical" || results[0].SLAMet != 1 {
		t.Fatalf("expected P1-Critical under Critical threshold, got %+v", results[0])
	}
	if results[1].Priority != "High" || results[1].SLAMet != 0 {
		t.Fatalf("expected lowercase high matched and missed 8h, got %+v", results[1])
	}
}

func TestAnalyzeSLAMetPlusMissedEqualsTotal(t *testing.T) {
	dataset := domain.Dataset{
		rec("Infra", "A", "Critical", "T1", hoursPtr(2), "2024-01"),
		rec("Infra", "B", "Critical", "T1", hoursPtr(6), "2024-01"),
		rec("Infra", "C", "Critical", "T1", nil, "2024-01"), // unknown time counts, never meets
	}

	r := AnalyzeSLA(dataset)[0]
	missed := r.TotalIncidents - r.SLAMet
	if r.SLAMet+missed != r.TotalIncidents {
		t.Fatalf("met %d + missed %d != total %d", r.SLAMet, missed, r.TotalIncidents)
	}
	if r.TotalIncidents != 3 || r.SLAMet != 1 {
		t.Fatalf("expected total=3 met=1, got %+v", r)
	}
}

func TestAnalyzeSLAOmitsEmptyTiersAndEmptyDataset(t *testing.T) {
	dataset := domain.Dataset{
		rec("Infra", "A", "Medium", "T1", hoursPtr(2), "2024-01"),
	}
	results := AnalyzeSLA(dataset)
	if len(results) != 1 || results[0].Priority != "Medium" {
		t.Fatalf("expected only Medium reported, got %+v", results)
	}

	if results := AnalyzeSLA(nil); results != nil {
		t.Fatalf("expected nil for empty dataset, got %v", results)
	}
}
