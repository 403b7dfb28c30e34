package analysis

import (
	"testing"

	"incidentlens/internal/domain"
)

func TestTeamTrendsGroupsByTeamAndMonth(t *testing.T) {
	dataset := domain.Dataset{
		rec("Infra", "A", "High", "Platform", hoursPtr(10), "2024-01"),
		rec("Infra", "B", "High", "Platform", hoursPtr(30), "2024-01"),
		rec("Infra", "C", "High", "Platform", hoursPtr(4), "2024-02"),
		rec("Infra", "D", "High", "Identity", hoursPtr(50), "2024-01"),
	}

	trends := TeamTrends(dataset)
	if len(trends) != 3 {
		t.Fatalf("expected 3 (team, month) cells, got %d", len(trends))
	}

	// Sorted by team then month: Identity first.
	first := trends[0]
	if first.Team != "Identity" || first.MonthYear != "2024-01" {
		t.Fatalf("unexpected first cell: %+v", first)
	}
	if first.OverdueIncidents != 1 || first.OverduePercentage != 100 {
		t.Fatalf("expected fully overdue Identity cell, got %+v", first)
	}

	platformJan := trends[1]
	if platformJan.Team != "Platform" || platformJan.TotalIncidents != 2 {
		t.Fatalf("unexpected Platform January cell: %+v", platformJan)
	}
	if platformJan.AvgResolutionTime != 20 {
		t.Fatalf("expected avg 20h, got %v", platformJan.AvgResolutionTime)
	}
	if platformJan.OverdueIncidents != 1 || platformJan.OverduePercentage != 50 {
		t.Fatalf("expected 1 overdue (50%%), got %+v", platformJan)
	}
}

func TestTeamTrendsSkipsRecordsWithoutMonth(t *testing.T) {
	dataset := domain.Dataset{
		rec("Infra", "A", "High", "Platform", hoursPtr(10), ""),
		rec("Infra", "B", "High", "Platform", hoursPtr(10), "2024-01"),
	}

	trends := TeamTrends(dataset)
	if len(trends) != 1 || trends[0].TotalIncidents != 1 {
		t.Fatalf("expected only dated record grouped, got %+v", trends)
	}
}

func TestTeamPerformanceSummaryCollapsesPeriods(t *testing.T) {
	dataset := domain.Dataset{
		rec("Infra", "A", "High", "Platform", hoursPtr(10), "2024-01"),
		rec("Infra", "B", "High", "Platform", hoursPtr(30), "2024-02"),
		rec("Infra", "C", "High", "Identity", nil, ""),
	}

	summaries := TeamPerformanceSummary(dataset)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(summaries))
	}
	platform := summaries[1]
	if platform.Team != "Platform" || platform.TotalIncidents != 2 || platform.OverdueIncidents != 1 {
		t.Fatalf("unexpected Platform summary: %+v", platform)
	}
	identity := summaries[0]
	if identity.Team != "Identity" || identity.TotalIncidents != 1 || identity.AvgResolutionTime != 0 {
		t.Fatalf("unexpected Identity summary: %+v", identity)
	}
}

func TestTeamAnalysisEmptyDataset(t *testing.T) {
	if trends := TeamTrends(nil); trends != nil {
		t.Fatalf("expected nil trends, got %v", trends)
	}
	if summaries := TeamPerformanceSummary(nil); summaries != nil {
		t.Fatalf("expected nil summaries, got %v", summaries)
	}
}
