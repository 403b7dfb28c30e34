package llm

import (
	"context"
	"strings"
	"testing"

	"incidentlens/internal/analysis"
	"incidentlens/internal/domain"
)

func TestBuildNarrativePrompt(t *testing.T) {
	summary := domain.Summary{
		TotalIncidents:    120,
		AvgResolutionTime: 19.25,
		OverdueIncidents:  14,
		UniqueTeams:       5,
	}
	sla := []analysis.SLAResult{
		{Priority: "Critical", SLAThreshold: 4, TotalIncidents: 10, SLAPercentage: 40},
	}
	debt := analysis.TechDebtIndicators{
		TotalDebtPercentage: 12.5,
		DebtByTeam:          []analysis.TeamDebt{{Team: "Platform", DebtCount: 9}},
	}

	prompt := BuildNarrativePrompt(summary, sla, debt)

	for _, want := range []string{
		"Total incidents: 120",
		"Average resolution time: 19.2 hours",
		"Overdue incidents: 14",
		"- Critical: 10 incidents, 40.0% within 4h",
		"Tech-debt share of incidents: 12.5%",
		"- Platform: 9 debt incidents",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildNarrativePromptOmitsEmptySLA(t *testing.T) {
	prompt := BuildNarrativePrompt(domain.Summary{}, nil, analysis.TechDebtIndicators{})
	if strings.Contains(prompt, "SLA compliance by priority") {
		t.Fatalf("expected no SLA block:\n%s", prompt)
	}
}

func TestNarrativeSummaryRequiresAPIKey(t *testing.T) {
	_, err := NarrativeSummary(context.Background(), "", "", domain.Summary{}, nil, analysis.TechDebtIndicators{})
	if err == nil {
		t.Fatal("expected error without API key")
	}
}
