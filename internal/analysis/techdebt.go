package analysis

import (
	"sort"
	"strings"

	"incidentlens/internal/domain"
)

// techDebtKeywords flag an incident title as tech-debt-related when any of
// them appears as a case-insensitive substring.
var techDebtKeywords = []string{
	"legacy", "outdated", "deprecated", "technical debt", "refactor",
	"workaround", "hack", "temporary fix", "hotfix", "patch",
}

// TeamDebt is the tech-debt incident count for one team.
type TeamDebt struct {
	Team      string
	DebtCount int
}

// PeriodDebt is the tech-debt incident count for one month bucket.
type PeriodDebt struct {
	MonthYear     string
	DebtIncidents int
}

// TechDebtIndicators aggregates the tech-debt view of a dataset.
type TechDebtIndicators struct {
	TotalDebtPercentage float64
	DebtByTeam          []TeamDebt
	DebtTrend           []PeriodDebt
	DebtIncidents       domain.Dataset
}

// IdentifyTechDebtIncidents returns the subset of records whose title
// contains a tech-debt keyword.
func IdentifyTechDebtIncidents(dataset domain.Dataset) domain.Dataset {
	var subset domain.Dataset
	for _, rec := range dataset {
		if isTechDebtTitle(rec.Title) {
			subset = append(subset, rec)
		}
	}
	return subset
}

func isTechDebtTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range techDebtKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CalculateTechDebtIndicators computes the debt share of the dataset plus
// per-team and per-month breakdowns. Empty input degrades to zeros and empty
// tables, never an error.
func CalculateTechDebtIndicators(dataset domain.Dataset) TechDebtIndicators {
	subset := IdentifyTechDebtIncidents(dataset)

	indicators := TechDebtIndicators{DebtIncidents: subset}
	if len(dataset) > 0 {
		indicators.TotalDebtPercentage = float64(len(subset)) / float64(len(dataset)) * 100
	}
	if len(subset) == 0 {
		return indicators
	}

	byTeam := make(map[string]int)
	byMonth := make(map[string]int)
	for _, rec := range subset {
		byTeam[rec.AssignedTeam]++
		if rec.MonthYear != "" {
			byMonth[rec.MonthYear]++
		}
	}

	for team, count := range byTeam {
		indicators.DebtByTeam = append(indicators.DebtByTeam, TeamDebt{Team: team, DebtCount: count})
	}
	sort.Slice(indicators.DebtByTeam, func(i, j int) bool {
		return indicators.DebtByTeam[i].Team < indicators.DebtByTeam[j].Team
	})

	for month, count := range byMonth {
		indicators.DebtTrend = append(indicators.DebtTrend, PeriodDebt{MonthYear: month, DebtIncidents: count})
	}
	sort.Slice(indicators.DebtTrend, func(i, j int) bool {
		return indicators.DebtTrend[i].MonthYear < indicators.DebtTrend[j].MonthYear
	})

	return indicators
}
