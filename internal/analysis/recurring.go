package analysis

import (
	"sort"

	"incidentlens/internal/domain"
)

// DefaultTopRecurring is how many issue groups TopRecurringIssues returns
// when the caller does not ask for a specific count.
const DefaultTopRecurring = 10

// RecurringIssue is one (category, title) group ranked by frequency.
// CumulativePercent tracks the Pareto running share within the returned
// ranking, so the caller can spot where the "vital few" end.
type RecurringIssue struct {
	Category          string
	Title             string
	Frequency         int
	AvgResolutionTime float64
	TopTeam           string
	CumulativePercent float64
}

// TopRecurringIssues groups the dataset by (category, title) and returns the
// topN most frequent groups, most frequent first. An empty dataset yields nil.
func TopRecurringIssues(dataset domain.Dataset, topN int) []RecurringIssue {
	if len(dataset) == 0 {
		return nil
	}
	if topN <= 0 {
		topN = DefaultTopRecurring
	}

	type key struct{ category, title string }
	grouped := make(map[key][]domain.IncidentRecord)
	var order []key
	for _, rec := range dataset {
		k := key{rec.Category, rec.Title}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], rec)
	}

	issues := make([]RecurringIssue, 0, len(order))
	for _, k := range order {
		records := grouped[k]
		issues = append(issues, RecurringIssue{
			Category:          k.category,
			Title:             k.title,
			Frequency:         len(records),
			AvgResolutionTime: meanResolution(records),
			TopTeam:           modalTeam(records),
		})
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Frequency > issues[j].Frequency })
	if len(issues) > topN {
		issues = issues[:topN]
	}

	var total int
	for _, issue := range issues {
		total += issue.Frequency
	}
	var running int
	for i := range issues {
		running += issues[i].Frequency
		issues[i].CumulativePercent = float64(running) / float64(total) * 100
	}
	return issues
}

// modalTeam returns the most frequent assigned team within a group; ties go
// to the team encountered first.
func modalTeam(records []domain.IncidentRecord) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if counts[r.AssignedTeam] == 0 {
			order = append(order, r.AssignedTeam)
		}
		counts[r.AssignedTeam]++
	}

	best := ""
	bestCount := 0
	for _, team := range order {
		if counts[team] > bestCount {
			best = team
			bestCount = counts[team]
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}
