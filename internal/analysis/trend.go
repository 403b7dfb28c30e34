package analysis

import (
	"sort"

	"incidentlens/internal/domain"
)

// MonthlyCount is the incident volume of one month bucket.
type MonthlyCount struct {
	MonthYear     string
	IncidentCount int
}

// CategoryCount is the incident volume of one category.
type CategoryCount struct {
	Category string
	Count    int
}

// PriorityStats summarizes resolution time for one priority label.
type PriorityStats struct {
	Priority         string
	IncidentCount    int
	MeanResolution   float64
	MedianResolution float64
	StdDevResolution float64
}

// MonthlyTrends counts incidents per month bucket, oldest first. Records
// without a created date have no bucket and drop out.
func MonthlyTrends(dataset domain.Dataset) []MonthlyCount {
	if len(dataset) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, rec := range dataset {
		if rec.MonthYear != "" {
			counts[rec.MonthYear]++
		}
	}

	trends := make([]MonthlyCount, 0, len(counts))
	for month, count := range counts {
		trends = append(trends, MonthlyCount{MonthYear: month, IncidentCount: count})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].MonthYear < trends[j].MonthYear })
	return trends
}

// CategoryDistribution counts incidents per category, most frequent first;
// ties keep first-seen order.
func CategoryDistribution(dataset domain.Dataset) []CategoryCount {
	if len(dataset) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, rec := range dataset {
		if counts[rec.Category] == 0 {
			order = append(order, rec.Category)
		}
		counts[rec.Category]++
	}

	dist := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		dist = append(dist, CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist
}

// PriorityAnalysis summarizes resolution time per priority label, sorted by
// label. The count covers every matching record; the statistics cover only
// records with a known resolution time.
func PriorityAnalysis(dataset domain.Dataset) []PriorityStats {
	if len(dataset) == 0 {
		return nil
	}

	grouped := make(map[string][]domain.IncidentRecord)
	for _, rec := range dataset {
		grouped[rec.Priority] = append(grouped[rec.Priority], rec)
	}

	stats := make([]PriorityStats, 0, len(grouped))
	for priority, records := range grouped {
		hours := resolutionHours(records)
		stats = append(stats, PriorityStats{
			Priority:         priority,
			IncidentCount:    len(records),
			MeanResolution:   mean(hours),
			MedianResolution: median(hours),
			StdDevResolution: sampleStdDev(hours),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Priority < stats[j].Priority })
	return stats
}
