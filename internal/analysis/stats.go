package analysis

import (
	"math"
	"sort"

	"incidentlens/internal/domain"
)

// resolutionHours collects the non-nil resolution times of a record set.
// Records without a resolution time drop out of every statistic, mirroring
// how null values fall out of aggregation.
func resolutionHours(records []domain.IncidentRecord) []float64 {
	var hours []float64
	for _, r := range records {
		if r.ResolutionTime != nil {
			hours = append(hours, *r.ResolutionTime)
		}
	}
	return hours
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}

func median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sampleStdDev is the n-1 standard deviation; zero when fewer than two values.
func sampleStdDev(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return 0
	}
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

func meanResolution(records []domain.IncidentRecord) float64 {
	return mean(resolutionHours(records))
}
