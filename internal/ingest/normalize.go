package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"incidentlens/internal/domain"
)

// Options controls normalization policy.
type Options struct {
	// FallbackTime fills the created/resolved fields of tables that carry no
	// date column at all. The zero value means wall-clock time at
	// normalization; tests inject a fixed timestamp for determinism.
	FallbackTime time.Time
}

// LoadReport is the result of a full load: the canonical dataset plus the
// per-file list of source columns that matched no known alias.
type LoadReport struct {
	Dataset         domain.Dataset
	UnmappedColumns map[string][]string
}

// LoadAndNormalize runs the whole ingestion pipeline: read every file, map
// column names to the canonical vocabulary, and normalize into one dataset.
// Row order is preserved within each file and files concatenate in argument
// order.
func LoadAndNormalize(paths []string, opts Options) (LoadReport, error) {
	tables, err := LoadFiles(paths)
	if err != nil {
		return LoadReport{}, err
	}

	report := LoadReport{UnmappedColumns: make(map[string][]string)}
	mapped := make([]RawTable, 0, len(tables))
	for _, t := range tables {
		m, unmapped := MapColumns(t)
		if len(unmapped) > 0 {
			report.UnmappedColumns[t.SourceFile] = unmapped
		}
		mapped = append(mapped, m)
	}

	dataset, err := Normalize(mapped, opts)
	if err != nil {
		return LoadReport{}, err
	}
	report.Dataset = dataset
	return report, nil
}

// Normalize turns schema-mapped tables into the canonical dataset: missing
// required fields get policy defaults, date values parse into timestamps
// (unparsable values become nil, never an error), and the derived fields are
// computed. A structural failure aborts the whole pass.
func Normalize(tables []RawTable, opts Options) (domain.Dataset, error) {
	fallback := opts.FallbackTime
	if fallback.IsZero() {
		fallback = time.Now()
	}

	var dataset domain.Dataset
	nextID := 1
	for _, t := range tables {
		records, err := normalizeTable(t, fallback, &nextID)
		if err != nil {
			return nil, fmt.Errorf("normalizing %s: %w", t.SourceFile, err)
		}
		dataset = append(dataset, records...)
	}
	return dataset, nil
}

func normalizeTable(t RawTable, fallback time.Time, nextID *int) ([]domain.IncidentRecord, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}

	idx := t.columnIndex()
	cell := func(row []string, field string) (string, bool) {
		i, ok := idx[field]
		if !ok || i >= len(row) {
			return "", ok
		}
		return strings.TrimSpace(row[i]), true
	}

	records := make([]domain.IncidentRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := domain.IncidentRecord{SourceFile: t.SourceFile}

		if v, ok := cell(row, FieldIncidentID); ok {
			rec.IncidentID = v
		} else {
			rec.IncidentID = strconv.Itoa(*nextID)
			*nextID++
		}

		rec.Title = textOrUnknown(cell(row, FieldTitle))
		rec.Category = textOrUnknown(cell(row, FieldCategory))
		rec.Priority = textOrUnknown(cell(row, FieldPriority))
		rec.Status = textOrUnknown(cell(row, FieldStatus))
		rec.AssignedTeam = textOrUnknown(cell(row, FieldAssignedTeam))

		if v, ok := cell(row, FieldCreatedDate); ok {
			rec.CreatedDate = parseDate(v)
		} else {
			created := fallback
			rec.CreatedDate = &created
		}
		if v, ok := cell(row, FieldResolvedDate); ok {
			rec.ResolvedDate = parseDate(v)
		} else {
			resolved := fallback
			rec.ResolvedDate = &resolved
		}

		if v, ok := cell(row, FieldResolutionTime); ok {
			if hours, err := strconv.ParseFloat(v, 64); err == nil {
				rec.ResolutionTime = &hours
			}
		} else if rec.CreatedDate != nil && rec.ResolvedDate != nil {
			hours := rec.ResolvedDate.Sub(*rec.CreatedDate).Hours()
			rec.ResolutionTime = &hours
		}

		if rec.CreatedDate != nil {
			rec.MonthYear = rec.CreatedDate.Format("2006-01")
			rec.WeekYear = weekYear(*rec.CreatedDate)
		}
		rec.IsOverdue = rec.ResolutionTime != nil && *rec.ResolutionTime > 24

		records = append(records, rec)
	}
	return records, nil
}

func textOrUnknown(v string, _ bool) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

// Accepted source date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// weekYear buckets a timestamp as "2024-W05" with Sunday-first week
// numbering: days before the year's first Sunday fall in week 00.
func weekYear(t time.Time) string {
	week := (t.YearDay() + 6 - int(t.Weekday())) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}
