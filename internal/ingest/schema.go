package ingest

import "strings"

// Canonical field names, in mapping precedence order. The first field whose
// alias list matches a source column wins.
const (
	FieldIncidentID     = "incident_id"
	FieldTitle          = "title"
	FieldCategory       = "category"
	FieldPriority       = "priority"
	FieldStatus         = "status"
	FieldCreatedDate    = "created_date"
	FieldResolvedDate   = "resolved_date"
	FieldAssignedTeam   = "assigned_team"
	FieldResolutionTime = "resolution_time"
)

var canonicalFields = []string{
	FieldIncidentID,
	FieldTitle,
	FieldCategory,
	FieldPriority,
	FieldStatus,
	FieldCreatedDate,
	FieldResolvedDate,
	FieldAssignedTeam,
	FieldResolutionTime,
}

// columnSynonyms maps each canonical field to the column names it accepts,
// matched case-insensitively. Each canonical name is its own first alias so
// that mapping an already-canonical table is a no-op.
var columnSynonyms = map[string][]string{
	FieldIncidentID:     {"incident_id", "id", "ticket_id", "case_id", "incident_number"},
	FieldTitle:          {"title", "summary", "description", "issue_title", "incident_title"},
	FieldCategory:       {"category", "type", "issue_type", "incident_type"},
	FieldPriority:       {"priority", "severity", "impact"},
	FieldStatus:         {"status", "state", "current_status"},
	FieldCreatedDate:    {"created_date", "create_date", "date_created", "incident_date", "created"},
	FieldResolvedDate:   {"resolved_date", "resolution_date", "closed_date", "date_resolved"},
	FieldAssignedTeam:   {"assigned_team", "team", "backend_team", "responsible_team"},
	FieldResolutionTime: {"resolution_time", "time_to_resolve", "sla_time"},
}

// MapColumns renames every source column whose lowercased name matches an
// alias to its canonical field name. Columns matching no alias pass through
// unchanged and are returned as diagnostics so the caller can report them.
// Two source columns may map to the same canonical name; value extraction
// later keeps the last one.
func MapColumns(t RawTable) (RawTable, []string) {
	mapped := RawTable{
		SourceFile: t.SourceFile,
		Columns:    make([]string, len(t.Columns)),
		Rows:       t.Rows,
	}

	var unmapped []string
	for i, col := range t.Columns {
		canonical, ok := resolveColumn(col)
		if ok {
			mapped.Columns[i] = canonical
			continue
		}
		mapped.Columns[i] = col
		unmapped = append(unmapped, col)
	}
	return mapped, unmapped
}

func resolveColumn(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, field := range canonicalFields {
		for _, alias := range columnSynonyms[field] {
			if lower == alias {
				return field, true
			}
		}
	}
	return "", false
}
