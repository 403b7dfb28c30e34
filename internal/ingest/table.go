package ingest

import "strings"

// RawTable is one loaded source file before normalization: a header row and
// string-valued data rows, tagged with the file it came from.
type RawTable struct {
	SourceFile string
	Columns    []string
	Rows       [][]string
}

// columnIndex maps a lowercased column name to its position. When two source
// columns were mapped to the same canonical name, the last one wins.
func (t RawTable) columnIndex() map[string]int {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		idx[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return idx
}
