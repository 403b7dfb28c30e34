package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LoadFiles reads every path as a CSV table. Files that cannot be parsed are
// logged and skipped; the load only fails when no file loads at all.
func LoadFiles(paths []string) ([]RawTable, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	var tables []RawTable
	for _, path := range paths {
		table, err := loadCSVFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		log.Printf("Loaded %s: %d rows, %d columns", table.SourceFile, len(table.Rows), len(table.Columns))
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("none of the %d input files could be loaded", len(paths))
	}
	return tables, nil
}

func loadCSVFile(path string) (RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawTable{}, err
	}
	defer f.Close()
	return ReadTable(f, filepath.Base(path))
}

// ReadTable parses CSV data into a RawTable. The first row is the header;
// ragged data rows are tolerated (short rows read as empty cells), but a
// malformed file fails as a whole.
func ReadTable(r io.Reader, sourceFile string) (RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return RawTable{}, fmt.Errorf("reading header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("reading row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}

	return RawTable{SourceFile: sourceFile, Columns: columns, Rows: rows}, nil
}
