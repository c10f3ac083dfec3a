package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// PreferredColumns lead the summary header in this order.
var PreferredColumns = []string{ColSource, ColCategory, ColIndexID, ColType, ColStackSize}

// Columns returns the summary header for rows: the preferred columns followed
// by every other column in first-seen order.
func Columns(rows []Row) []string {
	header := slices.Clone(PreferredColumns)
	seen := make(map[string]bool, len(header))
	for _, c := range header {
		seen[c] = true
	}
	for _, r := range rows {
		for _, f := range r.Fields() {
			if !seen[f.Key] {
				seen[f.Key] = true
				header = append(header, f.Key)
			}
		}
	}
	return header
}

// WriteSummary writes rows as CSV. Columns a row lacks are left empty.
func WriteSummary(w io.Writer, rows []Row) error {
	header := Columns(rows)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	record := make([]string, len(header))
	for _, r := range rows {
		for i, col := range header {
			record[i] = r.Get(col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row %s: %w", r.IndexID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryFile writes the summary to path, creating parent folders.
func WriteSummaryFile(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create summary folder: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	if err := WriteSummary(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSummary parses a summary back into rows. Empty cells are not set.
func ReadSummary(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read summary header: %w", err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read summary: %w", err)
		}

		var row Row
		for i, col := range header {
			if i >= len(record) || record[i] == "" {
				continue
			}
			switch col {
			case ColSource:
				row.Source = record[i]
			case ColCategory:
				row.Category = Category(record[i])
			case ColIndexID:
				row.IndexID = record[i]
			default:
				row.Set(col, record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadSummaryFile reads the summary at path.
func ReadSummaryFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open summary: %w", err)
	}
	defer f.Close()
	return ReadSummary(f)
}

func trimBOM(s string) string {
	if len(s) >= 3 && s[0] == 0xEF && s[1] == 0xBB && s[2] == 0xBF {
		return s[3:]
	}
	return s
}
