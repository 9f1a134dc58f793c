package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// writeCSV writes a header plus rows to path, creating parent directories.
func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// csvTable is a header-indexed CSV file.
type csvTable struct {
	cols map[string]int
	rows [][]string
	path string
}

func readCSV(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	return &csvTable{cols: cols, rows: records[1:], path: path}, nil
}

// require fails fast when expected columns are missing: proceeding without
// them would corrupt every downstream join.
func (t *csvTable) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.cols[name]; !ok {
			return fmt.Errorf("%s: missing required column %q", t.path, name)
		}
	}
	return nil
}

func (t *csvTable) has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

func (t *csvTable) get(row []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *csvTable) getFloat(row []string, name string) float64 {
	v, err := strconv.ParseFloat(t.get(row, name), 64)
	if err != nil {
		return 0
	}
	return v
}

func (t *csvTable) getInt(row []string, name string) int {
	v, err := strconv.Atoi(t.get(row, name))
	if err != nil {
		return 0
	}
	return v
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
