package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}

// rawTable is a header plus its data rows, as read from CSV or XLSX.
type rawTable struct {
	name   string
	path   string
	header []string
	rows   [][]string
}

// colIndex returns the position of the first header matching any of names, or -1.
func (t *rawTable) colIndex(names ...string) int {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalizeColumnName(name)] = struct{}{}
	}
	for i, h := range t.header {
		if _, ok := targets[normalizeColumnName(h)]; ok {
			return i
		}
	}
	return -1
}

// requireColumns resolves every required column or fails naming the missing ones.
func (t *rawTable) requireColumns(names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	var missing []string
	for _, name := range names {
		i := t.colIndex(name)
		if i < 0 {
			missing = append(missing, name)
			continue
		}
		idx[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing required columns: %s", t.path, strings.Join(missing, ", "))
	}
	return idx, nil
}

// locate finds <table>.csv or <table>.xlsx in dir, preferring CSV.
func locate(dir, table string) (string, error) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(dir, table+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s.csv or %s.xlsx in %s", table, table, dir)
}

func readTable(dir, table string) (*rawTable, error) {
	path, err := locate(dir, table)
	if err != nil {
		return nil, err
	}

	var header []string
	var rows [][]string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		header, rows, err = readXLSX(path)
	} else {
		header, rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	return &rawTable{name: table, path: path, header: header, rows: rows}, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%s is empty", path)
		}
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	// Strip a UTF-8 BOM left by spreadsheet exports
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}

// readXLSX reads the first sheet of a workbook, treating its first row as the header.
func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}

	return all[0], all[1:], nil
}
