package drive

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// convertXLSXToCSV writes the first sheet of the workbook read from src as CSV.
// Short rows are padded to the header width.
func convertXLSXToCSV(src io.Reader, dst io.Writer) error {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}

	w := csv.NewWriter(dst)
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	for _, record := range rows {
		for len(record) < width {
			record = append(record, "")
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
