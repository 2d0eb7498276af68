package files

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	ierrors "enrichcli/internal/errors"
)

// ReadTable reads a tabular file and returns its header row and data rows.
// The format is chosen by extension: ".xlsx" is read with excelize, anything
// else is treated as CSV. Rows are returned as raw cell strings; no schema
// interpretation happens here.
func ReadTable(path string) (header []string, rows [][]string, err error) {
	var table [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		table, err = readXLSX(path)
	default:
		table, err = readCSV(path)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(table) == 0 {
		return nil, nil, ierrors.NewStructuralError(
			fmt.Sprintf("%s contains no rows", path), nil)
	}

	slog.Info("table loaded",
		slog.String("path", path),
		slog.Int("data_rows", len(table)-1),
		slog.Int("columns", len(table[0])))

	return table[0], table[1:], nil
}

// readCSV reads a CSV file, tolerating a UTF-8 BOM. Ragged rows are passed
// through; the record model decides whether they are structural errors.
func readCSV(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ierrors.NewStorageError(fmt.Sprintf("failed to read %s", path), err)
	}

	// Remove BOM if present
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1

	table, err := reader.ReadAll()
	if err != nil {
		return nil, ierrors.NewParsingError(fmt.Sprintf("failed to parse CSV %s", path), err)
	}
	return table, nil
}

// readXLSX reads the first sheet of an Excel workbook.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ierrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ierrors.NewStructuralError(fmt.Sprintf("%s has no sheets", path), nil)
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ierrors.NewParsingError(
			fmt.Sprintf("failed to read sheet %s of %s", sheets[0], path), err)
	}

	// excelize trims trailing empty cells per row; pad back to header width.
	if len(table) > 0 {
		width := len(table[0])
		for i, row := range table {
			for len(row) < width {
				row = append(row, "")
			}
			table[i] = row
		}
	}
	return table, nil
}
