package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const maxXLSRows = 65536

// DecodeSpreadsheet parses an uploaded file into a raw cell grid.
// Supported: .xlsx (excelize), legacy .xls (extrame/xls), .csv.
func DecodeSpreadsheet(data []byte, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSXFile(data)
	case ".xls":
		return parseXLSFile(data)
	case ".csv":
		return parseCSVFile(data)
	default:
		return nil, errors.New("unsupported file type")
	}
}

func parseXLSXFile(data []byte) ([][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer xl.Close()

	sheetName := xl.GetSheetName(0)
	rows, err := xl.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel must have at least one data row")
	}
	return rows, nil
}

func parseXLSFile(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	rows := wb.ReadAllCells(maxXLSRows)
	if len(rows) < 2 {
		return nil, fmt.Errorf("xls must have at least one data row")
	}
	return rows, nil
}

func parseCSVFile(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv must have at least one data row")
	}
	return rows, nil
}

func allEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// RowsFromSheet turns a raw cell grid into ordered header/value rows. The
// first non-empty grid row is the header; fully empty data rows are
// dropped; short rows pad with empty cells so header order is preserved.
func RowsFromSheet(grid [][]string) ([]string, []Row) {
	headerIdx := -1
	for i, r := range grid {
		if !allEmptyRow(r) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, nil
	}
	headers := grid[headerIdx]

	var rows []Row
	for _, raw := range grid[headerIdx+1:] {
		if allEmptyRow(raw) {
			continue
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			v := ""
			if j < len(raw) {
				v = raw[j]
			}
			row[j] = Cell{Header: h, Value: v}
		}
		rows = append(rows, row)
	}
	return headers, rows
}
