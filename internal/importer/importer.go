// Package importer provides CSV and Excel import of order backlogs.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/MillPool/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Orders   []model.Order
	Errors   []string
	Warnings []string
}

// OK reports whether at least one order was imported.
func (r ImportResult) OK() bool {
	return len(r.Orders) > 0
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID      int
	Number  int
	Client  int
	DueDate int
	Facade  int
	Area    int
	Milled  int
	Shipped int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":      {"id", "uid"},
	"number":  {"number", "order", "order number", "order no", "no", "#", "order_id"},
	"client":  {"client", "customer", "name"},
	"due":     {"due", "due date", "due_date", "deadline", "date"},
	"facade":  {"facade", "facade type", "facade_type", "type"},
	"area":    {"area", "m2", "m²", "sqm", "area m2"},
	"milled":  {"milled", "milling", "milling done"},
	"shipped": {"shipped", "shipment", "shipped out"},
}

// dateLayouts are tried in order when parsing a due date.
var dateLayouts = []string{"2006-01-02", "02.01.2006", "01/02/2006", "2006/01/02"}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping Number, Client, DueDate, Facade, Area and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, Number: -1, Client: -1, DueDate: -1, Facade: -1, Area: -1, Milled: -1, Shipped: -1}
	roles := map[string]*int{
		"id":      &mapping.ID,
		"number":  &mapping.Number,
		"client":  &mapping.Client,
		"due":     &mapping.DueDate,
		"facade":  &mapping.Facade,
		"area":    &mapping.Area,
		"milled":  &mapping.Milled,
		"shipped": &mapping.Shipped,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *roles[role] == -1 {
					*roles[role] = i
					isHeader = true
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: -1, Number: 0, Client: 1, DueDate: 2, Facade: 3, Area: 4, Milled: -1, Shipped: -1}, false
	}
	return mapping, true
}

// ParseDate parses a due date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Date(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseArea accepts both decimal points and decimal commas.
func parseArea(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// parseBool recognizes common yes/no spellings.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "x", "+", "done":
		return true, true
	case "", "0", "false", "no", "n", "-":
		return false, true
	default:
		return false, false
	}
}

// normalizeFacade maps known spellings to the canonical facade types.
func normalizeFacade(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "milled", "фрезерованный":
		return model.FacadeMilled
	case "flat", "плоский":
		return model.FacadeFlat
	case "veneer", "шпон":
		return model.FacadeVeneer
	}
	return v
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an Order from a row using the given column mapping.
// Returns the order, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, orderCount int) (model.Order, string, string) {
	number := getCell(row, mapping.Number)
	if number == "" {
		number = fmt.Sprintf("%d", orderCount+1)
	}

	dueStr := getCell(row, mapping.DueDate)
	if dueStr == "" {
		return model.Order{}, fmt.Sprintf("%s: Missing due date", rowLabel), ""
	}
	due, err := ParseDate(dueStr)
	if err != nil {
		return model.Order{}, fmt.Sprintf("%s: Invalid due date '%s'", rowLabel, dueStr), ""
	}

	facade := normalizeFacade(getCell(row, mapping.Facade))
	if facade == "" {
		return model.Order{}, fmt.Sprintf("%s: Missing facade type", rowLabel), ""
	}

	var warnings []string
	var area float64
	areaStr := getCell(row, mapping.Area)
	if areaStr == "" {
		warnings = append(warnings, fmt.Sprintf("%s: No area, order will not be pooled", rowLabel))
	} else {
		area, err = parseArea(areaStr)
		if err != nil {
			return model.Order{}, fmt.Sprintf("%s: Invalid area '%s'", rowLabel, areaStr), ""
		}
		if area <= 0 {
			return model.Order{}, fmt.Sprintf("%s: Area must be positive", rowLabel), ""
		}
	}

	order := model.NewOrder(number, getCell(row, mapping.Client), due, facade, area)
	if id := getCell(row, mapping.ID); id != "" {
		order.ID = id
	}

	for _, flag := range []struct {
		idx  int
		name string
		dst  *bool
	}{
		{mapping.Milled, "milled", &order.MillingDone},
		{mapping.Shipped, "shipped", &order.Shipped},
	} {
		v := getCell(row, flag.idx)
		if v == "" {
			continue
		}
		b, ok := parseBool(v)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown %s value '%s', defaulting to no", rowLabel, flag.name, v))
		}
		*flag.dst = b
	}

	return order, "", strings.Join(warnings, "; ")
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports orders from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports orders from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports orders from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into orders.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.DueDate == -1 {
			missing = append(missing, "Due date")
		}
		if mapping.Facade == -1 {
			missing = append(missing, "Facade type")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := ParseDate(getCell(rows[0], mapping.DueDate)); err != nil {
		// Unrecognized header: skip it but keep the positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		order, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Orders))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Orders = append(result.Orders, order)
	}

	return result
}
