package catalog

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

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("unsupported catalog file format")

// ErrMissingColumn is returned when the header row lacks a required column.
var ErrMissingColumn = errors.New("required column missing")

// Header names recognised in the first row, compared case-insensitively.
var columnAliases = map[string]string{
	"word":        "word",
	"english":     "word",
	"translation": "translation",
	"chinese":     "translation",
	"zh":          "translation",
	"sentence":    "sentence",
	"example":     "sentence",
	"sentence_zh": "sentence_zh",
	"image_url":   "image_url",
	"image":       "image_url",
	"audio_url":   "audio_url",
	"audio":       "audio_url",
	"level":       "level",
	"category":    "category",
	"topic":       "category",
}

// RowError describes a data row that could not be turned into an Entry.
// Row is the 1-based row number as shown by spreadsheet tools.
type RowError struct {
	Row     int
	Message string
}

// Sheet is the parsed content of a catalog file.
type Sheet struct {
	Entries []Entry
	Errors  []RowError
}

// ReadFile parses a catalog file, choosing the format from its extension.
// sheetName selects the worksheet of an xlsx file; empty means the first.
func ReadFile(path, sheetName string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, sheetName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadXLSX parses a workbook.
func ReadXLSX(r io.Reader, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	return parseRows(rows)
}

// ReadCSV parses comma-separated text with a header row.
func ReadCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (*Sheet, error) {
	if len(rows) == 0 {
		return &Sheet{Entries: []Entry{}}, nil
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			if _, seen := columns[canonical]; !seen {
				columns[canonical] = i
			}
		}
	}
	for _, required := range []string{"word", "translation"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	sheet := &Sheet{Entries: make([]Entry, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		optional := func(name string) *string {
			if v := cell(name); v != "" {
				return &v
			}
			return nil
		}

		if isBlank(row) {
			continue
		}
		entry := Entry{
			Word:        cell("word"),
			Translation: cell("translation"),
			Sentence:    optional("sentence"),
			SentenceZh:  optional("sentence_zh"),
			ImageURL:    optional("image_url"),
			AudioURL:    optional("audio_url"),
			Level:       cell("level"),
			Category:    cell("category"),
		}
		switch {
		case entry.Word == "":
			sheet.Errors = append(sheet.Errors, RowError{Row: rowNum, Message: "word is empty"})
		case entry.Translation == "":
			sheet.Errors = append(sheet.Errors, RowError{Row: rowNum, Message: "translation is empty"})
		default:
			sheet.Entries = append(sheet.Entries, entry)
		}
	}
	return sheet, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
