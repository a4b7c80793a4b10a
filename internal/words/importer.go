package words

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/typelearn/pkg/models"
)

// columnMap maps header cell text to item fields. Word-list spreadsheets in
// the wild carry either Chinese or English headers; both are accepted.
var columnMap = map[string]string{
	"单词":          "text",
	"word":        "text",
	"Word":        "text",
	"音标":          "phonetic",
	"音标①":         "phonetic",
	"phonetic":    "phonetic",
	"翻译":          "meaning",
	"释义":          "meaning",
	"meaning":     "meaning",
	"translation": "meaning",
	"例句":          "example",
	"example":     "example",
}

// ParseFile reads a word-list spreadsheet (xlsx) or CSV into items. The
// first row is the header and drives the column mapping; rows with an empty
// word cell are skipped. Item ids are derived from the book id and row
// number and are only stable within one load pass.
func ParseFile(path, bookID string) ([]models.Item, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return parseCSV(path, bookID)
	}
	return parseExcel(path, bookID)
}

func parseExcel(path, bookID string) ([]models.Item, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return parseRows(rows, bookID)
}

func parseCSV(path, bookID string) ([]models.Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return parseRows(rows, bookID)
}

func parseRows(rows [][]string, bookID string) ([]models.Item, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	indices := headerIndices(rows[0])
	textCol, ok := indices["text"]
	if !ok {
		return nil, fmt.Errorf("no word column found in header")
	}

	var items []models.Item
	for i, row := range rows[1:] {
		text := cell(row, textCol)
		if text == "" {
			continue
		}
		item := models.Item{
			ID:   fmt.Sprintf("%s-%d", bookID, i+1),
			Text: text,
		}
		if col, ok := indices["meaning"]; ok {
			item.Meaning = cell(row, col)
		}
		if col, ok := indices["phonetic"]; ok {
			item.Phonetic = cell(row, col)
		}
		if col, ok := indices["example"]; ok {
			item.Example = cell(row, col)
		}
		items = append(items, item)
	}
	return items, nil
}

func headerIndices(header []string) map[string]int {
	indices := make(map[string]int)
	for i, h := range header {
		if field, ok := columnMap[strings.TrimSpace(h)]; ok {
			if _, seen := indices[field]; !seen {
				indices[field] = i
			}
		}
	}
	return indices
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// CountRows returns the number of data rows (excluding the header) without
// building items, so book sizes can be shown before content is loaded.
func CountRows(path string) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		file, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		count := 0
		for {
			_, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return 0, fmt.Errorf("error reading CSV: %w", err)
			}
			count++
		}
		if count > 0 {
			count--
		}
		return count, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return len(rows) - 1, nil
}
