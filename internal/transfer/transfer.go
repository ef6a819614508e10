// Package transfer imports and exports word lists as CSV or XLSX files.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/at-ishikawa/vocato/internal/word"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Columns is the column order of every file this package reads and writes.
var Columns = []string{"term", "meaning", "memo", "synonyms"}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// WordAdder validates and stores a new word. word.Service implements it.
type WordAdder interface {
	Add(ctx context.Context, in word.Input) (*word.Word, error)
}

// RowError is a row that could not be imported. Row is 1-based as shown by spreadsheet tools.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []RowError
}

// isHeader reports whether the first row names the columns rather than holding a word.
func isHeader(row []string) bool {
	joined := strings.ToLower(strings.Join(row, ","))
	return strings.Contains(joined, "term") && strings.Contains(joined, "meaning")
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportRows adds one word per row. Blank rows and rows with fewer than two columns are skipped.
// A row rejected by the adder is reported and the import continues.
func ImportRows(ctx context.Context, adder WordAdder, rows [][]string) *ImportResult {
	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}
		if len(row) < 2 {
			result.Skipped++
			continue
		}

		in := word.Input{Term: row[0], Meaning: row[1]}
		if len(row) > 2 {
			in.Memo = row[2]
		}
		if len(row) > 3 {
			in.Synonyms = row[3]
		}
		if _, err := adder.Add(ctx, in); err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Err: err})
			continue
		}
		result.Imported++
	}
	return result
}

// Import reads the file at path and adds its words.
func Import(ctx context.Context, adder WordAdder, path string) (*ImportResult, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = readCSVFile(path)
	case FormatXLSX:
		rows, err = readXLSXFile(path)
	}
	if err != nil {
		return nil, err
	}
	return ImportRows(ctx, adder, rows), nil
}

func exportRows(words []*word.Word) [][]string {
	rows := make([][]string, 0, len(words)+1)
	rows = append(rows, Columns)
	for _, w := range words {
		rows = append(rows, []string{w.Term, w.Meaning, w.Memo, w.Synonyms})
	}
	return rows
}

// Export writes every word, oldest first, to path and returns how many were written.
func Export(ctx context.Context, store word.Store, path string) (int, error) {
	format, err := FormatOf(path)
	if err != nil {
		return 0, err
	}

	words, err := store.Fetch(ctx, word.Query{Sort: []word.SortKey{{Column: word.ColumnCreatedAt}}})
	if err != nil {
		return 0, fmt.Errorf("store.Fetch() > %w", err)
	}

	rows := exportRows(words)
	switch format {
	case FormatCSV:
		err = writeCSVFile(path, rows)
	case FormatXLSX:
		err = writeXLSXFile(path, rows)
	}
	if err != nil {
		return 0, err
	}
	return len(words), nil
}
