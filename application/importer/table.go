package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// Record is one data row keyed by header column.
type Record struct {
	line   int
	fields map[string]string
}

// NewRecord creates a Record from a column to value map.
func NewRecord(line int, fields map[string]string) Record {
	return Record{line: line, fields: fields}
}

// Line returns the 1-based line the row starts on.
func (r Record) Line() int { return r.line }

// Get returns the raw value of column, or "" when the row has no such cell.
func (r Record) Get(column string) string { return r.fields[column] }

// table streams the rows of one CSV file.
type table struct {
	file   *os.File
	reader *csv.Reader
	header []string
}

// openTable opens path and reads its header. Header names are trimmed and
// lower-cased. Every column in required must be present.
func openTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.Comma = ','
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, fmt.Errorf("read header of %s: %w", path, ErrEmptyFile)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[i] = strings.ToLower(strings.TrimSpace(name))
		present[columns[i]] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w in %s: %s", ErrMissingColumn, path, strings.Join(missing, ", "))
	}

	return &table{file: f, reader: r, header: columns}, nil
}

// next returns the next row. It returns io.EOF after the last row. A
// *csv.ParseError means only the current row is malformed; reading can
// continue.
func (t *table) next() (Record, error) {
	cells, err := t.reader.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return Record{line: parseErr.StartLine}, err
		}
		return Record{}, err
	}

	line, _ := t.reader.FieldPos(0)
	fields := make(map[string]string, len(t.header))
	for i, col := range t.header {
		if i < len(cells) {
			fields[col] = cells[i]
		} else {
			fields[col] = ""
		}
	}
	return Record{line: line, fields: fields}, nil
}

func (t *table) close() error {
	return t.file.Close()
}
