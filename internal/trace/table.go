// internal/trace/table.go
package trace

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ComponentColumn is the header name of the column identifying which
// software component produced a row.
const ComponentColumn = "component"

// Table is a trace file loaded into memory: a header and its data rows in
// source order. A Table is never mutated after Load; Subset returns a new one.
type Table struct {
	Header []string
	Rows   [][]string

	componentIdx int
}

// Load reads the delimited file at path. It returns a *DataFormatError when
// the file cannot be parsed as CSV or has no component column.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataFormatError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, &DataFormatError{Path: path, Err: err}
	}
	return t, nil
}

// Read parses a trace table from r. The first record is the header.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	header := records[0]
	idx := -1
	for i, name := range header {
		// Some exporters prefix the file with a UTF-8 byte order mark.
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == ComponentColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("missing %q column", ComponentColumn)
	}

	return &Table{Header: header, Rows: records[1:], componentIdx: idx}, nil
}

// Count returns the number of rows whose component equals name.
func (t *Table) Count(name string) int {
	n := 0
	for _, row := range t.Rows {
		if row[t.componentIdx] == name {
			n++
		}
	}
	return n
}

// Subset returns a table holding only the rows produced by component name.
// The header and the relative row order are preserved.
func (t *Table) Subset(name string) *Table {
	sub := &Table{Header: t.Header, componentIdx: t.componentIdx}
	for _, row := range t.Rows {
		if row[t.componentIdx] == name {
			sub.Rows = append(sub.Rows, row)
		}
	}
	return sub
}

// Column returns the index of the named header column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Encode writes the table as CSV, header first.
func (t *Table) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Save writes the table to path, replacing any existing file. The content is
// encoded before the file is touched so an encoding failure never leaves a
// truncated output behind.
func (t *Table) Save(path string) error {
	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
