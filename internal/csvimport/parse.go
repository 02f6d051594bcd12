// Package csvimport turns WooCommerce product exports into coffee records.
//
// The CSV reader is a character scanner: any bare quote toggles quote
// state, rows may differ in width, and parsing never fails.
package csvimport

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parse splits CSV text into rows of fields. Quoted fields may contain
// commas, newlines and doubled quotes. LF, CR and CRLF all end a row.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		if len(row) > 0 {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			endField()
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endField()
			endRow()
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		endField()
		endRow()
	}
	return rows
}

// Record is one data row keyed by header name.
type Record struct {
	// Index is the position among the non-blank data rows, starting at 0.
	Index  int
	header []string
	values map[string]string
}

// NewRecord zips values against header. Missing trailing cells are "".
func NewRecord(index int, header, values []string) Record {
	m := make(map[string]string, len(header))
	for i, h := range header {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		m[h] = v
	}
	return Record{Index: index, header: header, values: m}
}

// Row is the spreadsheet line a user would look for: the header is line 1,
// so the first data record is line 2.
func (r Record) Row() int {
	return r.Index + 2
}

// Get returns the raw cell for column, or "" when the column is absent.
func (r Record) Get(column string) string {
	return r.values[column]
}

// Header returns the column names in file order.
func (r Record) Header() []string {
	return r.header
}

// Records treats the first row as the header and zips the rest against it.
// Rows whose cells are all blank after trimming are dropped.
func Records(rows [][]string) ([]string, []Record) {
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, NewRecord(len(records), header, row))
	}
	return header, records
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ReadCSV reads an entire CSV export. A leading UTF-8 byte order mark, as
// written by spreadsheet tools, is dropped.
func ReadCSV(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	_, records := Records(Parse(text))
	return records, nil
}

// Read picks the reader from the file extension: .xlsx workbooks go through
// ReadXLSX, everything else is treated as CSV.
func Read(filename string, r io.Reader) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return ReadXLSX(r)
	}
	return ReadCSV(r)
}
