package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

var errNoHeaders = errors.New("dataset has no headers")

// Dataset is tabular export content. Rows are keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Records flattens the rows in header order. Missing cells are empty.
func (d Dataset) Records() ([][]string, error) {
	if len(d.Headers) == 0 {
		return nil, errNoHeaders
	}
	records := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make([]string, len(d.Headers))
		for i, header := range d.Headers {
			record[i] = row[header]
		}
		records = append(records, record)
	}
	return records, nil
}

// CSVOption customises the CSV dialect.
type CSVOption func(*CSVExporter)

// WithSeparator switches the field separator, e.g. ';' for locales that use a decimal comma.
func WithSeparator(sep rune) CSVOption {
	return func(e *CSVExporter) { e.comma = sep }
}

// WithCRLF terminates lines with \r\n, which some spreadsheet imports expect.
func WithCRLF() CSVOption {
	return func(e *CSVExporter) { e.crlf = true }
}

// CSVExporter renders datasets as CSV.
type CSVExporter struct {
	comma rune
	crlf  bool
}

// NewCSVExporter builds a CSV exporter; the default dialect is comma separated with \n.
func NewCSVExporter(opts ...CSVOption) *CSVExporter {
	e := &CSVExporter{comma: ','}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render writes the header line followed by one record per row.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	records, err := data.Records()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	writer.Comma = e.comma
	writer.UseCRLF = e.crlf
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
