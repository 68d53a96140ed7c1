package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var errNoHeaders = errors.New("csv requires at least one header")

// CSVExporter writes datasets as comma separated values in header order.
// Styling hints such as tiers and highlighted rows have no CSV form and are dropped.
type CSVExporter struct {
	// CRLF switches line endings to \r\n for spreadsheet tools that expect them.
	CRLF bool
}

// NewCSVExporter builds a CSV exporter with \n line endings.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render returns the encoded dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the header line followed by one record per row.
func (e *CSVExporter) Write(w io.Writer, data Dataset) error {
	if len(data.Headers) == 0 {
		return errNoHeaders
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = e.CRLF

	records := make([][]string, 0, len(data.Rows)+1)
	records = append(records, data.Headers)
	for i := range data.Rows {
		records = append(records, data.Record(i))
	}
	// WriteAll flushes and reports the first write error.
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}
