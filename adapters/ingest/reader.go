// Package ingest parses uploaded CSV, Excel and JSON payloads into numeric
// series for the engine.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tsinsight/domain/series"
	"tsinsight/ports"

	"github.com/xuri/excelize/v2"
)

// ReaderFor returns the reader matching a file extension.
func ReaderFor(filename string) (ports.SeriesReader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return &CSVReader{}, nil
	case ".xlsx", ".xls":
		return &ExcelReader{}, nil
	case ".json":
		return &JSONReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// CSVReader parses comma-separated series files.
type CSVReader struct{}

// Read parses CSV rows. A header row is detected by non-numeric cells and
// used for column selection when options name columns.
func (r *CSVReader) Read(src io.Reader, opts ports.ReadOptions) (series.Series, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return series.Series{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return fromRows(rows, opts)
}

// ExcelReader parses the first sheet of an Excel workbook.
type ExcelReader struct{}

func (r *ExcelReader) Read(src io.Reader, opts ports.ReadOptions) (series.Series, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return series.Series{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return series.Series{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return series.Series{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows, opts)
}

// JSONReader parses either a bare JSON array of numbers or an object with a
// "values" array and optional "timestamps".
type JSONReader struct{}

func (r *JSONReader) Read(src io.Reader, _ ports.ReadOptions) (series.Series, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return series.Series{}, err
	}

	var values []float64
	if err := json.Unmarshal(data, &values); err == nil {
		return series.New(values), nil
	}

	var payload struct {
		Values     []float64   `json:"values"`
		Timestamps []time.Time `json:"timestamps"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return series.Series{}, fmt.Errorf("failed to parse JSON series: %w", err)
	}
	if len(payload.Timestamps) == len(payload.Values) && len(payload.Timestamps) > 0 {
		return series.NewWithTimestamps(payload.Values, payload.Timestamps), nil
	}
	return series.New(payload.Values), nil
}

// fromRows converts tabular rows into a series: single column of values, or
// date/value columns selected by header name or position.
func fromRows(rows [][]string, opts ports.ReadOptions) (series.Series, error) {
	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return series.Series{}, fmt.Errorf("no data rows found")
	}

	header, body := splitHeader(rows)

	valueIdx, dateIdx := columnIndexes(header, len(body[0]), opts)
	if valueIdx < 0 {
		return series.Series{}, fmt.Errorf("value column %q not found", opts.ValueColumn)
	}

	values := make([]float64, 0, len(body))
	var timestamps []time.Time
	layout := opts.DateFormat
	if layout == "" {
		layout = "2006-01-02"
	}

	for i, row := range body {
		if valueIdx >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
		if err != nil {
			return series.Series{}, fmt.Errorf("row %d: value %q is not numeric", i+1, row[valueIdx])
		}
		values = append(values, v)

		if dateIdx >= 0 && dateIdx < len(row) {
			if ts, err := time.Parse(layout, strings.TrimSpace(row[dateIdx])); err == nil {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(timestamps) == len(values) && len(timestamps) > 0 {
		return series.NewWithTimestamps(values, timestamps), nil
	}
	return series.New(values), nil
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

// splitHeader treats the first row as a header when none of its cells parse
// as numbers.
func splitHeader(rows [][]string) (header []string, body [][]string) {
	first := rows[0]
	for _, cell := range first {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return nil, rows
		}
	}
	if len(rows) < 2 {
		return nil, rows
	}
	return first, rows[1:]
}

func columnIndexes(header []string, width int, opts ports.ReadOptions) (valueIdx, dateIdx int) {
	valueIdx, dateIdx = -1, -1

	if header != nil {
		for i, name := range header {
			switch {
			case opts.ValueColumn != "" && strings.EqualFold(name, opts.ValueColumn):
				valueIdx = i
			case opts.DateColumn != "" && strings.EqualFold(name, opts.DateColumn):
				dateIdx = i
			}
		}
		if opts.ValueColumn != "" {
			return valueIdx, dateIdx
		}
	}

	// Positional fallback: one column is values; two are date then value.
	switch {
	case width == 1:
		valueIdx = 0
	case width >= 2:
		dateIdx, valueIdx = 0, 1
	}
	return valueIdx, dateIdx
}
