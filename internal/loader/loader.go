// Package loader turns an uploaded transactions file into typed rows.
//
// Validation is limited to the presence of the required columns and the
// parseability of the Date and Amount cells. Any failure rejects the whole
// file; no partial result is returned.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/monsTa-b0y/exp-dashboard/internal/config"
)

// Column names expected in the header row.
const (
	ColumnDate    = "Date"
	ColumnDetails = "Transaction Details"
	ColumnAmount  = "Amount"
	ColumnTags    = "Tags"
)

// RequiredColumns lists the columns every upload must carry.
var RequiredColumns = []string{ColumnDate, ColumnDetails, ColumnAmount, ColumnTags}

// RawRow is one parsed source row. Tags are kept exactly as uploaded.
type RawRow struct {
	Index   int
	Date    time.Time
	Details string
	Amount  decimal.Decimal
	Tags    string
}

// Loader parses tabular input using a fixed day/month/year date layout.
type Loader struct {
	layout string
}

// New returns a loader for the given Go date layout. An empty layout selects
// the default day/month/year one.
func New(layout string) *Loader {
	if layout == "" {
		layout = config.DefaultDateLayout
	}
	return &Loader{layout: layout}
}

// ReadCSV parses a CSV stream whose first record is the header.
func (l *Loader) ReadCSV(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	return l.Load(header, records)
}

// Load validates the header and converts every record.
func (l *Loader) Load(header []string, records [][]string) ([]RawRow, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	rows := make([]RawRow, 0, len(records))
	for i, rec := range records {
		cell := func(name string) string {
			idx := cols[name]
			if idx >= len(rec) {
				return ""
			}
			return rec[idx]
		}
		line := i + 2

		rawDate := strings.TrimSpace(cell(ColumnDate))
		date, err := time.Parse(l.layout, rawDate)
		if err != nil {
			return nil, &FormatError{
				Column:   ColumnDate,
				Line:     line,
				Value:    rawDate,
				Expected: l.ExpectedDateFormat(),
				Err:      err,
			}
		}

		rawAmount := strings.TrimSpace(cell(ColumnAmount))
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, &FormatError{
				Column:   ColumnAmount,
				Line:     line,
				Value:    rawAmount,
				Expected: "signed decimal",
				Err:      err,
			}
		}

		rows = append(rows, RawRow{
			Index:   i,
			Date:    date,
			Details: cell(ColumnDetails),
			Amount:  amount,
			Tags:    cell(ColumnTags),
		})
	}

	return rows, nil
}

// ExpectedDateFormat describes the date layout for error messages.
func (l *Loader) ExpectedDateFormat() string {
	if l.layout == config.DefaultDateLayout {
		return "dd/mm/yyyy"
	}
	return l.layout
}
