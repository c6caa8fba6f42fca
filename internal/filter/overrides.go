package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// isoDate is accepted next to the ledger layout because date pickers send it.
const isoDate = "2006-01-02"

// Overrides carries user-supplied filter values as text. Empty fields keep
// the corresponding default. Categories replaces the default set whenever
// HasCategories is true, even when it is empty.
type Overrides struct {
	Start, End    string
	Categories    []string
	HasCategories bool
	Min, Max      string
}

// Refine applies o on top of defaults. Dates are parsed with layout or as
// ISO yyyy-mm-dd.
func (o Overrides) Refine(defaults Spec, layout string) (Spec, error) {
	spec := defaults

	start, end := spec.Start, spec.End
	if v := strings.TrimSpace(o.Start); v != "" {
		d, err := ParseDate(layout, v)
		if err != nil {
			return spec, fmt.Errorf("invalid start date %q", v)
		}
		start = d
	}
	if v := strings.TrimSpace(o.End); v != "" {
		d, err := ParseDate(layout, v)
		if err != nil {
			return spec, fmt.Errorf("invalid end date %q", v)
		}
		end = d
	}
	spec = spec.WithDates(start, end)

	if o.HasCategories {
		var cats []string
		for _, c := range o.Categories {
			if c = strings.TrimSpace(c); c != "" {
				cats = append(cats, c)
			}
		}
		spec = spec.WithCategories(cats...)
	}

	lo, hi := spec.MinAmount, spec.MaxAmount
	if v := strings.TrimSpace(o.Min); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return spec, fmt.Errorf("invalid min amount %q", v)
		}
		lo = d
	}
	if v := strings.TrimSpace(o.Max); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return spec, fmt.Errorf("invalid max amount %q", v)
		}
		hi = d
	}
	return spec.WithAmounts(lo, hi), nil
}

// ParseDate parses v with layout, falling back to ISO yyyy-mm-dd.
func ParseDate(layout, v string) (time.Time, error) {
	if d, err := time.Parse(layout, v); err == nil {
		return d, nil
	}
	return time.Parse(isoDate, v)
}
