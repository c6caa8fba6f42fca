// Package filter selects the subsequence of a ledger matching a date range,
// a category set and an amount range.
package filter

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/monsTa-b0y/exp-dashboard/pkg/transaction"
)

// Spec is a conjunctive filter. Both ranges are inclusive and dates compare
// at calendar-day granularity. An empty Categories slice selects nothing.
type Spec struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Categories []string        `json:"categories"`
	MinAmount  decimal.Decimal `json:"min_amount"`
	MaxAmount  decimal.Decimal `json:"max_amount"`
}

// Defaults derives the widest filter for a ledger: its own date and amount
// bounds and every category it currently holds.
func Defaults(l *transaction.Ledger) Spec {
	spec := Spec{Categories: l.Categories()}
	if spec.Categories == nil {
		spec.Categories = []string{}
	}
	for i, t := range l.Transactions {
		day := truncate(t.Date)
		if i == 0 {
			spec.Start, spec.End = day, day
			spec.MinAmount, spec.MaxAmount = t.Amount, t.Amount
			continue
		}
		if day.Before(spec.Start) {
			spec.Start = day
		}
		if day.After(spec.End) {
			spec.End = day
		}
		if t.Amount.LessThan(spec.MinAmount) {
			spec.MinAmount = t.Amount
		}
		if t.Amount.GreaterThan(spec.MaxAmount) {
			spec.MaxAmount = t.Amount
		}
	}
	return spec
}

// WithDates returns a copy of s with the date range replaced.
func (s Spec) WithDates(start, end time.Time) Spec {
	s.Start, s.End = start, end
	return s
}

// WithCategories returns a copy of s selecting only the given categories.
func (s Spec) WithCategories(categories ...string) Spec {
	s.Categories = append([]string{}, categories...)
	return s
}

// WithAmounts returns a copy of s with the amount range replaced.
func (s Spec) WithAmounts(min, max decimal.Decimal) Spec {
	s.MinAmount, s.MaxAmount = min, max
	return s
}

// Apply returns the rows satisfying every predicate of spec, in their
// original order. rows is not modified.
func Apply(rows []transaction.Transaction, spec Spec) []transaction.Transaction {
	out := []transaction.Transaction{}
	if len(spec.Categories) == 0 {
		return out
	}

	selected := make(map[string]bool, len(spec.Categories))
	for _, c := range spec.Categories {
		selected[c] = true
	}
	start, end := truncate(spec.Start), truncate(spec.End)

	for _, t := range rows {
		day := truncate(t.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		if !selected[t.Category] {
			continue
		}
		if t.Amount.LessThan(spec.MinAmount) || t.Amount.GreaterThan(spec.MaxAmount) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// truncate drops the time of day, keeping the calendar date in the value's
// own location.
func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
