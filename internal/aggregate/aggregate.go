// Package aggregate computes the summary shapes shown on the dashboard. Every
// function works on an already filtered view and never modifies its input.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/monsTa-b0y/exp-dashboard/pkg/transaction"
)

// DefaultTopN is the number of rows TopN returns when asked for n <= 0.
const DefaultTopN = 10

// Totals holds the money that came in and went out, both non-negative.
type Totals struct {
	Credited decimal.Decimal `json:"credited"`
	Debited  decimal.Decimal `json:"debited"`
}

// Net returns credited minus debited.
func (t Totals) Net() decimal.Decimal {
	return t.Credited.Sub(t.Debited)
}

// Debit is an outgoing transaction annotated with its magnitude.
type Debit struct {
	transaction.Transaction
	AbsAmount decimal.Decimal `json:"abs_amount"`
}

// GroupKey selects the field GroupSum buckets by.
type GroupKey string

const (
	ByTag      GroupKey = "tag"
	ByCategory GroupKey = "category"
)

// Group is one bucket of a grouped sum.
type Group struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Day is the total spent on one calendar date.
type Day struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// ComputeTotals sums positive amounts as credited and the magnitude of
// negative amounts as debited. Zero amounts count towards neither.
func ComputeTotals(rows []transaction.Transaction) Totals {
	totals := Totals{Credited: decimal.Zero, Debited: decimal.Zero}
	for _, t := range rows {
		switch {
		case t.IsCredit():
			totals.Credited = totals.Credited.Add(t.Amount)
		case t.IsDebit():
			totals.Debited = totals.Debited.Sub(t.Amount)
		}
	}
	return totals
}

// DebitsOnly keeps the outgoing rows, in order, with AbsAmount set.
func DebitsOnly(rows []transaction.Transaction) []Debit {
	out := []Debit{}
	for _, t := range rows {
		if !t.IsDebit() {
			continue
		}
		out = append(out, Debit{Transaction: t, AbsAmount: t.Amount.Neg()})
	}
	return out
}

// GroupSum totals AbsAmount per distinct tag or category.
func GroupSum(debits []Debit, key GroupKey) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, d := range debits {
		k := d.Category
		if key == ByTag {
			k = d.Tags
		}
		if cur, ok := sums[k]; ok {
			sums[k] = cur.Add(d.AbsAmount)
		} else {
			sums[k] = d.AbsAmount
		}
	}
	return sums
}

// Sorted orders grouped sums by amount, largest first, then by name.
func Sorted(sums map[string]decimal.Decimal) []Group {
	out := make([]Group, 0, len(sums))
	for name, amount := range sums {
		out = append(out, Group{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DailySum totals AbsAmount per calendar date, ascending. Dates without
// debits are absent rather than zero-filled.
func DailySum(debits []Debit) []Day {
	byDate := make(map[time.Time]decimal.Decimal)
	for _, d := range debits {
		y, m, dd := d.Date.Date()
		k := time.Date(y, m, dd, 0, 0, 0, 0, d.Date.Location())
		if cur, ok := byDate[k]; ok {
			byDate[k] = cur.Add(d.AbsAmount)
		} else {
			byDate[k] = d.AbsAmount
		}
	}

	out := make([]Day, 0, len(byDate))
	for date, amount := range byDate {
		out = append(out, Day{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TopN returns the n largest debits by AbsAmount, largest first. Equal
// amounts keep their original order.
func TopN(debits []Debit, n int) []Debit {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := make([]Debit, len(debits))
	copy(sorted, debits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AbsAmount.GreaterThan(sorted[j].AbsAmount)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Uncategorized returns the debits still carrying the fallback category.
// These are the rows offered for manual correction.
func Uncategorized(debits []Debit, fallback string) []Debit {
	out := []Debit{}
	for _, d := range debits {
		if d.Category == fallback {
			out = append(out, d)
		}
	}
	return out
}
