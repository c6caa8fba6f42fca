// Package corrections applies user-chosen categories to ledger rows.
package corrections

import (
	"errors"
	"fmt"

	"github.com/monsTa-b0y/exp-dashboard/pkg/transaction"
)

var (
	ErrUnknownRow      = errors.New("unknown row")
	ErrInvalidCategory = errors.New("invalid category")
)

// Correction moves one row, identified by its load-time row id, to a new
// category.
type Correction struct {
	RowID    int    `json:"row_id"`
	Category string `json:"category"`
}

// Result counts what a batch did.
type Result struct {
	Applied int `json:"applied"`
	Ignored int `json:"ignored"`
}

// Taxonomy is the closed set of assignable categories.
type Taxonomy interface {
	Valid(category string) bool
	Fallback() string
}

// Store writes corrections into a held ledger.
type Store struct {
	ledger   *transaction.Ledger
	taxonomy Taxonomy
}

// NewStore returns a store bound to one ledger.
func NewStore(ledger *transaction.Ledger, taxonomy Taxonomy) *Store {
	return &Store{ledger: ledger, taxonomy: taxonomy}
}

// Apply validates the whole batch and then applies it. Entries that set the
// fallback category are ignored. An unknown row or a category outside the
// taxonomy rejects the batch and leaves the ledger untouched.
func (s *Store) Apply(batch []Correction) (Result, error) {
	fallback := s.taxonomy.Fallback()

	for _, c := range batch {
		if c.Category == fallback {
			continue
		}
		if _, ok := s.ledger.Get(c.RowID); !ok {
			return Result{}, fmt.Errorf("row %d: %w", c.RowID, ErrUnknownRow)
		}
		if !s.taxonomy.Valid(c.Category) {
			return Result{}, fmt.Errorf("row %d: %w %q", c.RowID, ErrInvalidCategory, c.Category)
		}
	}

	var res Result
	for _, c := range batch {
		if c.Category == fallback {
			res.Ignored++
			continue
		}
		s.ledger.SetCategory(c.RowID, c.Category)
		res.Applied++
	}
	return res, nil
}
