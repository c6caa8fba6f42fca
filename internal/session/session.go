// Package session holds the ledger of one dashboard session and recomputes
// every view from it on demand.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/monsTa-b0y/exp-dashboard/internal/aggregate"
	"github.com/monsTa-b0y/exp-dashboard/internal/categorizer"
	"github.com/monsTa-b0y/exp-dashboard/internal/corrections"
	"github.com/monsTa-b0y/exp-dashboard/internal/filter"
	"github.com/monsTa-b0y/exp-dashboard/internal/loader"
	"github.com/monsTa-b0y/exp-dashboard/pkg/transaction"
)

var (
	ErrNoLedger    = errors.New("no ledger loaded")
	ErrStaleLedger = errors.New("ledger was replaced")
)

// Dashboard is one full recomputation over the held ledger.
type Dashboard struct {
	LedgerID      uuid.UUID                 `json:"ledger_id"`
	Filter        filter.Spec               `json:"filter"`
	Rows          []transaction.Transaction `json:"rows"`
	Totals        aggregate.Totals          `json:"totals"`
	ByTag         []aggregate.Group         `json:"by_tag"`
	ByCategory    []aggregate.Group         `json:"by_category"`
	Daily         []aggregate.Day           `json:"daily"`
	Top           []aggregate.Debit         `json:"top"`
	Uncategorized []aggregate.Debit         `json:"uncategorized"`
}

// Session is the explicit state handle threaded through every interaction.
// The host keeps one per user session.
type Session struct {
	mu          sync.Mutex
	ledger      *transaction.Ledger
	loader      *loader.Loader
	categorizer *categorizer.Categorizer
	topN        int
	log         zerolog.Logger
}

// New creates an empty session.
func New(l *loader.Loader, c *categorizer.Categorizer, topN int, log zerolog.Logger) *Session {
	if topN <= 0 {
		topN = aggregate.DefaultTopN
	}
	return &Session{
		loader:      l,
		categorizer: c,
		topN:        topN,
		log:         log.With().Str("component", "session").Logger(),
	}
}

// Build runs load, categorize and normalize over a CSV stream and returns a
// fresh ledger without touching any session.
func Build(l *loader.Loader, c *categorizer.Categorizer, source string, r io.Reader) (*transaction.Ledger, error) {
	raw, err := l.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	ledger := transaction.NewLedger(source)
	for _, row := range raw {
		ledger.AddTransaction(transaction.Transaction{
			ID:       row.Index,
			Date:     row.Date,
			Details:  row.Details,
			Amount:   row.Amount,
			Tags:     loader.NormalizeTags(row.Tags),
			Category: c.Categorize(row.Details, row.Tags),
		})
	}
	return ledger, nil
}

// Summary describes the held ledger without exposing it.
type Summary struct {
	LedgerID      uuid.UUID   `json:"ledger_id"`
	Source        string      `json:"source"`
	Rows          int         `json:"rows"`
	Uncategorized int         `json:"uncategorized"`
	Filters       filter.Spec `json:"filters"`
	Categories    []string    `json:"categories"`
}

// Refine narrows the default filter of the held ledger. It runs under the
// session lock, so the defaults it sees belong to the ledger being viewed.
type Refine func(defaults filter.Spec) (filter.Spec, error)

// Upload replaces the held ledger with the parsed file. On error the
// previous ledger stays in place.
func (s *Session) Upload(source string, r io.Reader) (Summary, error) {
	ledger, err := Build(s.loader, s.categorizer, source, r)
	if err != nil {
		s.log.Warn().Err(err).Str("source", source).Msg("upload rejected")
		return Summary{}, err
	}

	s.mu.Lock()
	s.ledger = ledger
	sum := s.summary()
	s.mu.Unlock()

	s.log.Info().
		Str("ledger_id", sum.LedgerID.String()).
		Str("source", source).
		Int("rows", sum.Rows).
		Int("uncategorized", sum.Uncategorized).
		Msg("ledger loaded")
	return sum, nil
}

// Summary reports the held ledger's identity, size and default filter.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return Summary{}, ErrNoLedger
	}
	return s.summary(), nil
}

func (s *Session) summary() Summary {
	return Summary{
		LedgerID:      s.ledger.ID,
		Source:        s.ledger.Source,
		Rows:          s.ledger.Len(),
		Uncategorized: len(s.ledger.GetByCategory(s.categorizer.Fallback())),
		Filters:       filter.Defaults(s.ledger),
		Categories:    s.categorizer.Categories(),
	}
}

// Snapshot returns a copy of the held ledger, or nil. Later corrections do
// not show through the copy.
func (s *Session) Snapshot() *transaction.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return nil
	}
	cp := *s.ledger
	cp.Transactions = s.ledger.Rows()
	return &cp
}

// Categorizer returns the categorizer used for uploads.
func (s *Session) Categorizer() *categorizer.Categorizer {
	return s.categorizer
}

// View filters the held ledger and computes every aggregate over the result.
// A nil refine keeps the ledger defaults. topN <= 0 uses the session default.
// Errors returned by refine are passed through unchanged.
func (s *Session) View(refine Refine, topN int) (Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return Dashboard{}, ErrNoLedger
	}

	spec := filter.Defaults(s.ledger)
	if refine != nil {
		var err error
		if spec, err = refine(spec); err != nil {
			return Dashboard{}, err
		}
	}
	if topN <= 0 {
		topN = s.topN
	}
	return compute(s.ledger, spec, topN, s.categorizer.Fallback()), nil
}

// Correct applies a correction batch to the held ledger. ledgerID must name
// the ledger the batch was built against.
func (s *Session) Correct(ledgerID uuid.UUID, batch []corrections.Correction) (corrections.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return corrections.Result{}, ErrNoLedger
	}
	if ledgerID != s.ledger.ID {
		return corrections.Result{}, fmt.Errorf("batch for %s: %w", ledgerID, ErrStaleLedger)
	}

	res, err := corrections.NewStore(s.ledger, s.categorizer).Apply(batch)
	if err != nil {
		s.log.Warn().Err(err).Str("ledger_id", ledgerID.String()).Msg("correction batch rejected")
		return res, err
	}
	s.log.Info().
		Str("ledger_id", ledgerID.String()).
		Int("applied", res.Applied).
		Int("ignored", res.Ignored).
		Msg("corrections applied")
	return res, nil
}

// Compute builds a dashboard over any ledger. It is the same pass View runs.
func Compute(l *transaction.Ledger, spec filter.Spec, topN int, fallback string) Dashboard {
	return compute(l, spec, topN, fallback)
}

func compute(l *transaction.Ledger, spec filter.Spec, topN int, fallback string) Dashboard {
	rows := filter.Apply(l.Transactions, spec)
	debits := aggregate.DebitsOnly(rows)
	return Dashboard{
		LedgerID:      l.ID,
		Filter:        spec,
		Rows:          rows,
		Totals:        aggregate.ComputeTotals(rows),
		ByTag:         aggregate.Sorted(aggregate.GroupSum(debits, aggregate.ByTag)),
		ByCategory:    aggregate.Sorted(aggregate.GroupSum(debits, aggregate.ByCategory)),
		Daily:         aggregate.DailySum(debits),
		Top:           aggregate.TopN(debits, topN),
		Uncategorized: aggregate.Uncategorized(debits, fallback),
	}
}
