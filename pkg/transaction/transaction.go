package transaction

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a single row of an uploaded ledger
type Transaction struct {
	ID       int             `json:"row_id"` // source row index, stable for the ledger's lifetime
	Date     time.Time       `json:"date"`
	Details  string          `json:"details"`
	Amount   decimal.Decimal `json:"amount"`
	Tags     string          `json:"tags"`
	Category string          `json:"category"`
}

// IsCredit reports whether money came in.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// IsDebit reports whether money went out.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// Ledger holds the ordered transactions of one uploaded file
type Ledger struct {
	ID           uuid.UUID     `json:"id"`
	Source       string        `json:"source"`
	LoadedAt     time.Time     `json:"loaded_at"`
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}

// NewLedger creates an empty ledger with a fresh identity
func NewLedger(source string) *Ledger {
	return &Ledger{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: time.Now(),
	}
}

// AddTransaction appends a transaction to the ledger
func (l *Ledger) AddTransaction(t Transaction) {
	l.Transactions = append(l.Transactions, t)
	l.Total = len(l.Transactions)
}

// GetByCategory returns all transactions matching the given category
func (l *Ledger) GetByCategory(category string) []Transaction {
	var filtered []Transaction
	for _, t := range l.Transactions {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Get returns the transaction with the given row id.
func (l *Ledger) Get(rowID int) (Transaction, bool) {
	i, ok := l.index(rowID)
	if !ok {
		return Transaction{}, false
	}
	return l.Transactions[i], true
}

// SetCategory overwrites the category of one row in place. It reports false
// when the row does not exist.
func (l *Ledger) SetCategory(rowID int, category string) bool {
	i, ok := l.index(rowID)
	if !ok {
		return false
	}
	l.Transactions[i].Category = category
	return true
}

// Categories returns the distinct categories present in the ledger, sorted.
func (l *Ledger) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range l.Transactions {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of rows.
func (l *Ledger) Len() int {
	return len(l.Transactions)
}

// Rows returns a copy of the transactions so callers can filter and sort
// without touching the held ledger.
func (l *Ledger) Rows() []Transaction {
	out := make([]Transaction, len(l.Transactions))
	copy(out, l.Transactions)
	return out
}

func (l *Ledger) index(rowID int) (int, bool) {
	// Row ids equal the load position; the lookup falls back to a scan in case
	// a ledger was assembled out of order.
	if rowID >= 0 && rowID < len(l.Transactions) && l.Transactions[rowID].ID == rowID {
		return rowID, true
	}
	for i, t := range l.Transactions {
		if t.ID == rowID {
			return i, true
		}
	}
	return 0, false
}
