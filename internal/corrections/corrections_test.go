package corrections

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monsTa-b0y/exp-dashboard/internal/categorizer"
	"github.com/monsTa-b0y/exp-dashboard/internal/config"
	"github.com/monsTa-b0y/exp-dashboard/pkg/transaction"
)

func ledger() *transaction.Ledger {
	l := transaction.NewLedger("")
	for i, c := range []string{"Food and Dining", "Other", "Other", "Other"} {
		l.AddTransaction(transaction.Transaction{ID: i, Amount: decimal.NewFromInt(-10), Category: c})
	}
	return l
}

func taxonomy() Taxonomy {
	return categorizer.FromConfig(config.Default())
}

func categories(l *transaction.Ledger) []string {
	out := make([]string, l.Len())
	for i, t := range l.Transactions {
		out[i] = t.Category
	}
	return out
}

func TestApply(t *testing.T) {
	l := ledger()
	s := NewStore(l, taxonomy())

	res, err := s.Apply([]Correction{
		{RowID: 3, Category: "Shopping"},
		{RowID: 1, Category: "Fuel"},
	})
	require.NoError(t, err)

	assert.Equal(t, Result{Applied: 2}, res)
	assert.Equal(t, []string{"Food and Dining", "Fuel", "Other", "Shopping"}, categories(l))
}

func TestApply_SettingOtherIsIgnored(t *testing.T) {
	l := ledger()
	before := categories(l)

	res, err := NewStore(l, taxonomy()).Apply([]Correction{
		{RowID: 0, Category: "Other"},
		{RowID: 2, Category: "Other"},
	})
	require.NoError(t, err)

	assert.Equal(t, Result{Ignored: 2}, res)
	assert.Equal(t, before, categories(l))
}

func TestApply_UnknownRowRejectsBatch(t *testing.T) {
	l := ledger()
	before := categories(l)

	_, err := NewStore(l, taxonomy()).Apply([]Correction{
		{RowID: 1, Category: "Fuel"},
		{RowID: 42, Category: "Fuel"},
	})

	assert.True(t, errors.Is(err, ErrUnknownRow))
	assert.Equal(t, before, categories(l))
}

func TestApply_InvalidCategoryRejectsBatch(t *testing.T) {
	l := ledger()
	before := categories(l)

	_, err := NewStore(l, taxonomy()).Apply([]Correction{
		{RowID: 1, Category: "Fuel"},
		{RowID: 2, Category: "Crypto"},
	})

	assert.True(t, errors.Is(err, ErrInvalidCategory))
	assert.Contains(t, err.Error(), "Crypto")
	assert.Equal(t, before, categories(l))
}

func TestApply_EmptyBatch(t *testing.T) {
	res, err := NewStore(ledger(), taxonomy()).Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}
