package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monsTa-b0y/exp-dashboard/pkg/transaction"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rows() []transaction.Transaction {
	at := func(day, hour int) time.Time {
		return time.Date(2024, time.January, day, hour, 0, 0, 0, time.UTC)
	}
	return []transaction.Transaction{
		{ID: 0, Date: at(1, 0), Amount: d("-200"), Tags: "food", Category: "Food and Dining"},
		{ID: 1, Date: at(2, 0), Amount: d("5000"), Tags: "salary", Category: "Money Received"},
		{ID: 2, Date: at(2, 9), Amount: d("-49.50"), Tags: "groceries", Category: "Groceries"},
		{ID: 3, Date: at(2, 18), Amount: d("-300"), Tags: "", Category: "Other"},
		{ID: 4, Date: at(4, 0), Amount: d("0"), Tags: "refund", Category: "Other"},
		{ID: 5, Date: at(7, 0), Amount: d("-300"), Tags: "food", Category: "Food and Dining"},
		{ID: 6, Date: at(7, 0), Amount: d("12.25"), Tags: "cashback", Category: "Other"},
	}
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(rows())

	assert.Equal(t, "5012.25", totals.Credited.String())
	assert.Equal(t, "849.5", totals.Debited.String())
	assert.Equal(t, "4162.75", totals.Net().String())
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Credited.IsZero())
	assert.True(t, totals.Debited.IsZero())
}

func TestComputeTotals_Idempotent(t *testing.T) {
	in := rows()
	assert.Equal(t, ComputeTotals(in), ComputeTotals(in))
}

func TestDebitsOnly(t *testing.T) {
	debits := DebitsOnly(rows())

	require.Len(t, debits, 4)
	assert.Equal(t, []int{0, 2, 3, 5}, []int{debits[0].ID, debits[1].ID, debits[2].ID, debits[3].ID})
	assert.Equal(t, "200", debits[0].AbsAmount.String())
	assert.Equal(t, "49.5", debits[1].AbsAmount.String())
	// Source amount is untouched
	assert.Equal(t, "-200", debits[0].Amount.String())
}

func TestGroupSum(t *testing.T) {
	debits := DebitsOnly(rows())

	byCategory := GroupSum(debits, ByCategory)
	assert.Len(t, byCategory, 3)
	assert.Equal(t, "500", byCategory["Food and Dining"].String())
	assert.Equal(t, "49.5", byCategory["Groceries"].String())
	assert.Equal(t, "300", byCategory["Other"].String())

	byTag := GroupSum(debits, ByTag)
	assert.Len(t, byTag, 3)
	assert.Equal(t, "500", byTag["food"].String())
	assert.Equal(t, "300", byTag[""].String())
}

func TestGroupSum_MatchesDebitTotal(t *testing.T) {
	debits := DebitsOnly(rows())
	total := decimal.Zero
	for _, dd := range debits {
		total = total.Add(dd.AbsAmount)
	}

	for _, key := range []GroupKey{ByTag, ByCategory} {
		sum := decimal.Zero
		for _, v := range GroupSum(debits, key) {
			sum = sum.Add(v)
		}
		assert.True(t, total.Equal(sum), "key %s: %s != %s", key, sum, total)
	}
}

func TestSorted(t *testing.T) {
	groups := Sorted(map[string]decimal.Decimal{
		"b": d("10"),
		"a": d("10"),
		"c": d("99.9"),
	})

	assert.Equal(t, []string{"c", "a", "b"}, []string{groups[0].Name, groups[1].Name, groups[2].Name})
}

func TestDailySum(t *testing.T) {
	days := DailySum(DebitsOnly(rows()))

	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, "200", days[0].Amount.String())
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), days[1].Date)
	assert.Equal(t, "349.5", days[1].Amount.String())
	assert.Equal(t, time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), days[2].Date)
	assert.Equal(t, "300", days[2].Amount.String())
}

func TestTopN(t *testing.T) {
	debits := DebitsOnly(rows())

	top := TopN(debits, 3)
	require.Len(t, top, 3)
	// Rows 3 and 5 tie at 300 and keep their source order
	assert.Equal(t, []int{3, 5, 0}, []int{top[0].ID, top[1].ID, top[2].ID})

	all := TopN(debits, 0)
	assert.Len(t, all, 4)

	// Input order is preserved
	assert.Equal(t, 0, debits[0].ID)
}

func TestTopN_DefaultLimit(t *testing.T) {
	var debits []Debit
	for i := 0; i < 15; i++ {
		debits = append(debits, Debit{
			Transaction: transaction.Transaction{ID: i},
			AbsAmount:   decimal.NewFromInt(int64(i)),
		})
	}

	top := TopN(debits, 0)
	require.Len(t, top, DefaultTopN)
	assert.Equal(t, 14, top[0].ID)
	assert.Equal(t, 5, top[9].ID)
}

func TestUncategorized(t *testing.T) {
	got := Uncategorized(DebitsOnly(rows()), "Other")

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}
