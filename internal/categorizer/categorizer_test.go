package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monsTa-b0y/exp-dashboard/internal/config"
)

func TestCategorize_DefaultTable(t *testing.T) {
	c := FromConfig(config.Default())

	tests := []struct {
		name    string
		details string
		tags    string
		want    string
	}{
		{name: "food delivery", details: "Swiggy order", want: "Food and Dining"},
		{name: "case insensitive", details: "ZOMATO*Bangalore", want: "Food and Dining"},
		{name: "salary by keyword", details: "Salary received from employer", tags: "received from", want: "Money Received"},
		{name: "grocery", details: "BigBasket delivery", want: "Groceries"},
		{name: "mixed case keyword", details: "UPI to Vatturi Paritosh", want: "Loan"},
		{name: "tag fallback", details: "NEFT 99812", tags: "#?? Money Received", want: "Money Received"},
		{name: "tag fallback is case sensitive", details: "NEFT 99812", tags: "money received", want: "Other"},
		{name: "nothing matches", details: "ATM withdrawal", tags: "cash", want: "Other"},
		{name: "empty input", want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categorize(tt.details, tt.tags))
		})
	}
}

func TestCategorize_FirstDeclaredCategoryWins(t *testing.T) {
	rules := []config.CategoryRule{
		{Name: "Food and Dining", Keywords: []string{"restaurant", "ushodaya"}},
		{Name: "Groceries", Keywords: []string{"ushodaya", "supermarket"}},
	}
	c := New(rules)
	assert.Equal(t, "Food and Dining", c.Categorize("Ushodaya Supermarket", ""))

	reversed := New([]config.CategoryRule{rules[1], rules[0]})
	assert.Equal(t, "Groceries", reversed.Categorize("Ushodaya Supermarket", ""))
}

func TestCategorize_KeywordsCheckedBeforeTags(t *testing.T) {
	c := New([]config.CategoryRule{{Name: "Fuel", Keywords: []string{"petrol"}}})
	assert.Equal(t, "Fuel", c.Categorize("HP Petrol pump", "Money Received"))
}

func TestCategorize_DeterministicAndClosed(t *testing.T) {
	c := FromConfig(config.Default())
	inputs := [][2]string{
		{"Swiggy order", ""},
		{"Amazon Pay", "shopping"},
		{"unknown merchant", "Money Received"},
		{"", ""},
		{"ola ride hotel", "x"},
	}

	for _, in := range inputs {
		first := c.Categorize(in[0], in[1])
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Categorize(in[0], in[1]))
		}
		assert.True(t, c.Valid(first) || first == c.Fallback(), "category %q outside closed set", first)
	}
}

func TestNew_Options(t *testing.T) {
	c := New(
		[]config.CategoryRule{{Name: "Fuel", Keywords: []string{"", "Petrol"}}},
		WithFallback("Unsorted"),
		WithMoneyReceivedMarker("Incoming"),
	)

	assert.Equal(t, "Unsorted", c.Fallback())
	assert.Equal(t, "Unsorted", c.Categorize("bus ticket", ""))
	assert.Equal(t, "Incoming", c.Categorize("transfer", "Incoming"))
	assert.Equal(t, []string{"petrol"}, c.Keywords("Fuel"))
	assert.Equal(t, []string{"Fuel", "Incoming"}, c.Categories())
	assert.True(t, c.Valid("Incoming"))
}

func TestNew_DisabledMarker(t *testing.T) {
	c := New([]config.CategoryRule{{Name: "Fuel", Keywords: []string{"petrol"}}}, WithMoneyReceivedMarker(""))

	assert.Equal(t, "Other", c.Categorize("transfer", "Money Received"))
	assert.Equal(t, []string{"Fuel"}, c.Categories())
}

func TestCategories_DeclarationOrder(t *testing.T) {
	c := FromConfig(config.Default())
	cats := c.Categories()

	require.Len(t, cats, 10)
	assert.Equal(t, "Food and Dining", cats[0])
	assert.Equal(t, "Money Received", cats[len(cats)-1])
	assert.False(t, c.Valid("Other"))
	assert.Nil(t, c.Keywords("Other"))
}
