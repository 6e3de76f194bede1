package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robofi/sdk-go/core/catalog"
	"github.com/robofi/sdk-go/core/types"
)

func TestSummarize_MockWallet(t *testing.T) {
	summary, err := Summarize(MockHoldings(), catalog.New(catalog.MockListings()))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TokensOwned)
	// 10% of 1.5 + 2.0 + 3.0 ETH
	assert.Equal(t, "0.65", summary.TotalValue.Text('f'))
	assert.Equal(t, "0.65", summary.MonthlyRevenue.Text('f'))
	assert.Equal(t, "1.95", summary.TotalRewards.Text('f'))
	assert.Equal(t, "0.25", summary.Claimable.Text('f'))
	assert.Equal(t, 0, summary.Skipped)
}

func TestSummarize_UnknownListingAddsNoValue(t *testing.T) {
	holdings := []Holding{{
		ListingID: "404",
		Ownership: types.MustAmount("50%"),
		Revenue:   types.MustAmount("0.1 ETH"),
		Rewards:   types.MustAmount("0.2 ETH"),
		Claimable: types.MustAmount("0.05 ETH"),
	}}

	summary, err := Summarize(holdings, catalog.New(catalog.MockListings()))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TokensOwned)
	assert.True(t, summary.TotalValue.IsZero())
	assert.Equal(t, "0.1", summary.MonthlyRevenue.Text('f'))
}

func TestSummarize_SkipsMalformedAmounts(t *testing.T) {
	holdings := []Holding{
		{
			ListingID: "3",
			Ownership: types.ParseAmount("a lot"),
			Revenue:   types.ParseAmount("0.3 ETH"),
			Rewards:   types.ParseAmount("pending"),
			Claimable: types.ParseAmount("0.12 ETH"),
		},
	}

	summary, err := Summarize(holdings, catalog.New(catalog.MockListings()))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Skipped)
	assert.True(t, summary.TotalValue.IsZero())
	assert.True(t, summary.TotalRewards.IsZero())
	assert.Equal(t, "0.3", summary.MonthlyRevenue.Text('f'))
	assert.Equal(t, "0.12", summary.Claimable.Text('f'))
}

func TestSummarize_Empty(t *testing.T) {
	summary, err := Summarize(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TokensOwned)
	assert.True(t, summary.Claimable.IsZero())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(MockHoldings()))
	require.NoError(t, Validate(nil))

	err := Validate([]Holding{{Name: "no id"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ListingID")
}
