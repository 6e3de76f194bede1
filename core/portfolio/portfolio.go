package portfolio

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/robofi/sdk-go/core/catalog"
	"github.com/robofi/sdk-go/core/types"
)

// Holding is a fractional position in one listed robot
type Holding struct {
	ListingID string       `json:"listingId" validate:"required"`
	Name      string       `json:"name"`
	Ownership types.Amount `json:"ownership"` // percent of the robot, e.g. "10%"
	Revenue   types.Amount `json:"revenue"`   // monthly revenue attributed to the holder
	Rewards   types.Amount `json:"rewards"`   // rewards earned to date
	Claimable types.Amount `json:"claimable"` // rewards not yet claimed
}

// Summary aggregates a wallet's holdings for the dashboard
type Summary struct {
	TokensOwned    int
	TotalValue     apd.Decimal
	MonthlyRevenue apd.Decimal
	TotalRewards   apd.Decimal
	Claimable      apd.Decimal
	// Skipped counts amounts that could not be parsed and were left out
	Skipped int
}

var holdingValidate = validator.New()

// Validate requires a listing id on every holding
func Validate(holdings []Holding) error {
	if err := holdingValidate.Var(holdings, "dive"); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// decimalContext is wide enough for ETH amounts with 18 fractional digits
var decimalContext = apd.BaseContext.WithPrecision(40)

// Summarize totals the holdings. The value of a holding is its ownership
// percentage of the listing price found in c; holdings whose listing is not
// in the catalog contribute no value but still count towards revenue and
// rewards.
func Summarize(holdings []Holding, c *catalog.Catalog) (Summary, error) {
	var s Summary
	hundred := apd.New(100, 0)

	for _, h := range holdings {
		s.TokensOwned++

		for _, pair := range []struct {
			total  *apd.Decimal
			amount types.Amount
		}{
			{&s.MonthlyRevenue, h.Revenue},
			{&s.TotalRewards, h.Rewards},
			{&s.Claimable, h.Claimable},
		} {
			if !pair.amount.Valid() {
				s.Skipped++
				continue
			}
			if _, err := decimalContext.Add(pair.total, pair.total, pair.amount.Value); err != nil {
				return Summary{}, errors.Wrapf(err, "add amount for %s", h.ListingID)
			}
		}

		listing, ok := c.Get(h.ListingID)
		if !ok {
			continue
		}
		if !h.Ownership.Valid() || !listing.Price.Valid() {
			s.Skipped++
			continue
		}

		var value apd.Decimal
		if _, err := decimalContext.Mul(&value, listing.Price.Value, h.Ownership.Value); err != nil {
			return Summary{}, errors.Wrapf(err, "value holding %s", h.ListingID)
		}
		if _, err := decimalContext.Quo(&value, &value, hundred); err != nil {
			return Summary{}, errors.Wrapf(err, "value holding %s", h.ListingID)
		}
		if _, err := decimalContext.Add(&s.TotalValue, &s.TotalValue, &value); err != nil {
			return Summary{}, errors.Wrapf(err, "value holding %s", h.ListingID)
		}
	}

	for _, d := range []*apd.Decimal{&s.TotalValue, &s.MonthlyRevenue, &s.TotalRewards, &s.Claimable} {
		d.Reduce(d)
	}
	return s, nil
}

// MockHoldings returns the demo wallet shown on the dashboard
func MockHoldings() []Holding {
	return []Holding{
		{
			ListingID: "1",
			Name:      "ServiceBot Pro #123",
			Ownership: types.MustAmount("10%"),
			Revenue:   types.MustAmount("0.15 ETH"),
			Rewards:   types.MustAmount("0.45 ETH"),
			Claimable: types.MustAmount("0.05 ETH"),
		},
		{
			ListingID: "2",
			Name:      "EventBot Elite #45",
			Ownership: types.MustAmount("10%"),
			Revenue:   types.MustAmount("0.2 ETH"),
			Rewards:   types.MustAmount("0.6 ETH"),
			Claimable: types.MustAmount("0.08 ETH"),
		},
		{
			ListingID: "3",
			Name:      "IndustrialBot X #78",
			Ownership: types.MustAmount("10%"),
			Revenue:   types.MustAmount("0.3 ETH"),
			Rewards:   types.MustAmount("0.9 ETH"),
			Claimable: types.MustAmount("0.12 ETH"),
		},
	}
}
