package httpapi

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/robofi/sdk-go/core/portfolio"
	"github.com/robofi/sdk-go/core/presale"
	"github.com/robofi/sdk-go/core/types"
	"github.com/robofi/sdk-go/core/util"
)

// listingView is the card rendered by the marketplace grid. Numeric fields
// are null when the catalog value could not be parsed.
type listingView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Image            string `json:"image,omitempty"`
	Price            string `json:"price"`
	USDPrice         string `json:"usdPrice,omitempty"`
	Revenue          string `json:"revenue"`
	Utilization      string `json:"utilization"`
	Type             string `json:"type"`
	PriceValue       any    `json:"priceValue"`
	RevenueValue     any    `json:"revenueValue"`
	UtilizationValue any    `json:"utilizationValue"`
}

func decimalText(d apd.Decimal) any {
	return d.Text('f')
}

func newListingView(l types.Listing) listingView {
	return listingView{
		ID:               l.ID,
		Name:             l.Name,
		Image:            l.Image,
		Price:            l.Price.Raw,
		USDPrice:         l.USDPrice,
		Revenue:          l.Revenue.Raw,
		Utilization:      l.Utilization.Raw,
		Type:             string(l.Category),
		PriceValue:       util.TransformOrNil(l.Price.Value, decimalText),
		RevenueValue:     util.TransformOrNil(l.Revenue.Value, decimalText),
		UtilizationValue: util.TransformOrNil(l.Utilization.Value, decimalText),
	}
}

func newListingViews(listings []types.Listing) []listingView {
	views := make([]listingView, len(listings))
	for i, l := range listings {
		views[i] = newListingView(l)
	}
	return views
}

type summaryView struct {
	TokensOwned    int    `json:"tokensOwned"`
	TotalValue     string `json:"totalValue"`
	MonthlyRevenue string `json:"monthlyRevenue"`
	TotalRewards   string `json:"totalRewards"`
	Claimable      string `json:"claimable"`
	Skipped        int    `json:"skipped"`
}

func newSummaryView(s portfolio.Summary, unit string) summaryView {
	return summaryView{
		TokensOwned:    s.TokensOwned,
		TotalValue:     s.TotalValue.Text('f') + " " + unit,
		MonthlyRevenue: s.MonthlyRevenue.Text('f') + " " + unit,
		TotalRewards:   s.TotalRewards.Text('f') + " " + unit,
		Claimable:      s.Claimable.Text('f') + " " + unit,
		Skipped:        s.Skipped,
	}
}

type progressView struct {
	Supply      int    `json:"supply"`
	Sold        int    `json:"sold"`
	Available   int    `json:"available"`
	SoldPercent string `json:"soldPercent"`
}

type presaleView struct {
	End            string           `json:"end"`
	TokenPrice     string           `json:"tokenPrice"`
	MonthlyRevenue string           `json:"monthlyRevenue"`
	Utilization    string           `json:"utilization"`
	OwnershipShare string           `json:"ownershipShare"`
	TimeLeft       presale.TimeLeft `json:"timeLeft"`
	Progress       progressView     `json:"progress"`
}

func newPresaleView(s presale.Status) presaleView {
	return presaleView{
		End:            s.Terms.End.String() + "Z",
		TokenPrice:     s.Terms.TokenPrice.Raw,
		MonthlyRevenue: s.Terms.MonthlyRevenue.Raw,
		Utilization:    s.Terms.Utilization.Raw,
		OwnershipShare: s.Terms.OwnershipShare.Raw,
		TimeLeft:       s.TimeLeft,
		Progress: progressView{
			Supply:      s.Progress.Supply,
			Sold:        s.Progress.Sold,
			Available:   s.Progress.Available,
			SoldPercent: s.Progress.SoldPercent.Text('f'),
		},
	}
}
