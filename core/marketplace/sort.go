package marketplace

import (
	"sort"

	"github.com/robofi/sdk-go/core/types"
	"github.com/robofi/sdk-go/core/util"
)

type direction int

const (
	ascending  direction = 1
	descending direction = -1
)

type sortSpec struct {
	field func(types.Listing) types.Amount
	dir   direction
}

var sortSpecs = map[types.SortKey]sortSpec{
	types.SortPriceAscending:        {field: priceOf, dir: ascending},
	types.SortPriceDescending:       {field: priceOf, dir: descending},
	types.SortRevenueDescending:     {field: revenueOf, dir: descending},
	types.SortUtilizationDescending: {field: utilizationOf, dir: descending},
}

func priceOf(l types.Listing) types.Amount       { return l.Price }
func revenueOf(l types.Listing) types.Amount     { return l.Revenue }
func utilizationOf(l types.Listing) types.Amount { return l.Utilization }

// Sort returns a stably ordered copy of listings. SortRecent and unknown keys
// keep the input order. Listings whose sort field cannot be parsed are placed
// after all others, in their original relative order.
func Sort(listings []types.Listing, key types.SortKey) []types.Listing {
	out := util.CopySlice(listings)

	spec, ok := sortSpecs[key]
	if !ok {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := spec.field(out[i]), spec.field(out[j])
		switch {
		case !a.Valid():
			return false
		case !b.Valid():
			return true
		}
		return a.Cmp(b)*int(spec.dir) < 0
	})
	return out
}
