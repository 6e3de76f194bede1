package marketplace

import (
	"strings"

	"github.com/robofi/sdk-go/core/types"
	"github.com/robofi/sdk-go/core/util"
)

// Filter returns the listings that satisfy every active criterion, in input
// order. The input slice is never modified and the result never aliases it.
//
// Criteria combine with AND:
//   - SearchText: case-insensitive substring of Name; empty matches all
//   - Category: "All", empty or unknown matches all, otherwise exact equality
//   - PriceRange / RevenueRange: "all", empty or unknown keys match all,
//     otherwise the amount must parse and fall inside the bucket
func Filter(listings []types.Listing, criteria types.FilterCriteria, buckets types.Buckets) []types.Listing {
	if criteria.IsDefault() {
		out := make([]types.Listing, len(listings))
		copy(out, listings)
		return out
	}

	p := newPredicate(criteria, buckets)

	out := make([]types.Listing, 0, len(listings))
	for _, l := range listings {
		if p.match(l) {
			out = append(out, l)
		}
	}
	return out
}

// predicate is the compiled form of a FilterCriteria
type predicate struct {
	search      string
	category    types.Category
	anyCategory bool
	price       *types.Bucket
	revenue     *types.Bucket
}

func newPredicate(criteria types.FilterCriteria, buckets types.Buckets) predicate {
	p := predicate{search: util.FoldString(criteria.SearchText)}

	category, known := types.ParseCategory(string(criteria.Category))
	p.anyCategory = !known || category == types.CategoryAll
	p.category = category

	if b, ok := buckets.Price.Lookup(criteria.PriceRange); ok {
		p.price = &b
	}
	if b, ok := buckets.Revenue.Lookup(criteria.RevenueRange); ok {
		p.revenue = &b
	}
	return p
}

func (p predicate) match(l types.Listing) bool {
	if p.search != "" && !strings.Contains(util.FoldString(l.Name), p.search) {
		return false
	}
	if !p.anyCategory && l.Category != p.category {
		return false
	}
	if p.price != nil && !p.price.Contains(l.Price.Value) {
		return false
	}
	if p.revenue != nil && !p.revenue.Contains(l.Revenue.Value) {
		return false
	}
	return true
}
