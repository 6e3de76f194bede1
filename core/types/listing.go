package types

import (
	"github.com/go-playground/validator/v10"
)

// ═══════════════════════════════════════════════════════════════
// LISTING
// ═══════════════════════════════════════════════════════════════

// Listing is a single robot offering in the marketplace catalog
type Listing struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Name     string `json:"name" yaml:"name" validate:"required"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Price    Amount `json:"price" yaml:"price"`
	USDPrice string `json:"usdPrice,omitempty" yaml:"usdPrice,omitempty"`
	// Revenue is the periodic yield, e.g. "0.15 ETH/month"
	Revenue Amount `json:"revenue" yaml:"revenue"`
	// Utilization is a percentage in [0,100]
	Utilization Amount   `json:"utilization" yaml:"utilization"`
	Category    Category `json:"type" yaml:"type"`
}

// Clone returns a copy whose amounts share no memory with l
func (l Listing) Clone() Listing {
	l.Price = l.Price.Clone()
	l.Revenue = l.Revenue.Clone()
	l.Utilization = l.Utilization.Clone()
	return l
}

// CloneListings deep-copies listings. nil stays nil.
func CloneListings(listings []Listing) []Listing {
	if listings == nil {
		return nil
	}
	out := make([]Listing, len(listings))
	for i, l := range listings {
		out[i] = l.Clone()
	}
	return out
}

var listingValidate = validator.New()

// Validate checks the identifying fields only. Numeric fields are allowed to
// be malformed, they are simply excluded by range filters.
func (l *Listing) Validate() error {
	return listingValidate.Struct(l)
}

// ═══════════════════════════════════════════════════════════════
// CATEGORY
// ═══════════════════════════════════════════════════════════════

type Category string

const (
	CategoryAll           Category = "All"
	CategoryService       Category = "Service"
	CategoryEntertainment Category = "Entertainment"
	CategoryIndustrial    Category = "Industrial"
)

// Categories lists the known robot categories in display order
var Categories = []Category{
	CategoryService,
	CategoryEntertainment,
	CategoryIndustrial,
}

// ParseCategory matches exactly. ok is false for anything outside Categories
// and the All sentinel.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if c == CategoryAll {
		return c, true
	}
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return c, false
}

func (c Category) String() string {
	return string(c)
}

// ═══════════════════════════════════════════════════════════════
// SORT KEY
// ═══════════════════════════════════════════════════════════════

type SortKey string

const (
	SortRecent                SortKey = "recent"
	SortPriceAscending        SortKey = "price-asc"
	SortPriceDescending       SortKey = "price-desc"
	SortRevenueDescending     SortKey = "revenue-desc"
	SortUtilizationDescending SortKey = "utilization-desc"
)

// SortOption pairs a sort key with its dropdown label
type SortOption struct {
	Label string  `json:"label"`
	Value SortKey `json:"value"`
}

var SortOptions = []SortOption{
	{Label: "Price: Low to High", Value: SortPriceAscending},
	{Label: "Price: High to Low", Value: SortPriceDescending},
	{Label: "Recently Listed", Value: SortRecent},
	{Label: "Revenue: High to Low", Value: SortRevenueDescending},
	{Label: "Utilization: High to Low", Value: SortUtilizationDescending},
}

// ParseSortKey falls back to SortRecent for unknown or empty values
func ParseSortKey(s string) SortKey {
	for _, opt := range SortOptions {
		if string(opt.Value) == s {
			return opt.Value
		}
	}
	return SortRecent
}

// ═══════════════════════════════════════════════════════════════
// FILTER CRITERIA
// ═══════════════════════════════════════════════════════════════

// BucketAll is the range sentinel that disables a price or revenue filter
const BucketAll = "all"

// FilterCriteria is the active filter state of a marketplace view. It is a
// plain value; the With* helpers return modified copies.
type FilterCriteria struct {
	SearchText   string   `json:"search"`
	Category     Category `json:"category"`
	PriceRange   string   `json:"price"`
	RevenueRange string   `json:"revenue"`
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		SearchText:   "",
		Category:     CategoryAll,
		PriceRange:   BucketAll,
		RevenueRange: BucketAll,
	}
}

func (f FilterCriteria) WithSearchText(text string) FilterCriteria {
	f.SearchText = text
	return f
}

func (f FilterCriteria) WithCategory(c Category) FilterCriteria {
	f.Category = c
	return f
}

func (f FilterCriteria) WithPriceRange(key string) FilterCriteria {
	f.PriceRange = key
	return f
}

func (f FilterCriteria) WithRevenueRange(key string) FilterCriteria {
	f.RevenueRange = key
	return f
}

// IsDefault reports whether no filter is active. Empty fields count as their
// sentinel.
func (f FilterCriteria) IsDefault() bool {
	return f.SearchText == "" &&
		(f.Category == "" || f.Category == CategoryAll) &&
		(f.PriceRange == "" || f.PriceRange == BucketAll) &&
		(f.RevenueRange == "" || f.RevenueRange == BucketAll)
}
