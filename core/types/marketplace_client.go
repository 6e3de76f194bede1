package types

// ListListingsInput selects and orders a marketplace view
type ListListingsInput struct {
	Criteria FilterCriteria
	Sort     SortKey
}

// DefaultListListingsInput is the view shown when the marketplace first opens
func DefaultListListingsInput() ListListingsInput {
	return ListListingsInput{
		Criteria: DefaultFilterCriteria(),
		Sort:     SortRecent,
	}
}

type ListListingsOutput struct {
	Listings []Listing
	// Total is the catalog size before filtering
	Total int
	// Revision identifies the catalog snapshot the view was computed from
	Revision uint64
	Cache    CacheMetadata
}

// FilterOptions describes every dropdown of the marketplace page. Labels and
// filter keys come from the same bucket tables the engine filters with.
type FilterOptions struct {
	Categories []Category     `json:"categories"`
	Sort       []SortOption   `json:"sort"`
	Price      BucketTable    `json:"price"`
	Revenue    BucketTable    `json:"revenue"`
	Defaults   FilterCriteria `json:"defaults"`
}
