package marketplace

import (
	"github.com/robofi/sdk-go/core/types"
)

// Engine computes marketplace views over a catalog. The zero value uses the
// default bucket tables.
type Engine struct {
	Buckets types.Buckets
}

func NewEngine(buckets types.Buckets) *Engine {
	return &Engine{Buckets: buckets}
}

var defaultBuckets = types.DefaultBuckets()

func (e *Engine) buckets() types.Buckets {
	if e == nil || e.Buckets.IsZero() {
		return defaultBuckets
	}
	return e.Buckets
}

// Project filters then sorts. It recomputes from scratch on every call and
// keeps no state, so the same inputs always produce the same sequence.
func (e *Engine) Project(listings []types.Listing, criteria types.FilterCriteria, key types.SortKey) []types.Listing {
	return Sort(Filter(listings, criteria, e.buckets()), key)
}

// Project runs the default engine
func Project(listings []types.Listing, criteria types.FilterCriteria, key types.SortKey) []types.Listing {
	var e *Engine
	return e.Project(listings, criteria, key)
}

// BucketTables returns the tables the engine filters with
func (e *Engine) BucketTables() types.Buckets {
	return e.buckets()
}
