package types

// CacheMetadata describes how a single marketplace view was served
type CacheMetadata struct {
	// CacheHit is set when the view was copied from the previous projection
	CacheHit bool `json:"cache_hit"`

	// Catalog snapshot the view was computed from
	Revision uint64 `json:"revision"`

	RowsServed int `json:"rows_served"` // Number of listings returned
}

// CacheStats aggregates cache metadata over many projections
type CacheStats struct {
	TotalQueries int     `json:"total_queries"`
	CacheHits    int     `json:"cache_hits"`
	CacheMisses  int     `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`

	TotalRowsServed int `json:"total_rows_served"`
}

// Add folds one projection into the running totals
func (s *CacheStats) Add(metadata CacheMetadata) {
	s.TotalQueries++
	if metadata.CacheHit {
		s.CacheHits++
	}
	if metadata.RowsServed > 0 {
		s.TotalRowsServed += metadata.RowsServed
	}

	s.CacheMisses = s.TotalQueries - s.CacheHits
	s.CacheHitRate = float64(s.CacheHits) / float64(s.TotalQueries)
}
