package marketplace

import (
	"sync"

	"github.com/robofi/sdk-go/core/catalog"
	"github.com/robofi/sdk-go/core/types"
)

type projectionKey struct {
	catalog  *catalog.Catalog
	revision uint64
	criteria types.FilterCriteria
	sortKey  types.SortKey
}

// Projector memoizes the most recent projection, keyed on catalog identity,
// revision, criteria and sort key. A repeated request with unchanged inputs
// returns a deep copy of the cached view; any change recomputes in full.
type Projector struct {
	engine *Engine

	mu     sync.Mutex
	key    projectionKey
	result []types.Listing
	valid  bool
	stats  types.CacheStats
}

func NewProjector(engine *Engine) *Projector {
	if engine == nil {
		engine = &Engine{}
	}
	return &Projector{engine: engine}
}

func (p *Projector) Project(c *catalog.Catalog, criteria types.FilterCriteria, key types.SortKey) []types.Listing {
	listings, _ := p.ProjectWithMetadata(c, criteria, key)
	return listings
}

// ProjectWithMetadata is Project that also reports whether the cached view
// was reused
func (p *Projector) ProjectWithMetadata(c *catalog.Catalog, criteria types.FilterCriteria, key types.SortKey) ([]types.Listing, types.CacheMetadata) {
	k := projectionKey{catalog: c, criteria: criteria, sortKey: key}
	if c != nil {
		k.revision = c.Revision
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	metadata := types.CacheMetadata{Revision: k.revision}
	if p.valid && p.key == k {
		metadata.CacheHit = true
	} else {
		p.result = p.engine.Project(c.Listings(), criteria, key)
		p.key = k
		p.valid = true
	}
	metadata.RowsServed = len(p.result)
	p.stats.Add(metadata)

	return types.CloneListings(p.result), metadata
}

func (p *Projector) Stats() types.CacheStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
