package catalog

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/robofi/sdk-go/core/logging"
	"github.com/robofi/sdk-go/core/types"
)

// Catalog is an immutable snapshot of marketplace listings. Revision changes
// whenever a Store replaces its snapshot, so it can key derived views.
type Catalog struct {
	Revision uint64
	listings []types.Listing
}

// New deep-copies listings into a new catalog
func New(listings []types.Listing) *Catalog {
	return &Catalog{listings: types.CloneListings(listings)}
}

// Listings returns a deep copy of the catalog contents in catalog order
func (c *Catalog) Listings() []types.Listing {
	if c == nil {
		return nil
	}
	return types.CloneListings(c.listings)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.listings)
}

// Get returns the listing with the given id
func (c *Catalog) Get(id string) (types.Listing, bool) {
	if c == nil {
		return types.Listing{}, false
	}
	for _, l := range c.listings {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return types.Listing{}, false
}

// Validate rejects listings without an id or name and duplicate ids.
// Malformed numeric fields and unknown categories are only logged: such
// listings stay visible to text and category filters.
func Validate(c *Catalog) error {
	if c == nil {
		return errors.New("catalog is nil")
	}

	seen := make(map[string]int, len(c.listings))
	for i := range c.listings {
		l := &c.listings[i]
		if err := l.Validate(); err != nil {
			return errors.Wrapf(err, "listing at index %d", i)
		}
		if prev, dup := seen[l.ID]; dup {
			return errors.Errorf("duplicate listing id %q at index %d and %d", l.ID, prev, i)
		}
		seen[l.ID] = i

		if _, known := types.ParseCategory(string(l.Category)); !known || l.Category == types.CategoryAll {
			logging.Logger.Warn("listing has unknown category",
				zap.String("id", l.ID), zap.String("category", string(l.Category)))
		}
		for _, f := range []struct {
			name   string
			amount types.Amount
		}{
			{"price", l.Price},
			{"revenue", l.Revenue},
			{"utilization", l.Utilization},
		} {
			if !f.amount.Valid() {
				logging.Logger.Warn("listing has malformed numeric field",
					zap.String("id", l.ID), zap.String("field", f.name), zap.String("raw", f.amount.Raw))
			}
		}
		if l.Utilization.Valid() && !utilizationInRange(l.Utilization) {
			logging.Logger.Warn("listing utilization out of range",
				zap.String("id", l.ID), zap.String("raw", l.Utilization.Raw))
		}
	}
	return nil
}

var hundredPercent = apd.New(100, 0)

// utilizationInRange reports whether a valid utilization lies in [0,100]
func utilizationInRange(a types.Amount) bool {
	return a.Value.Sign() >= 0 && a.Value.Cmp(hundredPercent) <= 0
}
