package marketclient

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/robofi/sdk-go/core/catalog"
	"github.com/robofi/sdk-go/core/marketplace"
	"github.com/robofi/sdk-go/core/portfolio"
	"github.com/robofi/sdk-go/core/presale"
	"github.com/robofi/sdk-go/core/types"
)

// Marketplace is the read-only surface used by the web frontend
type Marketplace interface {
	// ListListings returns the filtered and sorted marketplace view
	ListListings(ctx context.Context, input types.ListListingsInput) (types.ListListingsOutput, error)
	// GetListing returns a single listing by id
	GetListing(ctx context.Context, id string) (types.Listing, error)
	// FilterOptions returns the dropdown contents of the marketplace page
	FilterOptions() types.FilterOptions
	// Portfolio summarizes a wallet's holdings against the current catalog
	Portfolio(ctx context.Context, holdings []portfolio.Holding) (portfolio.Summary, error)
	// PresaleStatus returns the presale terms, countdown and sale progress
	PresaleStatus() (presale.Status, error)
	// Reload refreshes the catalog from its source
	Reload(ctx context.Context) (*catalog.Catalog, error)
	// CacheStats reports how often listing views were served from the cache
	CacheStats() types.CacheStats
}

// ErrListingNotFound is returned by GetListing for unknown ids
var ErrListingNotFound = errors.New("listing not found")

type Client struct {
	Source    catalog.Source `validate:"required"`
	Logger    *zap.Logger    `validate:"required"`
	store     *catalog.Store
	projector *marketplace.Projector
	buckets   types.Buckets
	terms     *presale.Terms
	now       func() time.Time
}

var _ Marketplace = (*Client)(nil)

type Option func(*Client)

// NewClient loads the catalog once from the configured source. Without
// WithSource the built-in mock robots are served.
func NewClient(ctx context.Context, options ...Option) (*Client, error) {
	c := &Client{
		Source: catalog.NewMockSource(),
		Logger: zap.NewNop(),
		store:  catalog.NewStore(nil),
		now:    time.Now,
	}
	for _, option := range options {
		option(c)
	}

	if c.buckets.IsZero() {
		c.buckets = types.DefaultBuckets()
	}
	c.projector = marketplace.NewProjector(marketplace.NewEngine(c.buckets))
	if c.terms == nil {
		terms := presale.DefaultTerms(c.now())
		c.terms = &terms
	}

	if err := c.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := c.terms.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	if c.store == nil {
		return nil, errors.New("catalog store is nil")
	}

	if _, err := c.Reload(ctx); err != nil {
		return nil, errors.Wrap(err, "initial catalog load")
	}

	return c, nil
}

func (c *Client) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func WithSource(source catalog.Source) Option {
	return func(c *Client) {
		c.Source = source
	}
}

// WithStore shares a catalog store, e.g. one kept fresh by catalog.Watch
func WithStore(store *catalog.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.Logger = logger
	}
}

func WithBuckets(buckets types.Buckets) Option {
	return func(c *Client) {
		c.buckets = buckets
	}
}

func WithPresaleTerms(terms presale.Terms) Option {
	return func(c *Client) {
		c.terms = &terms
	}
}

// WithClock overrides time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func (c *Client) Store() *catalog.Store {
	return c.store
}

func (c *Client) Reload(ctx context.Context) (*catalog.Catalog, error) {
	snapshot, err := c.store.Reload(ctx, c.Source)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	c.Logger.Info("catalog loaded",
		zap.Uint64("revision", snapshot.Revision),
		zap.Int("listings", snapshot.Len()))
	return snapshot, nil
}

func (c *Client) ListListings(ctx context.Context, input types.ListListingsInput) (types.ListListingsOutput, error) {
	if err := ctx.Err(); err != nil {
		return types.ListListingsOutput{}, errors.WithStack(err)
	}

	snapshot := c.store.Current()
	listings, cache := c.projector.ProjectWithMetadata(snapshot, input.Criteria, types.ParseSortKey(string(input.Sort)))

	c.Logger.Debug("listings projected",
		zap.String("search", input.Criteria.SearchText),
		zap.String("category", string(input.Criteria.Category)),
		zap.String("price", input.Criteria.PriceRange),
		zap.String("revenue", input.Criteria.RevenueRange),
		zap.String("sort", string(input.Sort)),
		zap.Int("matched", len(listings)),
		zap.Bool("cache_hit", cache.CacheHit))

	return types.ListListingsOutput{
		Listings: listings,
		Total:    snapshot.Len(),
		Revision: revisionOf(snapshot),
		Cache:    cache,
	}, nil
}

func (c *Client) GetListing(ctx context.Context, id string) (types.Listing, error) {
	if err := ctx.Err(); err != nil {
		return types.Listing{}, errors.WithStack(err)
	}
	listing, ok := c.store.Current().Get(id)
	if !ok {
		return types.Listing{}, errors.Wrapf(ErrListingNotFound, "id %q", id)
	}
	return listing, nil
}

func (c *Client) FilterOptions() types.FilterOptions {
	return types.FilterOptions{
		Categories: append([]types.Category{types.CategoryAll}, types.Categories...),
		Sort:       append([]types.SortOption(nil), types.SortOptions...),
		Price:      c.buckets.Price,
		Revenue:    c.buckets.Revenue,
		Defaults:   types.DefaultFilterCriteria(),
	}
}

func (c *Client) Portfolio(ctx context.Context, holdings []portfolio.Holding) (portfolio.Summary, error) {
	if err := ctx.Err(); err != nil {
		return portfolio.Summary{}, errors.WithStack(err)
	}
	summary, err := portfolio.Summarize(holdings, c.store.Current())
	if err != nil {
		return portfolio.Summary{}, errors.WithStack(err)
	}
	if summary.Skipped > 0 {
		c.Logger.Warn("portfolio has unparsable amounts", zap.Int("skipped", summary.Skipped))
	}
	return summary, nil
}

func (c *Client) PresaleStatus() (presale.Status, error) {
	status, err := c.terms.StatusAt(c.now())
	if err != nil {
		return presale.Status{}, errors.WithStack(err)
	}
	return status, nil
}

func (c *Client) CacheStats() types.CacheStats {
	return c.projector.Stats()
}

func revisionOf(snapshot *catalog.Catalog) uint64 {
	if snapshot == nil {
		return 0
	}
	return snapshot.Revision
}
