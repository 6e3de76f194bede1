package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/robofi/sdk-go/core/types"
)

// Source abstracts where the listing catalog comes from.
// This interface allows swapping the built-in mock data for a file, an
// indexer or a backend without changing the marketplace engine.
//
// Implementations in this package:
//   - StaticSource: a fixed in-memory list (the default mock robots)
//   - FileSource: a YAML or JSON document on disk
//
// Example custom source:
//
//	type IndexerSource struct { ... }
//
//	func (s *IndexerSource) Load(ctx context.Context) (*catalog.Catalog, error) {
//	    // fetch listings
//	    return catalog.New(listings), nil
//	}
//
//	client, err := marketclient.NewClient(ctx,
//	    marketclient.WithSource(&IndexerSource{...}),
//	)
type Source interface {
	// Load returns a fresh catalog snapshot.
	//
	// Returns:
	//   - the catalog; its listings must satisfy Validate
	//   - error if the source cannot be read or decoded
	Load(ctx context.Context) (*Catalog, error)
}

// ═══════════════════════════════════════════════════════════════
// STATIC SOURCE
// ═══════════════════════════════════════════════════════════════

// StaticSource serves a fixed list of listings
type StaticSource struct {
	Listings []types.Listing
}

var _ Source = (*StaticSource)(nil)

// NewMockSource returns the robots shown on the marketplace page
func NewMockSource() *StaticSource {
	return &StaticSource{Listings: MockListings()}
}

func (s *StaticSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	c := New(s.Listings)
	if err := Validate(c); err != nil {
		return nil, errors.WithStack(err)
	}
	return c, nil
}

// MockListings returns a new copy of the demo catalog
func MockListings() []types.Listing {
	return []types.Listing{
		{
			ID:          "1",
			Name:        "ServiceBot Pro #123",
			Image:       "/robots/robot1.jpg",
			Price:       types.MustAmount("1.5 ETH"),
			USDPrice:    "$2,745.00",
			Revenue:     types.MustAmount("0.15 ETH/month"),
			Utilization: types.MustAmount("95%"),
			Category:    types.CategoryService,
		},
		{
			ID:          "2",
			Name:        "EventBot Elite #45",
			Image:       "/robots/robot2.jpg",
			Price:       types.MustAmount("2.0 ETH"),
			USDPrice:    "$3,660.00",
			Revenue:     types.MustAmount("0.2 ETH/month"),
			Utilization: types.MustAmount("90%"),
			Category:    types.CategoryEntertainment,
		},
		{
			ID:          "3",
			Name:        "IndustrialBot X #78",
			Image:       "/robots/robot3.jpg",
			Price:       types.MustAmount("3.0 ETH"),
			USDPrice:    "$5,490.00",
			Revenue:     types.MustAmount("0.3 ETH/month"),
			Utilization: types.MustAmount("98%"),
			Category:    types.CategoryIndustrial,
		},
	}
}

// ═══════════════════════════════════════════════════════════════
// FILE SOURCE
// ═══════════════════════════════════════════════════════════════

// FileSource reads a catalog document from disk. Files ending in .json are
// decoded as JSON, everything else as YAML. The document is either a bare
// list of listings or a mapping with a "listings" key.
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

type document struct {
	Listings []types.Listing `json:"listings" yaml:"listings"`
}

func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", s.Path)
	}

	listings, err := Decode(data, strings.EqualFold(filepath.Ext(s.Path), ".json"))
	if err != nil {
		return nil, errors.Wrapf(err, "decode catalog %s", s.Path)
	}

	c := New(listings)
	if err := Validate(c); err != nil {
		return nil, errors.Wrapf(err, "validate catalog %s", s.Path)
	}
	return c, nil
}

// Decode parses a catalog document
func Decode(data []byte, isJSON bool) ([]types.Listing, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if isJSON {
		if trimmed[0] == '[' {
			var listings []types.Listing
			if err := json.Unmarshal(trimmed, &listings); err != nil {
				return nil, errors.WithStack(err)
			}
			return listings, nil
		}
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.WithStack(err)
		}
		return doc.Listings, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(trimmed, &node); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var listings []types.Listing
		if err := node.Decode(&listings); err != nil {
			return nil, errors.WithStack(err)
		}
		return listings, nil
	}
	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, errors.WithStack(err)
	}
	return doc.Listings, nil
}
