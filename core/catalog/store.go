package catalog

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Store holds the current catalog snapshot. Readers always see a complete
// snapshot; Replace swaps it atomically and assigns the next revision.
type Store struct {
	current  atomic.Pointer[Catalog]
	revision atomic.Uint64
}

func NewStore(initial *Catalog) *Store {
	s := &Store{}
	if initial != nil {
		s.Replace(initial)
	}
	return s
}

// Current returns the active snapshot, or nil before the first load
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Replace installs c as the active snapshot and returns its revision.
// c is copied so the caller's value is left untouched.
func (s *Store) Replace(c *Catalog) uint64 {
	next := &Catalog{
		Revision: s.revision.Add(1),
		listings: c.listings,
	}
	s.current.Store(next)
	return next.Revision
}

// Reload loads from src and replaces the snapshot. On error the previous
// snapshot stays active.
func (s *Store) Reload(ctx context.Context, src Source) (*Catalog, error) {
	c, err := src.Load(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	s.Replace(c)
	return s.Current(), nil
}
