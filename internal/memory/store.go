// Package memory implements types.Store over an ordered slice.
package memory

import (
	"sync"

	"github.com/mesh-intelligence/basket/pkg/types"
)

var _ types.Store = (*Store)(nil)

// Store keeps cart entries in a slice. Lookups are linear scans.
type Store struct {
	mu       sync.RWMutex
	closed   bool
	products []types.Product
}

// NewStore returns an empty store. Every call allocates a fresh slice.
func NewStore() *Store {
	return &Store{products: make([]types.Product, 0)}
}

// Append adds a copy of p at the end.
func (s *Store) Append(p types.Product) error {
	if p == nil {
		return types.ErrInvalidProduct
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	if s.indexLocked(p.Info().UniqueID) >= 0 {
		return types.ErrDuplicateID
	}
	s.products = append(s.products, p.Clone())
	return nil
}

// Get returns a copy of the entry with the given id.
func (s *Store) Get(id int64) (types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}
	i := s.indexLocked(id)
	if i < 0 {
		return nil, types.ErrNotFound
	}
	return s.products[i].Clone(), nil
}

// Delete removes the entry with the given id, keeping the order of the rest.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	i := s.indexLocked(id)
	if i < 0 {
		return types.ErrNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// SetQuantity updates the quantity of the entry with the given id in place.
func (s *Store) SetQuantity(id int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	i := s.indexLocked(id)
	if i < 0 {
		return types.ErrNotFound
	}
	s.products[i].Info().Quantity = quantity
	return nil
}

// List returns copies of all entries in insertion order.
func (s *Store) List() ([]types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}
	out := make([]types.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out, nil
}

// Count returns the number of entries.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, types.ErrStoreClosed
	}
	return len(s.products), nil
}

// Close drops the entries.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.products = nil
	return nil
}

// indexLocked returns the position of id or -1. The caller holds s.mu.
func (s *Store) indexLocked(id int64) int {
	for i, p := range s.products {
		if p.Info().UniqueID == id {
			return i
		}
	}
	return -1
}
