package types

import "errors"

// Store holds the entries of one cart in insertion order. Implementations
// copy products on the way in and out; a caller never holds a reference
// into the store.
type Store interface {
	// Append adds p after the existing entries.
	// Returns ErrDuplicateID if an entry with the same unique id exists.
	Append(p Product) error

	// Get returns the entry with the given unique id.
	// Returns ErrNotFound if there is none.
	Get(id int64) (Product, error)

	// Delete removes the entry with the given unique id.
	// Returns ErrNotFound if there is none.
	Delete(id int64) error

	// SetQuantity replaces the quantity of the entry with the given id.
	// Returns ErrNotFound if there is none.
	SetQuantity(id int64, quantity int) error

	// List returns every entry in insertion order.
	List() ([]Product, error)

	// Count returns the number of entries.
	Count() (int, error)

	// Close releases the store. Idempotent. After Close every other method
	// returns ErrStoreClosed.
	Close() error
}

// Store and cart errors.
var (
	ErrNotFound        = errors.New("product not found")
	ErrDuplicateID     = errors.New("product id already exists")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrStoreClosed     = errors.New("store is closed")
)
