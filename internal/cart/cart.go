// Package cart implements the shopping cart: an ordered collection of
// products over a types.Store, with lookup by name or unique id and an
// itemized summary.
package cart

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// Cart is the session's collection of products. It owns its store.
type Cart struct {
	store types.Store
}

// New returns a cart over store. The store should be empty; each cart
// needs its own.
func New(store types.Store) *Cart {
	return &Cart{store: store}
}

// AddProduct appends p. Id uniqueness is expected to have been checked
// while the id was collected; the store still refuses a duplicate.
func (c *Cart) AddProduct(p types.Product) error {
	if err := c.store.Append(p); err != nil {
		return fmt.Errorf("adding product: %w", err)
	}
	return nil
}

// RemoveProduct removes the first product called name.
// Returns types.ErrNotFound when no product has that name.
func (c *Cart) RemoveProduct(name string) error {
	p, err := c.findByName(name)
	if err != nil {
		return err
	}
	return c.store.Delete(p.Info().UniqueID)
}

// RemoveByID removes the product with the given id and returns it.
func (c *Cart) RemoveByID(id int64) (types.Product, error) {
	p, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := c.store.Delete(id); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangeProductQuantity sets the quantity of the first product called name.
func (c *Cart) ChangeProductQuantity(name string, quantity int) error {
	if quantity < 1 {
		return types.ErrInvalidQuantity
	}
	p, err := c.findByName(name)
	if err != nil {
		return err
	}
	return c.store.SetQuantity(p.Info().UniqueID, quantity)
}

// ChangeQuantityByID sets the quantity of the product with the given id.
func (c *Cart) ChangeQuantityByID(id int64, quantity int) error {
	if quantity < 1 {
		return types.ErrInvalidQuantity
	}
	return c.store.SetQuantity(id, quantity)
}

// Find returns a copy of the product with the given id.
func (c *Cart) Find(id int64) (types.Product, error) {
	return c.store.Get(id)
}

// CheckProductExist reports whether a product with the given id is in the
// cart.
func (c *Cart) CheckProductExist(id int64) (bool, error) {
	_, err := c.store.Get(id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, types.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Len returns the number of products in the cart.
func (c *Cart) Len() (int, error) {
	return c.store.Count()
}

// Products returns copies of the products in insertion order.
func (c *Cart) Products() ([]types.Product, error) {
	return c.store.List()
}

// IDs returns the set of unique ids currently in the cart.
func (c *Cart) IDs() (map[int64]bool, error) {
	products, err := c.store.List()
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(products))
	for _, p := range products {
		ids[p.Info().UniqueID] = true
	}
	return ids, nil
}

// Close releases the store.
func (c *Cart) Close() error {
	return c.store.Close()
}

func (c *Cart) findByName(name string) (types.Product, error) {
	products, err := c.store.List()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Info().Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, types.ErrNotFound)
}
