package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// dehydrate encodes p for the body column.
func dehydrate(p types.Product) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding product %d: %w", p.Info().UniqueID, err)
	}
	return string(data), nil
}

// hydrate decodes a (category, quantity, body) row into the matching
// variant. The quantity column overrides the quantity stored in body.
func hydrate(row scanner) (types.Product, error) {
	var category, body string
	var quantity int
	if err := row.Scan(&category, &quantity, &body); err != nil {
		return nil, err
	}

	var p types.Product
	switch types.Category(category) {
	case types.CategoryClothing:
		p = &types.Clothing{}
	case types.CategoryFood:
		p = &types.Food{}
	case types.CategoryToys:
		p = &types.Toys{}
	default:
		return nil, fmt.Errorf("category %q: %w", category, types.ErrInvalidProduct)
	}
	if err := json.Unmarshal([]byte(body), p); err != nil {
		return nil, fmt.Errorf("decoding %s body: %w", category, err)
	}
	p.Info().Quantity = quantity
	return p, nil
}
