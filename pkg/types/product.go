package types

import "time"

// DateLayout is the DD/MM/YYYY layout used for expiry dates on input and
// in exports.
const DateLayout = "02/01/2006"

// IDDigits is the exact number of decimal digits in a product unique id.
const IDDigits = 13

// Product is a cart entry. The implementations are *Clothing, *Food and
// *Toys; callers switch on the concrete type when they need the
// category-specific fields.
type Product interface {
	// Category returns the variant tag.
	Category() Category

	// Info returns the shared fields. The pointer aliases the product, so
	// stores use it to update the quantity in place.
	Info() *Base

	// View returns the category-specific export record.
	View() any

	// Clone returns a deep copy. Stores hand out clones so that callers
	// never hold references into the cart.
	Clone() Product
}

// Base holds the fields every product carries. The validate tags are
// checked by the struct gate in internal/validate before a product is
// added to a cart.
type Base struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Brand    string  `json:"brand" validate:"required"`
	UniqueID int64   `json:"unique_id" validate:"digits13"`
}

// Info returns b itself.
func (b *Base) Info() *Base { return b }

// BaseView is the leading part of every export record. The key names and
// their order are fixed by the export format.
type BaseView struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Brand    string  `json:"brand"`
	UniqueID int64   `json:"unique id"`
}

func (b *Base) view() BaseView {
	return BaseView{
		Price:    b.Price,
		Quantity: b.Quantity,
		Brand:    b.Brand,
		UniqueID: b.UniqueID,
	}
}

// Clothing is a garment with a size and a materials description.
type Clothing struct {
	Base
	Size      Size   `json:"size" validate:"required,oneof=XXS XS S M L XL XXL"`
	Materials string `json:"materials" validate:"required"`
}

// ClothingView is the export record of a Clothing product.
type ClothingView struct {
	BaseView
	Size      Size   `json:"size"`
	Materials string `json:"materials"`
}

// Category returns CategoryClothing.
func (c *Clothing) Category() Category { return CategoryClothing }

// View returns the export record.
func (c *Clothing) View() any {
	return ClothingView{BaseView: c.view(), Size: c.Size, Materials: c.Materials}
}

// Clone returns a copy of c.
func (c *Clothing) Clone() Product {
	cp := *c
	return &cp
}

// Food is a perishable product. ExpiryDate is a calendar date at local
// midnight.
type Food struct {
	Base
	ExpiryDate        time.Time `json:"expiry_date" validate:"required"`
	GlutenFree        bool      `json:"gluten_free"`
	SuitableForVegans bool      `json:"suitable_for_vegans"`
}

// FoodView is the export record of a Food product.
type FoodView struct {
	BaseView
	ExpiryDate        string `json:"expiry date"`
	GlutenFree        bool   `json:"gluten free"`
	SuitableForVegans bool   `json:"suitable for vegan"`
}

// Category returns CategoryFood.
func (f *Food) Category() Category { return CategoryFood }

// View returns the export record with the expiry date as DD/MM/YYYY.
func (f *Food) View() any {
	return FoodView{
		BaseView:          f.view(),
		ExpiryDate:        f.ExpiryDate.Format(DateLayout),
		GlutenFree:        f.GlutenFree,
		SuitableForVegans: f.SuitableForVegans,
	}
}

// Clone returns a copy of f.
func (f *Food) Clone() Product {
	cp := *f
	return &cp
}

// Toys is a toy with a minimum age and a recommended-audience tag.
type Toys struct {
	Base
	MinimumAge int    `json:"minimum_age" validate:"gte=1"`
	Gender     Gender `json:"gender" validate:"required,oneof=m f"`
}

// ToysView is the export record of a Toys product.
type ToysView struct {
	BaseView
	Gender     Gender `json:"gender"`
	MinimumAge int    `json:"minimum_age"`
}

// Category returns CategoryToys.
func (t *Toys) Category() Category { return CategoryToys }

// View returns the export record.
func (t *Toys) View() any {
	return ToysView{BaseView: t.view(), Gender: t.Gender, MinimumAge: t.MinimumAge}
}

// Clone returns a copy of t.
func (t *Toys) Clone() Product {
	cp := *t
	return &cp
}

// Compile-time checks that every variant implements Product.
var (
	_ Product = (*Clothing)(nil)
	_ Product = (*Food)(nil)
	_ Product = (*Toys)(nil)
)
