package types

// Category names a product variant. The set is closed.
type Category string

// Product categories accepted by the add flow.
const (
	CategoryFood     Category = "Food"
	CategoryClothing Category = "Clothing"
	CategoryToys     Category = "Toys"
)

// Categories lists the categories in the order they are offered to the user.
var Categories = []Category{CategoryFood, CategoryClothing, CategoryToys}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryClothing, CategoryToys:
		return true
	}
	return false
}

// Size is a clothing size tag.
type Size string

// Clothing sizes, smallest first.
const (
	SizeXXS Size = "XXS"
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists every accepted clothing size.
var Sizes = []Size{SizeXXS, SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Valid reports whether s is an accepted clothing size.
func (s Size) Valid() bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

// Gender is the recommended-audience tag carried by toys.
type Gender string

// Gender tags.
const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

// Genders lists every accepted gender tag.
var Genders = []Gender{GenderMale, GenderFemale}

// Valid reports whether g is an accepted gender tag.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}
