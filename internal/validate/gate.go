package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// Gate checks an assembled product against the constraints declared in
// the validate tags of pkg/types before it may enter a cart.
type Gate struct {
	validate *validator.Validate
}

// NewGate returns a Gate with the digits13 tag registered. It panics if the
// tag cannot be registered.
func NewGate() *Gate {
	v := validator.New()
	err := v.RegisterValidation("digits13", func(fl validator.FieldLevel) bool {
		id := fl.Field().Int()
		return id >= minID && id < maxID
	})
	if err != nil {
		panic(fmt.Sprintf("validate: registering digits13: %v", err))
	}
	return &Gate{validate: v}
}

// Check returns an error wrapping types.ErrInvalidProduct when p violates
// any field constraint.
func (g *Gate) Check(p types.Product) error {
	if p == nil {
		return fmt.Errorf("nil product: %w", types.ErrInvalidProduct)
	}
	if err := g.validate.Struct(p); err != nil {
		return fmt.Errorf("%s %q: %w: %v", p.Category(), p.Info().Name, types.ErrInvalidProduct, err)
	}
	return nil
}
