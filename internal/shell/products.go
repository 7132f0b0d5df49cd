package shell

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/basket/internal/validate"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// createProduct asks for a category and then for every field of that
// variant. The product is built and added only after all fields pass.
func (s *Shell) createProduct() error {
	s.println("Adding a new product:")

	category, err := ask(s, "Insert its type: ", validate.ProductCategory)
	if err != nil {
		return err
	}

	var p types.Product
	switch category {
	case types.CategoryClothing:
		p, err = s.askClothing()
	case types.CategoryFood:
		p, err = s.askFood()
	case types.CategoryToys:
		p, err = s.askToys()
	default:
		return fmt.Errorf("category %q: %w", category, types.ErrInvalidProduct)
	}
	if err != nil {
		return err
	}

	if err := s.check(p); err != nil {
		s.log.Error("product rejected", zap.Error(err))
		s.printf("The product %s could not be added: %v\n", p.Info().Name, err)
		return nil
	}
	if err := s.cart.AddProduct(p); err != nil {
		return err
	}

	n, err := s.cart.Len()
	if err != nil {
		return err
	}
	s.log.Info("product added",
		zap.String("category", string(category)),
		zap.Int64("id", p.Info().UniqueID),
		zap.String("name", p.Info().Name),
	)
	s.printf("The product %s was added to the cart\n", p.Info().Name)
	s.printf("The cart contains %d products\n", n)
	return nil
}

// askBase collects the fields every product shares.
func (s *Shell) askBase() (types.Base, error) {
	var b types.Base
	var err error

	if b.Name, err = ask(s, "Insert its name: ", validate.Text); err != nil {
		return b, err
	}
	if b.Price, err = ask(s, "Insert its price ("+s.currency+"): ", validate.Price); err != nil {
		return b, err
	}
	if b.Quantity, err = ask(s, "Insert its quantity: ", validate.Integer); err != nil {
		return b, err
	}
	if b.Brand, err = ask(s, "Insert its brand: ", validate.Text); err != nil {
		return b, err
	}

	taken, err := s.cart.IDs()
	if err != nil {
		return b, err
	}
	b.UniqueID, err = ask(s, "Insert its ID Number: ", func(raw string) (int64, error) {
		return validate.NewID(raw, taken)
	})
	return b, err
}

func (s *Shell) askClothing() (types.Product, error) {
	base, err := s.askBase()
	if err != nil {
		return nil, err
	}
	c := &types.Clothing{Base: base}

	if c.Size, err = ask(s, "Insert its Size: ", validate.ClothingSize); err != nil {
		return nil, err
	}
	if c.Materials, err = ask(s, "Insert its material: ", validate.Text); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Shell) askFood() (types.Product, error) {
	base, err := s.askBase()
	if err != nil {
		return nil, err
	}
	f := &types.Food{Base: base}

	f.ExpiryDate, err = ask(s, "Insert its expiry date in the format DD/MM/YYYY: ", func(raw string) (time.Time, error) {
		return validate.Date(raw, s.now())
	})
	if err != nil {
		return nil, err
	}
	if f.GlutenFree, err = ask(s, "Is the item gluten free: ", validate.Bool); err != nil {
		return nil, err
	}
	if f.SuitableForVegans, err = ask(s, "Is the item suitable for vegans: ", validate.Bool); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Shell) askToys() (types.Product, error) {
	base, err := s.askBase()
	if err != nil {
		return nil, err
	}
	t := &types.Toys{Base: base}

	if t.Gender, err = ask(s, "Insert the recommended gender (m/f): ", validate.ToyGender); err != nil {
		return nil, err
	}
	if t.MinimumAge, err = ask(s, "Insert the minimum age: ", validate.Integer); err != nil {
		return nil, err
	}
	return t, nil
}
