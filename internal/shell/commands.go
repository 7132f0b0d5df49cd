package shell

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/basket/internal/export"
	"github.com/mesh-intelligence/basket/internal/validate"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// Command letters.
const (
	cmdAdd       = "A"
	cmdRemove    = "R"
	cmdSummary   = "S"
	cmdQuantity  = "Q"
	cmdExport    = "E"
	cmdTerminate = "T"
	cmdHelp      = "H"
)

// dispatch runs one command. It reports done when the loop should stop.
func (s *Shell) dispatch(command string) (done bool, err error) {
	switch command {
	case cmdAdd:
		return false, s.createProduct()
	case cmdRemove:
		return false, s.removeProduct()
	case cmdSummary:
		return false, s.printSummary()
	case cmdQuantity:
		return false, s.changeQuantity()
	case cmdExport:
		return false, s.exportCart()
	case cmdTerminate:
		return true, nil
	case cmdHelp:
		s.printHelp()
		return false, nil
	default:
		s.log.Debug("unknown command", zap.String("command", command))
		s.println("Command not recognised. Please try again.")
		return false, nil
	}
}

func (s *Shell) printHelp() {
	s.println("The program supports the following command")
	s.println("\t[A] - Add a new product to the cart")
	s.println("\t[R] - Remove product from the cart")
	s.println("\t[S] - Print a summary from the cart")
	s.println("\t[Q] - Change the quantity of a product")
	s.println("\t[E] - Export a JSON version of the cart")
	s.println("\t[T] - Terminate the program")
	s.println("\t[H] - List the supported commands")
}

func (s *Shell) removeProduct() error {
	n, err := s.cart.Len()
	if err != nil {
		return err
	}
	if n == 0 {
		s.println("There are no items to remove.")
		return nil
	}

	p, err := s.askExistingID("What product would you like to remove [ID number]: ")
	if err != nil {
		return err
	}
	if _, err := s.cart.RemoveByID(p.Info().UniqueID); err != nil {
		return fmt.Errorf("removing product %d: %w", p.Info().UniqueID, err)
	}

	s.log.Info("product removed", zap.Int64("id", p.Info().UniqueID), zap.String("name", p.Info().Name))
	s.printf("The product %s was removed from the cart\n", p.Info().Name)
	return nil
}

func (s *Shell) printSummary() error {
	n, err := s.cart.Len()
	if err != nil {
		return err
	}
	if n == 0 {
		s.println("There are no items in the cart. To add items select 'A'.")
		return nil
	}

	summary, err := s.cart.Summary()
	if err != nil {
		return err
	}
	return summary.Print(s.out, s.currency)
}

func (s *Shell) changeQuantity() error {
	n, err := s.cart.Len()
	if err != nil {
		return err
	}
	if n == 0 {
		s.println("There are no items to edit.")
		return nil
	}

	p, err := s.askExistingID("What product would you like to edit [ID number]: ")
	if err != nil {
		return err
	}
	quantity, err := ask(s, "Change the quantity to: ", validate.Integer)
	if err != nil {
		return err
	}
	if err := s.cart.ChangeQuantityByID(p.Info().UniqueID, quantity); err != nil {
		return fmt.Errorf("changing quantity of product %d: %w", p.Info().UniqueID, err)
	}

	s.log.Info("quantity changed",
		zap.Int64("id", p.Info().UniqueID),
		zap.Int("from", p.Info().Quantity),
		zap.Int("to", quantity),
	)
	s.printf("The quantity of %s was changed to %d\n", p.Info().Name, quantity)
	return nil
}

func (s *Shell) exportCart() error {
	name, err := ask(s, "Please enter a file name: ", func(raw string) (string, error) {
		if _, err := export.Path(s.exportDir, raw); err != nil {
			return "", err
		}
		return raw, nil
	})
	if err != nil {
		return err
	}

	products, err := s.cart.Products()
	if err != nil {
		return err
	}
	path, err := export.WriteFile(s.exportDir, name, s.exportFormat, products)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	s.log.Info("cart exported", zap.String("path", path), zap.Int("products", len(products)))
	s.printf("The cart was exported to %s\n", path)
	return nil
}

// askExistingID prompts until the input is a well-formed id of a product
// in the cart. A well-formed id that is not in the cart prints the cart's
// ids and prompts again.
func (s *Shell) askExistingID(prompt string) (types.Product, error) {
	for {
		id, err := ask(s, prompt, validate.IDFormat)
		if err != nil {
			return nil, err
		}

		p, err := s.cart.Find(id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		if err := s.printMissing(); err != nil {
			return nil, err
		}
	}
}

func (s *Shell) printMissing() error {
	products, err := s.cart.Products()
	if err != nil {
		return err
	}
	s.println("This product does not exist")
	s.println("These are the items in your list:")
	for _, p := range products {
		s.printf("\tName: %s - \t - \tUnique ID: %d\n", p.Info().Name, p.Info().UniqueID)
	}
	return nil
}
