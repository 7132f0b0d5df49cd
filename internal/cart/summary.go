package cart

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Line is one entry of a Summary.
type Line struct {
	Position int
	Name     string
	Quantity int
	Price    decimal.Decimal
	Cost     decimal.Decimal
}

// Summary is the itemized cost of a cart.
type Summary struct {
	Lines []Line
	Total decimal.Decimal
}

// Summary computes the cost of every product and the cart total.
func (c *Cart) Summary() (Summary, error) {
	products, err := c.store.List()
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Lines: make([]Line, 0, len(products)), Total: decimal.Zero}
	for i, p := range products {
		info := p.Info()
		price := decimal.NewFromFloat(info.Price)
		cost := price.Mul(decimal.NewFromInt(int64(info.Quantity)))
		s.Lines = append(s.Lines, Line{
			Position: i + 1,
			Name:     info.Name,
			Quantity: info.Quantity,
			Price:    price,
			Cost:     cost,
		})
		s.Total = s.Total.Add(cost)
	}
	return s, nil
}

// Print writes the summary: "qty * name = cost" for multiples,
// "name = price" for single items, then the total.
func (s Summary) Print(w io.Writer, currency string) error {
	if _, err := fmt.Fprintln(w, "This is the total of the expenses:"); err != nil {
		return err
	}
	for _, l := range s.Lines {
		var err error
		if l.Quantity > 1 {
			_, err = fmt.Fprintf(w, "\t%d - %d * %s = %s%s\n", l.Position, l.Quantity, l.Name, currency, l.Cost.StringFixed(2))
		} else {
			_, err = fmt.Fprintf(w, "\t%d - %s = %s%s\n", l.Position, l.Name, currency, l.Price.StringFixed(2))
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\tTotal = %s%s\n", currency, s.Total.StringFixed(2))
	return err
}
