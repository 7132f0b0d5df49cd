package shell

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/basket/internal/cart"
	"github.com/mesh-intelligence/basket/internal/memory"
	"github.com/mesh-intelligence/basket/internal/storetest"
	"github.com/mesh-intelligence/basket/pkg/types"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

type session struct {
	out  string
	cart *cart.Cart
	err  error
}

// runLines feeds lines to a new shell over an empty memory cart.
func runLines(t *testing.T, opts Options, lines ...string) session {
	t.Helper()
	return runOnCart(t, cart.New(memory.NewStore()), opts, lines...)
}

func runOnCart(t *testing.T, c *cart.Cart, opts Options, lines ...string) session {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	var out strings.Builder
	input := strings.Join(lines, "\n") + "\n"
	err := New(strings.NewReader(input), &out, c, opts).Run()
	return session{out: out.String(), cart: c, err: err}
}

func shirtLines(id string) []string {
	return []string{"A", "clothing", "shirt", "9.99", "2", "acme", id, "m", "cotton"}
}

func TestEmptyCartSummary(t *testing.T) {
	s := runLines(t, Options{}, "S", "T")
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "The program has started.")
	assert.Contains(t, s.out, "There are no items in the cart. To add items select 'A'.")
	assert.True(t, strings.HasSuffix(s.out, "Goodbye.\n"))

	n, err := s.cart.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAddClothingThenSummary(t *testing.T) {
	lines := append(shirtLines("1234567890123"), "S", "T")
	s := runLines(t, Options{}, lines...)
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "The product Shirt was added to the cart")
	assert.Contains(t, s.out, "The cart contains 1 products")
	assert.Contains(t, s.out, "2 * Shirt = £19.98")
	assert.Contains(t, s.out, "Total = £19.98")

	products, err := s.cart.Products()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, &types.Clothing{
		Base:      types.Base{Name: "Shirt", Price: 9.99, Quantity: 2, Brand: "Acme", UniqueID: 1234567890123},
		Size:      types.SizeM,
		Materials: "Cotton",
	}, products[0])
}

func TestShortIDIsRejectedThenAccepted(t *testing.T) {
	lines := []string{"A", "toys", "kite", "15", "1", "sky", "123", "1234567890123", "f", "6", "T"}
	s := runLines(t, Options{}, lines...)
	require.NoError(t, s.err)

	assert.Equal(t, 1, strings.Count(s.out, "Please make sure the ID number is 13 digits"))
	assert.Equal(t, 2, strings.Count(s.out, "Insert its ID Number: "))

	ok, err := s.cart.CheckProductExist(1234567890123)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDuplicateIDIsRejected(t *testing.T) {
	lines := append(shirtLines("1234567890123"),
		"A", "toys", "kite", "15", "1", "sky", "1234567890123", "9999999999999", "m", "3", "T")
	s := runLines(t, Options{}, lines...)
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "This ID number already exists!")
	ids, err := s.cart.IDs()
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1234567890123: true, 9999999999999: true}, ids)
}

func TestFieldRetries(t *testing.T) {
	lines := []string{
		"A",
		"books", "food",
		"", "bread",
		"cheap", "-1", "1.20",
		"1.5", "0", "1",
		"  ", "baker",
		"1234567890123",
		"2026-12-01", "01/01/2000", "16/10/2026", "17/10/2026",
		"maybe", "yes",
		"N",
		"T",
	}
	s := runLines(t, Options{}, lines...)
	require.NoError(t, s.err)

	for _, want := range []string{
		"Please enter a valid type [Food, Clothing, Toys]",
		"Please enter some text.",
		"Please enter a number",
		"Please enter a number bigger than 0",
		"Please enter an Integer",
		"Incorrect date format, should be DD/MM/YYYY",
		"This product has expired! Enter a date in the future.",
		"Please enter a Boolean value (True/False)",
		"The product Bread was added to the cart",
	} {
		assert.Contains(t, s.out, want)
	}
	assert.Equal(t, 2, strings.Count(s.out, "This product has expired!"))

	p, err := s.cart.Find(1234567890123)
	require.NoError(t, err)
	food, ok := p.(*types.Food)
	require.True(t, ok)
	assert.Equal(t, "17/10/2026", food.ExpiryDate.Format(types.DateLayout))
	assert.True(t, food.GlutenFree)
	assert.False(t, food.SuitableForVegans)
	assert.Equal(t, 1.2, food.Price)
}

func TestToyRetries(t *testing.T) {
	lines := []string{"A", "TOYS", "ball", "3", "1", "kick", "1234567890123", "x", "M", "zero", "0", "4", "T"}
	s := runLines(t, Options{}, lines...)
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "Please enter either 'f' or 'm'.")
	p, err := s.cart.Find(1234567890123)
	require.NoError(t, err)
	toy := p.(*types.Toys)
	assert.Equal(t, types.GenderMale, toy.Gender)
	assert.Equal(t, 4, toy.MinimumAge)
}

func TestClothingSizeRetry(t *testing.T) {
	lines := []string{"A", "clothing", "hat", "5", "1", "acme", "1234567890123", "huge", "xxl", "wool", "T"}
	s := runLines(t, Options{}, lines...)
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "Please enter a valid size [XXS, XS, S, M, L, XL, XXL]!")
	p, err := s.cart.Find(1234567890123)
	require.NoError(t, err)
	assert.Equal(t, types.SizeXXL, p.(*types.Clothing).Size)
}

func TestRemoveRepromptsUntilIDExists(t *testing.T) {
	c := cart.New(memory.NewStore())
	require.NoError(t, c.AddProduct(storetest.Shirt(1000000000001)))
	require.NoError(t, c.AddProduct(storetest.Kite(1000000000002)))

	s := runOnCart(t, c, Options{}, "r", "12", "5555555555555", "1000000000002", "T")
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "Please make sure the ID number is 13 digits")
	assert.Contains(t, s.out, "This product does not exist")
	assert.Contains(t, s.out, "Name: Kite - \t - \tUnique ID: 1000000000002")
	assert.Contains(t, s.out, "The product Kite was removed from the cart")

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRemoveAndEditOnEmptyCart(t *testing.T) {
	s := runLines(t, Options{}, "R", "Q", "T")
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "There are no items to remove.")
	assert.Contains(t, s.out, "There are no items to edit.")
}

func TestChangeQuantity(t *testing.T) {
	c := cart.New(memory.NewStore())
	require.NoError(t, c.AddProduct(storetest.Shirt(1000000000001)))

	s := runOnCart(t, c, Options{}, "Q", "1000000000001", "0", "3", "S", "T")
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "Please enter a number bigger than 0")
	assert.Contains(t, s.out, "The quantity of Shirt was changed to 3")
	assert.Contains(t, s.out, "3 * Shirt = £29.97")
}

func TestExportWritesLegacyFile(t *testing.T) {
	dir := t.TempDir()
	c := cart.New(memory.NewStore())
	require.NoError(t, c.AddProduct(storetest.Bread(1000000000001)))

	s := runOnCart(t, c, Options{ExportDir: dir}, "E", " ", "groceries", "T")
	require.NoError(t, s.err)

	path := filepath.Join(dir, "groceries.json")
	assert.Contains(t, s.out, "Please enter a file name.")
	assert.Contains(t, s.out, "The cart was exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var outer map[string]string
	require.NoError(t, json.Unmarshal(data, &outer))
	var inner map[string]any
	require.NoError(t, json.Unmarshal([]byte(outer["Bread"]), &inner))
	assert.Equal(t, true, inner["gluten free"])
}

func TestExportFailureEndsSession(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	s := runLines(t, Options{ExportDir: missing}, "E", "cart", "T")

	require.Error(t, s.err)
	assert.NotContains(t, s.out, "Goodbye.")
}

func TestUnknownCommandAndHelp(t *testing.T) {
	s := runLines(t, Options{}, "x", "", "h", "t")
	require.NoError(t, s.err)

	assert.Equal(t, 2, strings.Count(s.out, "Command not recognised. Please try again."))
	assert.Contains(t, s.out, "[E] - Export a JSON version of the cart")
	assert.Contains(t, s.out, "Goodbye.")
}

func TestEndOfInputEndsSession(t *testing.T) {
	s := runLines(t, Options{}, "A", "food", "bread")
	require.NoError(t, s.err)
	assert.True(t, strings.HasSuffix(s.out, "Goodbye.\n"))

	n, err := s.cart.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCurrencyOption(t *testing.T) {
	lines := append(shirtLines("1234567890123"), "S", "T")
	s := runLines(t, Options{Currency: "$"}, lines...)
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "Insert its price ($): ")
	assert.Contains(t, s.out, "Total = $19.98")
}

func TestOverlongLineIsRejected(t *testing.T) {
	long := strings.Repeat("x", maxLineBytes+6*1024)
	lines := []string{"A", "clothing", long, "shirt", "9.99", "2", "acme", "1234567890123", "m", "cotton", long, "S", "T"}
	s := runLines(t, Options{}, lines...)
	require.NoError(t, s.err)

	assert.Contains(t, s.out, "That input is too long. Please try again.")
	assert.Contains(t, s.out, "Command not recognised. Please try again.")
	assert.Contains(t, s.out, "2 * Shirt = £19.98")
	assert.True(t, strings.HasSuffix(s.out, "Goodbye.\n"))

	n, err := s.cart.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLastLineWithoutNewline(t *testing.T) {
	var out strings.Builder
	sh := New(strings.NewReader("S\nT"), &out, cart.New(memory.NewStore()), Options{})
	require.NoError(t, sh.Run())

	assert.Contains(t, out.String(), "There are no items in the cart.")
	assert.True(t, strings.HasSuffix(out.String(), "Goodbye.\n"))
}

func TestRejectedProductIsNotAdded(t *testing.T) {
	c := cart.New(memory.NewStore())
	var out strings.Builder
	input := strings.Join(append(shirtLines("1234567890123"), "T"), "\n") + "\n"
	sh := New(strings.NewReader(input), &out, c, Options{})
	sh.check = func(p types.Product) error {
		return fmt.Errorf("%q: %w", p.Info().Name, types.ErrInvalidProduct)
	}

	require.NoError(t, sh.Run())
	assert.Contains(t, out.String(), "The product Shirt could not be added")
	assert.NotContains(t, out.String(), "was added to the cart")

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
