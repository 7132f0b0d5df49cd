package cart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/basket/internal/memory"
	"github.com/mesh-intelligence/basket/internal/sqlite"
	"github.com/mesh-intelligence/basket/internal/storetest"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// backends lists the stores every cart test runs against.
var backends = map[string]func(t *testing.T) *Cart{
	types.StoreMemory: func(t *testing.T) *Cart {
		return New(memory.NewStore())
	},
	types.StoreSQLite: func(t *testing.T) *Cart {
		s, err := sqlite.NewStore()
		require.NoError(t, err)
		return New(s)
	},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, c *Cart)) {
	for name, newCart := range backends {
		t.Run(name, func(t *testing.T) {
			c := newCart(t)
			t.Cleanup(func() { _ = c.Close() })
			fn(t, c)
		})
	}
}

func TestAddProductGrowsByOneAndAppends(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		for i, p := range []types.Product{
			storetest.Shirt(1000000000001),
			storetest.Bread(1000000000002),
			storetest.Kite(1000000000003),
		} {
			before, err := c.Len()
			require.NoError(t, err)

			require.NoError(t, c.AddProduct(p))

			after, err := c.Len()
			require.NoError(t, err)
			assert.Equal(t, before+1, after, "add #%d", i)

			products, err := c.Products()
			require.NoError(t, err)
			assert.Equal(t, p.Info().UniqueID, products[len(products)-1].Info().UniqueID)
		}
	})
}

func TestRemoveProductByName(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		require.NoError(t, c.AddProduct(storetest.Shirt(1000000000001)))
		require.NoError(t, c.AddProduct(storetest.Kite(1000000000002)))

		require.NoError(t, c.RemoveProduct("Shirt"))

		n, err := c.Len()
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		ok, err := c.CheckProductExist(1000000000001)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRemoveProductMissingNameIsNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		require.NoError(t, c.AddProduct(storetest.Shirt(1000000000001)))

		assert.ErrorIs(t, c.RemoveProduct("Hat"), types.ErrNotFound)

		n, err := c.Len()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestRemoveProductTakesFirstMatch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		require.NoError(t, c.AddProduct(storetest.Shirt(1000000000001)))
		require.NoError(t, c.AddProduct(storetest.Shirt(1000000000002)))

		require.NoError(t, c.RemoveProduct("Shirt"))

		products, err := c.Products()
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, int64(1000000000002), products[0].Info().UniqueID)
	})
}

func TestRemoveByID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		require.NoError(t, c.AddProduct(storetest.Shirt(1000000000001)))
		require.NoError(t, c.AddProduct(storetest.Shirt(1000000000002)))

		removed, err := c.RemoveByID(1000000000002)
		require.NoError(t, err)
		assert.Equal(t, "Shirt", removed.Info().Name)

		_, err = c.RemoveByID(1000000000002)
		assert.ErrorIs(t, err, types.ErrNotFound)

		ids, err := c.IDs()
		require.NoError(t, err)
		assert.Equal(t, map[int64]bool{1000000000001: true}, ids)
	})
}

func TestChangeQuantity(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		require.NoError(t, c.AddProduct(storetest.Kite(1000000000001)))

		require.NoError(t, c.ChangeProductQuantity("Kite", 4))
		p, err := c.Find(1000000000001)
		require.NoError(t, err)
		assert.Equal(t, 4, p.Info().Quantity)

		require.NoError(t, c.ChangeQuantityByID(1000000000001, 2))
		p, err = c.Find(1000000000001)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Info().Quantity)

		assert.ErrorIs(t, c.ChangeProductQuantity("Ball", 3), types.ErrNotFound)
		assert.ErrorIs(t, c.ChangeQuantityByID(9999999999999, 3), types.ErrNotFound)
		assert.ErrorIs(t, c.ChangeProductQuantity("Kite", 0), types.ErrInvalidQuantity)
		assert.ErrorIs(t, c.ChangeQuantityByID(1000000000001, -1), types.ErrInvalidQuantity)
	})
}

func TestFindReturnsCopy(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		require.NoError(t, c.AddProduct(storetest.Kite(1000000000001)))

		p, err := c.Find(1000000000001)
		require.NoError(t, err)
		p.Info().Quantity = 40

		again, err := c.Find(1000000000001)
		require.NoError(t, err)
		assert.Equal(t, 1, again.Info().Quantity)
	})
}

func TestSummary(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Cart) {
		require.NoError(t, c.AddProduct(storetest.Shirt(1234567890123)))
		require.NoError(t, c.AddProduct(storetest.Kite(1234567890124)))

		s, err := c.Summary()
		require.NoError(t, err)
		require.Len(t, s.Lines, 2)
		assert.Equal(t, "19.98", s.Lines[0].Cost.StringFixed(2))
		assert.Equal(t, "15.00", s.Lines[1].Cost.StringFixed(2))
		assert.Equal(t, "34.98", s.Total.StringFixed(2))

		var buf bytes.Buffer
		require.NoError(t, s.Print(&buf, "£"))
		assert.Equal(t,
			"This is the total of the expenses:\n"+
				"\t1 - 2 * Shirt = £19.98\n"+
				"\t2 - Kite = £15.00\n"+
				"\tTotal = £34.98\n",
			buf.String())
	})
}

func TestSummaryAvoidsFloatDrift(t *testing.T) {
	c := New(memory.NewStore())
	p := storetest.Kite(1234567890123)
	p.Price = 0.1
	p.Quantity = 3
	require.NoError(t, c.AddProduct(p))

	s, err := c.Summary()
	require.NoError(t, err)
	assert.Equal(t, "0.3", s.Total.String())
}

func TestSummaryOfEmptyCart(t *testing.T) {
	c := New(memory.NewStore())

	s, err := c.Summary()
	require.NoError(t, err)
	assert.Empty(t, s.Lines)
	assert.True(t, s.Total.IsZero())
}
