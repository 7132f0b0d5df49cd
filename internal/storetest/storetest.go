// Package storetest holds the behaviour every types.Store must show.
// Store packages call Run from their own tests.
package storetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// Factory returns a new, empty store. Run closes it.
type Factory func(t *testing.T) types.Store

// Shirt returns a clothing product with the given id.
func Shirt(id int64) *types.Clothing {
	return &types.Clothing{
		Base:      types.Base{Name: "Shirt", Price: 9.99, Quantity: 2, Brand: "Acme", UniqueID: id},
		Size:      types.SizeM,
		Materials: "Cotton",
	}
}

// Bread returns a food product with the given id, expiring in a year.
func Bread(id int64) *types.Food {
	expiry := time.Now().AddDate(1, 0, 0)
	return &types.Food{
		Base:              types.Base{Name: "Bread", Price: 1.2, Quantity: 1, Brand: "Baker", UniqueID: id},
		ExpiryDate:        time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.Local),
		GlutenFree:        true,
		SuitableForVegans: true,
	}
}

// Kite returns a toy with the given id.
func Kite(id int64) *types.Toys {
	return &types.Toys{
		Base:       types.Base{Name: "Kite", Price: 15, Quantity: 1, Brand: "Sky", UniqueID: id},
		MinimumAge: 6,
		Gender:     types.GenderFemale,
	}
}

// Run exercises the types.Store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	open := func(t *testing.T) types.Store {
		s := newStore(t)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("new store is empty", func(t *testing.T) {
		s := open(t)
		n, err := s.Count()
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		list, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("append preserves insertion order and variants", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Append(Kite(3000000000000)))
		require.NoError(t, s.Append(Shirt(1000000000000)))
		require.NoError(t, s.Append(Bread(2000000000000)))

		list, err := s.List()
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, int64(3000000000000), list[0].Info().UniqueID)
		assert.Equal(t, int64(1000000000000), list[1].Info().UniqueID)
		assert.Equal(t, int64(2000000000000), list[2].Info().UniqueID)

		assert.Equal(t, Kite(3000000000000), list[0])
		assert.Equal(t, Shirt(1000000000000), list[1])

		food, ok := list[2].(*types.Food)
		require.True(t, ok)
		want := Bread(2000000000000)
		assert.Equal(t, want.Base, food.Base)
		assert.Equal(t, want.ExpiryDate.Format(types.DateLayout), food.ExpiryDate.Format(types.DateLayout))
		assert.True(t, food.GlutenFree)
		assert.True(t, food.SuitableForVegans)
	})

	t.Run("append rejects duplicate id", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Append(Shirt(1234567890123)))
		assert.ErrorIs(t, s.Append(Kite(1234567890123)), types.ErrDuplicateID)

		n, err := s.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("append rejects nil", func(t *testing.T) {
		s := open(t)
		assert.ErrorIs(t, s.Append(nil), types.ErrInvalidProduct)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		s := open(t)
		orig := Shirt(1234567890123)
		require.NoError(t, s.Append(orig))

		orig.Quantity = 50
		got, err := s.Get(1234567890123)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Info().Quantity)

		got.Info().Quantity = 99
		again, err := s.Get(1234567890123)
		require.NoError(t, err)
		assert.Equal(t, 2, again.Info().Quantity)
	})

	t.Run("get missing id", func(t *testing.T) {
		s := open(t)
		_, err := s.Get(1234567890123)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("delete keeps order of the rest", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Append(Shirt(1000000000001)))
		require.NoError(t, s.Append(Kite(1000000000002)))
		require.NoError(t, s.Append(Bread(1000000000003)))

		require.NoError(t, s.Delete(1000000000002))
		assert.ErrorIs(t, s.Delete(1000000000002), types.ErrNotFound)

		list, err := s.List()
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(1000000000001), list[0].Info().UniqueID)
		assert.Equal(t, int64(1000000000003), list[1].Info().UniqueID)
	})

	t.Run("deleted id can be reused", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Append(Shirt(1234567890123)))
		require.NoError(t, s.Delete(1234567890123))
		assert.NoError(t, s.Append(Kite(1234567890123)))
	})

	t.Run("set quantity", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Append(Shirt(1234567890123)))
		require.NoError(t, s.SetQuantity(1234567890123, 7))

		got, err := s.Get(1234567890123)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Info().Quantity)

		assert.ErrorIs(t, s.SetQuantity(9999999999999, 1), types.ErrNotFound)
	})

	t.Run("closed store", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		assert.ErrorIs(t, s.Append(Shirt(1234567890123)), types.ErrStoreClosed)
		_, err := s.List()
		assert.ErrorIs(t, err, types.ErrStoreClosed)
		_, err = s.Count()
		assert.ErrorIs(t, err, types.ErrStoreClosed)
	})
}
