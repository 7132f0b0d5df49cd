package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/basket/internal/storetest"
	"github.com/mesh-intelligence/basket/pkg/types"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) types.Store { return NewStore() })
}

func TestStoresDoNotShareEntries(t *testing.T) {
	a := NewStore()
	b := NewStore()

	require.NoError(t, a.Append(storetest.Shirt(1234567890123)))

	n, err := b.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
