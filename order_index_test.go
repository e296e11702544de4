package lob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIndex(t *testing.T) {
	idx := newOrderIndex()

	ord := &Order{ID: 42, Side: Bid, Price: 100, Quantity: 10}
	require.True(t, idx.insert(ord))
	assert.False(t, idx.insert(&Order{ID: 42}), "duplicate id must be refused")

	got := idx.get(42)
	require.NotNil(t, got)
	assert.Same(t, ord, got)
	assert.Nil(t, idx.get(43))

	require.True(t, idx.updateQuantity(42, 7))
	assert.Equal(t, uint32(7), ord.Quantity)
	assert.False(t, idx.updateQuantity(43, 7))

	assert.Equal(t, 1, idx.size())
	require.True(t, idx.remove(42))
	assert.False(t, idx.remove(42))
	assert.Equal(t, 0, idx.size())

	// A removed id may be re-introduced.
	assert.True(t, idx.insert(&Order{ID: 42}))
}
