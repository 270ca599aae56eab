package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLookups(t *testing.T) {
	c := Default()

	require.Len(t, c.Stores(), 6)
	require.Len(t, c.Products(), 18)

	s, ok := c.Store("s1")
	require.True(t, ok)
	require.Equal(t, "Heritage Fresh", s.Name)

	p, ok := c.Product("p1")
	require.True(t, ok)
	require.Equal(t, "s1", p.StoreID)

	_, ok = c.Store("nope")
	require.False(t, ok)
	_, ok = c.Product("nope")
	require.False(t, ok)
}

func TestStoreProducts(t *testing.T) {
	c := Default()

	for _, p := range c.StoreProducts("s1") {
		require.Equal(t, "s1", p.StoreID)
	}
	require.NotEmpty(t, c.StoreProducts("s1"))
	require.Empty(t, c.StoreProducts("nope"))
}

func TestCategoryProducts(t *testing.T) {
	c := Default()

	dairy := c.CategoryProducts("Dairy")
	require.Len(t, dairy, 4)
	for _, p := range dairy {
		require.Equal(t, "Dairy", p.Category)
	}
}

func TestEveryProductBelongsToAKnownStore(t *testing.T) {
	c := Default()
	for _, p := range c.Products() {
		_, ok := c.Store(p.StoreID)
		require.True(t, ok, "product %s references unknown store %s", p.ID, p.StoreID)
	}
}
