package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bazaarnow/marketplace/internal/models"
)

var (
	milk  = models.Product{ID: "milk", Name: "Full Cream Milk", Price: 4000, StoreID: "s1"}
	bread = models.Product{ID: "bread", Name: "Brown Bread", Price: 3000, StoreID: "s1"}
	shop  = models.Store{ID: "s1", Name: "Heritage Fresh"}
)

func TestAddIncrementsExistingEntry(t *testing.T) {
	c := New()
	c.Add(milk, shop)
	c.Add(milk, shop)

	require.Equal(t, 1, c.Len())
	snap := c.Snapshot()
	require.Equal(t, "milk", snap[0].Product.ID)
	require.Equal(t, 2, snap[0].Quantity)
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	c := New()
	c.Add(milk, shop)
	c.Remove("no-such-product")
	require.Equal(t, 1, c.Len())

	c.Remove("milk")
	require.Equal(t, 0, c.Len())
}

func TestUpdateQuantityClampsAtZero(t *testing.T) {
	c := New()
	c.Add(milk, shop)
	c.Add(milk, shop)

	c.UpdateQuantity("milk", -5)

	require.Equal(t, 0, c.Len())
	for _, e := range c.Snapshot() {
		require.NotEqual(t, "milk", e.Product.ID)
	}
}

func TestUpdateQuantityDeletesAtExactZero(t *testing.T) {
	c := New()
	c.Add(milk, shop)
	c.Add(milk, shop)

	c.UpdateQuantity("milk", -2)
	require.Equal(t, 0, c.Len())
}

func TestUpdateQuantityMissingIsNoOp(t *testing.T) {
	c := New()
	c.Add(milk, shop)
	c.UpdateQuantity("bread", 3)
	require.Equal(t, 1, c.Count())
}

func TestTotalAndCount(t *testing.T) {
	c := New()
	c.Add(milk, shop)
	c.Add(milk, shop)
	c.Add(bread, shop)

	require.Equal(t, int64(11000), c.Total())
	require.Equal(t, 3, c.Count())

	c.UpdateQuantity("bread", 2)
	require.Equal(t, int64(17000), c.Total())
	require.Equal(t, 5, c.Count())

	c.Remove("milk")
	require.Equal(t, int64(9000), c.Total())

	c.Clear()
	require.Equal(t, int64(0), c.Total())
	require.Equal(t, 0, c.Count())
}

func TestRestoreDropsZeroQuantities(t *testing.T) {
	c := New()
	c.Restore([]models.CartEntry{
		{Product: milk, Store: shop, Quantity: 2},
		{Product: bread, Store: shop, Quantity: 0},
	})
	require.Equal(t, 1, c.Len())
	require.Equal(t, int64(8000), c.Total())
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.Add(milk, shop)
	snap := c.Snapshot()
	c.Add(milk, shop)

	require.Equal(t, 1, snap[0].Quantity)
}
