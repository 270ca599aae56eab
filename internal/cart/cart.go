package cart

import (
	"github.com/bazaarnow/marketplace/internal/models"
)

// Cart is the active customer's shopping cart: an ordered list of
// entries, at most one per product id. It is not safe for concurrent
// use; the owning core serializes access.
type Cart struct {
	entries []models.CartEntry
}

func New() *Cart {
	return &Cart{}
}

// Restore replaces the cart contents with a previously persisted entry
// list, dropping any entry with a non-positive quantity.
func (c *Cart) Restore(entries []models.CartEntry) {
	c.entries = c.entries[:0]
	for _, e := range entries {
		if e.Quantity >= 1 {
			c.entries = append(c.entries, e)
		}
	}
}

// Add puts one unit of the product in the cart. Adding a product that
// is already present increments its quantity; each call models one
// "add another unit" tap.
func (c *Cart) Add(product models.Product, store models.Store) {
	for i := range c.entries {
		if c.entries[i].Product.ID == product.ID {
			c.entries[i].Quantity++
			return
		}
	}
	c.entries = append(c.entries, models.CartEntry{Product: product, Store: store, Quantity: 1})
}

// Remove deletes the entry for productID. Missing ids are a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.entries {
		if c.entries[i].Product.ID == productID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// UpdateQuantity adjusts the entry's quantity by delta, clamping at
// zero; an entry that reaches zero is deleted. Missing ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	for i := range c.entries {
		if c.entries[i].Product.ID != productID {
			continue
		}
		q := c.entries[i].Quantity + delta
		if q <= 0 {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
		} else {
			c.entries[i].Quantity = q
		}
		return
	}
}

func (c *Cart) Clear() {
	c.entries = c.entries[:0]
}

// Total is the subtotal in minor units over all entries.
func (c *Cart) Total() int64 {
	var sum int64
	for _, e := range c.entries {
		sum += e.Product.Price * int64(e.Quantity)
	}
	return sum
}

// Count is the number of units across all entries.
func (c *Cart) Count() int {
	var n int
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	return len(c.entries)
}

// Snapshot returns a copy of the entries, safe to hand to an order.
func (c *Cart) Snapshot() []models.CartEntry {
	out := make([]models.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
