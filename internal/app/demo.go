package app

import (
	"context"
	"time"

	"github.com/bazaarnow/marketplace/internal/catalog"
	"github.com/bazaarnow/marketplace/internal/models"
	"github.com/bazaarnow/marketplace/internal/order"
)

// SeedDemoOrders installs the demo order history on first boot so the
// dashboards have something to show before anyone checks out. A
// history restored from the blob is left alone.
func (c *Core) SeedDemoOrders(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.orders.Snapshot()) > 0 {
		return nil
	}
	demo := demoOrders(c.Catalog)
	if len(demo) == 0 {
		return nil
	}
	c.orders.Restore(demo)
	return c.persist(ctx)
}

// demoOrders builds one delivered order for the demo customer from
// catalog products.
func demoOrders(cat *catalog.Catalog) []models.Order {
	p1, ok1 := cat.Product("p1")
	p2, ok2 := cat.Product("p2")
	s1, ok3 := cat.Store("s1")
	if !ok1 || !ok2 || !ok3 {
		return nil
	}

	items := []models.CartEntry{
		{Product: p1, Store: s1, Quantity: 2},
		{Product: p2, Store: s1, Quantity: 1},
	}
	subtotal := p1.Price*2 + p2.Price

	return []models.Order{{
		ID:            "ORD-123",
		CreatedAt:     time.Now(),
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   order.DeliveryFee,
		Total:         subtotal + order.DeliveryFee,
		Status:        models.StatusDelivered,
		CustomerID:    "u1",
		CustomerName:  "Rahul Customer",
		CustomerPhone: "9876543210",
		Address:       "Flat 401, Cyber Heights, Madhapur, Hyderabad",
		PaymentMethod: "UPI",
	}}
}
