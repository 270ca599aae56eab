package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bazaarnow/marketplace/internal/cart"
	"github.com/bazaarnow/marketplace/internal/catalog"
	"github.com/bazaarnow/marketplace/internal/models"
	"github.com/bazaarnow/marketplace/internal/order"
	"github.com/bazaarnow/marketplace/internal/session"
	"github.com/bazaarnow/marketplace/internal/state"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrEmptyCart      = errors.New("cart is empty")
)

// Core wires the cart, order book and session slots together and
// round-trips their combined state through the blob store after every
// mutation. The mutex enforces the one-writer-at-a-time model the
// components themselves assume.
type Core struct {
	mu sync.Mutex

	Catalog  *catalog.Catalog
	cart     *cart.Cart
	orders   *order.Book
	sessions *session.Store
	store    *state.Store
}

func NewCore(cat *catalog.Catalog, store *state.Store) *Core {
	return &Core{
		Catalog:  cat,
		cart:     cart.New(),
		orders:   order.NewBook(),
		sessions: session.New(),
		store:    store,
	}
}

// LoadState restores cart, orders and sessions from the persisted
// blob. A fresh or unreadable blob leaves everything at empty
// defaults.
func (c *Core) LoadState(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blob := c.store.Load(ctx)
	c.cart.Restore(blob.Cart)
	c.orders.Restore(blob.Orders)
	c.sessions.Restore(blob.Sessions)
}

func (c *Core) persist(ctx context.Context) error {
	blob := state.Blob{
		Sessions: c.sessions.Snapshot(),
		Cart:     c.cart.Snapshot(),
		Orders:   c.orders.Snapshot(),
	}
	if err := c.store.Save(ctx, blob); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// AddToCart resolves the product and its store from the catalog and
// adds one unit.
func (c *Core) AddToCart(ctx context.Context, productID string) (models.CartEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.Catalog.Product(productID)
	if !ok {
		return models.CartEntry{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	s, _ := c.Catalog.Store(p.StoreID)

	c.cart.Add(p, s)
	if err := c.persist(ctx); err != nil {
		return models.CartEntry{}, err
	}
	for _, e := range c.cart.Snapshot() {
		if e.Product.ID == productID {
			return e, nil
		}
	}
	return models.CartEntry{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
}

func (c *Core) RemoveFromCart(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cart.Remove(productID)
	return c.persist(ctx)
}

func (c *Core) UpdateCartQuantity(ctx context.Context, productID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cart.UpdateQuantity(productID, delta)
	return c.persist(ctx)
}

func (c *Core) ClearCart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cart.Clear()
	return c.persist(ctx)
}

// CartView returns the entries with the derived subtotal and unit
// count, all computed under one lock.
func (c *Core) CartView() ([]models.CartEntry, int64, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cart.Snapshot(), c.cart.Total(), c.cart.Count()
}

// Checkout snapshots the cart into a new order and empties it as one
// step. The snapshot is taken under the lock and an empty cart returns
// ErrEmptyCart, so an order is never created without items even when
// the cart was cleared while the payment delay ran.
func (c *Core) Checkout(ctx context.Context, info order.CustomerInfo) (models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.cart.Snapshot()
	if len(snapshot) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var customer *models.Identity
	if id, ok := c.sessions.Active(models.RoleCustomer); ok {
		customer = &id
	}

	o := c.orders.Create(customer, info, snapshot)
	c.cart.Clear()
	if err := c.persist(ctx); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (c *Core) AdvanceOrder(ctx context.Context, orderID string, next models.OrderStatus) (models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	o, err := c.orders.Advance(orderID, next)
	if err != nil {
		return models.Order{}, err
	}
	if err := c.persist(ctx); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// OrdersFor projects the history for the identity signed into role.
func (c *Core) OrdersFor(role models.Role, id models.Identity) []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.orders.VisibleTo(role, id)
}

func (c *Core) Order(orderID string) (models.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.orders.Get(orderID)
}

func (c *Core) Login(ctx context.Context, role models.Role, id models.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions.Login(role, id)
	return c.persist(ctx)
}

func (c *Core) Logout(ctx context.Context, role models.Role) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions.Logout(role)
	return c.persist(ctx)
}

func (c *Core) Active(role models.Role) (models.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sessions.Active(role)
}
