package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bazaarnow/marketplace/internal/models"
)

// DeliveryFee is the flat per-order delivery charge in paise.
const DeliveryFee int64 = 3000

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Next returns the legal successor of a status. Delivered is terminal.
func Next(s models.OrderStatus) (models.OrderStatus, bool) {
	switch s {
	case models.StatusPlaced:
		return models.StatusApproved, true
	case models.StatusApproved:
		return models.StatusOutForDelivery, true
	case models.StatusOutForDelivery:
		return models.StatusDelivered, true
	}
	return "", false
}

// CustomerInfo is the checkout form data attached to a new order.
type CustomerInfo struct {
	Name          string
	Phone         string
	Address       string
	PaymentMethod string
}

// Book holds the full order history, newest first. Orders are never
// deleted, only status-mutated. Not safe for concurrent use; the
// owning core serializes access.
type Book struct {
	orders []models.Order

	now   func() time.Time
	newID func() string
}

func NewBook() *Book {
	return &Book{
		now:   time.Now,
		newID: func() string { return "ORD-" + uuid.NewString() },
	}
}

// Restore replaces the history with a previously persisted one.
func (b *Book) Restore(orders []models.Order) {
	b.orders = append(b.orders[:0], orders...)
}

// Create snapshots the cart into a new order with status placed and
// prepends it to the history. The customer identity comes from the
// active customer session when present, else a guest placeholder.
// The caller owns the non-empty-cart precondition and clearing the
// cart afterwards.
func (b *Book) Create(customer *models.Identity, info CustomerInfo, snapshot []models.CartEntry) models.Order {
	var subtotal int64
	items := make([]models.CartEntry, len(snapshot))
	copy(items, snapshot)
	for _, e := range items {
		subtotal += e.Product.Price * int64(e.Quantity)
	}

	customerID := "guest"
	name := info.Name
	if customer != nil {
		customerID = customer.ID
		if name == "" {
			name = customer.Name
		}
	}
	if name == "" {
		name = "Customer"
	}
	phone := info.Phone
	if phone == "" {
		phone = "0000000000"
	}
	address := info.Address
	if address == "" {
		address = "Unknown Address"
	}
	method := info.PaymentMethod
	if method == "" {
		method = "COD"
	}

	o := models.Order{
		ID:            b.newID(),
		CreatedAt:     b.now(),
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   DeliveryFee,
		Total:         subtotal + DeliveryFee,
		Status:        models.StatusPlaced,
		CustomerID:    customerID,
		CustomerName:  name,
		CustomerPhone: phone,
		Address:       address,
		PaymentMethod: method,
	}

	b.orders = append([]models.Order{o}, b.orders...)
	return o
}

// Advance moves the order to next. Only the immediate successor of the
// stored status is accepted; anything else is rejected.
func (b *Book) Advance(orderID string, next models.OrderStatus) (models.Order, error) {
	for i := range b.orders {
		if b.orders[i].ID != orderID {
			continue
		}
		legal, ok := Next(b.orders[i].Status)
		if !ok || legal != next {
			return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.orders[i].Status, next)
		}
		b.orders[i].Status = next
		return b.orders[i], nil
	}
	return models.Order{}, fmt.Errorf("%w: %s", ErrNotFound, orderID)
}

// Get returns the order with the given id.
func (b *Book) Get(orderID string) (models.Order, bool) {
	for _, o := range b.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// VisibleTo projects the history for one role's dashboard: customers
// see their own orders, admin sees everything, vendors see orders that
// touch their bound store, delivery sees orders currently out for
// delivery.
func (b *Book) VisibleTo(role models.Role, id models.Identity) []models.Order {
	var out []models.Order
	for _, o := range b.orders {
		switch role {
		case models.RoleCustomer:
			if o.CustomerID == id.ID {
				out = append(out, o)
			}
		case models.RoleAdmin:
			out = append(out, o)
		case models.RoleVendor:
			for _, item := range o.Items {
				if item.Store.ID == id.StoreID {
					out = append(out, o)
					break
				}
			}
		case models.RoleDelivery:
			if o.Status == models.StatusOutForDelivery {
				out = append(out, o)
			}
		}
	}
	return out
}

// Snapshot returns a copy of the full history, newest first.
func (b *Book) Snapshot() []models.Order {
	out := make([]models.Order, len(b.orders))
	copy(out, b.orders)
	return out
}
