package models

import (
	"time"
)

// Role names one of the four portals a user can be signed into.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleDelivery Role = "delivery"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleVendor, RoleDelivery:
		return true
	}
	return false
}

// Identity is an authenticated user as seen by the session store.
// StoreID is set only for vendors and binds the vendor to the store
// whose orders they manage.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	StoreID string `json:"store_id,omitempty"`
}

// Product prices are in minor currency units (paise).
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Image    string `json:"image"`
	StoreID  string `json:"store_id"`
	InStock  bool   `json:"in_stock"`
}

type Store struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	City     string  `json:"city"`
	Rating   float64 `json:"rating"`
	IsOpen   bool    `json:"is_open"`
	Image    string  `json:"image"`
}

// CartEntry holds full product/store copies rather than ids so that an
// order snapshot stays stable even if the catalog changes later.
type CartEntry struct {
	Product  Product `json:"product"`
	Store    Store   `json:"store"`
	Quantity int     `json:"quantity"`
}

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusApproved       OrderStatus = "approved"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

type Order struct {
	ID            string      `json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []CartEntry `json:"items"`
	Subtotal      int64       `json:"subtotal"`
	DeliveryFee   int64       `json:"delivery_fee"`
	Total         int64       `json:"total"`
	Status        OrderStatus `json:"status"`
	CustomerID    string      `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"payment_method"`
}

// User is the relational account record behind staff logins and the
// role directory for externally authenticated customers.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID   string `gorm:"uniqueIndex;not null"     json:"external_id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	Name         string `gorm:"not null"                 json:"name"`
	PasswordHash string `                                json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
	StoreID      string `                                json:"store_id,omitempty"`
}

// StateBlob is the single-row key/value table the app state round-trips
// through, the server-side stand-in for the browser's local storage.
type StateBlob struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     []byte    `gorm:"not null"   json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
