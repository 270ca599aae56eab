package session

import (
	"github.com/bazaarnow/marketplace/internal/models"
)

// Store holds at most one authenticated identity per role. The four
// slots are independent: signing out of one portal never touches the
// others, which is what lets a single browser preview all four
// dashboards at once.
type Store struct {
	customer *models.Identity
	admin    *models.Identity
	vendor   *models.Identity
	delivery *models.Identity
}

func New() *Store {
	return &Store{}
}

func (s *Store) slot(role models.Role) **models.Identity {
	switch role {
	case models.RoleCustomer:
		return &s.customer
	case models.RoleAdmin:
		return &s.admin
	case models.RoleVendor:
		return &s.vendor
	case models.RoleDelivery:
		return &s.delivery
	}
	return nil
}

// Login sets the slot for the role. Unknown roles are ignored.
func (s *Store) Login(role models.Role, id models.Identity) {
	if p := s.slot(role); p != nil {
		id.Role = role
		*p = &id
	}
}

// Logout clears the slot for the role only.
func (s *Store) Logout(role models.Role) {
	if p := s.slot(role); p != nil {
		*p = nil
	}
}

// Active returns the identity signed into the role, if any.
func (s *Store) Active(role models.Role) (models.Identity, bool) {
	p := s.slot(role)
	if p == nil || *p == nil {
		return models.Identity{}, false
	}
	return **p, true
}

// Snapshot is the persisted form of the four slots.
type Snapshot struct {
	Customer *models.Identity `json:"customer"`
	Admin    *models.Identity `json:"admin"`
	Vendor   *models.Identity `json:"vendor"`
	Delivery *models.Identity `json:"delivery"`
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Customer: clone(s.customer),
		Admin:    clone(s.admin),
		Vendor:   clone(s.vendor),
		Delivery: clone(s.delivery),
	}
}

func (s *Store) Restore(snap Snapshot) {
	s.customer = clone(snap.Customer)
	s.admin = clone(snap.Admin)
	s.vendor = clone(snap.Vendor)
	s.delivery = clone(snap.Delivery)
}

func clone(id *models.Identity) *models.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
