package identity

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bazaarnow/marketplace/internal/hash"
	"github.com/bazaarnow/marketplace/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// ExternalProfile is what the external identity provider hands back
// after a successful sign-in: an opaque id plus display data. The
// provider itself runs on the client; the service only ever sees the
// resulting profile.
type ExternalProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Directory resolves identities against the users table. It doubles as
// the role lookup for externally authenticated customers and the
// credential check for staff portals.
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{DB: db}
}

// FetchRole looks up the role recorded for an external id. The second
// return is false when the user is unknown.
func (d *Directory) FetchRole(ctx context.Context, externalID string) (models.Role, bool, error) {
	var u models.User
	err := d.DB.WithContext(ctx).Where("external_id = ?", externalID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("identity: fetch role: %w", err)
	}
	return models.Role(u.Role), true, nil
}

// ResolveCustomer turns an external profile into a customer identity.
// Unknown users are recorded with the customer role, mirroring the
// original's first-login document upsert; known users keep whatever
// role the directory already holds.
func (d *Directory) ResolveCustomer(ctx context.Context, p ExternalProfile) (models.Identity, error) {
	role, ok, err := d.FetchRole(ctx, p.ID)
	if err != nil {
		return models.Identity{}, err
	}
	if !ok {
		role = models.RoleCustomer
		u := models.User{
			ExternalID: p.ID,
			Email:      p.Email,
			Name:       p.DisplayName,
			Role:       string(role),
		}
		if err := d.DB.WithContext(ctx).Create(&u).Error; err != nil {
			return models.Identity{}, fmt.Errorf("identity: record user: %w", err)
		}
	}
	name := p.DisplayName
	if name == "" {
		name = p.Email
	}
	return models.Identity{ID: p.ID, Email: p.Email, Name: name, Role: role}, nil
}

// StaffLogin authenticates an admin/vendor/delivery account by email
// and password. The returned identity carries the vendor's store
// binding when present.
func (d *Directory) StaffLogin(ctx context.Context, role models.Role, email, password string) (models.Identity, error) {
	var u models.User
	err := d.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("identity: staff login: %w", err)
	}

	if u.Role != string(role) || !hash.Check(u.PasswordHash, password) {
		return models.Identity{}, ErrInvalidCredentials
	}

	return models.Identity{
		ID:      u.ExternalID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    role,
		StoreID: u.StoreID,
	}, nil
}

// SeedDemo inserts the demo accounts when the users table is empty.
// The vendor account is bound to its store explicitly rather than the
// dashboard hard-coding one.
func (d *Directory) SeedDemo(ctx context.Context, password string) error {
	var n int64
	if err := d.DB.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return fmt.Errorf("identity: seed count: %w", err)
	}
	if n > 0 {
		return nil
	}

	pw, err := hash.Password(password)
	if err != nil {
		return fmt.Errorf("identity: seed hash: %w", err)
	}

	users := []models.User{
		{ExternalID: "u1", Email: "user@bazaarnow.com", Name: "Rahul Customer", Role: string(models.RoleCustomer)},
		{ExternalID: "a1", Email: "admin@bazaarnow.com", Name: "Admin User", PasswordHash: pw, Role: string(models.RoleAdmin)},
		{ExternalID: "v1", Email: "vendor@bazaarnow.com", Name: "Heritage Manager", PasswordHash: pw, Role: string(models.RoleVendor), StoreID: "s1"},
		{ExternalID: "d1", Email: "delivery@bazaarnow.com", Name: "Swift Delivery", PasswordHash: pw, Role: string(models.RoleDelivery)},
	}
	if err := d.DB.WithContext(ctx).Create(&users).Error; err != nil {
		return fmt.Errorf("identity: seed users: %w", err)
	}
	return nil
}
