package catalog

import (
	"github.com/bazaarnow/marketplace/internal/models"
)

// Catalog is the immutable set of stores and products available for
// browsing. It is loaded once at startup and never mutated.
type Catalog struct {
	stores      []models.Store
	products    []models.Product
	storeByID   map[string]models.Store
	productByID map[string]models.Product
}

func New(stores []models.Store, products []models.Product) *Catalog {
	c := &Catalog{
		stores:      stores,
		products:    products,
		storeByID:   make(map[string]models.Store, len(stores)),
		productByID: make(map[string]models.Product, len(products)),
	}
	for _, s := range stores {
		c.storeByID[s.ID] = s
	}
	for _, p := range products {
		c.productByID[p.ID] = p
	}
	return c
}

func (c *Catalog) Stores() []models.Store {
	out := make([]models.Store, len(c.stores))
	copy(out, c.stores)
	return out
}

func (c *Catalog) Store(id string) (models.Store, bool) {
	s, ok := c.storeByID[id]
	return s, ok
}

func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Product(id string) (models.Product, bool) {
	p, ok := c.productByID[id]
	return p, ok
}

func (c *Catalog) StoreProducts(storeID string) []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) CategoryProducts(category string) []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
