package search

import (
	"context"
	"strings"

	"github.com/bazaarnow/marketplace/internal/catalog"
	"github.com/bazaarnow/marketplace/internal/models"
)

// Searcher answers product queries with from/size pagination.
type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

// CatalogSearcher is the in-memory fallback used when Elasticsearch is
// not configured: case-insensitive substring match over name and
// category.
type CatalogSearcher struct {
	Catalog *catalog.Catalog
}

func (s *CatalogSearcher) Search(_ context.Context, query string, from, size int) (int64, []models.Product, error) {
	q := strings.ToLower(query)
	var hits []models.Product
	for _, p := range s.Catalog.Products() {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			hits = append(hits, p)
		}
	}

	total := int64(len(hits))
	if from >= len(hits) {
		return total, nil, nil
	}
	end := from + size
	if end > len(hits) {
		end = len(hits)
	}
	return total, hits[from:end], nil
}
