package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/bazaarnow/marketplace/internal/models"
)

// NewESClient connects to Elasticsearch and verifies the cluster is
// reachable before handing the client back.
func NewESClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("search: es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("search: es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search: es info: %s: %s", res.Status(), body)
	}
	return client, nil
}

// ES serves product search from an Elasticsearch index.
type ES struct {
	Client *elasticsearch.Client
	Index  string
}

// IndexCatalog writes every catalog product into the index, keyed by
// product id. Called once at startup; the catalog never changes after.
func (s *ES) IndexCatalog(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		body, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("search: marshal product %s: %w", p.ID, err)
		}
		res, err := s.Client.Index(
			s.Index,
			bytes.NewReader(body),
			s.Client.Index.WithContext(ctx),
			s.Client.Index.WithDocumentID(p.ID),
		)
		if err != nil {
			return fmt.Errorf("search: index product %s: %w", p.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("search: index product %s: %s", p.ID, res.Status())
		}
	}
	return nil
}

func (s *ES) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: query: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
