// Package catalog provides read access to the shop's orders and products.
//
// The bot only consumes a display projection of each entity; the backing
// store may be the built-in fixture dataset or a Postgres database.
package catalog

import (
	"context"
	"strings"
)

// Order is the read projection of one order.
type Order struct {
	ID       string
	Status   string
	Tracking string
	Items    string
	ImageURL string
}

// Product is the read projection of one catalog product.
type Product struct {
	Name     string
	Price    string
	Specs    string
	Style    string
	ImageURL string
	StoreURL string
}

// Store is the catalog read interface. "No rows" is a normal outcome:
// Order returns (nil, nil) for unknown IDs and SearchProducts returns an
// empty slice when nothing matches.
type Store interface {
	// Order fetches one order by ID.
	Order(ctx context.Context, id string) (*Order, error)

	// SearchProducts matches query case-insensitively against product
	// names, falling back to the style field when no name matches.
	// At most limit products are returned, in catalog order.
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
}

// FixtureStore serves the built-in demo dataset.
type FixtureStore struct {
	orders   map[string]Order
	products []Product
}

// NewFixtureStore creates a store with the demo orders and products.
func NewFixtureStore() *FixtureStore {
	return &FixtureStore{
		orders: map[string]Order{
			"14514": {
				ID:       "14514",
				Status:   "shipped",
				Tracking: "J&T Express: JT123456",
				Items:    "Redmi Note 12",
				ImageURL: "https://example.com/images/redmi_note12.jpg",
			},
			"12345": {
				ID:       "12345",
				Status:   "processing",
				Tracking: "not yet assigned",
				Items:    "Samsung A14",
				ImageURL: "https://example.com/images/samsung_a14.jpg",
			},
			"99999": {
				ID:       "99999",
				Status:   "returned",
				Tracking: "refund in progress",
				Items:    "Running Shoes",
				ImageURL: "https://example.com/images/running_shoes.jpg",
			},
		},
		products: []Product{
			{
				Name:     "Redmi Note 12",
				Price:    "SGD 299",
				Specs:    "120Hz display, 5000mAh battery, Snapdragon chip",
				Style:    "performance",
				ImageURL: "https://example.com/images/redmi_note12.jpg",
				StoreURL: "https://example.com/store/redmi-note-12",
			},
			{
				Name:     "Realme C55",
				Price:    "SGD 189",
				Specs:    "Big battery, fast charging, great selfies",
				Style:    "budget",
				ImageURL: "https://example.com/images/realme_c55.jpg",
				StoreURL: "https://example.com/store/realme-c55",
			},
			{
				Name:     "Samsung A14",
				Price:    "SGD 219",
				Specs:    "Samsung build quality, steady camera",
				Style:    "minimalist",
				ImageURL: "https://example.com/images/samsung_a14.jpg",
				StoreURL: "https://example.com/store/samsung-a14",
			},
			{
				Name:     "iPhone 13",
				Price:    "SGD 999",
				Specs:    "Apple ecosystem, top performance",
				Style:    "premium",
				ImageURL: "https://example.com/images/iphone13.jpg",
				StoreURL: "https://example.com/store/iphone-13",
			},
			{
				Name:     "Running Shoes",
				Price:    "SGD 89",
				Specs:    "Light and breathable, made for running",
				Style:    "sporty",
				ImageURL: "https://example.com/images/running_shoes.jpg",
				StoreURL: "https://example.com/store/running-shoes",
			},
		},
	}
}

// Order returns the order with the given ID, or (nil, nil) when unknown.
func (s *FixtureStore) Order(_ context.Context, id string) (*Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

// SearchProducts matches query against names, then styles when names miss.
func (s *FixtureStore) SearchProducts(_ context.Context, query string, limit int) ([]Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	matches := s.match(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	}, limit)
	if len(matches) == 0 {
		matches = s.match(func(p Product) bool {
			return strings.Contains(strings.ToLower(p.Style), q)
		}, limit)
	}
	return matches, nil
}

func (s *FixtureStore) match(pred func(Product) bool, limit int) []Product {
	var out []Product
	for _, p := range s.products {
		if pred(p) {
			out = append(out, p)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}
