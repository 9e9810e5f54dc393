package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore serves orders and products from a Postgres database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens and pings a Postgres connection.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Order fetches one order by ID. Unknown IDs return (nil, nil).
func (s *PostgresStore) Order(ctx context.Context, id string) (*Order, error) {
	query := `
		SELECT id, status, tracking, items, image_url
		FROM orders
		WHERE id = $1`

	var o Order
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&o.ID, &o.Status, &o.Tracking, &o.Items, &o.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order %s: %w", id, err)
	}
	return &o, nil
}

// SearchProducts matches query against names, then styles when names miss.
func (s *PostgresStore) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	byName := `
		SELECT name, price, specs, style, image_url, store_url
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2`
	byStyle := `
		SELECT name, price, specs, style, image_url, store_url
		FROM products
		WHERE style ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2`

	products, err := s.queryProducts(ctx, byName, query, limit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		products, err = s.queryProducts(ctx, byStyle, query, limit)
		if err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (s *PostgresStore) queryProducts(ctx context.Context, query, term string, limit int) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Name, &p.Price, &p.Specs, &p.Style, &p.ImageURL, &p.StoreURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
