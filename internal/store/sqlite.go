package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"PriceTracker/internal/model"
)

// ErrUnknownProduct is returned when a URL has no stored product.
var ErrUnknownProduct = errors.New("store: unknown product")

// SQLiteStore persists products and their price history to SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so report generation can read while the collector writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id TEXT,
			name       TEXT NOT NULL,
			url        TEXT NOT NULL UNIQUE,
			site       TEXT,
			category   TEXT,
			image_url  TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_url ON products(url)`,

		`CREATE TABLE IF NOT EXISTS price_history (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			product_ref    INTEGER NOT NULL REFERENCES products(id),
			price          REAL NOT NULL,
			original_price REAL,
			currency       TEXT,
			stock_status   TEXT,
			observed_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_product_ts ON price_history(product_ref, observed_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveObservation upserts the product row and appends a history row.
func (s *SQLiteStore) SaveObservation(obs *model.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := obs.Product
	_, err := s.db.Exec(`INSERT INTO products (product_id, name, url, site, category, image_url, created_at)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(url) DO UPDATE SET
			product_id = excluded.product_id,
			name       = excluded.name,
			site       = excluded.site,
			image_url  = excluded.image_url`,
		p.ProductID, p.Name, p.URL, p.Site, p.Category, p.ImageURL, obs.ObservedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	var ref int64
	if err := s.db.QueryRow(`SELECT id FROM products WHERE url = ?`, p.URL).Scan(&ref); err != nil {
		return fmt.Errorf("resolve product ref: %w", err)
	}

	var originalPrice any
	if obs.OriginalPrice > 0 {
		originalPrice = obs.OriginalPrice
	}
	_, err = s.db.Exec(`INSERT INTO price_history (product_ref, price, original_price, currency, stock_status, observed_at)
		VALUES (?,?,?,?,?,?)`,
		ref, obs.CurrentPrice, originalPrice, obs.Currency, obs.StockStatus, obs.ObservedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert price: %w", err)
	}
	return nil
}

// History returns the most recent limit points for a product, oldest first
// so the result feeds the analyzer directly. limit <= 0 means everything.
func (s *SQLiteStore) History(url string, limit int) (model.PriceSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT h.price, h.currency, h.observed_at
		FROM price_history h
		JOIN products p ON p.id = h.product_ref
		WHERE p.url = ?
		ORDER BY h.observed_at DESC, h.id DESC`
	args := []any{url}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var series model.PriceSeries
	for rows.Next() {
		var point model.PricePoint
		var ts int64
		var currency sql.NullString
		if err := rows.Scan(&point.Value, &currency, &ts); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		point.Currency = currency.String
		point.ObservedAt = unixTime(ts)
		series = append(series, point)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows came newest first; reverse into chronological order.
	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}
	return series, nil
}

// Product returns the stored product for a URL.
func (s *SQLiteStore) Product(url string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := scanProduct(s.db.QueryRow(
		`SELECT product_id, name, url, site, category, image_url FROM products WHERE url = ?`, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownProduct
	}
	return p, err
}

// Products lists every tracked product.
func (s *SQLiteStore) Products() ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT product_id, name, url, site, category, image_url FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func unixTime(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	var productID, site, category, imageURL sql.NullString
	if err := row.Scan(&productID, &p.Name, &p.URL, &site, &category, &imageURL); err != nil {
		return nil, err
	}
	p.ProductID = productID.String
	p.Site = site.String
	p.Category = category.String
	p.ImageURL = imageURL.String
	return &p, nil
}
