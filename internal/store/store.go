// Package store persists component records in an embedded sqlite database
// using the fixed hardware schema.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS hardware (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    brand TEXT NOT NULL,
    model TEXT NOT NULL,
    price REAL,
    specs TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_category ON hardware(category);
CREATE INDEX IF NOT EXISTS idx_brand ON hardware(brand);
CREATE INDEX IF NOT EXISTS idx_price ON hardware(price);
`

// Store wraps the sqlite component database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Init creates the hardware table and its indexes.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores one component record.
func (s *Store) Insert(ctx context.Context, c models.Component) error {
	specs, err := json.Marshal(c.Specs)
	if err != nil {
		return fmt.Errorf("marshal specs for %q: %w", c.Name, err)
	}

	var price any
	if c.Price != nil {
		price = *c.Price
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO hardware (name, category, brand, model, price, specs) VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, string(c.Category), c.Brand, c.Model, price, string(specs),
	)
	if err != nil {
		return fmt.Errorf("insert %q: %w", c.Name, err)
	}
	return nil
}

// Seed inserts a batch of component records in one transaction.
func (s *Store) Seed(ctx context.Context, components []models.Component) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO hardware (name, category, brand, model, price, specs) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range components {
		specs, err := json.Marshal(c.Specs)
		if err != nil {
			return fmt.Errorf("marshal specs for %q: %w", c.Name, err)
		}
		var price any
		if c.Price != nil {
			price = *c.Price
		}
		if _, err := stmt.ExecContext(ctx, c.Name, string(c.Category), c.Brand, c.Model, price, string(specs)); err != nil {
			return fmt.Errorf("insert %q: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

// Clear removes every component record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM hardware`); err != nil {
		return fmt.Errorf("clear hardware table: %w", err)
	}
	return nil
}

// FetchOptions are the indexed coarse filters resolved in SQL. Nil/empty
// fields do not constrain the query.
type FetchOptions struct {
	Category models.Category
	Brand    string
	Name     string
	MinPrice *float64
	MaxPrice *float64
}

// Fetch returns component records matching the coarse filters. All values
// are parameterized, never interpolated.
func (s *Store) Fetch(ctx context.Context, opts FetchOptions) ([]models.Component, error) {
	query := `SELECT name, category, brand, model, price, specs FROM hardware WHERE 1=1`
	var params []any

	if opts.Category != "" {
		query += ` AND category = ?`
		params = append(params, string(opts.Category))
	}
	if opts.Brand != "" {
		query += ` AND brand = ?`
		params = append(params, opts.Brand)
	}
	if opts.Name != "" {
		query += ` AND name = ?`
		params = append(params, opts.Name)
	}
	if opts.MinPrice != nil {
		query += ` AND price >= ?`
		params = append(params, *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		query += ` AND price <= ?`
		params = append(params, *opts.MaxPrice)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query hardware: %w", err)
	}
	defer rows.Close()

	var out []models.Component
	for rows.Next() {
		var (
			c     models.Component
			cat   string
			price sql.NullFloat64
			specs sql.NullString
		)
		if err := rows.Scan(&c.Name, &cat, &c.Brand, &c.Model, &price, &specs); err != nil {
			return nil, fmt.Errorf("scan hardware row: %w", err)
		}
		c.Category = models.Category(cat)
		if price.Valid {
			p := price.Float64
			c.Price = &p
		}
		if specs.Valid && specs.String != "" {
			if err := json.Unmarshal([]byte(specs.String), &c.Specs); err != nil {
				// Corrupt specs make the record unusable for filtering and
				// compatibility checks; skip it rather than fail the query.
				s.logger.Warn("skipping record with corrupt specs", "name", c.Name, "error", err)
				continue
			}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hardware rows: %w", err)
	}
	return out, nil
}

// Categories returns the distinct component categories in the database.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT category FROM hardware ORDER BY category`)
}

// Brands returns the distinct brands within one category.
func (s *Store) Brands(ctx context.Context, category models.Category) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT brand FROM hardware WHERE category = ? ORDER BY brand`, string(category))
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	return scanStrings(rows)
}

func (s *Store) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query distinct: %w", err)
	}
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan string row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
