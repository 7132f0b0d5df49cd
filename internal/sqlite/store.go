// Package sqlite implements types.Store on an in-memory SQLite database.
// The database lives only as long as the Store; nothing is written to disk.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/basket/pkg/types"
)

var _ types.Store = (*Store)(nil)

// Store keeps cart entries in the products table of a private in-memory
// database.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens a fresh in-memory database and creates the schema.
func NewStore() (*Store, error) {
	// A named shared-cache database survives connection recycling; the
	// uuid keeps two stores in one process apart.
	dsn := fmt.Sprintf("file:basket-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Append inserts p after the existing rows.
func (s *Store) Append(p types.Product) error {
	if p == nil {
		return types.ErrInvalidProduct
	}
	body, err := dehydrate(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	info := p.Info()
	var exists bool
	err = tx.QueryRow("SELECT 1 FROM products WHERE unique_id = ?", info.UniqueID).Scan(&exists)
	if err == nil {
		return types.ErrDuplicateID
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking product existence: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO products (unique_id, category, name, quantity, body) VALUES (?, ?, ?, ?, ?)",
		info.UniqueID, string(p.Category()), info.Name, info.Quantity, body,
	)
	if err != nil {
		return fmt.Errorf("inserting product %d: %w", info.UniqueID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing product %d: %w", info.UniqueID, err)
	}
	return nil
}

// Get returns the row with the given unique id.
func (s *Store) Get(id int64) (types.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}

	row := s.db.QueryRow("SELECT category, quantity, body FROM products WHERE unique_id = ?", id)
	p, err := hydrate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return p, nil
}

// Delete removes the row with the given unique id.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return types.ErrStoreClosed
	}

	res, err := s.db.Exec("DELETE FROM products WHERE unique_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	return requireOneRow(res)
}

// SetQuantity updates the quantity column of the row with the given id.
func (s *Store) SetQuantity(id int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return types.ErrStoreClosed
	}

	res, err := s.db.Exec("UPDATE products SET quantity = ? WHERE unique_id = ?", quantity, id)
	if err != nil {
		return fmt.Errorf("updating quantity of product %d: %w", id, err)
	}
	return requireOneRow(res)
}

// List returns every row ordered by insertion.
func (s *Store) List() ([]types.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}

	rows, err := s.db.Query("SELECT category, quantity, body FROM products ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := make([]types.Product, 0)
	for rows.Next() {
		p, err := hydrate(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

// Count returns the number of rows.
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return 0, types.ErrStoreClosed
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return n, nil
}

// Close closes the database, discarding its contents. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
