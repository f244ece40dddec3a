package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect identifies the SQL backend behind a Store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Store wraps the platform database handle with its dialect.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open connects to url. postgres:// and postgresql:// urls use the
// pgx driver; anything else is treated as a sqlite path or DSN.
func Open(url string) (*Store, error) {
	dialect := DialectSQLite
	driver := "sqlite3"
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		dialect = DialectPostgres
		driver = "pgx"
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	if dialect == DialectSQLite {
		// Single writer keeps sqlite out of SQLITE_BUSY territory.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	return &Store{DB: db, Dialect: dialect}, nil
}

// Close releases the underlying handle.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
