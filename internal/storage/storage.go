// Package storage provides the persistent key-value blob store backing the
// per-language study data. Each namespace (e.g. "studyList/fr") holds one
// JSON payload that is loaded whole and written whole.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mreichhoff/TrieLingual/internal/config"
)

// Store is the persistence boundary the in-memory stores flush through.
type Store interface {
	// Load returns the payload for a namespace, or nil when the namespace
	// has never been written.
	Load(ctx context.Context, namespace string) ([]byte, error)
	// Save writes the payload for a namespace, replacing any previous value.
	Save(ctx context.Context, namespace string, payload []byte) error
}

const schema = `CREATE TABLE IF NOT EXISTS blobs (
	namespace VARCHAR(191) PRIMARY KEY,
	payload TEXT NOT NULL
)`

// SQLStore implements Store over a sqlx connection. The default backend is an
// embedded sqlite file; a MySQL server can be configured instead so several
// devices share one store.
type SQLStore struct {
	db *sqlx.DB
}

// Open connects to the configured backend and ensures the schema exists.
func Open(cfg config.StorageConfig) (*SQLStore, error) {
	var db *sqlx.DB
	var err error

	switch cfg.Driver {
	case "sqlite", "":
		db, err = sqlx.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlx.Open() > %w", err)
		}
		// modernc sqlite misbehaves with concurrent connections on one file
		db.SetMaxOpenConns(1)
	case "mysql":
		db, err = openMySQL(cfg.MySQL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Driver)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Exec(create blobs) > %w", err)
	}

	return &SQLStore{db: db}, nil
}

func openMySQL(cfg config.MySQLConfig) (*sqlx.DB, error) {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = cfg.Params
	}

	db, err := sqlx.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

// NewSQLStore wraps an existing connection. Used by tests and by callers that
// manage the connection lifecycle themselves.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load implements Store.
func (s *SQLStore) Load(ctx context.Context, namespace string) ([]byte, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, "SELECT payload FROM blobs WHERE namespace = ?", namespace)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(blobs) > %w", err)
	}
	return payload, nil
}

// Save implements Store.
func (s *SQLStore) Save(ctx context.Context, namespace string, payload []byte) error {
	query := "INSERT INTO blobs (namespace, payload) VALUES (?, ?) ON CONFLICT(namespace) DO UPDATE SET payload = excluded.payload"
	if s.db.DriverName() == "mysql" {
		query = "INSERT INTO blobs (namespace, payload) VALUES (?, ?) ON DUPLICATE KEY UPDATE payload = VALUES(payload)"
	}
	if _, err := s.db.ExecContext(ctx, query, namespace, string(payload)); err != nil {
		return fmt.Errorf("db.ExecContext(upsert blobs) > %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
