package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/msomdec/user-records/internal/domain"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// DB wraps the SQLite handle together with the path it was opened from.
type DB struct {
	SqlDB *sql.DB
	path  string
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys. Any failure to reach the database
// is reported as domain.ErrStorageUnavailable.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, unavailable(dbPath, "open database", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, unavailable(dbPath, "enable WAL mode", err)
	}

	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, unavailable(dbPath, "enable foreign keys", err)
	}

	// SQLite has a single writer; one connection keeps writers serialized
	// and the pragmas above applied.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		sqlDB.Close()
		return nil, unavailable(dbPath, "ping database", err)
	}

	return &DB{SqlDB: sqlDB, path: dbPath}, nil
}

// CreateSchema creates the application tables if they do not exist yet.
func (d *DB) CreateSchema(ctx context.Context) error {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.SqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping %s: %w", domain.ErrStorageUnavailable, d.path, err)
	}
	return nil
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Path returns the file the database was opened from.
func (d *DB) Path() string {
	return d.path
}

// Users returns the user repository backed by this database.
func (d *DB) Users() *UserRepository {
	return NewUserRepository(d)
}

// FileStore returns the BLOB file store backed by this database.
func (d *DB) FileStore() domain.FileStore {
	return &fileStore{db: d}
}

// withConn checks out a dedicated connection for a single operation and
// returns it to the pool when fn returns.
func (d *DB) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := d.SqlDB.Conn(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return unavailable(d.path, "acquire connection", err)
	}
	defer conn.Close()

	return fn(conn)
}

// withTx runs fn in a transaction on a dedicated connection. The transaction
// is committed only when fn succeeds; every other exit path rolls it back.
func (d *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return d.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

func unavailable(path, op string, err error) error {
	slog.Error("database unavailable", "path", path, "op", op, "error", err)
	return fmt.Errorf("%w: %s %s: %w", domain.ErrStorageUnavailable, op, path, err)
}
