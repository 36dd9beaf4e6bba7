package domain

import "context"

// Database defines lifecycle operations for the underlying database.
type Database interface {
	// CreateSchema creates every table the application needs. It is safe
	// to call on a database that already has them.
	CreateSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
