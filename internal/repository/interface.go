package repository

import "context"

// DB reports whether the database connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}
