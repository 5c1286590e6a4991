// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations from an embedded filesystem.
package pg
