package organization

import (
	"context"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/onboarding/pkg/pg"
)

// Migrations holds the goose migrations for PostgresStorage.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that holds the SQL files.
const MigrationsDir = "migrations"

// PostgresStorage stores organizations in the organizations table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const (
	selectByKeySQL = `SELECT id, key, name, created_at FROM organizations WHERE key = $1`
	insertSQL      = `INSERT INTO organizations (id, key, name, created_at) VALUES ($1, $2, $3, $4)`
)

func (s *PostgresStorage) GetByKey(ctx context.Context, key string) (*Organization, error) {
	var org Organization
	err := s.pool.QueryRow(ctx, selectByKeySQL, key).Scan(&org.ID, &org.Key, &org.Name, &org.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrLookupFailed, err)
	}
	return &org, nil
}

func (s *PostgresStorage) Create(ctx context.Context, org *Organization) error {
	if _, err := s.pool.Exec(ctx, insertSQL, org.ID, org.Key, org.Name, org.CreatedAt); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrKeyTaken
		}
		return errors.Join(ErrCreateFailed, err)
	}
	return nil
}
