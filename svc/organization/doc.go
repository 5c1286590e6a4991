// Package organization stores organizations and answers whether an
// organization key is already in use.
//
// Storage backends: MemoryStorage, PostgresStorage (pgx, goose migrations in
// Migrations) and MongoStorage. Client performs the same lookup against a
// remote onboarding API. Service adds an optional Cache (RedisCache) in front
// of storage, and its KeyExists method is the lookup the interactive key field
// calls after every debounced edit.
package organization
