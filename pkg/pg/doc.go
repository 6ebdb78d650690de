// Package pg provides the PostgreSQL access layer for the platform:
// pooled connectivity via pgx/v5, embedded goose migrations, a health
// check, and error classification helpers.
//
// Connect opens a *pgxpool.Pool from Config (populated from environment
// variables), retrying with backoff until the database becomes
// available. Migrate applies the embedded schema migrations before the
// service starts serving traffic, which includes the case-insensitive
// unique indexes on tenant subdomain and domain that the creation-time
// uniqueness guard relies on.
//
// Error helpers such as IsDuplicateKeyError and IsNotFoundError unwrap
// pgx and *pgconn.PgError values so business logic classifies failures
// structurally instead of matching SQLSTATE strings inline.
package pg
