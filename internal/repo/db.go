// Package repo contains all database access logic for the spot rental API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/spotbnb/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txDB is a db that can also open a transaction. *pgxpool.Pool opens a real
// transaction; pgx.Tx opens a savepoint, which keeps test rollback intact.
type txDB interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// uniqueViolation is the SQLSTATE Postgres reports for a UNIQUE constraint breach.
const uniqueViolation = "23505"

// foreignKeyViolation is the SQLSTATE for a REFERENCES constraint breach.
const foreignKeyViolation = "23503"

// translateFK maps a foreign_key_violation onto the domain error for the
// missing parent: the users table for user_id and owner_id columns, a spot
// otherwise. Any other err is returned unchanged.
func translateFK(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return err
	}
	if strings.HasSuffix(pgErr.ConstraintName, "_user_id_fkey") || strings.HasSuffix(pgErr.ConstraintName, "_owner_id_fkey") {
		return domain.ErrUnknownUser
	}
	return domain.ErrNotFound
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
