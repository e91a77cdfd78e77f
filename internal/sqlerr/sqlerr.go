// Package sqlerr translates database driver errors into client-facing
// API errors.
//
// It parses SQLSTATE codes from pgx/pgconn and converts constraint
// violations into meaningful 4xx responses (e.g. a unique violation on
// causes.title becomes "A Cause with this Title already exists"),
// while unknown failures collapse into a generic 500 that leaks no
// internals.
package sqlerr
