package common

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes reported by the backing store for the two
// recoverable lookup conditions.
const (
	PgUndefinedTable  = "42P01"
	PgInvalidTextRepr = "22P02"
)

// IsMissingTable reports whether err indicates the queried table does not
// exist in the backing store.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == PgUndefinedTable
	}
	// sqlite (dev/test databases) has no SQLSTATE, match on message
	return strings.Contains(err.Error(), "no such table")
}

// IsInvalidKey reports whether err indicates a supplied identifier failed
// the store's native key-format validation (e.g. a non-UUID string bound
// to a uuid column).
func IsInvalidKey(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == PgInvalidTextRepr
	}
	return strings.Contains(err.Error(), "invalid input syntax")
}

// IsRecoverableStoreError reports whether err is one of the store
// conditions the purchase funnel degrades on instead of failing.
func IsRecoverableStoreError(err error) bool {
	return IsMissingTable(err) || IsInvalidKey(err)
}
