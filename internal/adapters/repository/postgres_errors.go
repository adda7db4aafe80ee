package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
	pgNumericOutOfRange   = "22003"
	pgCheckViolation      = "23514"
)

// pgCode extracts the SQLSTATE from either driver's error type.
func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// wrapStoreError tags connectivity failures with domain.ErrUnavailable and
// prefixes everything with the failing operation.
func wrapStoreError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("repository: %s: %w: %w", op, domain.ErrUnavailable, err)
	}
	return fmt.Errorf("repository: %s failed: %w", op, err)
}
