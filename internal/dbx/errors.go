package dbx

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the scheduler reacts to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Wrap annotates a driver error with "db error" and, where the failure is
// recognised, with the matching common sentinel.
func Wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return fmt.Errorf("db error: %w: %w", common.ErrDuplicateKey, err)
	case IsUnavailable(err):
		return fmt.Errorf("db error: %w: %w", common.ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

// IsUniqueViolation reports a primary key or unique index collision.
func IsUniqueViolation(err error) bool {
	if hasPgCode(err, pgUniqueViolation) {
		return true
	}
	return messageContains(err, "UNIQUE constraint failed", "PRIMARY KEY constraint failed", "duplicate key")
}

// IsForeignKeyViolation reports a reference to a missing parent row.
func IsForeignKeyViolation(err error) bool {
	if hasPgCode(err, pgForeignKeyViolation) {
		return true
	}
	return messageContains(err, "FOREIGN KEY constraint failed")
}

// IsTransient reports store-side race losses that are safe to retry:
// serialization failures, deadlocks and a busy SQLite database.
func IsTransient(err error) bool {
	if hasPgCode(err, pgSerializationFailure) || hasPgCode(err, pgDeadlockDetected) {
		return true
	}
	return messageContains(err, "database is locked", "SQLITE_BUSY")
}

// IsUnavailable reports failures to reach the store at all.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ce *pgconn.ConnectError
	if errors.As(err, &ce) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return messageContains(err, "database is closed", "unable to open database file")
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func messageContains(err error, fragments ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
