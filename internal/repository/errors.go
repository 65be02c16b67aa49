// Package repository defines error types that are reused across multiple
// repositories.  Not-found errors wrap sql.ErrNoRows so callers that only
// care about absence can test for that, while handlers can still tell
// which record was missing.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = fmt.Errorf("artist not found: %w", sql.ErrNoRows)

// ErrCustomerNotFound is returned when a customer cannot be found in the DB.
var ErrCustomerNotFound = fmt.Errorf("customer not found: %w", sql.ErrNoRows)

// ErrCourseNotFound is returned when no course has the requested name.
var ErrCourseNotFound = fmt.Errorf("course not found: %w", sql.ErrNoRows)

// ErrSubscriptionNotFound is returned when a subscription cannot be found.
var ErrSubscriptionNotFound = fmt.Errorf("subscription not found: %w", sql.ErrNoRows)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL duplicate entry error.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
