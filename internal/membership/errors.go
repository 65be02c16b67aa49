// Package membership holds the fan-club subscription rules: date range
// computation, overlap detection and the validated join/cancel flows.
// Handlers call the Service; persistence is reached only through the
// Store and Tx interfaces so every step runs on an explicit transaction.
package membership

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Service.  Callers should compare with
// errors.Is; returned values are usually wrapped with extra context such
// as the offending id or name.
var (
	// ErrInvalidID is returned for ids that are not positive integers.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicateID is returned when a client-supplied id is already taken.
	ErrDuplicateID = errors.New("id already exists")
	// ErrInvalidDate is returned when a date is not strict YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrLookupFailure is returned when an artist, course or customer
	// named by the request does not exist.
	ErrLookupFailure = errors.New("lookup failed")
	// ErrDuplicateMembership is returned when the requested period
	// intersects an existing subscription for the same customer and artist.
	ErrDuplicateMembership = errors.New("membership already exists for this period")
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorage wraps failures of the persistence layer.
	ErrStorage = errors.New("storage error")

	// ErrInvalidField is returned when a profile field contains control characters.
	ErrInvalidField = errors.New("invalid field")
	// ErrInvalidCredentials is returned when a member id and phone do not match.
	ErrInvalidCredentials = errors.New("invalid member id or phone")
	// ErrHasParticipations is returned by the restrict cancellation policy
	// when the subscription still has event participations.
	ErrHasParticipations = errors.New("subscription has event participations")
	// ErrInvalidCourse is returned when a course row has a non-positive duration.
	ErrInvalidCourse = errors.New("invalid course duration")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidID, "invalid_id"},
	{ErrDuplicateID, "duplicate_id"},
	{ErrInvalidDate, "invalid_date"},
	{ErrInvalidCourse, "invalid_course"},
	{ErrLookupFailure, "lookup_failure"},
	{ErrDuplicateMembership, "duplicate_membership"},
	{ErrNotFound, "not_found"},
	{ErrInvalidField, "invalid_field"},
	{ErrInvalidCredentials, "invalid_credentials"},
	{ErrHasParticipations, "has_participations"},
	{ErrStorage, "storage_error"},
}

// Code returns a stable snake_case code for err.  It returns "ok" for nil
// and "storage_error" for errors that carry no membership sentinel.
func Code(err error) string {
	if err == nil {
		return "ok"
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "storage_error"
}

// isDomain reports whether err already carries one of the sentinels.
func isDomain(err error) bool {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return true
		}
	}
	return false
}

// storageErr keeps both ErrStorage and the driver error in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
