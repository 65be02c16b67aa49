// Package handler exposes the JSON HTTP API.  Handlers stay thin: they bind
// and validate input, call the membership service or a read repository,
// and map errors to status codes.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/model"
)

// dbTimeout bounds every request's storage work.
const dbTimeout = 5 * time.Second

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// statusFor maps a membership or repository error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, membership.ErrInvalidID),
		errors.Is(err, membership.ErrInvalidDate),
		errors.Is(err, membership.ErrInvalidField):
		return http.StatusBadRequest
	case errors.Is(err, membership.ErrLookupFailure),
		errors.Is(err, membership.ErrInvalidCourse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, membership.ErrDuplicateID),
		errors.Is(err, membership.ErrDuplicateMembership),
		errors.Is(err, membership.ErrHasParticipations):
		return http.StatusConflict
	case errors.Is(err, membership.ErrNotFound),
		errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, membership.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorCode is membership.Code with repository not-found errors folded in.
func errorCode(err error) string {
	if errors.Is(err, sql.ErrNoRows) && !errors.Is(err, membership.ErrStorage) {
		return "not_found"
	}
	return membership.Code(err)
}

// base carries what every handler needs to report failures.
type base struct {
	log zerolog.Logger
}

// fail writes {"error": code, "message": text}.  Server errors are logged
// and their details withheld from the client.
func (b base) fail(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		b.log.Error().Err(err).Str("route", c.Path()).Msg("request failed")
		msg = "internal error"
	}
	return c.JSON(status, echo.Map{"error": errorCode(err), "message": msg})
}

// badRequest reports malformed or invalid request bodies.
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": err.Error()})
}

// bindValid binds the request into dst and runs the registered validator.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

// pathID parses the named path parameter with membership.ParseID.
func pathID(c echo.Context, name string) (model.ID, error) {
	return membership.ParseID(c.Param(name))
}
