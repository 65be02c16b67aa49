package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fanclub-membership/internal/utils"
)

// MemberToken reads an optional "Authorization: Bearer <jwt>" header issued
// at login and records the member id for MemberID.  The token only names
// the caller for rate limiting and logs: missing or invalid tokens never
// fail the request, they leave the caller anonymous.
func MemberToken(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if ok && raw != "" {
				if id, err := utils.ParseMemberToken(secret, raw); err == nil {
					c.Set(memberKey, id.String())
				}
			}
			return next(c)
		}
	}
}
