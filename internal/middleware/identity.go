package middleware

import "github.com/labstack/echo/v4"

// memberKey is the echo context key holding the token subject.
const memberKey = "member_id"

// anonymous identifies callers without a valid member token.
const anonymous = "anon"

// MemberID returns the customer id set by MemberToken, or "anon" when the
// request carried no valid token.
func MemberID(c echo.Context) string {
	if s, ok := c.Get(memberKey).(string); ok && s != "" {
		return s
	}
	return anonymous
}
