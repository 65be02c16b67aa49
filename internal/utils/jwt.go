// Package utils provides helpers for issuing and reading member tokens.
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// memberIssuer is written to and required in the iss claim.
const memberIssuer = "fanclub-membership"

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid member token")

// MemberToken is a signed HS256 JWT identifying a logged-in customer along
// with its expiry.  It carries no roles or permissions.
type MemberToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewMemberToken signs a token whose subject is the customer id.
func NewMemberToken(secret string, customerID model.ID, ttl time.Duration) (MemberToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    memberIssuer,
		Subject:   customerID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return MemberToken{}, err
	}
	return MemberToken{Token: signed, Exp: exp}, nil
}

// ParseMemberToken verifies raw and returns the customer id in its subject.
func ParseMemberToken(secret, raw string) (model.ID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(memberIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return model.ID(id), nil
}
