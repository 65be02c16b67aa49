package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMemberTokenRoundTrip(t *testing.T) {
	tok, err := NewMemberToken("secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("NewMemberToken: %v", err)
	}
	if time.Until(tok.Exp) <= 59*time.Minute {
		t.Errorf("Exp = %v, want about an hour from now", tok.Exp)
	}
	id, err := ParseMemberToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseMemberToken: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestParseMemberToken_Rejects(t *testing.T) {
	valid, _ := NewMemberToken("secret", 42, time.Hour)
	expired, _ := NewMemberToken("secret", 42, -time.Minute)
	noIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    memberIssuer,
		Subject:   "kim",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	tests := []struct {
		name, secret, raw string
	}{
		{"wrong secret", "other", valid.Token},
		{"expired", "secret", expired.Token},
		{"garbage", "secret", "not.a.jwt"},
		{"missing issuer", "secret", noIssuer},
		{"non numeric subject", "secret", badSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMemberToken(tt.secret, tt.raw); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
