package authtoken

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type IDTokenClaims struct {
	jwt.RegisteredClaims

	// Provider profile claims; we only rely on a few.
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

type VerifiedIdentity struct {
	Email     string
	Name      string
	PhotoURL  string
	ExpiresAt time.Time
}

// Verify verifies an auth-provider ID token (JWT, HS256) using the shared
// signing secret. Audience and issuer are checked when configured; the
// subject email is required after validation.
func Verify(tokenString string, secret, audience, issuer string, now time.Time) (*VerifiedIdentity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing signing secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &IDTokenClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	// Time validation
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.After(now) {
		return nil, fmt.Errorf("token not active yet")
	}

	if audience != "" {
		if !audContains([]string(claims.RegisteredClaims.Audience), audience) {
			return nil, fmt.Errorf("audience mismatch")
		}
	}
	if issuer != "" && claims.Issuer != issuer {
		return nil, fmt.Errorf("issuer mismatch")
	}

	email := normalizeEmail(claims.Email)
	if email == "" {
		// Some providers put the email in sub.
		email = normalizeEmail(claims.Subject)
	}
	if email == "" {
		return nil, fmt.Errorf("missing email in token")
	}

	return &VerifiedIdentity{
		Email:     email,
		Name:      strings.TrimSpace(claims.Name),
		PhotoURL:  strings.TrimSpace(claims.Picture),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func audContains(aud []string, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

func normalizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.Contains(s, "@") {
		return ""
	}
	return s
}
