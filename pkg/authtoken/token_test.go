package authtoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestVerify_AudienceAndEmail(t *testing.T) {
	audience := "decormarket-app"
	secret := "test_secret"

	now := time.Unix(1700000000, 0)

	claims := IDTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  []string{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
		Email: "Jane.Doe@Example.com",
		Name:  "Jane Doe",
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := Verify(s, secret, audience, "", now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Email != "jane.doe@example.com" {
		t.Fatalf("email mismatch: %q", got.Email)
	}
	if got.Name != "Jane Doe" {
		t.Fatalf("name mismatch: %q", got.Name)
	}
}

func TestVerify_Expired(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	claims := IDTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
		Email: "late@example.com",
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Verify(s, secret, "", "", now); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	claims := IDTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
		Email: "someone@example.com",
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("right_secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Verify(s, "wrong_secret", "", "", now); err == nil {
		t.Fatalf("expected signature error")
	}
}
