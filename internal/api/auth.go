package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"decormarket/pkg/authtoken"
	"decormarket/pkg/config"
)

// UserStore is the slice of the user repository the auth middleware needs;
// it is declared here so this package does not import internal/user back
// (internal/user imports this package for the response helpers).
type UserStore interface {
	Upsert(ctx context.Context, email, name, photoURL string) (*User, error)
}

// Auth validates provider ID tokens and attaches the resolved user to the
// request context.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// Users are bootstrapped in the DB on first sight so that every downstream
// handler can rely on a persistent row (role, status).
func Auth(cfg config.Config, users UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			token := strings.TrimSpace(authz[7:])
			ident, err := authtoken.Verify(token, cfg.Auth.SigningSecret, cfg.Auth.Audience, cfg.Auth.Issuer, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}

			u, err := users.Upsert(r.Context(), ident.Email, ident.Name, ident.PhotoURL)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to resolve user")
				return
			}
			if u.Status != "active" {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "account disabled")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
