package api

import (
	"net/http"
)

// RequireRole gates a subtree behind one or more roles. The decision is a
// pure function of (principal present, role): no principal yields 401 (the
// client redirects to login), a mismatched role yields 403 (the client
// redirects home). Admin always passes.
func RequireRole(roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
				return
			}
			if !allowed[u.Role] && u.Role != RoleAdmin {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
