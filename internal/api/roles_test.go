package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func protectedHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(u *User) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	if u != nil {
		r = r.WithContext(WithUser(r.Context(), u))
	}
	return r
}

func TestRequireRole_AdminPermitted(t *testing.T) {
	called := false
	h := RequireRole(RoleAdmin)(protectedHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestAs(&User{Email: "admin@example.com", Role: RoleAdmin}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRole_WrongRoleForbidden(t *testing.T) {
	called := false
	h := RequireRole(RoleAdmin)(protectedHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestAs(&User{Email: "deco@example.com", Role: RoleDecorator}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called, "handler must not run on role denial")
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRequireRole_NoPrincipalUnauthorized(t *testing.T) {
	called := false
	h := RequireRole(RoleDecorator)(protectedHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestAs(nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestRequireRole_AdminBypassesOtherRoleGates(t *testing.T) {
	called := false
	h := RequireRole(RoleDecorator)(protectedHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestAs(&User{Email: "admin@example.com", Role: RoleAdmin}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
