package portal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The link routes must decide on the principal before touching any storage;
// a zero-value Handlers panics if they don't.
func TestLinkRoutesRequirePrincipal(t *testing.T) {
	h := Handlers{}

	routes := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"create", http.MethodPost, h.CreateLink},
		{"revoke", http.MethodDelete, h.RevokeLink},
	}
	for _, tc := range routes {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/v1/bookings/b-1/tracking-link", nil)
			rec := httptest.NewRecorder()

			tc.handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}
