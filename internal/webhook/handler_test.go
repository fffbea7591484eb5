package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func sign(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestServeHTTPRejectsBadSignature(t *testing.T) {
	h := Handler{Secret: "whsec_test", Log: zap.NewNop()}

	body := `{"id":"evt_1","type":"checkout.session.completed"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payments", strings.NewReader(body))
	req.Header.Set(signatureHeader, "not-a-real-signature")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeHTTPRejectsMissingSignature(t *testing.T) {
	h := Handler{Secret: "whsec_test", Log: zap.NewNop()}

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payments", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeHTTPAcceptsMalformedBodyWithValidSignature(t *testing.T) {
	h := Handler{Secret: "whsec_test", Log: zap.NewNop()}

	// A signed but unparseable payload is acknowledged so the gateway does not
	// retry it forever.
	body := `not json`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payments", strings.NewReader(body))
	req.Header.Set(signatureHeader, sign(body, "whsec_test"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
