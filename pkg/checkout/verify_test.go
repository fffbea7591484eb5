package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"type":"checkout.session.completed"}`)
	secret := "whsec_test"

	if !VerifyWebhookSignature(body, sign(body, secret), secret) {
		t.Fatalf("expected valid signature")
	}
	if VerifyWebhookSignature(body, sign(body, "other"), secret) {
		t.Fatalf("expected invalid signature for wrong secret")
	}
	if VerifyWebhookSignature(body, "", secret) {
		t.Fatalf("expected invalid for empty header")
	}
	if VerifyWebhookSignature(body, sign(body, secret), "") {
		t.Fatalf("expected invalid for empty secret")
	}
}
