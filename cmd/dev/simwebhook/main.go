package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"decormarket/pkg/config"
	"decormarket/pkg/logger"
)

// Sends a signed gateway webhook to a local server, standing in for the real
// gateway during development.
//
// Usage:
//
//	go run ./cmd/dev/simwebhook -session cs_123 -type checkout.session.completed
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	var (
		target    = flag.String("target", "http://localhost:8081/v1/webhooks/payments", "webhook endpoint")
		sessionID = flag.String("session", "", "checkout session id (required)")
		eventType = flag.String("type", "checkout.session.completed", "gateway event type")
	)
	flag.Parse()

	if *sessionID == "" {
		log.Error("missing -session")
		flag.Usage()
		os.Exit(2)
	}
	if cfg.Checkout.WebhookSecret == "" {
		log.Fatal("CHECKOUT_WEBHOOK_SECRET is not set")
	}

	payload := map[string]any{
		"id":   "evt_" + uuid.NewString(),
		"type": *eventType,
		"data": map[string]any{
			"session": map[string]any{
				"id":     *sessionID,
				"status": "complete",
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatal("marshal payload", zap.Error(err))
	}

	mac := hmac.New(sha256.New, []byte(cfg.Checkout.WebhookSecret))
	mac.Write(body)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req, err := http.NewRequest(http.MethodPost, *target, bytes.NewReader(body))
	if err != nil {
		log.Fatal("build request", zap.Error(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Gateway-Signature", signature)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatal("send webhook", zap.Error(err))
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	log.Info("webhook delivered",
		zap.String("type", *eventType),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", respBody),
	)
}
