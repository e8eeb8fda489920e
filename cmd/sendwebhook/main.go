// Command sendwebhook posts a test event to a running checkout server,
// signed the way Stripe signs deliveries when a secret is given.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

func main() {
	_ = godotenv.Load()

	url := flag.String("url", "http://localhost:4242/webhook", "Webhook URL")
	secret := flag.String("secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Signing secret (empty sends the event unsigned)")
	eventType := flag.String("type", "checkout.session.completed", "Event type")
	sessionID := flag.String("session", "cs_test_"+randomID(), "Checkout session id placed in data.object")
	eventID := flag.String("event-id", "evt_"+randomID(), "Event id")
	dryRun := flag.Bool("dry-run", false, "Only print the payload and signature header")
	flag.Parse()

	now := time.Now()
	payload, err := buildEvent(*eventID, *eventType, *sessionID, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building event: %v\n", err)
		os.Exit(1)
	}
	sig := signatureHeader(payload, *secret, now)

	if sig == "" {
		fmt.Println("Stripe-Signature: (unsigned)")
	} else {
		fmt.Printf("Stripe-Signature: %s\n", sig)
	}
	fmt.Printf("Body: %s\n", payload)

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	status, body, err := send(&http.Client{Timeout: 10 * time.Second}, *url, payload, sig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending webhook: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Response: %d\n%s\n", status, body)
	if status >= 300 {
		os.Exit(1)
	}
}

func buildEvent(id, eventType, sessionID string, now time.Time) ([]byte, error) {
	return json.Marshal(map[string]any{
		"id":          id,
		"object":      "event",
		"api_version": stripe.APIVersion,
		"created":     now.Unix(),
		"livemode":    false,
		"type":        eventType,
		"data": map[string]any{
			"object": map[string]any{
				"id":             sessionID,
				"object":         "checkout.session",
				"mode":           "payment",
				"status":         "complete",
				"payment_status": "paid",
			},
		},
	})
}

func signatureHeader(payload []byte, secret string, now time.Time) string {
	if secret == "" {
		return ""
	}
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: now,
	}).Header
}

func send(client *http.Client, url string, payload []byte, sig string) (int, string, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set("Stripe-Signature", sig)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
