package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

func newFakeStripe(t *testing.T, h http.HandlerFunc) (*StripeGateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	b := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeGatewayWithBackend("sk_test_123", b), srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestStripeCreateSessionSendsParams(t *testing.T) {
	gw, _ := newFakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "https://shop.example/succ?session_id={CHECKOUT_SESSION_ID}", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://shop.example/canc", r.PostForm.Get("cancel_url"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
		assert.Empty(t, r.PostForm.Get("payment_method_types[1]"))
		assert.Equal(t, "price_123", r.PostForm.Get("line_items[0][price]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))

		writeJSON(w, http.StatusOK, `{"id":"cs_test_1","object":"checkout.session","status":"open","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`)
	})

	s, err := gw.CreateSession(context.Background(), SessionRequest{
		SuccessURL:         "https://shop.example/succ?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          "https://shop.example/canc",
		PaymentMethodTypes: []string{"card"},
		Mode:               "payment",
		LineItems:          []LineItem{{Price: "price_123", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", s.ID)
	assert.Equal(t, stripe.CheckoutSessionStatusOpen, s.Status)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", s.URL)
}

func TestStripeRetrieveSessionExpands(t *testing.T) {
	gw, _ := newFakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)
		assert.Equal(t, "line_items", r.URL.Query().Get("expand[0]"))

		writeJSON(w, http.StatusOK, `{
			"id":"cs_test_1","object":"checkout.session","status":"complete","payment_status":"paid",
			"line_items":{"object":"list","data":[{"id":"li_1","object":"item","quantity":1,"price":{"id":"price_123","object":"price"}}]}
		}`)
	})

	s, err := gw.RetrieveSession(context.Background(), "cs_test_1", "line_items")
	require.NoError(t, err)
	assert.Equal(t, stripe.CheckoutSessionPaymentStatusPaid, s.PaymentStatus)
	require.NotNil(t, s.LineItems)
	require.Len(t, s.LineItems.Data, 1)
	assert.Equal(t, "price_123", s.LineItems.Data[0].Price.ID)
}

func TestStripeErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    error
		wantMsg string
	}{
		{
			name:    "unknown session",
			status:  http.StatusNotFound,
			body:    `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such checkout.session: 'cs_nope'"}}`,
			kind:    ErrNotFound,
			wantMsg: "No such checkout.session: 'cs_nope'",
		},
		{
			name:    "invalid request",
			status:  http.StatusBadRequest,
			body:    `{"error":{"type":"invalid_request_error","code":"parameter_invalid_empty","message":"You passed an empty string for 'line_items[0][price]'."}}`,
			kind:    ErrRejected,
			wantMsg: "You passed an empty string for 'line_items[0][price]'.",
		},
		{
			name:    "provider outage",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"type":"api_error","message":"Something went wrong."}}`,
			kind:    ErrUnavailable,
			wantMsg: "Something went wrong.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, _ := newFakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := gw.RetrieveSession(context.Background(), "cs_nope")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var se *stripe.Error
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestStripeTransportErrorIsUnavailable(t *testing.T) {
	gw, srv := newFakeStripe(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := gw.CreateSession(context.Background(), SessionRequest{Mode: "payment"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyWebhook(t *testing.T) {
	gw := NewStripeGateway("sk_test_123", "")
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","object":"checkout.session"}}}`)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    "whsec_test",
		Timestamp: time.Now(),
	})

	ev, err := gw.VerifyWebhook(payload, signed.Header, "whsec_test")
	require.NoError(t, err)
	assert.Equal(t, stripe.EventType("checkout.session.completed"), ev.Type)
	assert.Equal(t, "evt_1", ev.ID)

	_, err = gw.VerifyWebhook(payload, signed.Header, "whsec_other")
	assert.ErrorIs(t, err, webhook.ErrNoValidSignature)

	tampered := append([]byte(nil), payload...)
	tampered[len(tampered)-3] = ' '
	_, err = gw.VerifyWebhook(tampered, signed.Header, "whsec_test")
	assert.Error(t, err)

	_, err = gw.VerifyWebhook(payload, "", "whsec_test")
	assert.Error(t, err)
}
