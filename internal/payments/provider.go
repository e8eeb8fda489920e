package payments

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Session is the provider-owned checkout record. It is passed through
// untouched: created by CreateSession, read by RetrieveSession.
type Session = stripe.CheckoutSession

// CheckoutSessionIDPlaceholder is substituted by the provider when it
// redirects back to the success URL.
const CheckoutSessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

const SignatureHeader = "Stripe-Signature"

type LineItem struct {
	Price    string
	Quantity int64
}

type SessionRequest struct {
	SuccessURL         string
	CancelURL          string
	PaymentMethodTypes []string
	Mode               string
	LineItems          []LineItem
}

type Gateway interface {
	Name() string

	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)

	// RetrieveSession fetches a session by id. expand names nested objects
	// (e.g. "line_items") the provider should inline.
	RetrieveSession(ctx context.Context, id string, expand ...string) (*Session, error)

	// VerifyWebhook checks signature against the raw payload and returns the
	// parsed event.
	VerifyWebhook(payload []byte, signature, secret string) (stripe.Event, error)
}

// ConstructEvent verifies a Stripe-signed payload. Events rendered for an
// account API version other than the library's are still accepted; only
// data.object of known types is read.
func ConstructEvent(payload []byte, signature, secret string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
