package payments

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeGateway talks to the Stripe API through a dedicated client rather
// than the package-level globals, so tests can point it at a fake backend.
type StripeGateway struct {
	client *client.API
}

// NewStripeGateway builds a gateway for apiKey. apiURL overrides the API base
// (stripe-mock, tests) and may be empty.
func NewStripeGateway(apiKey, apiURL string) *StripeGateway {
	if apiURL == "" {
		sc := &client.API{}
		sc.Init(apiKey, nil)
		return &StripeGateway{client: sc}
	}
	b := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(apiURL),
	})
	return NewStripeGatewayWithBackend(apiKey, b)
}

func NewStripeGatewayWithBackend(apiKey string, b stripe.Backend) *StripeGateway {
	sc := client.New(apiKey, &stripe.Backends{API: b, Connect: b, Uploads: b})
	return &StripeGateway{client: sc}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		PaymentMethodTypes: stripe.StringSlice(req.PaymentMethodTypes),
		Mode:               stripe.String(req.Mode),
	}
	for _, li := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(li.Price),
			Quantity: stripe.Int64(li.Quantity),
		})
	}
	params.Context = ctx

	s, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return s, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, id string, expand ...string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	for _, e := range expand {
		params.AddExpand(e)
	}

	s, err := g.client.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return s, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature, secret string) (stripe.Event, error) {
	return ConstructEvent(payload, signature, secret)
}

// mapStripeError keeps the provider message but classifies the failure so
// handlers do not need to know about stripe-go error types.
func mapStripeError(err error) error {
	var se *stripe.Error
	if !errors.As(err, &se) {
		return &Error{Kind: ErrUnavailable, Err: err}
	}

	kind := ErrRejected
	switch {
	case se.HTTPStatusCode == http.StatusNotFound, se.Code == stripe.ErrorCodeResourceMissing:
		kind = ErrNotFound
	case se.HTTPStatusCode >= http.StatusInternalServerError, se.Code == stripe.ErrorCodeRateLimit:
		kind = ErrUnavailable
	}
	return &Error{Kind: kind, Msg: se.Msg, Err: err}
}
