package checkout

import (
	"github.com/stripe/stripe-go/v79"

	"prebuilt-checkout/internal/config"
	"prebuilt-checkout/internal/payments"
)

const (
	SuccessPath = "/succ"
	CancelPath  = "/canc"
)

// NewSessionRequest builds the one-time purchase of a single configured
// price. The session id query parameter is filled in by the provider on
// redirect, not here.
func NewSessionRequest(cfg config.Config) payments.SessionRequest {
	methods := cfg.PaymentMethodTypes
	if len(methods) == 0 {
		methods = []string{"card"}
	}
	return payments.SessionRequest{
		SuccessURL:         cfg.Domain + SuccessPath + "?session_id=" + payments.CheckoutSessionIDPlaceholder,
		CancelURL:          cfg.Domain + CancelPath,
		PaymentMethodTypes: append([]string(nil), methods...),
		Mode:               string(stripe.CheckoutSessionModePayment),
		LineItems: []payments.LineItem{
			{Price: cfg.Price, Quantity: 1},
		},
	}
}
