package payments

import (
	"fmt"

	"prebuilt-checkout/internal/config"
)

func NewGateway(cfg config.Config) (Gateway, error) {
	switch cfg.PaymentProvider {
	case "stripe":
		return NewStripeGateway(cfg.StripeSecretKey, cfg.StripeAPIURL), nil
	case "stub":
		return NewStubGateway(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", cfg.PaymentProvider)
	}
}
