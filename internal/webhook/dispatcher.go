package webhook

import (
	"context"
	"log/slog"

	"github.com/stripe/stripe-go/v79"
)

// Fulfiller performs the business action for a paid session. The provider
// delivers at least once, so implementations must be idempotent on the
// session id.
type Fulfiller interface {
	Fulfill(ctx context.Context, session *stripe.CheckoutSession) error
}

type Dispatcher struct {
	fulfiller Fulfiller
	logger    *slog.Logger
}

func NewDispatcher(f Fulfiller, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{fulfiller: f, logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	d.logger.InfoContext(ctx, "webhook event", "event_id", ev.EventID(), "type", ev.Kind())

	switch e := ev.(type) {
	case CheckoutSessionCompleted:
		d.logger.InfoContext(ctx, "payment succeeded", "session_id", e.Session.ID, "payment_status", e.Session.PaymentStatus)
		return d.fulfiller.Fulfill(ctx, &e.Session)
	case CheckoutSessionExpired:
		d.logger.InfoContext(ctx, "checkout session expired", "session_id", e.Session.ID)
		return nil
	default:
		d.logger.DebugContext(ctx, "webhook event ignored", "type", ev.Kind())
		return nil
	}
}
