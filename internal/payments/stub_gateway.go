package payments

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
)

// StubGateway is an offline stand-in for local development:
// - CreateSession stores the session in memory and "hosts" checkout by
//   pointing straight at the success URL, already paid.
// - Webhooks use the same signature scheme as Stripe.
type StubGateway struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStubGateway() *StubGateway {
	return &StubGateway{sessions: map[string]*Session{}}
}

func (g *StubGateway) Name() string { return "stub" }

func (g *StubGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if len(req.LineItems) == 0 {
		return nil, &Error{Kind: ErrRejected, Msg: "line_items is required"}
	}
	items := make([]*stripe.LineItem, 0, len(req.LineItems))
	for i, li := range req.LineItems {
		if li.Price == "" {
			return nil, &Error{Kind: ErrRejected, Msg: fmt.Sprintf("line_items[%d].price is required", i)}
		}
		items = append(items, &stripe.LineItem{
			ID:       fmt.Sprintf("li_stub_%d", i),
			Object:   "item",
			Price:    &stripe.Price{ID: li.Price},
			Quantity: li.Quantity,
		})
	}

	id := "cs_stub_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s := &Session{
		ID:                 id,
		Object:             "checkout.session",
		Created:            time.Now().Unix(),
		Mode:               stripe.CheckoutSessionMode(req.Mode),
		Status:             stripe.CheckoutSessionStatusComplete,
		PaymentStatus:      stripe.CheckoutSessionPaymentStatusPaid,
		PaymentMethodTypes: append([]string(nil), req.PaymentMethodTypes...),
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
		URL:                strings.ReplaceAll(req.SuccessURL, CheckoutSessionIDPlaceholder, id),
		LineItems:          &stripe.LineItemList{Data: items},
	}

	g.mu.Lock()
	g.sessions[id] = s
	g.mu.Unlock()

	cp := *s
	return &cp, nil
}

func (g *StubGateway) RetrieveSession(ctx context.Context, id string, expand ...string) (*Session, error) {
	g.mu.Lock()
	s, ok := g.sessions[id]
	g.mu.Unlock()
	if !ok {
		return nil, &Error{Kind: ErrNotFound, Msg: fmt.Sprintf("No such checkout.session: '%s'", id)}
	}
	cp := *s
	return &cp, nil
}

func (g *StubGateway) VerifyWebhook(payload []byte, signature, secret string) (stripe.Event, error) {
	return ConstructEvent(payload, signature, secret)
}
