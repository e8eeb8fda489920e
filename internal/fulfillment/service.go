package fulfillment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"

	"prebuilt-checkout/internal/models"
	"prebuilt-checkout/internal/util"
)

type SessionFetcher interface {
	RetrieveSession(ctx context.Context, id string, expand ...string) (*stripe.CheckoutSession, error)
}

type Ledger interface {
	HasOrder(ctx context.Context, sessionID string) (bool, error)
	AppendOrder(ctx context.Context, o models.Order) error
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Service fulfills paid checkout sessions. With no ledger and no notifier it
// only logs. Otherwise the session is re-fetched with its line items, so
// the order contents are known, and fulfilled once per session id: the
// in-process set covers redeliveries, the ledger also covers restarts.
type Service struct {
	sessions SessionFetcher
	ledger   Ledger
	notifier Notifier
	logger   *slog.Logger

	mu   sync.Mutex
	done map[string]bool
}

type Option func(*Service)

func WithLedger(l Ledger) Option {
	return func(s *Service) { s.ledger = l }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func New(sessions SessionFetcher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{sessions: sessions, logger: logger, done: make(map[string]bool)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Fulfill(ctx context.Context, session *stripe.CheckoutSession) error {
	if s.ledger == nil && s.notifier == nil {
		s.logger.InfoContext(ctx, "fulfillment skipped, no sinks configured", "session_id", session.ID)
		return nil
	}

	if !s.claim(session.ID) {
		s.logger.InfoContext(ctx, "session already fulfilled", "session_id", session.ID)
		return nil
	}

	order, err := s.record(ctx, session.ID)
	if err != nil {
		s.release(session.ID)
		return err
	}
	if order == nil {
		s.logger.InfoContext(ctx, "session already in ledger", "session_id", session.ID)
		return nil
	}
	s.logger.InfoContext(ctx, "order fulfilled", "order_id", order.OrderID, "session_id", order.SessionID, "amount", order.Amount())

	if s.notifier != nil {
		// The order is already recorded; a redelivery would skip the
		// notification, so a failure here is logged and not retried.
		if err := s.notifier.Notify(ctx, FormatOrder(*order)); err != nil {
			s.logger.WarnContext(ctx, "notify failed", "session_id", order.SessionID, "err", err)
		}
	}
	return nil
}

// record fetches the full session and appends it to the ledger. A nil order
// means the ledger already had it.
func (s *Service) record(ctx context.Context, sessionID string) (*models.Order, error) {
	if s.ledger != nil {
		found, err := s.ledger.HasOrder(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("check ledger: %w", err)
		}
		if found {
			return nil, nil
		}
	}

	full, err := s.sessions.RetrieveSession(ctx, sessionID, "line_items")
	if err != nil {
		return nil, fmt.Errorf("retrieve session %s: %w", sessionID, err)
	}
	order := OrderFromSession(full)

	if s.ledger != nil {
		if err := s.ledger.AppendOrder(ctx, order); err != nil {
			return nil, err
		}
	}
	return &order, nil
}

func (s *Service) claim(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done[id] {
		return false
	}
	s.done[id] = true
	return true
}

func (s *Service) release(id string) {
	s.mu.Lock()
	delete(s.done, id)
	s.mu.Unlock()
}

func OrderFromSession(cs *stripe.CheckoutSession) models.Order {
	o := models.Order{
		OrderID:       uuid.NewString(),
		SessionID:     cs.ID,
		AmountTotal:   cs.AmountTotal,
		Currency:      string(cs.Currency),
		PaymentStatus: string(cs.PaymentStatus),
		PriceIDs:      []string{},
		CreatedAt:     util.NowISO(),
	}
	if cs.CustomerDetails != nil {
		o.CustomerEmail = cs.CustomerDetails.Email
	}
	if o.CustomerEmail == "" {
		o.CustomerEmail = cs.CustomerEmail
	}
	if cs.LineItems != nil {
		for _, li := range cs.LineItems.Data {
			if li == nil || li.Price == nil {
				continue
			}
			o.PriceIDs = append(o.PriceIDs, li.Price.ID)
		}
	}
	return o
}

func FormatOrder(o models.Order) string {
	var b strings.Builder
	b.WriteString("✅ Payment received\n")
	fmt.Fprintf(&b, "Order: %s\n", o.OrderID)
	fmt.Fprintf(&b, "Session: %s\n", o.SessionID)
	fmt.Fprintf(&b, "Amount: %s\n", o.Amount())
	if o.CustomerEmail != "" {
		fmt.Fprintf(&b, "Customer: %s\n", o.CustomerEmail)
	}
	if len(o.PriceIDs) > 0 {
		fmt.Fprintf(&b, "Items: %s\n", strings.Join(o.PriceIDs, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
