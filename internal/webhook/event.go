package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
)

const (
	TypeCheckoutSessionCompleted = stripe.EventType("checkout.session.completed")
	TypeCheckoutSessionExpired   = stripe.EventType("checkout.session.expired")
)

// Event is the closed set of webhook events this service understands.
// Anything else decodes to Unrecognized.
type Event interface {
	EventID() string
	Kind() stripe.EventType
	isEvent()
}

type CheckoutSessionCompleted struct {
	ID      string
	Session stripe.CheckoutSession
}

type CheckoutSessionExpired struct {
	ID      string
	Session stripe.CheckoutSession
}

type Unrecognized struct {
	ID   string
	Type stripe.EventType
}

func (e CheckoutSessionCompleted) EventID() string       { return e.ID }
func (e CheckoutSessionCompleted) Kind() stripe.EventType { return TypeCheckoutSessionCompleted }
func (CheckoutSessionCompleted) isEvent()                 {}

func (e CheckoutSessionExpired) EventID() string       { return e.ID }
func (e CheckoutSessionExpired) Kind() stripe.EventType { return TypeCheckoutSessionExpired }
func (CheckoutSessionExpired) isEvent()                 {}

func (e Unrecognized) EventID() string       { return e.ID }
func (e Unrecognized) Kind() stripe.EventType { return e.Type }
func (Unrecognized) isEvent()                 {}

// Decode maps a raw event onto Event. Only recognized types read
// data.object; for those a missing or mistyped object is ErrMalformed.
func Decode(raw stripe.Event) (Event, error) {
	switch raw.Type {
	case TypeCheckoutSessionCompleted:
		s, err := decodeSession(raw)
		if err != nil {
			return nil, err
		}
		return CheckoutSessionCompleted{ID: raw.ID, Session: s}, nil
	case TypeCheckoutSessionExpired:
		s, err := decodeSession(raw)
		if err != nil {
			return nil, err
		}
		return CheckoutSessionExpired{ID: raw.ID, Session: s}, nil
	default:
		return Unrecognized{ID: raw.ID, Type: raw.Type}, nil
	}
}

func decodeSession(raw stripe.Event) (stripe.CheckoutSession, error) {
	var s stripe.CheckoutSession
	if raw.Data == nil || len(raw.Data.Raw) == 0 {
		return s, fmt.Errorf("%w: %s has no data.object", ErrMalformed, raw.Type)
	}
	if err := json.Unmarshal(raw.Data.Raw, &s); err != nil {
		return s, fmt.Errorf("%w: %s data.object: %v", ErrMalformed, raw.Type, err)
	}
	if s.ID == "" {
		return s, fmt.Errorf("%w: %s data.object has no id", ErrMalformed, raw.Type)
	}
	return s, nil
}
