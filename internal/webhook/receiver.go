package webhook

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformed        = errors.New("malformed webhook payload")
)

type Verifier interface {
	VerifyWebhook(payload []byte, signature, secret string) (stripe.Event, error)
}

// Receiver turns a raw webhook request into an Event.
//
// With an empty secret the payload is trusted as-is. Anyone who can reach
// the endpoint can then forge events, so this mode is for local
// development only.
type Receiver struct {
	verifier Verifier
	secret   string
}

func NewReceiver(v Verifier, secret string) *Receiver {
	return &Receiver{verifier: v, secret: secret}
}

func (r *Receiver) Signed() bool { return r.secret != "" }

// Parse must be given the body exactly as received; any re-encoding breaks
// the signature.
func (r *Receiver) Parse(payload []byte, signature string) (Event, error) {
	if r.Signed() {
		raw, err := r.verifier.VerifyWebhook(payload, signature, r.secret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return Decode(raw)
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	raw := stripe.Event{
		ID:   env.ID,
		Type: env.Type,
		Data: &stripe.EventData{Raw: env.Data.Object},
	}
	ev, err := Decode(raw)
	if errors.Is(err, ErrMalformed) {
		// Any JSON object is accepted unsigned; a session-typed event
		// without a usable session is ignored.
		return Unrecognized{ID: raw.ID, Type: raw.Type}, nil
	}
	return ev, err
}

// envelope reads only what dispatch needs, so unsigned events of any
// shape are accepted.
type envelope struct {
	ID   string           `json:"id"`
	Type stripe.EventType `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}
