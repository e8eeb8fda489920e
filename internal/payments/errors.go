package payments

import "errors"

var (
	ErrNotFound    = errors.New("resource not found")
	ErrUnavailable = errors.New("payment provider unavailable")
	ErrRejected    = errors.New("request rejected by payment provider")
)

// Error carries the provider's human readable message. Kind is one of the
// sentinels above so callers can branch with errors.Is.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
