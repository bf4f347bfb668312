package identity

import "fmt"

// ErrorKind classifies token-endpoint failures. Handlers map kinds to HTTP
// status codes through a fixed table rather than inspecting messages.
type ErrorKind int

const (
	// ErrorInvalidInput: the request was rejected locally; no network call
	// was made.
	ErrorInvalidInput ErrorKind = iota

	// ErrorUpstreamRejected: the provider answered with a non-success
	// status. Detail carries the raw upstream body verbatim.
	ErrorUpstreamRejected

	// ErrorTransport: the outbound call itself failed (network error,
	// timeout, malformed response body).
	ErrorTransport
)

// Error is the typed failure returned by token-endpoint calls.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // upstream status, set for ErrorUpstreamRejected
	Detail     string // upstream body or error text
	wrapped    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrorInvalidInput:
		return fmt.Sprintf("identity: invalid input: %s", e.Detail)
	case ErrorUpstreamRejected:
		return fmt.Sprintf("identity: provider rejected request (status %d)", e.StatusCode)
	default:
		return fmt.Sprintf("identity: transport failure: %s", e.Detail)
	}
}

func (e *Error) Unwrap() error { return e.wrapped }

func transportError(err error) *Error {
	return &Error{Kind: ErrorTransport, Detail: err.Error(), wrapped: err}
}
