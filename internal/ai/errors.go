package ai

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures. Callers branch on the kind, never on
// the message.
type ErrorKind int

const (
	// KindAuth means no credentials are configured. It is expected and benign.
	KindAuth ErrorKind = iota + 1
	// KindTimeout means the call exceeded its deadline.
	KindTimeout
	// KindTransport covers any other network-level failure.
	KindTransport
	// KindStatus means the provider answered with a non-success status.
	KindStatus
	// KindMalformed means the response lacked the expected completion text.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "provider"
	case KindMalformed:
		return "malformed response"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is the only error type returned by a Completer.
type Error struct {
	Kind ErrorKind
	// StatusCode and Body are set for KindStatus.
	StatusCode int
	Body       string
	Msg        string
	Err        error
}

func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// NewStatusError reports a non-success response.
func NewStatusError(status int, body string) *Error {
	return &Error{
		Kind:       KindStatus,
		StatusCode: status,
		Body:       body,
		Msg:        fmt.Sprintf("api error %d", status),
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if e.Kind == KindStatus && e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if msg == "" {
		return e.Kind.String() + " error"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the kind of a provider failure.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a provider failure of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
