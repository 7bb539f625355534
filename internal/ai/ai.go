// Package ai defines the contract for remote language-model providers and the
// closed set of failures they report.
package ai

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 30 * time.Second

// Completer produces text for a prompt. An empty system message is omitted
// from the request. Every failure is an *Error.
type Completer interface {
	Complete(ctx context.Context, prompt, system string) (string, error)
}

// Described is implemented by completers that can name their backend for logs.
type Described interface {
	Provider() string
	Model() string
}

// Disabled is a Completer used when no provider is configured. It always fails
// with KindAuth so callers take their local path.
type Disabled struct {
	Reason string
}

func (d Disabled) Complete(context.Context, string, string) (string, error) {
	reason := d.Reason
	if reason == "" {
		reason = "no provider credentials configured"
	}
	return "", NewError(KindAuth, reason, nil)
}

func (Disabled) Provider() string { return "none" }

func (Disabled) Model() string { return "" }
