package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		expect string
	}{
		{name: "status with body", err: NewStatusError(503, "overloaded"), expect: "api error 503: overloaded"},
		{name: "wrapped cause", err: NewError(KindTransport, "request failed", errors.New("connection refused")), expect: "request failed: connection refused"},
		{name: "bare kind", err: &Error{Kind: KindMalformed}, expect: "malformed response error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.EqualError(t, tt.err, tt.expect)
		})
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("greeting: %w", NewError(KindTimeout, "deadline", context.DeadlineExceeded))

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindTimeout, kind)
	require.True(t, IsKind(err, KindTimeout))
	require.False(t, IsKind(err, KindAuth))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	_, ok = KindOf(errors.New("plain"))
	require.False(t, ok, "plain errors have no kind")
}

func TestDisabledCompleter(t *testing.T) {
	_, err := Disabled{}.Complete(context.Background(), "prompt", "")
	require.True(t, IsKind(err, KindAuth), "got %v", err)
}
