package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect bool
	}{
		{"a@b.c", true},
		{"jane.doe@example.com", true},
		{"  jane-doe@mail.example.org  ", true},
		{"josé@example.com", true},
		{"анна@почта.рф", true},
		{"not-an-email", false},
		{"a@@b.c", false},
		{"a@b@c.d", false},
		{"a@bc", false},
		{"a b@c.d", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expect, Email(tt.input), "Email(%q)", tt.input)
		})
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect bool
	}{
		{"+1 (555) 123-4567", true},
		{"5551234567", true},
		{"1234567", true},
		{"123456789012345", true},
		{"1234567890123456", false},
		{"12345", false},
		{"phone", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expect, Phone(tt.input), "Phone(%q)", tt.input)
		})
	}
}

func TestExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect bool
	}{
		{"0", true},
		{"5.5", true},
		{"60", true},
		{" 7 ", true},
		{"-1", false},
		{"61", false},
		{"abc", false},
		{"NaN", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expect, Experience(tt.input), "Experience(%q)", tt.input)
		})
	}
}

func TestFreeText(t *testing.T) {
	t.Parallel()

	require.False(t, FreeText(" a "), "single character")
	require.True(t, FreeText("Go"))
	require.True(t, FreeText("Жа"), "two non-ascii characters")
}

func TestExitIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect bool
	}{
		{"I want to quit now", true},
		{"I quit", true},
		{"GOODBYE", true},
		{"Backend engineer", true},
		{"python", false},
		{"Jane Doe", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expect, ExitIntent(tt.input), "ExitIntent(%q)", tt.input)
		})
	}
}
