// Package validate checks the shape of candidate answers. All checks are pure
// and report a boolean only.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15

	minExperience = 0
	maxExperience = 60

	minFreeTextLen = 2
)

var (
	// Word characters include non-ASCII letters and digits.
	emailPattern = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)
	nonDigit     = regexp.MustCompile(`\D`)

	exitKeywords = []string{"exit", "quit", "bye", "goodbye", "end", "stop", "cancel"}
)

// Email reports whether s looks like local-part@domain.tld.
func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Phone reports whether s carries between 7 and 15 digits once every other
// character is dropped.
func Phone(s string) bool {
	n := len(Digits(s))
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

// Digits strips everything but ASCII digits from s.
func Digits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// Experience reports whether s is a number of years in [0, 60].
func Experience(s string) bool {
	years, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}
	// NaN fails both comparisons.
	return years >= minExperience && years <= maxExperience
}

// FreeText reports whether the trimmed text has at least two characters.
func FreeText(s string) bool {
	return len([]rune(strings.TrimSpace(s))) >= minFreeTextLen
}

// ExitIntent reports whether the text contains any exit keyword as a substring.
// "Backend" therefore counts as exit intent.
func ExitIntent(s string) bool {
	lower := strings.ToLower(s)
	for _, k := range exitKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
