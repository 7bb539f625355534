package storage

import (
	"strings"
	"time"

	"github.com/spigell/talentscout/internal/candidate"
	"github.com/spigell/talentscout/internal/validate"
)

const (
	masked = "masked"
	mask   = "***"

	keepPhoneDigits = 3
	keepEmailChars  = 2
)

// Anonymize returns a copy of rec with phone and email partially masked and a
// UTC timestamp attached. The input is not modified.
func Anonymize(rec candidate.Record, now time.Time) candidate.Record {
	out := rec.Clone()

	if phone, ok := out[string(candidate.FieldPhone)]; ok {
		out[string(candidate.FieldPhone)] = MaskPhone(phone)
	}
	if email, ok := out[string(candidate.FieldEmail)]; ok {
		out[string(candidate.FieldEmail)] = MaskEmail(email)
	}

	out[candidate.FieldTimestamp] = now.UTC().Format(time.RFC3339)
	return out
}

// MaskPhone keeps the first and last three digits. Fewer than six digits mask
// the whole value.
func MaskPhone(phone string) string {
	digits := validate.Digits(phone)
	if len(digits) < 2*keepPhoneDigits {
		return masked
	}
	return digits[:keepPhoneDigits] + mask + digits[len(digits)-keepPhoneDigits:]
}

// MaskEmail keeps the first two characters of the local part and the domain.
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return masked
	}

	local := []rune(parts[0])
	if len(local) > keepEmailChars {
		local = local[:keepEmailChars]
	}
	return string(local) + mask + "@" + parts[1]
}
