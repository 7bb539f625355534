// Package candidate holds the record collected from a candidate during intake.
package candidate

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Field names a single piece of candidate information.
type Field string

const (
	FieldFullName   Field = "fullname"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldExperience Field = "experience"
	FieldPosition   Field = "position"
	FieldLocation   Field = "location"
	FieldTechStack  Field = "techstack"

	// FieldTimestamp is attached by persistence sinks, never collected.
	FieldTimestamp = "timestamp"

	notProvided = "Not provided"
)

// Fields lists the collected fields in intake order.
var Fields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldExperience,
	FieldPosition,
	FieldLocation,
	FieldTechStack,
}

// Record maps field names to the values the candidate supplied.
type Record map[string]string

// Profile is a typed view of a Record.
type Profile struct {
	FullName   string `mapstructure:"fullname" json:"fullname,omitempty"`
	Email      string `mapstructure:"email" json:"email,omitempty"`
	Phone      string `mapstructure:"phone" json:"phone,omitempty"`
	Experience string `mapstructure:"experience" json:"experience,omitempty"`
	Position   string `mapstructure:"position" json:"position,omitempty"`
	Location   string `mapstructure:"location" json:"location,omitempty"`
	TechStack  string `mapstructure:"techstack" json:"techstack,omitempty"`
	Timestamp  string `mapstructure:"timestamp" json:"timestamp,omitempty"`
}

func (r Record) Get(f Field) string {
	return r[string(f)]
}

func (r Record) Has(f Field) bool {
	return strings.TrimSpace(r[string(f)]) != ""
}

// Clone returns an independent copy. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Profile decodes the record into its typed form. Unknown keys are ignored.
func (r Record) Profile() (Profile, error) {
	var p Profile
	if err := mapstructure.Decode(map[string]string(r), &p); err != nil {
		return Profile{}, fmt.Errorf("decode candidate record: %w", err)
	}
	return p, nil
}

// Summary renders the candidate summary block shown before questions are generated.
func (p Profile) Summary() string {
	var b strings.Builder
	b.WriteString("**Candidate Summary:**\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", orNotProvided(p.FullName))
	fmt.Fprintf(&b, "- **Email:** %s\n", orNotProvided(p.Email))
	fmt.Fprintf(&b, "- **Phone:** %s\n", orNotProvided(p.Phone))
	fmt.Fprintf(&b, "- **Experience:** %s years\n", orNotProvided(p.Experience))
	fmt.Fprintf(&b, "- **Position:** %s\n", orNotProvided(p.Position))
	fmt.Fprintf(&b, "- **Location:** %s\n", orNotProvided(p.Location))
	fmt.Fprintf(&b, "- **Tech Stack:** %s\n", orNotProvided(p.TechStack))
	return b.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}
