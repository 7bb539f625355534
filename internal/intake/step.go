package intake

import (
	"errors"
	"fmt"

	"github.com/spigell/talentscout/internal/candidate"
	"github.com/spigell/talentscout/internal/validate"
)

// Step is a stage of the intake conversation.
type Step int

const (
	StepGreeting Step = iota + 1
	StepFullName
	StepEmail
	StepPhone
	StepExperience
	StepPosition
	StepLocation
	StepTechStack
	StepQuestions
	StepCompleted
	// StepEnded is reached from any step on exit intent.
	StepEnded
)

var ErrUnknownStep = errors.New("unknown step")

var stepNames = map[Step]string{
	StepGreeting:   "greeting",
	StepFullName:   "fullname",
	StepEmail:      "email",
	StepPhone:      "phone",
	StepExperience: "experience",
	StepPosition:   "position",
	StepLocation:   "location",
	StepTechStack:  "techstack",
	StepQuestions:  "questions",
	StepCompleted:  "completed",
	StepEnded:      "ended",
}

// transitions is the forward edge out of every non-terminal step. StepEnded is
// not listed: it is reachable from anywhere and leads nowhere.
var transitions = map[Step]Step{
	StepGreeting:   StepFullName,
	StepFullName:   StepEmail,
	StepEmail:      StepPhone,
	StepPhone:      StepExperience,
	StepExperience: StepPosition,
	StepPosition:   StepLocation,
	StepLocation:   StepTechStack,
	StepTechStack:  StepQuestions,
	StepQuestions:  StepCompleted,
}

// collection describes a step that waits for one validated field.
type collection struct {
	field   candidate.Field
	prompt  string
	valid   func(string) bool
	message string
	// acknowledge asks the provider for a short reply after the value is stored.
	acknowledge bool
}

var collections = map[Step]collection{
	StepFullName: {
		field:       candidate.FieldFullName,
		prompt:      "Let's start with your full name:",
		valid:       validate.FreeText,
		message:     "Please provide a valid fullname",
		acknowledge: true,
	},
	StepEmail: {
		field:   candidate.FieldEmail,
		prompt:  "What's your email address?",
		valid:   validate.Email,
		message: "Please enter a valid email address (e.g., user@example.com)",
	},
	StepPhone: {
		field:   candidate.FieldPhone,
		prompt:  "Please provide your phone number (include country code if needed):",
		valid:   validate.Phone,
		message: "Please enter a valid phone number (7-15 digits)",
	},
	StepExperience: {
		field:       candidate.FieldExperience,
		prompt:      "How many years of professional experience do you have? (Enter a number)",
		valid:       validate.Experience,
		message:     "Please enter years of experience as a number (0-60)",
		acknowledge: true,
	},
	StepPosition: {
		field:       candidate.FieldPosition,
		prompt:      "What position(s) are you applying for?",
		valid:       validate.FreeText,
		message:     "Please provide a valid position",
		acknowledge: true,
	},
	StepLocation: {
		field:   candidate.FieldLocation,
		prompt:  "What's your current location (city, state/country)?",
		valid:   validate.FreeText,
		message: "Please provide a valid location",
	},
	StepTechStack: {
		field:   candidate.FieldTechStack,
		prompt:  "Please list your technical skills (languages, frameworks, DBs, tools). Separate by commas:",
		valid:   validate.FreeText,
		message: "Please provide a valid techstack",
	},
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ParseStep maps a step name back to its value.
func ParseStep(name string) (Step, error) {
	for step, n := range stepNames {
		if n == name {
			return step, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s Step) Terminal() bool {
	return s == StepCompleted || s == StepEnded
}

// CollectsInput reports whether s waits for a candidate answer.
func (s Step) CollectsInput() bool {
	_, ok := collections[s]
	return ok
}

// Field returns the record field filled by s.
func (s Step) Field() (candidate.Field, bool) {
	c, ok := collections[s]
	return c.field, ok
}

// Prompt returns the fixed question shown while s waits for input.
func (s Step) Prompt() string {
	return collections[s].prompt
}

// Next returns the step that follows s in the fixed order.
func (s Step) Next() (Step, error) {
	next, ok := transitions[s]
	if !ok {
		if s.Valid() {
			return s, fmt.Errorf("step %s has no successor", s)
		}
		return s, fmt.Errorf("%w: %s", ErrUnknownStep, s)
	}
	return next, nil
}
