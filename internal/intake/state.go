package intake

import (
	"time"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/candidate"
)

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Entry is one line of the transcript.
type Entry struct {
	Speaker   Speaker   `json:"speaker" yaml:"speaker"`
	Text      string    `json:"text" yaml:"text"`
	EmittedAt time.Time `json:"emitted_at" yaml:"emitted_at"`
}

// Fallback records a provider failure that was replaced by local output.
type Fallback struct {
	Step Step
	Kind ai.ErrorKind
}

// State is everything a session owns. The engine never keeps it: callers pass
// the current value in and get the next value back.
type State struct {
	SessionID  string
	Step       Step
	Record     candidate.Record
	Transcript []Entry
	// Terminated is set once on completion or exit and never reset.
	Terminated bool
	// QuestionsEmitted is set once, by the questions step.
	QuestionsEmitted bool
	Questions        string
	// Persisted reports whether the sink accepted the record.
	Persisted bool
	Warnings  []string
	Fallbacks []Fallback
}

// Clone returns a deep copy so a returned state never aliases its input.
func (s State) Clone() State {
	out := s
	out.Record = s.Record.Clone()
	out.Transcript = append([]Entry(nil), s.Transcript...)
	out.Warnings = append([]string(nil), s.Warnings...)
	out.Fallbacks = append([]Fallback(nil), s.Fallbacks...)
	return out
}

// Ended reports whether the session stopped on exit intent.
func (s State) Ended() bool {
	return s.Step == StepEnded
}
