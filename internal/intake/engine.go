// Package intake drives the candidate screening conversation: a fixed sequence
// of validated steps followed by question generation and persistence.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/candidate"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/prompts"
	"github.com/spigell/talentscout/internal/questions"
	"github.com/spigell/talentscout/internal/utils"
	"github.com/spigell/talentscout/internal/validate"
	"go.uber.org/zap"
)

const (
	ExitMessage        = "Session ended by user. Thank you!"
	PersistenceWarning = "Warning: Could not persist simulated record locally."
	CompletionMessage  = "Screening complete! Thank you for completing the initial screening. Here's what happens next:\n" +
		"- Your information has been recorded (simulated)\n" +
		"- A recruiter will review your profile within 2-3 business days\n" +
		"- You'll receive an email with further instructions\n" +
		"Good luck with your application!"

	clarifyPrefix       = "I need to clarify that: "
	questionsPrefix     = "Technical questions based on your tech stack:\n"
	questionsNotePrefix = "(Fallback used)"
	replyNotePrefix     = "(Note: LLM fallback used)"

	logPreviewLen = 200
)

// Sink receives the record of every completed session.
type Sink interface {
	Append(ctx context.Context, rec candidate.Record) error
}

type noopSink struct{}

func (noopSink) Append(context.Context, candidate.Record) error { return nil }

// Engine computes state transitions. It holds no session data and is safe to
// share between sessions as long as its completer and sink are.
type Engine struct {
	completer ai.Completer
	sink      Sink
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Engine)

// WithClock overrides the transcript timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New builds an engine. A nil completer behaves as an unconfigured provider
// and a nil sink discards records.
func New(completer ai.Completer, sink Sink, log *zap.Logger, opts ...Option) *Engine {
	if completer == nil {
		completer = ai.Disabled{}
	}
	if sink == nil {
		sink = noopSink{}
	}
	if d, ok := completer.(ai.Described); ok {
		log = logger.WithCommonFields(log, d.Provider(), d.Model())
	}

	e := &Engine{
		completer: completer,
		sink:      sink,
		logger:    logger.WithFields(log),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start opens a session: it emits the greeting and the first step prompt and
// leaves the state waiting for the full name.
func (e *Engine) Start(ctx context.Context) State {
	st := State{
		SessionID: e.newID(),
		Step:      StepGreeting,
		Record:    candidate.Record{},
	}

	greeting := prompts.Greeting()
	text, err := e.completer.Complete(ctx, greeting.User, greeting.System)
	if err != nil {
		e.fallback(&st, err, replyNotePrefix)
		text = greeting.User
	}
	e.say(&st, text)

	e.advance(ctx, &st)
	return st
}

// Submit processes one answer for the current step and returns the next
// state. A rejected answer yields a *ValidationError together with the updated
// state, which still waits on the same step.
func (e *Engine) Submit(ctx context.Context, current State, input string) (State, error) {
	st := current.Clone()

	if st.Terminated {
		return st, ErrSessionTerminated
	}
	if !st.Step.Valid() {
		return st, fmt.Errorf("%w: %s", ErrUnknownStep, st.Step)
	}
	c, ok := collections[st.Step]
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrNoInputExpected, st.Step)
	}

	if st.Record == nil {
		st.Record = candidate.Record{}
	}

	log := e.sessionLogger(st)

	if validate.ExitIntent(input) {
		e.hear(&st, input)
		e.say(&st, ExitMessage)
		st.Step = StepEnded
		st.Terminated = true
		log.Info("session ended by candidate")
		return st, nil
	}

	if !c.valid(input) {
		e.hear(&st, input)
		e.say(&st, clarifyPrefix+c.message)
		log.Debug("answer rejected", zap.String("input", utils.TruncateForLog(input, logPreviewLen)))
		return st, &ValidationError{Step: st.Step, Message: c.message}
	}

	value := strings.TrimSpace(input)
	st.Record[string(c.field)] = value
	e.hear(&st, value)

	if c.acknowledge {
		e.acknowledge(ctx, &st, c.field, value)
	}

	e.advance(ctx, &st)
	return st, nil
}

// advance moves to the next step and runs every step that needs no input.
func (e *Engine) advance(ctx context.Context, st *State) {
	for {
		next, err := st.Step.Next()
		if err != nil {
			return
		}
		st.Step = next
		e.sessionLogger(*st).Debug("step entered")

		switch {
		case next.CollectsInput():
			e.say(st, next.Prompt())
			return
		case next == StepQuestions:
			e.generateQuestions(ctx, st)
		case next == StepCompleted:
			e.complete(ctx, st)
			return
		}
	}
}

func (e *Engine) acknowledge(ctx context.Context, st *State, field candidate.Field, value string) {
	p := prompts.Acknowledgment(field, value)
	text, err := e.completer.Complete(ctx, p.User, p.System)
	if err != nil {
		e.fallback(st, err, replyNotePrefix)
		text = prompts.LocalAcknowledgment(st.Record.Get(candidate.FieldFullName))
	}
	e.say(st, text)
}

func (e *Engine) generateQuestions(ctx context.Context, st *State) {
	if st.QuestionsEmitted {
		return
	}

	stack := st.Record.Get(candidate.FieldTechStack)
	if strings.TrimSpace(stack) == "" {
		e.sessionLogger(*st).Info("no tech stack collected, skipping questions")
		return
	}

	p := prompts.TechQuestions(stack)
	text, err := e.completer.Complete(ctx, p.User, p.System)
	if err != nil {
		e.fallback(st, err, questionsNotePrefix)
		text = questions.Generate(stack)
	}

	e.say(st, questionsPrefix+text)
	st.Questions = text
	st.QuestionsEmitted = true
}

func (e *Engine) complete(ctx context.Context, st *State) {
	e.say(st, CompletionMessage)

	// A finished session is saved even when the caller was interrupted while
	// the last step ran.
	log := e.sessionLogger(*st)
	if err := e.sink.Append(context.WithoutCancel(ctx), st.Record.Clone()); err != nil {
		log.Warn("persisting candidate record", zap.Error(err))
		st.Warnings = append(st.Warnings, PersistenceWarning)
		e.say(st, PersistenceWarning)
	} else {
		st.Persisted = true
	}

	st.Terminated = true
	log.Info("session completed", zap.Bool("persisted", st.Persisted))
}

// fallback notes a provider failure in the transcript. Missing credentials are
// expected and only logged at debug.
func (e *Engine) fallback(st *State, err error, prefix string) {
	kind, ok := ai.KindOf(err)
	if !ok {
		kind = ai.KindTransport
	}

	log := e.sessionLogger(*st).With(zap.Stringer("kind", kind), zap.Error(err))
	if kind == ai.KindAuth {
		log.Debug("provider unavailable, using local output")
	} else {
		log.Warn("provider call failed, using local output")
	}

	st.Fallbacks = append(st.Fallbacks, Fallback{Step: st.Step, Kind: kind})
	e.say(st, fmt.Sprintf("%s %s: %v", prefix, kind, err))
}

func (e *Engine) say(st *State, text string) {
	st.Transcript = append(st.Transcript, Entry{Speaker: SpeakerAssistant, Text: text, EmittedAt: e.now()})
}

func (e *Engine) hear(st *State, text string) {
	st.Transcript = append(st.Transcript, Entry{Speaker: SpeakerUser, Text: text, EmittedAt: e.now()})
}

func (e *Engine) sessionLogger(st State) *zap.Logger {
	return logger.WithFields(e.logger, logger.SessionFields(st.SessionID, st.Step.String())...)
}

// IsValidation reports whether err is a rejected answer.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
