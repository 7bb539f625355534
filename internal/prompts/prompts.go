// Package prompts builds the instructions sent to the remote model, one builder
// per interaction. Every builder returns the user-turn text together with the
// system message for that interaction.
package prompts

import (
	"embed"
	"fmt"
	"strings"

	"github.com/spigell/talentscout/internal/candidate"
	"github.com/spigell/talentscout/internal/utils"
)

//go:embed templates/*.md
var templates embed.FS

const (
	GreetingSystem       = "You are TalentScout's friendly AI Hiring Assistant. Reply in plain text, at most 3 sentences."
	TechQuestionsSystem  = "You are an expert technical recruiter. Generate 3-5 relevant technical interview questions based on candidate's tech stack. Format as numbered list."
	AcknowledgmentSystem = "You are a friendly AI hiring assistant. Provide brief encouragement (1-2 sentences)."
	FallbackSystem       = "You are a friendly AI hiring assistant keeping a screening conversation on track. Reply in at most 2 sentences."
	AnalysisSystem       = "You are a senior technical interviewer. Assess answers fairly and concisely. Use a numbered list."
	SummarySystem        = "You are an assistant writing candidate summaries for a hiring team. Be factual and concise (4-6 sentences)."
)

// Prompt is a rendered interaction: the user turn plus its system message.
type Prompt struct {
	User   string
	System string
}

// Greeting builds the opening message request. Its user text doubles as the
// canned greeting when no model is reachable.
func Greeting() Prompt {
	return Prompt{User: render("greeting.md"), System: GreetingSystem}
}

// TechQuestions asks for 3-5 numbered interview questions for the tech stack.
func TechQuestions(techStack string) Prompt {
	return Prompt{
		User:   render("tech_questions.md", "{{TECH_STACK}}", utils.SingleLine(techStack)),
		System: TechQuestionsSystem,
	}
}

// Acknowledgment asks for a short encouraging reply to a committed answer.
// Only fullname, experience and position have dedicated wording.
func Acknowledgment(field candidate.Field, value string) Prompt {
	value = utils.SingleLine(value)

	var user string
	switch field {
	case candidate.FieldFullName:
		user = fmt.Sprintf("Acknowledge the candidate's name '%s' and provide a brief encouraging transition to the next question.", value)
	case candidate.FieldExperience:
		user = fmt.Sprintf("The candidate has %s years of experience. Provide a brief, positive acknowledgment before moving forward.", value)
	case candidate.FieldPosition:
		user = fmt.Sprintf("The candidate is applying for: %s. Acknowledge this and show enthusiasm about their interest.", value)
	default:
		user = fmt.Sprintf("Acknowledge the user's input: %s", value)
	}

	return Prompt{User: user, System: AcknowledgmentSystem}
}

// Fallback asks the model to steer an off-track candidate back to the current step.
func Fallback(userInput, step string) Prompt {
	return Prompt{
		User: render("fallback.md",
			"{{USER_INPUT}}", utils.SingleLine(userInput),
			"{{STEP}}", step,
		),
		System: FallbackSystem,
	}
}

// Analysis asks for an assessment of an answer to a technical question.
func Analysis(question, answer, techStack string) Prompt {
	return Prompt{
		User: render("analysis.md",
			"{{QUESTION}}", strings.TrimSpace(question),
			"{{ANSWER}}", strings.TrimSpace(answer),
			"{{TECH_STACK}}", utils.SingleLine(techStack),
		),
		System: AnalysisSystem,
	}
}

// Summary asks for a hiring-team summary of the candidate.
func Summary(p candidate.Profile) Prompt {
	return Prompt{
		User: render("summary.md",
			"{{NAME}}", orNotProvided(p.FullName),
			"{{EMAIL}}", orNotProvided(p.Email),
			"{{PHONE}}", orNotProvided(p.Phone),
			"{{EXPERIENCE}}", orNotProvided(p.Experience),
			"{{POSITION}}", orNotProvided(p.Position),
			"{{LOCATION}}", orNotProvided(p.Location),
			"{{TECH_STACK}}", orNotProvided(p.TechStack),
		),
		System: SummarySystem,
	}
}

// LocalAcknowledgment is the canned reply used when the model is unavailable.
func LocalAcknowledgment(name string) string {
	if name = utils.SingleLine(name); name == "" {
		name = "candidate"
	}
	return fmt.Sprintf("Thanks, %s, noted.", name)
}

func render(name string, oldnew ...string) string {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		// Templates are embedded at build time; a miss is a programming error.
		panic(fmt.Sprintf("prompt template %s: %v", name, err))
	}
	return strings.TrimSpace(strings.NewReplacer(oldnew...).Replace(string(data)))
}

func orNotProvided(s string) string {
	if s = utils.SingleLine(s); s == "" {
		return "Not provided"
	}
	return s
}
