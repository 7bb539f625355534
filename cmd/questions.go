package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/prompts"
	"github.com/spigell/talentscout/internal/questions"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print interview questions for a tech stack",
	Example: `  talentscout questions --stack "Python, Django, PostgreSQL"
  talentscout questions --stack "Go; Redis" --local`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stack, _ := cmd.Flags().GetString("stack")
		local, _ := cmd.Flags().GetBool("local")

		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("creating a logger: %w", err)
		}
		defer log.Sync()

		var completer ai.Completer = ai.Disabled{Reason: "local generation requested"}
		if !local {
			config, err := getConfig()
			if err != nil {
				return err
			}
			if completer, err = newCompleter(cmd.Context(), config.AI, log); err != nil {
				return err
			}
		}

		text, note := generateQuestions(cmd.Context(), completer, stack, log)
		if note != "" {
			noteColor.Fprintln(cmd.ErrOrStderr(), note)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().StringP("stack", "s", "", "comma, semicolon or newline separated technologies")
	questionsCmd.Flags().Bool("local", false, "never call the model provider")
	questionsCmd.MarkFlagRequired("stack")
}

// generateQuestions asks the provider and falls back to the local generator.
// The returned note is empty when the provider answered.
func generateQuestions(ctx context.Context, completer ai.Completer, stack string, log *zap.Logger) (string, string) {
	if len(questions.Split(stack)) == 0 {
		return questions.NoTechStackMessage, ""
	}

	p := prompts.TechQuestions(stack)
	text, err := completer.Complete(ctx, p.User, p.System)
	if err == nil {
		return text, ""
	}

	kind, ok := ai.KindOf(err)
	if !ok {
		kind = ai.KindTransport
	}
	if !errors.Is(err, context.Canceled) && kind != ai.KindAuth {
		log.Warn("provider call failed, using local output", zap.Stringer("kind", kind), zap.Error(err))
	}
	return questions.Generate(stack), fmt.Sprintf("(Fallback used) %s: %v", kind, err)
}
