package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spigell/talentscout/internal/intake"
	"go.uber.org/zap"
)

const (
	PromptShowSummary = "Show summary"
	PromptDumpJSON    = "Dump transcript to file (json)"
	PromptDumpYAML    = "Dump transcript to file (yaml)"
	PromptExit        = "Exit"

	// interruptInput stands in for Ctrl-C or EOF during a step, and for an
	// interrupt caught while the model was answering. It carries an exit
	// keyword so the engine ends the session.
	interruptInput = "cancel"

	// The step prompt is already part of the printed transcript.
	answerLabel = "Your answer"

	genericFailure = "Something went wrong. The session was closed; please start again."
)

var (
	errExit       = errors.New("exit requested")
	errUnexpected = errors.New("unexpected failure")
)

var sessionMenu = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowSummary, PromptDumpJSON, PromptDumpYAML, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive screening session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("no-menu", false, "exit right after the session instead of showing the action menu")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) (err error) {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	out := cmd.OutOrStdout()

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", zap.Any("panic", r))
			fmt.Fprintln(cmd.ErrOrStderr(), genericFailure)
			err = errUnexpected
		}
	}()

	config, err := getConfig()
	if err != nil {
		return err
	}

	log.Info("starting talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	completer, err := newCompleter(ctx, config.AI, log)
	if err != nil {
		return err
	}

	sink, err := newSink(config.Storage, log)
	if err != nil {
		return err
	}
	defer sink.Close()

	engine := intake.New(completer, sink, log)
	st := converse(ctx, engine, out, log, readStdin)

	if st.Ended() || cmd.Flag("no-menu").Value.String() == "true" {
		return nil
	}

	for {
		_, action, err := sessionMenu.Run()
		if err != nil {
			// Ctrl-C in the menu is a normal way out.
			return nil
		}

		if err := handleAction(action, st, out, log); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

// answerFunc asks the candidate for the answer to a step prompt.
type answerFunc func(label string) (string, error)

func readStdin(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	return prompt.Run()
}

// readAnswer asks for the next answer unless the session context is already
// done, which happens when an interrupt arrives during a provider call.
func readAnswer(ctx context.Context, ask answerFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return ask(answerLabel)
}

// converse runs a session to its end. Interrupts and EOF are answered as exit
// intent so the session always terminates through the engine.
func converse(ctx context.Context, engine *intake.Engine, out io.Writer, log *zap.Logger, ask answerFunc) intake.State {
	printer := &transcriptPrinter{out: out}

	printHeader(out, "TalentScout Hiring Assistant")
	st := engine.Start(ctx)
	printer.print(st)

	for !st.Terminated {
		answer, err := readAnswer(ctx, ask)
		if err != nil {
			if !errors.Is(err, promptui.ErrInterrupt) && !errors.Is(err, promptui.ErrEOF) && !errors.Is(err, io.EOF) && ctx.Err() == nil {
				log.Warn("reading answer", zap.Error(err))
			}
			answer = interruptInput
		}

		prev := st
		st, err = engine.Submit(ctx, st, answer)
		if err != nil && !intake.IsValidation(err) {
			log.Error("submitting answer", zap.Error(err))
			return st
		}

		if st.QuestionsEmitted && !prev.QuestionsEmitted {
			if err := printSummary(out, st); err != nil {
				log.Warn("rendering summary", zap.Error(err))
			}
		}
		printer.print(st)
	}

	return st
}

func handleAction(action string, st intake.State, out io.Writer, log *zap.Logger) error {
	switch action {
	case PromptShowSummary:
		return printSummary(out, st)
	case PromptDumpJSON, PromptDumpYAML:
		format := intake.FormatJSON
		if action == PromptDumpYAML {
			format = intake.FormatYAML
		}
		filename, err := intake.DumpTranscript(st, format, "")
		if err != nil {
			return fmt.Errorf("dump transcript to file: %w", err)
		}
		log.Info("dumping transcript to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from menu"), zap.Bool("persisted", st.Persisted))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
