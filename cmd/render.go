package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spigell/talentscout/internal/intake"
)

var (
	assistantColor = color.New(color.FgCyan)
	noteColor      = color.New(color.FgYellow)
	headerColor    = color.New(color.FgMagenta, color.Bold)
)

// transcriptPrinter prints transcript entries it has not printed yet. User
// entries are skipped since the interactive prompt already shows them.
type transcriptPrinter struct {
	out   io.Writer
	shown int
}

func (p *transcriptPrinter) print(st intake.State) {
	for _, entry := range st.Transcript[min(p.shown, len(st.Transcript)):] {
		p.printEntry(entry)
	}
	p.shown = len(st.Transcript)
}

func (p *transcriptPrinter) printEntry(entry intake.Entry) {
	switch {
	case entry.Speaker == intake.SpeakerUser:
	case isNote(entry.Text):
		noteColor.Fprintln(p.out, entry.Text)
	default:
		assistantColor.Fprintln(p.out, entry.Text)
	}
}

func isNote(text string) bool {
	return strings.HasPrefix(text, "(") ||
		strings.HasPrefix(text, "I need to clarify") ||
		strings.HasPrefix(text, "Warning:")
}

func printHeader(out io.Writer, title string) {
	headerColor.Fprintf(out, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func printSummary(out io.Writer, st intake.State) error {
	profile, err := st.Record.Profile()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, profile.Summary())
	return err
}
