package intake

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type transcriptDump struct {
	SessionID  string  `json:"session_id" yaml:"session_id"`
	Step       string  `json:"step" yaml:"step"`
	Terminated bool    `json:"terminated" yaml:"terminated"`
	Transcript []Entry `json:"transcript" yaml:"transcript"`
}

// DumpTranscript writes the transcript to a new temporary file in dir (the
// system temp dir when empty) and returns its name.
func DumpTranscript(st State, format, dir string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatJSON && format != FormatYAML {
		return "", fmt.Errorf("unsupported transcript format: %s", format)
	}

	file, err := os.CreateTemp(dir, "transcript_*."+format)
	if err != nil {
		return "", err
	}
	defer file.Close()

	dump := transcriptDump{
		SessionID:  st.SessionID,
		Step:       st.Step.String(),
		Terminated: st.Terminated,
		Transcript: st.Transcript,
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(file)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
	default:
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			return "", err
		}
	}

	return file.Name(), nil
}
