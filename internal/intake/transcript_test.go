package intake

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDumpTranscript(t *testing.T) {
	e := newTestEngine(nil, nil)
	st := submitAll(t, e, e.Start(context.Background()), "Jane Doe")
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		name, err := DumpTranscript(st, "JSON", dir)
		require.NoError(t, err)
		require.Equal(t, dir, filepath.Dir(name))
		require.True(t, strings.HasSuffix(name, ".json"))

		data, err := os.ReadFile(name)
		require.NoError(t, err)

		var dump transcriptDump
		require.NoError(t, json.Unmarshal(data, &dump))
		require.Equal(t, "session-1", dump.SessionID)
		require.Equal(t, "email", dump.Step)
		require.Equal(t, st.Transcript, dump.Transcript)
	})

	t.Run("yaml", func(t *testing.T) {
		name, err := DumpTranscript(st, "yaml", dir)
		require.NoError(t, err)

		data, err := os.ReadFile(name)
		require.NoError(t, err)

		var dump transcriptDump
		require.NoError(t, yaml.Unmarshal(data, &dump))
		require.Len(t, dump.Transcript, len(st.Transcript))
		require.Equal(t, SpeakerUser, dump.Transcript[3].Speaker)
		require.Equal(t, "Jane Doe", dump.Transcript[3].Text)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := DumpTranscript(st, "xml", dir)
		require.ErrorContains(t, err, "unsupported transcript format")
	})
}
