package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spigell/talentscout/internal/candidate"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fixedClock() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestFileSinkAppendsToArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	sink := NewFileSink(path, nil)
	sink.now = fixedClock

	ctx := context.Background()
	require.NoError(t, sink.Append(ctx, candidate.Record{"fullname": "Jane", "phone": "5551234567"}))
	require.NoError(t, sink.Append(ctx, candidate.Record{"fullname": "John", "email": "john@example.com"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored []map[string]string
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Len(t, stored, 2)
	require.Equal(t, "555***567", stored[0]["phone"])
	require.Equal(t, "jo***@example.com", stored[1]["email"])
	require.Equal(t, "2024-01-02T03:04:05Z", stored[1]["timestamp"])

	records, err := sink.Records(ctx)
	require.NoError(t, err)
	require.Equal(t, "John", records[1].Get(candidate.FieldFullName))
}

func TestFileSinkRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	core, logs := observer.New(zapcore.WarnLevel)
	sink := NewFileSink(path, zap.New(core))

	require.NoError(t, sink.Append(context.Background(), candidate.Record{"fullname": "Jane"}))

	records, err := sink.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 1, logs.FilterMessage("store file is not a JSON array, starting over").Len())
	require.Equal(t, 1, logs.FilterMessage("corrupt store file moved aside").Len())

	kept, err := os.ReadFile(sink.CorruptPath())
	require.NoError(t, err)
	require.Equal(t, "{not json", string(kept))
	require.Equal(t, path+".corrupt", sink.CorruptPath())
}

func TestFileSinkRecordsLeavesCorruptFileInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0o644))
	sink := NewFileSink(path, nil)

	records, err := sink.Records(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = os.Stat(sink.CorruptPath())
	require.ErrorIs(t, err, os.ErrNotExist)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[{", string(data))
}

func TestFileSinkSerializesWriters(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "candidates.json"), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, sink.Append(context.Background(), candidate.Record{"fullname": "Jane"}))
		}()
	}
	wg.Wait()

	records, err := sink.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 20)
}

func TestFileSinkReportsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be opened for writing.
	sink := NewFileSink(dir, nil)

	err := sink.Append(context.Background(), candidate.Record{"fullname": "Jane"})

	var persistErr *PersistenceError
	require.True(t, errors.As(err, &persistErr), "got %v", err)
	require.Equal(t, DriverFile, persistErr.Driver)
}

func TestNewFileSinkDefaultPath(t *testing.T) {
	require.Equal(t, DefaultPath, NewFileSink(" ", nil).Path())
}
