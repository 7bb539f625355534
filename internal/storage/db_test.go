package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spigell/talentscout/internal/candidate"
	"github.com/stretchr/testify/require"
)

func TestDBSinkSQLite(t *testing.T) {
	sink, err := OpenDB(DriverSQLite, Config{Path: filepath.Join(t.TempDir(), "candidates.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	sink.now = fixedClock

	ctx := context.Background()
	require.NoError(t, sink.Append(ctx, candidate.Record{
		"fullname": "Jane Doe",
		"email":    "jane.doe@example.com",
		"phone":    "5551234567",
	}))

	records, err := sink.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Jane Doe", records[0].Get(candidate.FieldFullName))
	require.Equal(t, "ja***@example.com", records[0].Get(candidate.FieldEmail))
	require.Equal(t, "555***567", records[0].Get(candidate.FieldPhone))
	require.Equal(t, "2024-01-02T03:04:05Z", records[0][candidate.FieldTimestamp])
}

func TestOpenDBRequiresDSNForPostgres(t *testing.T) {
	_, err := OpenDB(DriverPostgres, Config{}, nil)
	require.ErrorContains(t, err, "storage.dsn")
}

func TestOpenSelectsDriver(t *testing.T) {
	sink, err := Open(Config{Driver: "none"}, nil)
	require.NoError(t, err)
	require.IsType(t, Discard{}, sink)

	sink, err = Open(Config{Path: filepath.Join(t.TempDir(), "c.json")}, nil)
	require.NoError(t, err)
	require.IsType(t, &FileSink{}, sink)

	_, err = Open(Config{Driver: "mongo"}, nil)
	require.ErrorContains(t, err, "unsupported storage driver")

	_, err = Open(Config{Driver: DriverRedis}, nil)
	require.ErrorContains(t, err, "redis-url")
}
