// Package storage persists anonymized candidate records. Every sink applies
// Anonymize before writing and reports failures as *PersistenceError.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spigell/talentscout/internal/candidate"
	"go.uber.org/zap"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverNone     = "none"

	DefaultPath     = "candidates_simulated.json"
	DefaultRedisKey = "talentscout:candidates"
)

// PersistenceError wraps any failure to store a record.
type PersistenceError struct {
	Driver string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist candidate (%s): %v", e.Driver, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Config selects and configures a sink.
type Config struct {
	Driver string `mapstructure:"driver" validate:"omitempty,oneof=file sqlite postgres redis none"`
	// Path is the JSON file for the file driver and the database file for sqlite.
	Path string `mapstructure:"path"`
	// DSN is the postgres connection string.
	DSN string `mapstructure:"dsn" json:"-"`
	// RedisURL is parsed with redis.ParseURL.
	RedisURL string `mapstructure:"redis-url" json:"-"`
	RedisKey string `mapstructure:"redis-key"`
}

// Sink is what every storage backend implements.
type Sink interface {
	Append(ctx context.Context, rec candidate.Record) error
	Close() error
}

// Lister is implemented by sinks that can read back what they stored.
type Lister interface {
	Records(ctx context.Context) ([]candidate.Record, error)
}

// Open builds the sink named by cfg.Driver. An empty driver means file.
func Open(cfg Config, logger *zap.Logger) (Sink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverFile
	}
	logger = logger.With(zap.String("storage_driver", driver))

	switch driver {
	case DriverFile:
		return NewFileSink(cfg.Path, logger), nil
	case DriverSQLite, DriverPostgres:
		sink, err := OpenDB(driver, cfg, logger)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case DriverRedis:
		sink, err := OpenRedis(cfg, logger)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case DriverNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// Discard drops every record.
type Discard struct{}

func (Discard) Append(context.Context, candidate.Record) error { return nil }

func (Discard) Close() error { return nil }

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
