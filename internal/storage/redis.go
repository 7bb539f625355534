package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spigell/talentscout/internal/candidate"
	"go.uber.org/zap"
)

// listClient is the part of *redis.Client the sink needs.
type listClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisSink pushes each record as a JSON document onto a list, so other
// services can consume completed sessions as a queue.
type RedisSink struct {
	client listClient
	closer func() error
	key    string
	now    clock
	logger *zap.Logger
}

// OpenRedis connects using cfg.RedisURL.
func OpenRedis(cfg Config, logger *zap.Logger) (*RedisSink, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, fmt.Errorf("storage.redis-url is required for the redis driver")
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	sink := newRedisSink(client, cfg.RedisKey, logger)
	sink.closer = client.Close
	return sink, nil
}

func newRedisSink(client listClient, key string, logger *zap.Logger) *RedisSink {
	if strings.TrimSpace(key) == "" {
		key = DefaultRedisKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSink{client: client, key: key, now: utcNow, logger: logger}
}

func (s *RedisSink) Append(ctx context.Context, rec candidate.Record) error {
	payload, err := json.Marshal(Anonymize(rec, s.now()))
	if err != nil {
		return &PersistenceError{Driver: DriverRedis, Err: err}
	}

	length, err := s.client.RPush(ctx, s.key, payload).Result()
	if err != nil {
		return &PersistenceError{Driver: DriverRedis, Err: err}
	}

	s.logger.Debug("candidate record stored", zap.String("key", s.key), zap.Int64("records", length))
	return nil
}

// Records reads the whole list.
func (s *RedisSink) Records(ctx context.Context) ([]candidate.Record, error) {
	items, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, &PersistenceError{Driver: DriverRedis, Err: err}
	}

	records := make([]candidate.Record, 0, len(items))
	for _, item := range items {
		var rec candidate.Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, &PersistenceError{Driver: DriverRedis, Err: fmt.Errorf("decoding list item: %w", err)}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *RedisSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
