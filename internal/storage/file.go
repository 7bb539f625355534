package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/spigell/talentscout/internal/candidate"
	"go.uber.org/zap"
)

// FileSink keeps every record in one JSON array and rewrites the whole file
// on each append. Writers in one process are serialized; separate processes
// sharing the file may lose updates (last writer wins).
type FileSink struct {
	path   string
	now    clock
	logger *zap.Logger

	mu sync.Mutex
}

func NewFileSink(path string, logger *zap.Logger) *FileSink {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{path: path, now: utcNow, logger: logger}
}

func (s *FileSink) Path() string { return s.path }

// CorruptPath is where an unparsable store file is kept before it is rewritten.
func (s *FileSink) CorruptPath() string { return s.path + ".corrupt" }

func (s *FileSink) Append(ctx context.Context, rec candidate.Record) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Driver: DriverFile, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, corrupt, err := s.read()
	if err != nil {
		return &PersistenceError{Driver: DriverFile, Err: err}
	}
	if corrupt {
		if err := s.moveAside(); err != nil {
			return &PersistenceError{Driver: DriverFile, Err: err}
		}
	}

	records = append(records, Anonymize(rec, s.now()))

	if err := s.write(records); err != nil {
		return &PersistenceError{Driver: DriverFile, Err: err}
	}

	s.logger.Debug("candidate record stored", zap.String("path", s.path), zap.Int("records", len(records)))
	return nil
}

// Records returns everything stored so far.
func (s *FileSink) Records(ctx context.Context) ([]candidate.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Driver: DriverFile, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.read()
	if err != nil {
		return nil, &PersistenceError{Driver: DriverFile, Err: err}
	}
	return records, nil
}

func (s *FileSink) Close() error { return nil }

// read treats a missing, empty or unparsable file as an empty collection.
// corrupt reports the unparsable case.
func (s *FileSink) read() (records []candidate.Record, corrupt bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []candidate.Record{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []candidate.Record{}, false, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("store file is not a JSON array, starting over", zap.String("path", s.path), zap.Error(err))
		return []candidate.Record{}, true, nil
	}
	return records, false, nil
}

// moveAside keeps an unparsable store next to the fresh one so it can be
// recovered by hand. An older copy is replaced.
func (s *FileSink) moveAside() error {
	backup := s.CorruptPath()
	if err := os.Rename(s.path, backup); err != nil {
		return fmt.Errorf("moving corrupt store to %s: %w", backup, err)
	}
	s.logger.Warn("corrupt store file moved aside", zap.String("path", s.path), zap.String("backup", backup))
	return nil
}

func (s *FileSink) write(records []candidate.Record) error {
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
