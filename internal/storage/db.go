package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/talentscout/internal/candidate"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const defaultSQLitePath = "candidates.db"

// CandidateRow is one stored record. Fields holds the anonymized mapping.
type CandidateRow struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Fields    datatypes.JSONMap `gorm:"not null"`
	CreatedAt time.Time         `gorm:"not null;index"`
}

func (CandidateRow) TableName() string { return "candidates" }

// DBSink appends each record as a row. Unlike the file sink, concurrent
// writers never lose records.
type DBSink struct {
	db     *gorm.DB
	driver string
	now    clock
	logger *zap.Logger
}

// OpenDB connects with the sqlite or postgres dialector and migrates the table.
func OpenDB(driver string, cfg Config, logger *zap.Logger) (*DBSink, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" || strings.HasSuffix(path, ".json") {
			path = defaultSQLitePath
		}
		dialector = sqlite.Open(path)
	case DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return nil, fmt.Errorf("storage.dsn is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	return NewDBSink(db, driver, logger)
}

// NewDBSink wraps an existing connection.
func NewDBSink(db *gorm.DB, driver string, logger *zap.Logger) (*DBSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&CandidateRow{}); err != nil {
		return nil, fmt.Errorf("migrating candidates table: %w", err)
	}
	return &DBSink{db: db, driver: driver, now: utcNow, logger: logger}, nil
}

func (s *DBSink) Append(ctx context.Context, rec candidate.Record) error {
	anon := Anonymize(rec, s.now())

	fields := make(datatypes.JSONMap, len(anon))
	for k, v := range anon {
		fields[k] = v
	}

	row := CandidateRow{ID: uuid.New(), Fields: fields, CreatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return &PersistenceError{Driver: s.driver, Err: err}
	}

	s.logger.Debug("candidate record stored", zap.String("row_id", row.ID.String()))
	return nil
}

// Records returns stored records oldest first.
func (s *DBSink) Records(ctx context.Context) ([]candidate.Record, error) {
	var rows []CandidateRow
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, &PersistenceError{Driver: s.driver, Err: err}
	}

	records := make([]candidate.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(candidate.Record, len(row.Fields))
		for k, v := range row.Fields {
			rec[k] = fmt.Sprint(v)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *DBSink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
