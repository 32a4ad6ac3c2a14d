package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/san-kum/reentry/internal/dynamo"
)

// runRecord is one row of the runs table. Metadata and trace are kept as
// JSON columns; the indexed columns serve listing.
type runRecord struct {
	ID          string    `gorm:"primaryKey;size:96"`
	CreatedAt   time.Time `gorm:"index"`
	Body        string    `gorm:"size:32;index"`
	Scenario    string    `gorm:"size:127"`
	Integrator  string    `gorm:"size:32"`
	Success     bool
	Termination string `gorm:"size:32"`
	Meta        datatypes.JSON
	Trace       datatypes.JSON
}

func (runRecord) TableName() string { return "runs" }

// SQLite stores runs in a single SQLite file, or in memory when the path
// is empty.
type SQLite struct {
	path string
	db   *gorm.DB
}

func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

func (s *SQLite) Init() error {
	dsn := s.path
	if dsn == "" {
		dsn = "file::memory:"
	} else if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
		return err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	// every pooled connection to :memory: would be a separate database
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA temp_store = MEMORY;",
	}
	if s.path == "" {
		pragmas = pragmas[1:]
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	if err := db.AutoMigrate(&runRecord{}); err != nil {
		return fmt.Errorf("failed to migrate runs table: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLite) Save(meta *RunMetadata, trace []dynamo.Sample) (string, error) {
	if meta.ID == "" {
		meta.ID = newRunID(meta.Body, meta.Timestamp)
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	if trace == nil {
		trace = []dynamo.Sample{}
	}
	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return "", err
	}

	rec := runRecord{
		ID:          meta.ID,
		CreatedAt:   meta.Timestamp,
		Body:        meta.Body,
		Scenario:    meta.Scenario,
		Integrator:  meta.Integrator,
		Success:     meta.Success,
		Termination: meta.Termination,
		Meta:        datatypes.JSON(metaJSON),
		Trace:       datatypes.JSON(traceJSON),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return "", fmt.Errorf("failed to save run %s: %w", meta.ID, err)
	}
	return meta.ID, nil
}

func (s *SQLite) List() ([]RunMetadata, error) {
	var recs []runRecord
	if err := s.db.Select("id", "meta").Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(recs))
	for _, rec := range recs {
		var meta RunMetadata
		if err := json.Unmarshal(rec.Meta, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *SQLite) find(id string, column string) (*runRecord, error) {
	var rec runRecord
	err := s.db.Select("id", column).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SQLite) Load(id string) (*RunMetadata, error) {
	rec, err := s.find(id, "meta")
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(rec.Meta, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *SQLite) LoadTrace(id string) ([]dynamo.Sample, error) {
	rec, err := s.find(id, "trace")
	if err != nil {
		return nil, err
	}
	var trace []dynamo.Sample
	if err := json.Unmarshal(rec.Trace, &trace); err != nil {
		return nil, err
	}
	return trace, nil
}
