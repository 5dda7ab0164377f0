// Package journal records every placement run in a SQL database.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OCAP2/playerstart/internal/config"
	"github.com/OCAP2/playerstart/internal/geo"
	"github.com/OCAP2/playerstart/internal/placement"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager owns the journal database connection.
type Manager struct {
	DB     *gorm.DB
	Driver string
	Logger zerolog.Logger
}

// Verify Manager implements placement.Recorder
var _ placement.Recorder = (*Manager)(nil)

// Open connects to the configured journal database and migrates it.
// A failing Postgres connection falls back to SQLite.
func Open(cfg config.JournalConfig, log zerolog.Logger) (*Manager, error) {
	m := &Manager{Logger: log}

	var err error
	switch cfg.Driver {
	case "postgres":
		m.DB, err = openPostgres(config.PostgresDSN())
		if err == nil {
			m.Driver = "postgres"
			break
		}
		log.Error().Err(err).Msg("Failed to connect to Postgres journal, trying SQLite")
		fallthrough
	case "sqlite", "":
		m.DB, err = OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite journal: %w", err)
		}
		m.Driver = "sqlite"
	default:
		return nil, fmt.Errorf("unknown journal driver: %s", cfg.Driver)
	}

	if err := m.DB.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	log.Debug().Str("driver", m.Driver).Msg("Journal ready")
	return m, nil
}

func openPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to validate connection: %w", err)
	}
	return db, nil
}

// OpenSQLite opens the SQLite journal at path, or an in-memory database if
// path is empty.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := "file::memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal dir: %w", err)
		}
		dsn = path
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}

// Record stores a finished run with its spawn attempts.
func (m *Manager) Record(ctx context.Context, r placement.Report) error {
	cfgJSON, err := json.Marshal(r.Config)
	if err != nil {
		return fmt.Errorf("failed to encode run config: %w", err)
	}

	run := Run{
		StartedAt:   r.StartedAt,
		DurationMs:  r.Duration.Milliseconds(),
		Status:      string(r.Status),
		Scene:       string(r.Scene),
		MarkerClass: r.Class,
		Existing:    r.Existing,
		Override:    r.Override,
		Created:     r.Created(),
		Config:      datatypes.JSON(cfgJSON),
	}
	if r.Err != nil {
		run.Error = r.Err.Error()
	}

	for _, a := range r.Attempts {
		loc, err := geo.PointFromCoordinate(a.Location)
		if err != nil {
			return fmt.Errorf("spawn %d location: %w", a.Index, err)
		}
		s := Spawn{
			Index:    a.Index,
			Label:    a.Label,
			Entity:   string(a.Entity),
			Location: loc,
			Created:  a.Created(),
		}
		if a.Err != nil {
			s.Error = a.Err.Error()
		}
		if a.LabelErr != nil {
			s.LabelError = a.LabelErr.Error()
		}
		run.Spawns = append(run.Spawns, s)
	}

	if err := m.DB.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to write run: %w", err)
	}

	m.Logger.Debug().Uint("runId", run.ID).Str("status", run.Status).Msg("Run journaled")
	return nil
}

// Recent returns the latest runs, newest first, with their spawns.
func (m *Manager) Recent(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := m.DB.WithContext(ctx).
		Preload("Spawns", func(db *gorm.DB) *gorm.DB { return db.Order("\"index\" ASC") }).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying connection.
func (m *Manager) Close() error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
