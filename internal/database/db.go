package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coinnecta/internal/config"
	"coinnecta/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options selects the store backend.
type Options struct {
	Driver string
	Path   string // sqlite file
	DSN    string // postgres
}

// OptionsFromConfig maps the runtime config onto connection options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{Driver: cfg.StoreDriver, Path: cfg.DatabasePath, DSN: cfg.DatabaseDSN}
}

// NewConnection opens the store and migrates its tables.
func NewConnection(opts Options, log logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	case config.DriverSQLite, "":
		if dir := filepath.Dir(opts.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(opts.Path)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.StateBlob{}, &model.AuditLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return db, nil
}
