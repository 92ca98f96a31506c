package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/gobiblia/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// Option customizes how the database is opened.
type Option func(*gorm.Config)

// WithLogLevel sets the gorm SQL log level. Defaults to logger.Warn.
func WithLogLevel(level logger.LogLevel) Option {
	return func(cfg *gorm.Config) {
		cfg.Logger = logger.Default.LogMode(level)
	}
}

// NewDatabase opens (creating if absent) the SQLite file at dbPath and
// ensures the readings schema exists.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// Single local writer.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entities.ReadingRecord{},
		&entities.ReadingStatistics{},
	)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
