// Package readings persists reading events and derives statistics from them.
//
// A reading is identified by (version, book, chapter). Recording the same
// triple again replaces the existing row's notes, verse, reading date and
// creation timestamp instead of adding a duplicate.
//
// # Usage
//
//	repo := readings.NewRepository(db.DB)
//	ok := repo.RecordReading(ctx, "nvi", "jo", 3, "")
//	history := repo.GetHistory(ctx, readings.DefaultHistoryLimit)
//	stats, err := repo.GetStats(ctx)
package readings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/gobiblia/internal/database"
	"github.com/mrlokans/gobiblia/internal/entities"
)

// DefaultHistoryLimit is used when the caller does not supply a limit.
const DefaultHistoryLimit = 10

// ErrUnavailable is returned by every operation of a repository whose
// database failed to initialize.
var ErrUnavailable = errors.New("reading store is unavailable")

// ErrNotFound indicates no reading exists for the requested triple.
var ErrNotFound = errors.New("reading not found")

// PersistenceError wraps a failure of the local store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Reading is the input of RecordReadingWith. Nil Verse clears any stored
// verse; nil Favorite keeps the stored flag.
type Reading struct {
	Version  string
	Book     string
	Chapter  int
	Verse    *int
	Notes    string
	Favorite *bool
}

// Repository handles all reading progress operations.
type Repository struct {
	db    *gorm.DB
	owner *database.Database
	now   func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces time.Now as the source of reading dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a readings repository. A nil db yields a degraded
// repository whose operations fail with ErrUnavailable.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open opens the database at dbPath and returns a repository that owns it.
// Initialization failures are logged and produce a degraded repository
// rather than an error, so startup can continue.
func Open(dbPath string, logLevel logger.LogLevel, opts ...Option) *Repository {
	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logLevel))
	if err != nil {
		log.Printf("[readings] ERROR: failed to initialize store at %s: %v", dbPath, err)
		return NewRepository(nil, opts...)
	}

	r := NewRepository(db.DB, opts...)
	r.owner = db
	return r
}

// Available reports whether the repository has a working database handle.
func (r *Repository) Available() bool {
	return r.db != nil
}

// Close releases the database if the repository opened it.
func (r *Repository) Close() error {
	if r.owner == nil {
		return nil
	}
	return r.owner.Close()
}

// Ping checks connectivity to the underlying database.
func (r *Repository) Ping(ctx context.Context) error {
	if r.owner != nil {
		return r.owner.Ping(ctx)
	}
	if r.db == nil {
		return ErrUnavailable
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// RecordReading stores a reading of (version, book, chapter) dated today.
// Returns false on any persistence failure; the failure is logged.
func (r *Repository) RecordReading(ctx context.Context, version, book string, chapter int, notes string) bool {
	err := r.RecordReadingWith(ctx, Reading{
		Version: version,
		Book:    book,
		Chapter: chapter,
		Notes:   notes,
	})
	return err == nil
}

// RecordReadingWith upserts a reading keyed by (version, book, chapter).
func (r *Repository) RecordReadingWith(ctx context.Context, reading Reading) error {
	if err := r.record(ctx, reading); err != nil {
		log.Printf("[readings] failed to record %s %s %d: %v", reading.Version, reading.Book, reading.Chapter, err)
		return &PersistenceError{Op: "record reading", Err: err}
	}
	return nil
}

func (r *Repository) record(ctx context.Context, reading Reading) error {
	if r.db == nil {
		return ErrUnavailable
	}

	now := r.now()
	record := entities.ReadingRecord{
		Version:   reading.Version,
		Book:      reading.Book,
		Chapter:   reading.Chapter,
		Verse:     reading.Verse,
		ReadOn:    now.Format(entities.ReadOnLayout),
		Notes:     reading.Notes,
		CreatedAt: now,
	}

	updates := []string{"verse", "notes", "read_on", "created_at"}
	if reading.Favorite != nil {
		record.Favorite = *reading.Favorite
		updates = append(updates, "favorite")
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "version"}, {Name: "book"}, {Name: "chapter"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&record).Error
}

// GetHistory returns up to limit readings, most recent activity first.
// Returns an empty slice when limit <= 0 or on failure.
func (r *Repository) GetHistory(ctx context.Context, limit int) []entities.ReadingRecord {
	return r.list(ctx, "history", limit, false)
}

// GetFavorites returns up to limit favorite readings, most recent first.
func (r *Repository) GetFavorites(ctx context.Context, limit int) []entities.ReadingRecord {
	return r.list(ctx, "favorites", limit, true)
}

func (r *Repository) list(ctx context.Context, op string, limit int, onlyFavorites bool) []entities.ReadingRecord {
	records := []entities.ReadingRecord{}
	if limit <= 0 {
		return records
	}
	if r.db == nil {
		log.Printf("[readings] %s: %v", op, ErrUnavailable)
		return records
	}

	query := r.db.WithContext(ctx).Model(&entities.ReadingRecord{})
	if onlyFavorites {
		query = query.Where("favorite = ?", true)
	}

	err := query.
		Order("read_on DESC, created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		log.Printf("[readings] %s: %v", op, err)
		return []entities.ReadingRecord{}
	}
	return records
}

// SetFavorite updates the favorite flag of an existing reading.
func (r *Repository) SetFavorite(ctx context.Context, version, book string, chapter int, favorite bool) error {
	if r.db == nil {
		return &PersistenceError{Op: "set favorite", Err: ErrUnavailable}
	}

	result := r.db.WithContext(ctx).Model(&entities.ReadingRecord{}).
		Where("version = ? AND book = ? AND chapter = ?", version, book, chapter).
		Update("favorite", favorite)
	if result.Error != nil {
		return &PersistenceError{Op: "set favorite", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetStats computes the statistics snapshot from the current readings.
// On failure it returns a zero snapshot and a *PersistenceError.
func (r *Repository) GetStats(ctx context.Context) (entities.StatsSnapshot, error) {
	var stats entities.StatsSnapshot
	if r.db == nil {
		return stats, &PersistenceError{Op: "get stats", Err: ErrUnavailable}
	}

	readings := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entities.ReadingRecord{})
	}

	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM (SELECT DISTINCT book, chapter FROM readings)").
		Scan(&stats.ChaptersRead).Error
	if err == nil {
		err = readings().Distinct("read_on").Count(&stats.DaysReading).Error
	}
	if err == nil {
		err = readings().Distinct("book").Count(&stats.BooksStarted).Error
	}
	if err == nil {
		err = readings().Count(&stats.TotalReadings).Error
	}
	if err != nil {
		log.Printf("[readings] get stats: %v", err)
		return entities.StatsSnapshot{}, &PersistenceError{Op: "get stats", Err: err}
	}

	return stats, nil
}
