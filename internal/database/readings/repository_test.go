package readings

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/gobiblia/internal/entities"
)

// testClock hands out increasing timestamps; setDay jumps to a day in March 2024.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func (c *testClock) setDay(day int) {
	c.current = time.Date(2024, 3, day, 8, 0, 0, 0, time.UTC)
}

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, *testClock) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "readings.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ReadingRecord{}, &entities.ReadingStatistics{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	clock := newTestClock()
	return db, NewRepository(db, WithClock(clock.now)), clock
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestRepository_RecordReading(t *testing.T) {
	db, repo, _ := setupTestDB(t)
	ctx := context.Background()

	ok := repo.RecordReading(ctx, "nvi", "jo", 3, "Nicodemos")
	require.True(t, ok)

	var records []entities.ReadingRecord
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "nvi", records[0].Version)
	assert.Equal(t, "jo", records[0].Book)
	assert.Equal(t, 3, records[0].Chapter)
	assert.Equal(t, "Nicodemos", records[0].Notes)
	assert.Equal(t, "2024-03-01", records[0].ReadOn)
	assert.Nil(t, records[0].Verse)
	assert.False(t, records[0].Favorite)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestRepository_RecordReading_ReplacesSameTriple(t *testing.T) {
	db, repo, clock := setupTestDB(t)
	ctx := context.Background()

	require.True(t, repo.RecordReading(ctx, "nvi", "gn", 1, "first"))
	clock.setDay(5)
	require.True(t, repo.RecordReading(ctx, "nvi", "gn", 1, "second"))

	var count int64
	require.NoError(t, db.Model(&entities.ReadingRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	history := repo.GetHistory(ctx, 1)
	require.Len(t, history, 1)
	assert.Equal(t, "nvi", history[0].Version)
	assert.Equal(t, "gn", history[0].Book)
	assert.Equal(t, 1, history[0].Chapter)
	assert.Equal(t, "second", history[0].Notes)
	assert.Equal(t, "2024-03-05", history[0].ReadOn)
}

func TestRepository_RecordReading_DifferentVersionsAreDistinct(t *testing.T) {
	db, repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.True(t, repo.RecordReading(ctx, "nvi", "gn", 1, ""))
	require.True(t, repo.RecordReading(ctx, "acf", "gn", 1, ""))

	var count int64
	require.NoError(t, db.Model(&entities.ReadingRecord{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRepository_RecordReadingWith(t *testing.T) {
	_, repo, _ := setupTestDB(t)
	ctx := context.Background()

	err := repo.RecordReadingWith(ctx, Reading{
		Version:  "ra",
		Book:     "sl",
		Chapter:  23,
		Verse:    intPtr(1),
		Notes:    "O Senhor é o meu pastor",
		Favorite: boolPtr(true),
	})
	require.NoError(t, err)

	history := repo.GetHistory(ctx, 10)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].Verse)
	assert.Equal(t, 1, *history[0].Verse)
	assert.True(t, history[0].Favorite)

	// Re-recording without a favorite flag keeps the stored one.
	require.True(t, repo.RecordReading(ctx, "ra", "sl", 23, "again"))

	history = repo.GetHistory(ctx, 10)
	require.Len(t, history, 1)
	assert.True(t, history[0].Favorite)
	assert.Nil(t, history[0].Verse)
	assert.Equal(t, "again", history[0].Notes)
}

func TestRepository_GetHistory_Ordering(t *testing.T) {
	_, repo, clock := setupTestDB(t)
	ctx := context.Background()

	clock.setDay(2)
	require.True(t, repo.RecordReading(ctx, "nvi", "gn", 1, ""))
	require.True(t, repo.RecordReading(ctx, "nvi", "gn", 2, ""))
	clock.setDay(1)
	require.True(t, repo.RecordReading(ctx, "nvi", "ex", 1, ""))
	clock.setDay(3)
	require.True(t, repo.RecordReading(ctx, "nvi", "lv", 1, ""))

	history := repo.GetHistory(ctx, 10)
	require.Len(t, history, 4)

	got := make([]string, len(history))
	for i, h := range history {
		got[i] = fmt.Sprintf("%s %s %d", h.ReadOn, h.Book, h.Chapter)
	}
	assert.Equal(t, []string{
		"2024-03-03 lv 1",
		"2024-03-02 gn 2",
		"2024-03-02 gn 1",
		"2024-03-01 ex 1",
	}, got)
}

func TestRepository_GetHistory_Limit(t *testing.T) {
	_, repo, _ := setupTestDB(t)
	ctx := context.Background()

	for chapter := 1; chapter <= 5; chapter++ {
		require.True(t, repo.RecordReading(ctx, "nvi", "mt", chapter, ""))
	}

	assert.Len(t, repo.GetHistory(ctx, 3), 3)
	assert.Len(t, repo.GetHistory(ctx, 10), 5)
	assert.Empty(t, repo.GetHistory(ctx, 0))
	assert.Empty(t, repo.GetHistory(ctx, -1))
	assert.NotNil(t, repo.GetHistory(ctx, 0))
}

func TestRepository_GetHistory_Empty(t *testing.T) {
	_, repo, _ := setupTestDB(t)

	history := repo.GetHistory(context.Background(), DefaultHistoryLimit)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestRepository_GetStats(t *testing.T) {
	_, repo, clock := setupTestDB(t)
	ctx := context.Background()

	clock.setDay(1)
	require.True(t, repo.RecordReading(ctx, "nvi", "gn", 1, ""))
	require.True(t, repo.RecordReading(ctx, "nvi", "gn", 2, ""))
	clock.setDay(2)
	require.True(t, repo.RecordReading(ctx, "nvi", "jo", 1, ""))
	// Same (book, chapter) in another translation is one chapter read.
	require.True(t, repo.RecordReading(ctx, "acf", "jo", 1, ""))
	clock.setDay(4)
	require.True(t, repo.RecordReading(ctx, "nvi", "ap", 22, ""))

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.ChaptersRead)
	assert.Equal(t, int64(3), stats.DaysReading)
	assert.Equal(t, int64(3), stats.BooksStarted)
	assert.Equal(t, int64(5), stats.TotalReadings)
}

func TestRepository_GetStats_BookChapterDoNotCollide(t *testing.T) {
	_, repo, _ := setupTestDB(t)
	ctx := context.Background()

	// "1co" + 11 and "1co1" + 1 would collide under naive concatenation.
	require.True(t, repo.RecordReading(ctx, "nvi", "1co", 11, ""))
	require.True(t, repo.RecordReading(ctx, "nvi", "1co1", 1, ""))

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ChaptersRead)
}

func TestRepository_GetStats_Empty(t *testing.T) {
	_, repo, _ := setupTestDB(t)

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.StatsSnapshot{}, stats)
}

func TestRepository_SetFavorite(t *testing.T) {
	_, repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.True(t, repo.RecordReading(ctx, "nvi", "rm", 8, ""))
	require.True(t, repo.RecordReading(ctx, "nvi", "rm", 9, ""))

	require.NoError(t, repo.SetFavorite(ctx, "nvi", "rm", 8, true))

	favorites := repo.GetFavorites(ctx, 10)
	require.Len(t, favorites, 1)
	assert.Equal(t, 8, favorites[0].Chapter)

	require.NoError(t, repo.SetFavorite(ctx, "nvi", "rm", 8, false))
	assert.Empty(t, repo.GetFavorites(ctx, 10))

	err := repo.SetFavorite(ctx, "nvi", "rm", 10, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Degraded(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	assert.False(t, repo.Available())
	assert.False(t, repo.RecordReading(ctx, "nvi", "gn", 1, ""))
	assert.Empty(t, repo.GetHistory(ctx, 10))
	assert.Empty(t, repo.GetFavorites(ctx, 10))

	stats, err := repo.GetStats(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, entities.StatsSnapshot{}, stats)

	var persistErr *PersistenceError
	assert.True(t, errors.As(repo.RecordReadingWith(ctx, Reading{Book: "gn", Chapter: 1}), &persistErr))
	assert.ErrorIs(t, repo.SetFavorite(ctx, "nvi", "gn", 1, true), ErrUnavailable)
	assert.ErrorIs(t, repo.Ping(ctx), ErrUnavailable)
	assert.NoError(t, repo.Close())
}

func TestRepository_ClosedDatabase(t *testing.T) {
	db, repo, _ := setupTestDB(t)
	ctx := context.Background()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.False(t, repo.RecordReading(ctx, "nvi", "gn", 1, ""))
	assert.Empty(t, repo.GetHistory(ctx, 10))

	_, err = repo.GetStats(ctx)
	var persistErr *PersistenceError
	assert.True(t, errors.As(err, &persistErr))
	assert.Equal(t, "get stats", persistErr.Op)
}

func TestOpen(t *testing.T) {
	t.Run("opens and migrates", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "gobiblia.db")
		repo := Open(dbPath, logger.Silent)
		defer repo.Close()

		assert.True(t, repo.Available())
		assert.NoError(t, repo.Ping(context.Background()))
		assert.True(t, repo.RecordReading(context.Background(), "nvi", "gn", 1, ""))
	})

	t.Run("degrades on failure", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "missing", "gobiblia.db")
		repo := Open(dbPath, logger.Silent)

		assert.False(t, repo.Available())
		assert.False(t, repo.RecordReading(context.Background(), "nvi", "gn", 1, ""))
	})
}
