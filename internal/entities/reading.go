package entities

import (
	"time"
)

// ReadOnLayout is the calendar-date format stored in ReadingRecord.ReadOn.
const ReadOnLayout = "2006-01-02"

// ReadingRecord is one logged reading of a chapter (optionally a verse) in a
// given translation. (Version, Book, Chapter) identifies the record.
type ReadingRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Version   string    `gorm:"size:10;uniqueIndex:idx_readings_identity" json:"version"`
	Book      string    `gorm:"size:50;uniqueIndex:idx_readings_identity" json:"book"`
	Chapter   int       `gorm:"uniqueIndex:idx_readings_identity" json:"chapter"`
	Verse     *int      `json:"verse,omitempty"`
	ReadOn    string    `gorm:"size:10;index" json:"read_on"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Favorite  bool      `gorm:"default:false" json:"favorite"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ReadingRecord) TableName() string {
	return "readings"
}

// ReadingStatistics mirrors the aggregate table kept in the schema for
// compatibility with older databases. Statistics are always recomputed from
// readings; nothing writes here.
type ReadingStatistics struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TotalChapters  int       `gorm:"default:0" json:"total_chapters"`
	TotalVerses    int       `gorm:"default:0" json:"total_verses"`
	DaysReading    int       `gorm:"default:0" json:"days_reading"`
	BooksCompleted int       `gorm:"default:0" json:"books_completed"`
	LastUpdatedAt  time.Time `json:"last_updated_at"`
}

func (ReadingStatistics) TableName() string {
	return "reading_statistics"
}

// StatsSnapshot holds aggregate counts derived from the readings table.
type StatsSnapshot struct {
	ChaptersRead  int64 `json:"chapters_read"`
	DaysReading   int64 `json:"days_reading"`
	BooksStarted  int64 `json:"books_started"`
	TotalReadings int64 `json:"total_readings"`
}
