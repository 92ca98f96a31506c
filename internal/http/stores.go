package http

import (
	"context"

	"github.com/mrlokans/gobiblia/internal/database/readings"
	"github.com/mrlokans/gobiblia/internal/entities"
	"github.com/mrlokans/gobiblia/internal/scripture"
)

// This file consolidates the dependency interfaces used by HTTP controllers.
// *scripture.Client and *readings.Repository satisfy them; tests use fakes.

// ContentClient provides read access to the remote scripture API.
type ContentClient interface {
	DefaultVersion() string
	ListBooks(ctx context.Context) ([]scripture.Book, error)
	GetBook(ctx context.Context, book string) (*scripture.Book, error)
	GetChapter(ctx context.Context, version, book string, chapter int) (*scripture.Chapter, error)
	GetVerse(ctx context.Context, version, book string, chapter, verse int) (*scripture.Verse, error)
	GetRandomVerse(ctx context.Context, version, book string) (*scripture.Verse, error)
	SearchVerses(ctx context.Context, word, version string) (*scripture.SearchResult, error)
	ListVersions(ctx context.Context) ([]scripture.Version, error)
}

// ReadingStore persists reading progress.
type ReadingStore interface {
	RecordReadingWith(ctx context.Context, reading readings.Reading) error
	GetHistory(ctx context.Context, limit int) []entities.ReadingRecord
	GetFavorites(ctx context.Context, limit int) []entities.ReadingRecord
	SetFavorite(ctx context.Context, version, book string, chapter int, favorite bool) error
	GetStats(ctx context.Context) (entities.StatsSnapshot, error)
}

// Pinger reports connectivity of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ ContentClient = (*scripture.Client)(nil)
	_ ReadingStore  = (*readings.Repository)(nil)
	_ Pinger        = (*readings.Repository)(nil)
)
