package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gobiblia/internal/database/readings"
	"github.com/mrlokans/gobiblia/internal/entities"
	"github.com/mrlokans/gobiblia/internal/scripture"
)

type chapterCall struct {
	version string
	book    string
	chapter int
}

type fakeClient struct {
	err error

	books    []scripture.Book
	chapters []chapterCall
	random   []chapterCall
	searches []string
	calls    int
}

func (f *fakeClient) DefaultVersion() string { return "nvi" }

func (f *fakeClient) ListBooks(ctx context.Context) ([]scripture.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.books, nil
}

func (f *fakeClient) GetBook(ctx context.Context, book string) (*scripture.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &scripture.Book{Abbrev: scripture.Abbrev{PT: book}, Name: strings.ToUpper(book)}, nil
}

func (f *fakeClient) GetChapter(ctx context.Context, version, book string, chapter int) (*scripture.Chapter, error) {
	f.calls++
	f.chapters = append(f.chapters, chapterCall{version, book, chapter})
	if f.err != nil {
		return nil, f.err
	}
	return &scripture.Chapter{
		Book:    scripture.Book{Abbrev: scripture.Abbrev{PT: book}, Version: version},
		Chapter: scripture.ChapterInfo{Number: chapter, Verses: 1},
		Verses:  []scripture.Verse{{Number: 1, Text: "No princípio"}},
	}, nil
}

func (f *fakeClient) GetVerse(ctx context.Context, version, book string, chapter, verse int) (*scripture.Verse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &scripture.Verse{Chapter: chapter, Number: verse, Text: "verse"}, nil
}

func (f *fakeClient) GetRandomVerse(ctx context.Context, version, book string) (*scripture.Verse, error) {
	f.calls++
	f.random = append(f.random, chapterCall{version: version, book: book})
	if f.err != nil {
		return nil, f.err
	}
	return &scripture.Verse{Chapter: 1, Number: 1, Text: "random"}, nil
}

func (f *fakeClient) SearchVerses(ctx context.Context, word, version string) (*scripture.SearchResult, error) {
	f.calls++
	f.searches = append(f.searches, word)
	if f.err != nil {
		return nil, f.err
	}
	return &scripture.SearchResult{Occurrence: 1, Version: version}, nil
}

func (f *fakeClient) ListVersions(ctx context.Context) ([]scripture.Version, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []scripture.Version{{Version: "nvi", Verses: 31105}}, nil
}

type fakeStore struct {
	recordErr   error
	favoriteErr error
	statsErr    error
	pingErr     error

	recorded     []readings.Reading
	historyLimit int
	history      []entities.ReadingRecord
	stats        entities.StatsSnapshot
}

func (f *fakeStore) RecordReadingWith(ctx context.Context, reading readings.Reading) error {
	f.recorded = append(f.recorded, reading)
	return f.recordErr
}

func (f *fakeStore) GetHistory(ctx context.Context, limit int) []entities.ReadingRecord {
	f.historyLimit = limit
	if limit <= 0 || f.history == nil {
		return []entities.ReadingRecord{}
	}
	return f.history
}

func (f *fakeStore) GetFavorites(ctx context.Context, limit int) []entities.ReadingRecord {
	return f.GetHistory(ctx, limit)
}

func (f *fakeStore) SetFavorite(ctx context.Context, version, book string, chapter int, favorite bool) error {
	return f.favoriteErr
}

func (f *fakeStore) GetStats(ctx context.Context) (entities.StatsSnapshot, error) {
	return f.stats, f.statsErr
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func newTestRouter(client ContentClient, store ReadingStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterConfig{Client: client, Store: store, Version: "test"})
}

func performRequest(router http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
