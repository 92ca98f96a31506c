package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gobiblia/internal/audit"
	"github.com/mrlokans/gobiblia/internal/database/readings"
)

const msgReadingIdentityRequired = "book and chapter are required"

// ReadingsController records reading progress and reports on it.
type ReadingsController struct {
	store          ReadingStore
	auditor        *audit.Auditor
	defaultVersion string
}

func NewReadingsController(store ReadingStore, auditor *audit.Auditor, defaultVersion string) *ReadingsController {
	return &ReadingsController{
		store:          store,
		auditor:        auditor,
		defaultVersion: defaultVersion,
	}
}

// RecordReading stores a reading of a chapter.
// POST /api/readings
func (rc *ReadingsController) RecordReading(c *gin.Context) {
	rc.withRequest(c, rc.record)
}

// SetFavorite marks or unmarks a recorded reading as favorite.
// PUT /api/readings/favorite
func (rc *ReadingsController) SetFavorite(c *gin.Context) {
	rc.withRequest(c, rc.setFavorite)
}

// GetHistory lists recent readings.
// GET /api/readings?limit=
func (rc *ReadingsController) GetHistory(c *gin.Context) {
	rc.withRequest(c, rc.history)
}

// GetFavorites lists favorite readings.
// GET /api/readings/favorites?limit=
func (rc *ReadingsController) GetFavorites(c *gin.Context) {
	rc.withRequest(c, rc.favorites)
}

// GetStats returns the reading statistics.
// GET /api/stats
func (rc *ReadingsController) GetStats(c *gin.Context) {
	rc.stats(c, ActionRequest{})
}

func (rc *ReadingsController) withRequest(c *gin.Context, handle actionHandler) {
	req, err := bindActionRequest(c)
	if err != nil {
		respondBadRequest(c, "invalid request parameters")
		return
	}
	handle(c, req)
}

func (rc *ReadingsController) versionOrDefault(version string) string {
	if version == "" {
		return rc.defaultVersion
	}
	return version
}

func (rc *ReadingsController) record(c *gin.Context, req ActionRequest) {
	if !req.hasReadingIdentity() {
		respondBadRequest(c, msgReadingIdentityRequired)
		return
	}

	reading := readings.Reading{
		Version:  rc.versionOrDefault(req.Version),
		Book:     req.Book,
		Chapter:  *req.Chapter,
		Verse:    req.Verse,
		Notes:    req.Notes,
		Favorite: req.Favorite,
	}
	err := rc.store.RecordReadingWith(c.Request.Context(), reading)

	rc.auditor.LogReading(audit.ReadingEntry{
		RequestID: requestID(c),
		Source:    c.FullPath(),
		Version:   reading.Version,
		Book:      reading.Book,
		Chapter:   reading.Chapter,
		Verse:     reading.Verse,
		Notes:     reading.Notes,
		Favorite:  reading.Favorite,
		Recorded:  err == nil,
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, RecordResponse{Success: false, Error: "failed to record reading"})
		return
	}
	c.JSON(http.StatusOK, RecordResponse{Success: true})
}

func (rc *ReadingsController) setFavorite(c *gin.Context, req ActionRequest) {
	if !req.hasReadingIdentity() || req.Favorite == nil {
		respondBadRequest(c, "book, chapter and favorite are required")
		return
	}

	err := rc.store.SetFavorite(c.Request.Context(), rc.versionOrDefault(req.Version), req.Book, *req.Chapter, *req.Favorite)
	if err != nil {
		respondStoreError(c, err, "update favorite")
		return
	}
	c.JSON(http.StatusOK, RecordResponse{Success: true})
}

func (rc *ReadingsController) history(c *gin.Context, req ActionRequest) {
	c.JSON(http.StatusOK, rc.store.GetHistory(c.Request.Context(), limitOrDefault(req.Limit)))
}

func (rc *ReadingsController) favorites(c *gin.Context, req ActionRequest) {
	c.JSON(http.StatusOK, rc.store.GetFavorites(c.Request.Context(), limitOrDefault(req.Limit)))
}

func (rc *ReadingsController) stats(c *gin.Context, _ ActionRequest) {
	stats, err := rc.store.GetStats(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func limitOrDefault(limit *int) int {
	if limit == nil {
		return readings.DefaultHistoryLimit
	}
	return *limit
}
