package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/gobiblia/internal/database/readings"
)

func healthRequest(t *testing.T, controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		repo := readings.Open(filepath.Join(t.TempDir(), "health.db"), logger.Silent)
		defer repo.Close()

		w, response := healthRequest(t, NewHealthController(repo, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("returns healthy when store is not configured", func(t *testing.T) {
		w, response := healthRequest(t, NewHealthController(nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when store is degraded", func(t *testing.T) {
		repo := readings.Open(filepath.Join(t.TempDir(), "missing", "health.db"), logger.Silent)

		w, response := healthRequest(t, NewHealthController(repo, "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error:")
	})

	t.Run("returns unhealthy when ping fails", func(t *testing.T) {
		w, response := healthRequest(t, NewHealthController(&fakeStore{pingErr: errors.New("disk gone")}, ""))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "error: disk gone", response.Checks["database"])
	})
}
