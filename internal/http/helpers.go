package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gobiblia/internal/database/readings"
	"github.com/mrlokans/gobiblia/internal/scripture"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RecordResponse reports the outcome of a write to the reading store.
type RecordResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondClientError maps a scripture client failure to a gateway status,
// keeping the client's message.
func respondClientError(c *gin.Context, err error) {
	var apiErr *scripture.Error
	if !errors.As(err, &apiErr) {
		log.Printf("Unexpected scripture error: %v", err)
		respondError(c, http.StatusBadGateway, err.Error())
		return
	}
	respondError(c, clientErrorStatus(apiErr), apiErr.Error())
}

func clientErrorStatus(err *scripture.Error) int {
	switch err.Kind {
	case scripture.KindHTTPStatus:
		if err.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case scripture.KindTransport:
		if err.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// respondStoreError logs the error and sends a 500 response naming the
// failed operation. ErrNotFound becomes a 404.
func respondStoreError(c *gin.Context, err error, op string) {
	if errors.Is(err, readings.ErrNotFound) {
		respondNotFound(c, "reading")
		return
	}
	log.Printf("Store error (%s): %v", op, err)
	respondError(c, http.StatusInternalServerError, "failed to "+op)
}

// --- Parameter Parsing ---

// parseIntParam extracts a positive integer from URL parameters.
// Returns the parsed value or responds with a 400 error and returns 0, false.
func parseIntParam(c *gin.Context, paramName string) (int, bool) {
	value, err := strconv.Atoi(c.Param(paramName))
	if err != nil || value <= 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return value, true
}
