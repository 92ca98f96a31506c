package http

import (
	"github.com/mrlokans/gobiblia/internal/audit"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Client ContentClient
	Store  ReadingStore

	// Auditor journals accepted reading submissions; nil disables it.
	Auditor *audit.Auditor

	// ReadOnly rejects every request that records or modifies readings.
	ReadOnly bool

	// Application info
	Version string
}
