// Package audit keeps a journal of accepted reading submissions, one JSON
// file per request.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ReadingEntry is the journaled form of a record-reading request.
type ReadingEntry struct {
	RequestID  string    `json:"request_id,omitempty"`
	Source     string    `json:"source"`
	Version    string    `json:"version"`
	Book       string    `json:"book"`
	Chapter    int       `json:"chapter"`
	Verse      *int      `json:"verse,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Favorite   *bool     `json:"favorite,omitempty"`
	Recorded   bool      `json:"recorded"`
	ReceivedAt time.Time `json:"received_at"`
}

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", uuid.New().String())
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filename, nil
}

// LogReading journals a reading submission. Failures are logged and never
// reach the caller. A nil Auditor is a no-op.
func (a *Auditor) LogReading(entry ReadingEntry) {
	if a == nil {
		return
	}
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now().UTC()
	}
	if _, err := a.SaveJSON(entry); err != nil {
		log.Printf("[audit] failed to journal reading %s %s %d: %v", entry.Version, entry.Book, entry.Chapter, err)
	}
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
