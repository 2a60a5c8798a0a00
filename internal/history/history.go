package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quocvuong92/dappier-go/internal/constants"
)

// MaxEntries caps the history file; the oldest entries are dropped first
const MaxEntries = 500

// FileName is the history file inside the data directory
const FileName = "history.json"

// Kind is the type of query an entry records
type Kind string

const (
	KindSearch    Kind = "search"
	KindRecommend Kind = "recommend"
)

// Entry is one recorded query. Target is the AI model ID for searches and
// the data model ID for recommendations.
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      Kind      `json:"kind"`
	Query     string    `json:"query"`
	Target    string    `json:"target,omitempty"`
	OK        bool      `json:"ok"`
	Timestamp time.Time `json:"timestamp"`
}

// History is a query log backed by a JSON file. It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	now     func() time.Time
}

// DefaultPath returns ~/.local/share/dappier/history.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", constants.AppName, FileName), nil
}

// NewHistory creates a history stored at the default path. If the home
// directory is unknown the history lives in memory only.
func NewHistory() *History {
	path, _ := DefaultPath()
	return NewHistoryAt(path)
}

// NewHistoryAt creates a history stored at path. An empty path keeps it in memory.
func NewHistoryAt(path string) *History {
	return &History{path: path, now: time.Now}
}

// Load reads the history file. A missing file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse history %s: %w", h.path, err)
	}
	h.entries = entries
	return nil
}

// Save writes the history file with 0600 permissions
func (h *History) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(h.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Add records a query
func (h *History) Add(sessionID string, kind Kind, query, target string, ok bool) Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := Entry{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		Query:     query,
		Target:    target,
		OK:        ok,
		Timestamp: h.now(),
	}
	h.entries = append(h.entries, e)
	if over := len(h.entries) - MaxEntries; over > 0 {
		h.entries = append([]Entry(nil), h.entries[over:]...)
	}
	return e
}

// Recent returns up to n entries, newest first
func (h *History) Recent(n int) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(h.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Queries returns the query text of every entry, oldest first
func (h *History) Queries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Query
	}
	return out
}

// Clear removes all entries
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
