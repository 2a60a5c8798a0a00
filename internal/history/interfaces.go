// Package history persists the queries run in interactive sessions.
package history

// Store defines how interactive sessions record and recall queries
type Store interface {
	// Load reads the history from disk
	Load() error

	// Save writes the history to disk
	Save() error

	// Add records a query and returns the new entry
	Add(sessionID string, kind Kind, query, target string, ok bool) Entry

	// Recent returns up to n entries, newest first
	Recent(n int) []Entry

	// Queries returns the query text of every entry, oldest first
	Queries() []string

	// Clear removes all entries
	Clear()
}

var _ Store = (*History)(nil)
