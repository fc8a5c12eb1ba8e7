// Package store defines persistence types and the Store interface for named
// TDF entries. Implementations handle the actual database operations while
// consumers depend only on this interface, enabling testing and alternative
// backends.
package store

import (
	"encoding/json"
	"time"
)

// Entry represents a single version of a named TDF value. Each write creates
// a new version, preserving full history for auditing and recovery.
type Entry struct {
	ID        int64  // Database primary key (internal)
	Key       string // Unique 8-char identifier
	Name      string // Entry name (e.g., "drop/avatar")
	Value     string // Serialized TDF string
	Version   int    // Version number (1, 2, 3, ...)
	Author    string // Who created this version
	Message   string // Commit message for this version
	CreatedAt int64  // Unix timestamp of creation
	DeletedAt *int64 // Unix timestamp of deletion, nil if not deleted
}

// EntryMeta contains entry metadata without the value itself.
// Use this for efficient listings where the value isn't needed.
type EntryMeta struct {
	Key       string // Unique 8-char identifier
	Name      string // Entry name
	Version   int    // Current version number
	Author    string // Author of current version
	Message   string // Message of current version
	CreatedAt int64  // Unix timestamp of current version
	DeletedAt *int64 // Deletion timestamp, nil if not deleted
	Size      int64  // Serialized value length in bytes
}

// EntryJSON is the API-friendly representation of an Entry. It uses RFC3339
// timestamps and allows optional value omission for compact listings.
type EntryJSON struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Value     string `json:"value,omitempty"`
	Version   int    `json:"version"`
	Author    string `json:"author"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at"`
	Deleted   bool   `json:"deleted,omitempty"`
}

// ToJSON converts an Entry to its API representation. The value parameter
// controls whether to include the serialized TDF string.
func (e *Entry) ToJSON(value bool) EntryJSON {
	j := EntryJSON{
		Key:       e.Key,
		Name:      e.Name,
		Version:   e.Version,
		Author:    e.Author,
		Message:   e.Message,
		CreatedAt: time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339),
		Deleted:   e.DeletedAt != nil,
	}
	if value {
		j.Value = e.Value
	}
	return j
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteOptions configures a write operation.
type WriteOptions struct {
	Author   string
	Message  string
	MaxName  int   // 0 means no limit (not recommended for writes)
	MaxValue int64 // 0 means no limit (not recommended for writes)
}

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	MaxName int
}

// RestoreOptions configures a restore operation.
type RestoreOptions struct {
	MaxName int
}

// RenameOptions configures a rename operation.
type RenameOptions struct {
	MaxName int
}

// Stats provides aggregate database statistics for operational visibility.
type Stats struct {
	Entries         int64 // Active (non-deleted) entry count
	DeletedEntries  int64 // Soft-deleted entries pending vacuum
	TotalVersions   int64 // Sum of all entry versions (history depth)
	Authors         int64 // Distinct authors who have written entries
	OldestEntry     int64 // Unix timestamp of earliest entry
	NewestEntry     int64 // Unix timestamp of most recent write
	OldestDeletedAt int64 // Unix timestamp of earliest soft-delete (0 if none)
}
