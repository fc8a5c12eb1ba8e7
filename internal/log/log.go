// Package log provides centralised audit logging for tdf operations.
// Logs are stored in ~/.tdf/log/tdf-log.db and track all CLI commands
// and MCP tool invocations across repositories.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("get", "read").
//		Author(cmd.Author()).
//		Name(n).
//		Version(entry.Version).
//		Write(err)
//
//	log.Event("check", "validate").
//		Author(cmd.Author()).
//		Detail("profile", profile).
//		Detail("ok", result.OK).
//		Write(err)
//
// The source parameter is the command name for CLI commands or "mcp:{tool}"
// for MCP tools. Examples: "get", "tag:add", "mcp:tdf_set".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source  string // e.g., "get", "tag:add", "mcp:tdf_set"
	Author  string // who performed the action
	Action  string // verb: read, write, validate, delete, etc.
	Name    string // input: entry name requested
	Version int    // input: entry version requested

	// Output fields - populated after operation succeeds
	ResolvedName  string // output: resolved name (if different from input, e.g. key lookup)
	ResultVersion int    // output: version created or accessed

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: the command name (e.g., "get", "tag:add")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:tdf_set")
//
// The action describes what operation was performed:
//   - "read", "write", "validate", "delete", "list", "restore", etc.
//
// Example:
//
//	log.Event("set", "write").
//		Author(cmd.Author()).
//		Name(n).
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Name sets the entry name this operation affects.
//
// Use for operations that target a specific entry or name prefix.
// Leave unset for operations that don't target entries (e.g., config).
func (b *Builder) Name(name string) *Builder {
	b.entry.Name = name
	return b
}

// Version sets the input entry version for this operation.
//
// Use for operations where the user specified a version to access.
func (b *Builder) Version(version int) *Builder {
	b.entry.Version = version
	return b
}

// Resolved sets the resolved name (output).
//
// Use when the actual name differs from input, such as when a key
// is resolved to a name.
func (b *Builder) Resolved(name string) *Builder {
	b.entry.ResolvedName = name
	return b
}

// ResultVersion sets the version that resulted from the operation (output).
//
// For writes: the new version created.
// For reads: the version that was actually accessed.
func (b *Builder) ResultVersion(version int) *Builder {
	b.entry.ResultVersion = version
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// validation verdicts, profiles applied, tag values, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// Example:
//
//	entry, err := svc.Latest(name)
//	log.Event("get", "read").Name(name).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .tdf directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
