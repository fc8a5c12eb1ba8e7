// Package repo provides repository initialisation and discovery for tdf.
//
// A tdf repository is a .tdf directory containing one or more SQLite
// databases holding named TDF entries. This package handles:
//   - Initialising new repositories (creating .tdf/ and the database)
//   - Discovering existing repositories by walking up the directory tree
//   - Managing multiple named databases (tdf.db, tdf-icons.db, etc.)
//   - Controlling git visibility via .gitignore (local vs shared databases)
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .tdf directory containing the target database
// is found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/tdf/internal/store"
)

const (
	// Dir is the directory name for the tdf repository.
	Dir = ".tdf"
	// DBFile is the default database filename.
	DBFile = "tdf.db"
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "tdf.db".
// A name like "icons" returns "tdf-icons.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "tdf-" + name + ".db"
}

// ErrNotInitialised is returned when no tdf repository is found.
var ErrNotInitialised = errors.New("tdf not initialised (run 'tdf init')")

// Init initialises a new tdf repository.
//
// Init only creates the database; config is a separate concern managed via
// "tdf config" (global ~/.tdf/config.yaml or local .tdf/config.yaml).
//
// Parameters:
//   - force: reinitialise existing repository
//   - db: database name (empty for default "tdf.db")
//   - local: add database to .gitignore (not committed)
//   - dir: target directory (empty for current directory)
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	tdfDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(tdfDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(tdfDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Create .gitignore if it doesn't exist. Only on first init - later
	// inits for additional databases must not clobber local markers.
	gitignore := filepath.Join(tdfDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# tdf - local config stays out of version control
# Database files (*.db) are the source of truth and should be committed
config.yaml
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	// Mark database as local if requested (add to gitignore).
	if local {
		if err := IgnoreDB(db, tdfDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for a .tdf database.
// The db parameter specifies which database to find (empty for default).
// Returns the full path to the database if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .tdf directory, walking up the tree.
// Returns the full path to the .tdf directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		tdfDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(tdfDir); err == nil && info.IsDir() {
			return tdfDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name  string // Short name (empty for default, "icons" for tdf-icons.db)
	File  string // Filename (tdf.db, tdf-icons.db)
	Path  string // Full path
	Local bool   // True if gitignored
}

// ListDBs returns all databases in the .tdf directory with their status.
// If dir is empty, discovers .tdf directory from current working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover .tdf directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .tdf directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}

		name := ""
		if e.Name() == DBFile {
			name = ""
		} else if strings.HasPrefix(e.Name(), "tdf-") {
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), "tdf-"), ".db")
		} else {
			continue // Not a tdf database
		}

		ignored, err := IsIgnored(name, dir)
		if err != nil {
			// Unreadable or malformed .gitignore; treat as shared.
			ignored = false
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: ignored,
		})
	}

	return dbs, nil
}
