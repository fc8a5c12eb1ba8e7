// repo_gitignore.go manages .gitignore entries for local vs shared databases.
//
// tdf supports both local databases (ignored by git, not committed) and
// shared databases (committed to the repository). IgnoreDB/UnignoreDB
// maintain the .tdf/.gitignore file when switching between modes, preserving
// existing content and formatting - only the specific database entries move.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// parseGitignore reads a gitignore file and returns its lines (trimmed).
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// IgnoreDB adds a database to the gitignore (marks as local).
// If dir is empty, discovers .tdf directory from current working directory.
func IgnoreDB(name, dir string) error {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return err
		}
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}

	if slices.Contains(lines, dbFile) {
		return nil
	}

	// Re-read raw content to preserve original formatting when appending.
	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}
	s := string(content)

	if !slices.Contains(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}
	s += dbFile + "\n"

	return os.WriteFile(gitignore, []byte(s), 0644)
}

// UnignoreDB removes a database from the gitignore (marks as shared).
// If dir is empty, discovers .tdf directory from current working directory.
func UnignoreDB(name, dir string) error {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return err
		}
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}

	lines := strings.Split(string(content), "\n")
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) != dbFile {
			out = append(out, line)
		}
	}

	// Remove the header when no local databases remain after it.
	result := strings.Join(out, "\n")
	if idx := strings.Index(result, localDBHeader); idx != -1 {
		rest := strings.TrimSpace(result[idx+len(localDBHeader):])
		if rest == "" || !strings.Contains(rest, ".db") {
			result = strings.TrimSuffix(result[:idx], "\n")
		}
	}

	return os.WriteFile(gitignore, []byte(result), 0644)
}

// IsIgnored checks if a database is in the gitignore.
// If dir is empty, discovers .tdf directory from current working directory.
func IsIgnored(name, dir string) (bool, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return false, err
		}
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return false, err
	}

	return slices.Contains(lines, dbFile), nil
}
