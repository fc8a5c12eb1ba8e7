// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> service layer -> store layer -> SQLite.
//
// Some internal packages show "[no test files]" - this is intentional.
// These packages are covered by the CLI integration tests:
//   - internal/repo: covered by init/db tests (discovery, gitignore)
//   - internal/log: covered by every logged command (audit rows appear)
//   - internal/vacuum: covered by vacuum tests (dry-run and purge)
//
// Unit tests for these packages would duplicate coverage without adding
// value. If underlying functionality breaks, the CLI tests fail - proving
// the stack works.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the tdf binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "tdf-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "tdf"
		if os.PathSeparator == '\\' {
			binaryName = "tdf.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state. Each env gets its own HOME so
// global config and profiles never leak between tests or into the real
// user's ~/.tdf.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a temporary directory with an initialised tdf registry.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	env := &testEnv{t: t, dir: dir, home: t.TempDir(), binary: binary}
	env.run("init")

	return env
}

// newBareEnv creates a temporary directory WITHOUT initialising a registry.
// Used by tests that exercise init itself or storeless commands.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// run executes tdf with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("tdf %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes tdf and returns stdout and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdin executes tdf with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("tdf %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes tdf with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// environ returns the process environment with HOME redirected into the
// test sandbox.
func (e *testEnv) environ() []string {
	env := os.Environ()
	env = append(env, "HOME="+e.home, "USERPROFILE="+e.home)
	return env
}

// write writes a file relative to the test directory, creating parents.
func (e *testEnv) write(rel, content string) {
	e.t.Helper()
	path := filepath.Join(e.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// testProfiles is a realistic profiles.yaml used by check/profile tests.
const testProfiles = `profiles:
  icon:
    format: image/png
    require: [icon]
    exclude: [draft]
    dynamic:
      "size:":
        kind: int
        min: 16
        max: 512
  doc:
    format: text/markdown
    dynamic:
      "lang:":
        kind: enum
        values: [en, fr, de]
`
