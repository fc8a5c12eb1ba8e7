// Package diff computes and formats differences between TDF values.
//
// Two views are produced: a structural summary (format changed, tags added
// or removed, dynamic arguments updated) derived from parsing both values,
// and a unified-style text diff over a one-fragment-per-line rendering of
// each value.
package diff

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jpl-au/tdf/internal/tdf"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Options configures a diff operation.
type Options struct {
	Name2          string // Second entry name (for comparing two entries)
	Version1       int    // First version to compare
	Version2       int    // Second version to compare
	IncludeDeleted bool   // Allow diffing deleted entries
}

// Differ is the interface for diff operations.
type Differ interface {
	Diff(ctx context.Context, name string, opts Options) (Result, error)
}

// Run executes a diff operation and writes output to w.
func Run(ctx context.Context, w io.Writer, svc Differ, name string, opts Options, colour bool) (Result, error) {
	r, err := svc.Diff(ctx, name, opts)
	if err != nil {
		return r, err
	}

	fmt.Fprint(w, r.Format(colour))
	return r, nil
}

// Result holds diff output.
type Result struct {
	Old     string   `json:"old"`               // old label
	New     string   `json:"new"`               // new label
	Summary []string `json:"summary,omitempty"` // structural changes (format/tag level)
	Diff    string   `json:"diff,omitempty"`    // plain diff text
}

// Changed reports whether the two values differ.
func (r Result) Changed() bool {
	return len(r.Summary) > 0
}

// Compute returns a diff between two serialized TDF values.
func Compute(oldValue, newValue, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	d := dmp.DiffMain(exploded(oldValue), exploded(newValue), false)
	d = dmp.DiffCleanupSemantic(d)

	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Summary: summarise(tdf.Parse(oldValue), tdf.Parse(newValue)),
		Diff:    format(d),
	}
}

// exploded renders a TDF value one fragment per line so the text diff
// operates at tag granularity.
func exploded(value string) string {
	r := tdf.Parse(value)
	var b strings.Builder
	b.WriteString(r.Format)
	b.WriteString("\n")
	for _, t := range append(append([]string{}, r.Tags...), r.DynamicTags...) {
		b.WriteString("#" + t + "\n")
	}
	return b.String()
}

// summarise describes the structural changes between two parsed records.
func summarise(o, n tdf.Record) []string {
	var out []string

	if o.Format != n.Format {
		out = append(out, fmt.Sprintf("format: %s -> %s", o.Format, n.Format))
	}

	oldTags := toSet(o.Tags)
	newTags := toSet(n.Tags)
	for _, t := range o.Tags {
		if !newTags[t] {
			out = append(out, "- #"+t)
		}
	}
	for _, t := range n.Tags {
		if !oldTags[t] {
			out = append(out, "+ #"+t)
		}
	}

	// Dynamic tags are matched by prefix so an argument change reads as an
	// update rather than a remove/add pair. Duplicate prefixes fall back to
	// plain add/remove reporting.
	oldDyn := byPrefix(o.DynamicTags)
	newDyn := byPrefix(n.DynamicTags)
	for _, t := range o.DynamicTags {
		p := prefixOf(t)
		if nt, ok := newDyn[p]; ok {
			if nt != t && oldDyn[p] == t {
				out = append(out, fmt.Sprintf("~ #%s -> #%s", t, nt))
			}
		} else {
			out = append(out, "- #"+t)
		}
	}
	for _, t := range n.DynamicTags {
		p := prefixOf(t)
		if _, ok := oldDyn[p]; !ok {
			out = append(out, "+ #"+t)
		}
	}

	return out
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// byPrefix indexes dynamic tags by their prefix. When a prefix occurs more
// than once, the first occurrence wins; later duplicates are reported as
// plain add/remove by the caller.
func byPrefix(tags []string) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		p := prefixOf(t)
		if _, ok := m[p]; !ok {
			m[p] = t
		}
	}
	return m
}

func prefixOf(t string) string {
	if i := strings.Index(t, ":"); i >= 0 {
		return t[:i+1]
	}
	return t
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red    = "\033[31m"
		green  = "\033[32m"
		yellow = "\033[33m"
		reset  = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		case strings.HasPrefix(line, "~ "):
			b.WriteString(yellow + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header and structural summary.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	body := r.Diff
	if len(r.Summary) > 0 {
		body = strings.Join(r.Summary, "\n") + "\n\n" + body
	}
	if colour {
		return header + Colourise(body)
	}
	return header + body
}

// ParseVersionRange parses a version range string like "3:5" into two integers.
func ParseVersionRange(s string) (v1, v2 int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid version range %q (expected v1:v2)", s)
	}
	v1, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start version: %w", err)
	}
	v2, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end version: %w", err)
	}
	return v1, v2, nil
}
