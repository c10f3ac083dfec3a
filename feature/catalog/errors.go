package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMissingRequiredField marks a record lacking its category discriminator.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidField marks a required field whose value cannot be coerced.
	ErrInvalidField = errors.New("invalid field")
	// ErrMissingDirectory marks an absent category folder.
	ErrMissingDirectory = errors.New("missing folder")
	// ErrEnrichmentFailure marks a data record that exists but could not be read.
	ErrEnrichmentFailure = errors.New("enrichment failed")
	// ErrUnreadableRoot is fatal: the pack root itself is missing or not a directory.
	ErrUnreadableRoot = errors.New("unreadable pack root")
)

// Kind classifies a diagnostic line.
type Kind string

const (
	// KindMissing reports an absent category folder.
	KindMissing Kind = "MISSING"
	// KindSkip reports a record that was dropped.
	KindSkip Kind = "SKIP"
	// KindWarn reports a record kept without enrichment.
	KindWarn Kind = "WARN"
)

// Diagnostic describes one recovered failure.
type Diagnostic struct {
	Kind     Kind
	Category Category
	// File is the offending file, or the folder for KindMissing.
	File string
	Err  error
}

// String renders the diagnostic as a single log line.
func (d Diagnostic) String() string {
	switch d.Kind {
	case KindMissing:
		return fmt.Sprintf("Missing folder: %s", d.File)
	case KindWarn:
		return fmt.Sprintf("[WARN %s data] %s: %v", d.Category, filepath.Base(d.File), d.Err)
	default:
		return fmt.Sprintf("[SKIP %s] %s: %v", d.Category, filepath.Base(d.File), d.Err)
	}
}

// Diagnostics accumulates recovered failures in the order they occur.
// The zero value is ready to use.
type Diagnostics struct {
	entries []Diagnostic
}

// Add records a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.entries = append(d.entries, diag)
}

// Len returns the number of recorded diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the recorded diagnostics.
func (d *Diagnostics) Entries() []Diagnostic {
	return append([]Diagnostic(nil), d.entries...)
}

// Lines renders every diagnostic.
func (d *Diagnostics) Lines() []string {
	lines := make([]string, len(d.entries))
	for i, e := range d.entries {
		lines[i] = e.String()
	}
	return lines
}

// Preview returns at most n lines.
func (d *Diagnostics) Preview(n int) []string {
	lines := d.Lines()
	if n >= 0 && len(lines) > n {
		return lines[:n]
	}
	return lines
}

// Count returns how many diagnostics match err via errors.Is.
func (d *Diagnostics) Count(err error) int {
	n := 0
	for _, e := range d.entries {
		if errors.Is(e.Err, err) {
			n++
		}
	}
	return n
}

// WriteTo writes one line per diagnostic.
func (d *Diagnostics) WriteTo(w io.Writer) (int64, error) {
	text := strings.Join(d.Lines(), "\n")
	if len(d.entries) > 0 {
		text += "\n"
	}
	n, err := io.WriteString(w, text)
	return int64(n), err
}

// WriteFile persists the diagnostics, creating parent folders as needed.
// An empty file is written when there is nothing to report.
func (d *Diagnostics) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log folder: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	if _, err := d.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}
