// Package export writes result sets to .xlsx or .csv files.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	// ErrUnsupportedFormat means the destination extension is neither
	// .xlsx nor .csv.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrExportTarget means the destination cannot be written.
	ErrExportTarget = errors.New("export target not writable")
)

// Target is a destination file and the format inferred from its extension.
type Target struct {
	Path   string
	Format Format
}

// NewTarget infers the format of path. The extension match ignores case.
func NewTarget(path string) (Target, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatXLSX, FormatCSV:
		return Target{Path: path, Format: Format(ext)}, nil
	default:
		return Target{}, fmt.Errorf("%w: %q (use .xlsx or .csv)", ErrUnsupportedFormat, path)
	}
}

// Probe does a dry write: a header-only file at the destination. It leaves
// that file behind; the real export overwrites it.
func (t Target) Probe(columns []string) error {
	if _, err := Write(t, NewTable(columns)); err != nil {
		return fmt.Errorf("%w: %w", ErrExportTarget, err)
	}
	return nil
}
