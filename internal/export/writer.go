package export

import "fmt"

type writer interface {
	write(path string, table *Table) error
}

var writers = map[Format]writer{
	FormatCSV:  csvWriter{},
	FormatXLSX: xlsxWriter{},
}

// Write replaces the file at t.Path with table and returns the number of
// data rows written.
func Write(t Target, table *Table) (int, error) {
	w, ok := writers[t.Format]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, t.Format)
	}
	if err := w.write(t.Path, table); err != nil {
		return 0, err
	}
	return len(table.Rows), nil
}
