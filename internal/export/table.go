package export

import (
	"fmt"
	"strconv"
)

// Placeholder fills absent cells so spreadsheet columns stay sortable.
const Placeholder = " "

// Formula is a spreadsheet formula without the leading "=".
type Formula string

// Table is a header plus rows of cells. A cell is a string, int, bool,
// Formula, a pointer to one of those, or nil; nil and nil pointers are
// absent values.
type Table struct {
	Columns []string
	Rows    [][]any
}

func NewTable(columns []string) *Table {
	return &Table{Columns: columns, Rows: make([][]any, 0)}
}

func (t *Table) Append(values []any) {
	t.Rows = append(t.Rows, values)
}

// Hyperlink turns a URL cell into a HYPERLINK formula showing the URL.
func Hyperlink(url *string) any {
	if url == nil {
		return nil
	}
	return Formula(fmt.Sprintf("HYPERLINK(%q, %q)", *url, *url))
}

// cellValue dereferences pointers and substitutes Placeholder for absent
// values.
func cellValue(v any) any {
	switch c := v.(type) {
	case nil:
		return Placeholder
	case *string:
		if c == nil {
			return Placeholder
		}
		return *c
	case *int:
		if c == nil {
			return Placeholder
		}
		return *c
	case *bool:
		if c == nil {
			return Placeholder
		}
		return *c
	default:
		return c
	}
}

func cellString(v any) string {
	switch c := cellValue(v).(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case bool:
		return strconv.FormatBool(c)
	case Formula:
		return "=" + string(c)
	default:
		return fmt.Sprint(c)
	}
}
