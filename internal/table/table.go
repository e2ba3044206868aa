package table

import (
	"errors"
	"fmt"
	"math"
)

// ErrColumnNotFound is returned when a named column is absent from a table.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError names the missing column.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// Is matches ErrColumnNotFound.
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// Table is an ordered sequence of rows over a fixed, ordered set of
// uniquely named columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given columns.
func New(columns ...string) (*Table, error) {
	t := &Table{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		t.columns[i] = c
		t.index[c] = i
	}
	return t, nil
}

// Append adds a row. The number of values must match the column count.
func (t *Table) Append(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the cell at row i in the named column.
// Missing is returned for an unknown column.
func (t *Table) Value(i int, name string) Value {
	j, ok := t.index[name]
	if !ok {
		return Null()
	}
	return t.rows[i][j]
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.columns))
	copy(out, t.rows[i])
	return out
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]Value, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name}
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out, nil
}

// IsCategorical reports whether any non-missing cell in the column is a string.
func (t *Table) IsCategorical(name string) bool {
	j, ok := t.index[name]
	if !ok {
		return false
	}
	for _, row := range t.rows {
		if row[j].kind == StringKind {
			return true
		}
	}
	return false
}

// Select returns a new table holding the named columns in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for k, name := range names {
		j, ok := t.index[name]
		if !ok {
			return nil, &ColumnNotFoundError{Column: name}
		}
		idx[k] = j
	}

	out, err := New(names...)
	if err != nil {
		return nil, err
	}
	out.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		r := make([]Value, len(idx))
		for k, j := range idx {
			r[k] = row[j]
		}
		out.rows[i] = r
	}
	return out, nil
}

// Drop returns a new table without the named columns.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if !t.Has(name) {
			return nil, &ColumnNotFoundError{Column: name}
		}
		drop[name] = true
	}

	keep := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// Pop returns a new table without the named column, along with that column's cells.
func (t *Table) Pop(name string) (*Table, []Value, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}
	rest, err := t.Drop(name)
	if err != nil {
		return nil, nil, err
	}
	return rest, col, nil
}

// AddColumn appends a column in place. The number of values must match the row count.
func (t *Table) AddColumn(name string, values []Value) error {
	if t.Has(name) {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}
	return nil
}

// Float64s returns the table as a dense row-major numeric matrix.
// Missing cells become NaN; string and date cells are an error.
func (t *Table) Float64s() ([][]float64, error) {
	out := make([][]float64, len(t.rows))
	for i, row := range t.rows {
		vec := make([]float64, len(row))
		for j, v := range row {
			if v.kind == MissingKind {
				vec[j] = math.NaN()
				continue
			}
			f, ok := v.Float64()
			if !ok {
				return nil, fmt.Errorf("row %d column %q: %s value %q is not numeric", i, t.columns[j], v.kind, v.Text())
			}
			vec[j] = f
		}
		out[i] = vec
	}
	return out, nil
}

// Fill replaces missing cells in the named column with v, in place.
// Unknown columns are ignored.
func (t *Table) Fill(name string, v Value) {
	j, ok := t.index[name]
	if !ok {
		return
	}
	for _, row := range t.rows {
		if row[j].kind == MissingKind {
			row[j] = v
		}
	}
}
