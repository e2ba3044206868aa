package feature

import (
	"errors"
	"fmt"
)

// ErrNotFitted is returned by Transform when the transformer has no schema yet.
var ErrNotFitted = errors.New("transformer is not fitted")

// DateParseError reports a date column value that is not a calendar date.
type DateParseError struct {
	Column string
	Row    int
	Value  string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot parse %q as a date", e.Column, e.Row, e.Value)
}

// ColumnTypeError reports a column whose cell types at transform time no
// longer match the rule that produced the fitted schema.
type ColumnTypeError struct {
	Column string
	Reason string
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// ColumnCollisionError reports an indicator column whose name is already
// taken by another column of the table being encoded.
type ColumnCollisionError struct {
	Column      string
	Categorical string
}

func (e *ColumnCollisionError) Error() string {
	return fmt.Sprintf("indicator column %q for categorical column %q collides with an existing column",
		e.Column, e.Categorical)
}
