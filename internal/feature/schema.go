package feature

import (
	"slices"
	"strings"
)

// Schema is the frozen output layout captured by Fit.
type Schema struct {
	DropColumns []string `json:"drop_columns"`
	DateColumns []string `json:"date_columns"`
	Categorical []string `json:"categorical"`
	Columns     []string `json:"columns"`
}

// Clone returns a deep copy.
func (s Schema) Clone() Schema {
	return Schema{
		DropColumns: slices.Clone(s.DropColumns),
		DateColumns: slices.Clone(s.DateColumns),
		Categorical: slices.Clone(s.Categorical),
		Columns:     slices.Clone(s.Columns),
	}
}

// OutputColumns returns the columns Transform emits: the frozen columns with
// each date column replaced by its month and year columns at the end.
func (s Schema) OutputColumns() []string {
	out := make([]string, 0, len(s.Columns)+len(s.DateColumns))
	for _, c := range s.Columns {
		if !slices.Contains(s.DateColumns, c) {
			out = append(out, c)
		}
	}
	for _, c := range s.DateColumns {
		out = append(out, c+"_month", c+"_year")
	}
	return out
}

// isDateName reports whether a column name marks it as holding dates.
func isDateName(name string) bool {
	return strings.Contains(name, "date")
}
