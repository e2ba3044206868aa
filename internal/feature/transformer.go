// Package feature converts mixed-type record tables into fixed-width numeric
// feature tables with a fit/transform contract.
//
// Fit drops configured columns, one-hot encodes string columns and freezes the
// resulting column layout. Transform reapplies that layout to any table:
// categories unseen at fit time are discarded, categories absent at transform
// time are backfilled with zeros, remaining missing cells become -1 and each
// configured date column is split into month and year columns.
package feature

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/evcraddock/parcelprep/internal/table"
)

// MissingSentinel replaces missing cells in transformed output.
const MissingSentinel = -1

// State is the lifecycle stage of a Transformer.
type State int

const (
	Unfit State = iota
	Fitted
)

func (s State) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "unfit"
}

// Config lists the columns a Transformer drops and the columns it treats as dates.
type Config struct {
	DropColumns []string `json:"drop_columns" yaml:"drop_columns"`
	DateColumns []string `json:"date_columns" yaml:"date_columns"`
}

// Transformer is a single-owner fit/transform encoder. It is not safe for
// concurrent use while fitting.
type Transformer struct {
	cfg    Config
	schema *Schema
}

// New creates an unfit transformer.
func New(cfg Config) *Transformer {
	return &Transformer{
		cfg: Config{
			DropColumns: slices.Clone(cfg.DropColumns),
			DateColumns: slices.Clone(cfg.DateColumns),
		},
	}
}

// Restore creates a fitted transformer from a previously captured schema.
func Restore(s Schema) *Transformer {
	frozen := s.Clone()
	return &Transformer{
		cfg: Config{
			DropColumns: slices.Clone(frozen.DropColumns),
			DateColumns: slices.Clone(frozen.DateColumns),
		},
		schema: &frozen,
	}
}

// State reports whether Fit has been called.
func (tr *Transformer) State() State {
	if tr.schema == nil {
		return Unfit
	}
	return Fitted
}

// Schema returns a copy of the frozen schema, or ErrNotFitted.
func (tr *Transformer) Schema() (Schema, error) {
	if tr.schema == nil {
		return Schema{}, ErrNotFitted
	}
	return tr.schema.Clone(), nil
}

// Fit derives and freezes the output schema from t. Calling Fit again
// replaces the schema.
func (tr *Transformer) Fit(t *table.Table) (Schema, error) {
	x, err := t.Drop(tr.cfg.DropColumns...)
	if err != nil {
		return Schema{}, fmt.Errorf("dropping columns: %w", err)
	}

	categorical := tr.categoricalColumns(x)

	encoded, err := oneHot(x, categorical)
	if err != nil {
		return Schema{}, fmt.Errorf("encoding categorical columns: %w", err)
	}

	tr.schema = &Schema{
		DropColumns: slices.Clone(tr.cfg.DropColumns),
		DateColumns: slices.Clone(tr.cfg.DateColumns),
		Categorical: categorical,
		Columns:     encoded.Columns(),
	}

	slog.Debug("fitted feature schema",
		"rows", t.Len(),
		"categorical", len(categorical),
		"columns", len(tr.schema.Columns),
	)

	return tr.schema.Clone(), nil
}

// Transform encodes t into the frozen schema.
func (tr *Transformer) Transform(t *table.Table) (*table.Table, error) {
	if tr.schema == nil {
		return nil, ErrNotFitted
	}
	s := tr.schema

	x, err := t.Drop(s.DropColumns...)
	if err != nil {
		return nil, fmt.Errorf("dropping columns: %w", err)
	}

	for _, c := range s.DateColumns {
		if !x.Has(c) || !slices.Contains(s.Columns, c) {
			return nil, fmt.Errorf("date column: %w", &table.ColumnNotFoundError{Column: c})
		}
	}

	// A column that the fit-time rule would now call categorical, but that
	// was not encoded at fit time, cannot be represented numerically.
	for _, c := range tr.categoricalColumns(x) {
		if !slices.Contains(s.Categorical, c) && slices.Contains(s.Columns, c) {
			return nil, &ColumnTypeError{Column: c, Reason: "holds strings but was numeric when fitted"}
		}
	}

	encoded, err := oneHot(x, s.Categorical)
	if err != nil {
		return nil, fmt.Errorf("encoding categorical columns: %w", err)
	}

	out, err := reindex(encoded, s.Columns)
	if err != nil {
		return nil, fmt.Errorf("reindexing to schema: %w", err)
	}

	fillMissing(out, s.DateColumns)

	for _, c := range s.DateColumns {
		out, err = splitDate(out, c)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// FitTransform fits on t and transforms the same table.
func (tr *Transformer) FitTransform(t *table.Table) (*table.Table, error) {
	if _, err := tr.Fit(t); err != nil {
		return nil, err
	}
	return tr.Transform(t)
}

// categoricalColumns returns string-typed columns that are not dates, in table order.
func (tr *Transformer) categoricalColumns(t *table.Table) []string {
	var cols []string
	for _, c := range t.Columns() {
		if isDateName(c) || slices.Contains(tr.cfg.DateColumns, c) {
			continue
		}
		if t.IsCategorical(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// oneHot replaces each categorical column with one indicator column per
// distinct value, ordered lexicographically, followed by a <col>_nan indicator.
// Indicator columns are appended after the remaining columns.
func oneHot(t *table.Table, categorical []string) (*table.Table, error) {
	var keep []string
	for _, c := range t.Columns() {
		if !slices.Contains(categorical, c) {
			keep = append(keep, c)
		}
	}

	out, err := t.Select(keep...)
	if err != nil {
		return nil, err
	}

	for _, c := range categorical {
		values, err := t.Column(c)
		if err != nil {
			return nil, err
		}

		seen := map[string]bool{}
		for _, v := range values {
			if !v.IsMissing() {
				seen[v.Text()] = true
			}
		}
		categories := make([]string, 0, len(seen))
		for k := range seen {
			categories = append(categories, k)
		}
		sort.Strings(categories)

		for _, cat := range categories {
			ind := make([]table.Value, len(values))
			for i, v := range values {
				ind[i] = indicator(!v.IsMissing() && v.Text() == cat)
			}
			if err := addIndicator(out, c, c+"_"+cat, ind); err != nil {
				return nil, err
			}
		}

		ind := make([]table.Value, len(values))
		for i, v := range values {
			ind[i] = indicator(v.IsMissing())
		}
		if err := addIndicator(out, c, c+"_nan", ind); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// addIndicator appends an indicator column derived from categorical column c.
func addIndicator(t *table.Table, c, name string, values []table.Value) error {
	if t.Has(name) {
		return &ColumnCollisionError{Column: name, Categorical: c}
	}
	return t.AddColumn(name, values)
}

// reindex lays t out in the given column order. Columns absent from t are
// filled with zeros; columns not listed are discarded.
func reindex(t *table.Table, columns []string) (*table.Table, error) {
	var present, absent []string
	for _, c := range columns {
		if t.Has(c) {
			present = append(present, c)
		} else {
			absent = append(absent, c)
		}
	}

	out, err := t.Select(present...)
	if err != nil {
		return nil, err
	}
	zeros := make([]table.Value, t.Len())
	for i := range zeros {
		zeros[i] = table.Int(0)
	}
	for _, c := range absent {
		if err := out.AddColumn(c, zeros); err != nil {
			return nil, err
		}
	}

	return out.Select(columns...)
}

// fillMissing replaces missing cells with MissingSentinel, skipping the
// given date columns.
func fillMissing(t *table.Table, skip []string) {
	for _, c := range t.Columns() {
		if slices.Contains(skip, c) {
			continue
		}
		t.Fill(c, table.Int(MissingSentinel))
	}
}

func indicator(b bool) table.Value {
	if b {
		return table.Int(1)
	}
	return table.Int(0)
}
