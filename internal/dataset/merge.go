package dataset

import (
	"fmt"

	"github.com/evcraddock/parcelprep/internal/table"
)

// KeyColumn is the parcel identifier shared by transactions and properties.
const KeyColumn = "parcelid"

// Merge left-joins properties onto transactions by KeyColumn. Every
// transaction row is kept, in order; rows without a matching property get
// missing property columns. A transaction matching several property rows is
// emitted once per match. Non-key columns present in both tables are
// suffixed with _x (transactions) and _y (properties).
func Merge(transactions, properties *table.Table) (*table.Table, error) {
	if !transactions.Has(KeyColumn) {
		return nil, fmt.Errorf("transactions: %w", &table.ColumnNotFoundError{Column: KeyColumn})
	}
	if !properties.Has(KeyColumn) {
		return nil, fmt.Errorf("properties: %w", &table.ColumnNotFoundError{Column: KeyColumn})
	}

	leftCols := transactions.Columns()
	var rightCols []string
	for _, c := range properties.Columns() {
		if c != KeyColumn {
			rightCols = append(rightCols, c)
		}
	}

	shared := map[string]bool{}
	for _, c := range rightCols {
		if transactions.Has(c) {
			shared[c] = true
		}
	}

	outCols := make([]string, 0, len(leftCols)+len(rightCols))
	for _, c := range leftCols {
		if shared[c] {
			c += "_x"
		}
		outCols = append(outCols, c)
	}
	for _, c := range rightCols {
		if shared[c] {
			c += "_y"
		}
		outCols = append(outCols, c)
	}

	out, err := table.New(outCols...)
	if err != nil {
		return nil, fmt.Errorf("building merged table: %w", err)
	}

	byKey := make(map[string][]int, properties.Len())
	for i := 0; i < properties.Len(); i++ {
		k := properties.Value(i, KeyColumn).Key()
		byKey[k] = append(byKey[k], i)
	}

	unmatched := make([]table.Value, len(rightCols))
	for i := 0; i < transactions.Len(); i++ {
		left := transactions.Row(i)
		matches := byKey[transactions.Value(i, KeyColumn).Key()]

		if len(matches) == 0 {
			if err := out.Append(append(left, unmatched...)...); err != nil {
				return nil, err
			}
			continue
		}

		for _, m := range matches {
			row := make([]table.Value, 0, len(outCols))
			row = append(row, left...)
			for _, c := range rightCols {
				row = append(row, properties.Value(m, c))
			}
			if err := out.Append(row...); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
