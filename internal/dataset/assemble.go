package dataset

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/evcraddock/parcelprep/internal/table"
)

// TargetColumn holds the regression target in transaction tables.
const TargetColumn = "logerror"

// ErrUnknownDataset is returned for a dataset identifier other than train or test.
var ErrUnknownDataset = errors.New("unknown dataset")

// Which identifies one of the two assembled datasets.
type Which string

const (
	Train Which = "train"
	Test  Which = "test"
)

// years maps each dataset to the year of its source tables.
var years = map[Which]int{
	Train: 2016,
	Test:  2017,
}

// ParseWhich validates a dataset identifier.
func ParseWhich(s string) (Which, error) {
	w := Which(s)
	if _, ok := years[w]; !ok {
		return "", fmt.Errorf("%w: %q (want train or test)", ErrUnknownDataset, s)
	}
	return w, nil
}

// Year returns the source year for the dataset.
func (w Which) Year() int { return years[w] }

// TransactionsName returns the name of the dataset's transactions table.
func (w Which) TransactionsName() string { return fmt.Sprintf("train_%d", w.Year()) }

// PropertiesName returns the name of the dataset's properties table.
func (w Which) PropertiesName() string { return fmt.Sprintf("properties_%d", w.Year()) }

// Assembler builds feature-ready tables from a Store.
type Assembler struct {
	store *Store
	seed  uint64
}

// NewAssembler creates an assembler. seed drives duplicate-parcel sampling.
func NewAssembler(store *Store, seed uint64) *Assembler {
	return &Assembler{store: store, seed: seed}
}

// Assemble reads and merges the transactions and properties for which,
// reduces the training set to one row per parcel, and splits off the target.
func (a *Assembler) Assemble(which Which) (*table.Table, []float64, error) {
	if _, ok := years[which]; !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDataset, which)
	}

	transactions, err := a.store.Read(which.TransactionsName())
	if err != nil {
		return nil, nil, err
	}
	properties, err := a.store.Read(which.PropertiesName())
	if err != nil {
		return nil, nil, err
	}

	merged, err := Merge(transactions, properties)
	if err != nil {
		return nil, nil, fmt.Errorf("merging %s: %w", which, err)
	}

	if which == Train {
		before := merged.Len()
		merged, err = DeduplicateByKey(merged, KeyColumn, a.seed)
		if err != nil {
			return nil, nil, fmt.Errorf("deduplicating %s: %w", which, err)
		}
		slog.Debug("deduplicated parcels", "before", before, "after", merged.Len())
	}

	x, col, err := merged.Pop(TargetColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("separating target: %w", err)
	}

	y := make([]float64, len(col))
	for i, v := range col {
		f, ok := v.Float64()
		if !ok {
			return nil, nil, fmt.Errorf("row %d: %s value %q is not numeric", i, TargetColumn, v.Text())
		}
		y[i] = f
	}

	slog.Info("assembled dataset",
		"dataset", string(which),
		"rows", x.Len(),
		"columns", x.Width(),
	)

	return x, y, nil
}

// MeanAbsError returns the mean absolute difference between yTrue and yPred.
func MeanAbsError(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("length mismatch: %d targets, %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, errors.New("no values to score")
	}
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue)), nil
}
