package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/parcelprep/internal/dataset"
)

func newScoreCmd() *cobra.Command {
	var trueCol, predCol string

	cmd := &cobra.Command{
		Use:   "score <targets.csv> <predictions.csv>",
		Short: "Mean absolute error of predictions",
		Long:  "Compute the mean absolute error between a target column and a prediction column, row by row.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args[0], args[1], trueCol, predCol)
		},
	}

	cmd.Flags().StringVar(&trueCol, "target-column", dataset.TargetColumn, "column holding true values")
	cmd.Flags().StringVar(&predCol, "prediction-column", "", "column holding predictions (default: first column)")

	return cmd
}

func runScore(cmd *cobra.Command, truePath, predPath, trueCol, predCol string) error {
	yTrue, err := readFloatColumn(truePath, trueCol)
	if err != nil {
		return err
	}
	yPred, err := readFloatColumn(predPath, predCol)
	if err != nil {
		return err
	}

	mae, err := dataset.MeanAbsError(yTrue, yPred)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"rows": len(yTrue),
			"mae":  mae,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "MAE: %.6f (%s rows)\n", mae, formatCount(int64(len(yTrue))))
	return nil
}

// readFloatColumn reads a numeric column from a CSV file.
// An empty column name selects the first column.
func readFloatColumn(path, column string) ([]float64, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if column == "" {
		cols := t.Columns()
		if len(cols) == 0 {
			return nil, fmt.Errorf("%s has no columns", path)
		}
		column = cols[0]
	}

	values, err := t.Column(column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := v.Float64()
		if !ok {
			return nil, fmt.Errorf("%s row %d: %q is not a number", path, i+1, v.Text())
		}
		out[i] = f
	}
	return out, nil
}
