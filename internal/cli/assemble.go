package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/parcelprep/internal/dataset"
	"github.com/evcraddock/parcelprep/internal/logging"
	"github.com/evcraddock/parcelprep/internal/table"
)

func newAssembleCmd() *cobra.Command {
	var outPath, targetPath string

	cmd := &cobra.Command{
		Use:   "assemble <train|test>",
		Short: "Merge transactions with properties",
		Long: "Read the transactions and properties for a dataset, left-join them on parcelid, " +
			"keep one sampled transaction per parcel for training data, and split off the logerror target.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(cmd, args[0], outPath, targetPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write features as CSV to this file")
	cmd.Flags().StringVar(&targetPath, "target", "", "write the logerror target as CSV to this file")

	return cmd
}

func runAssemble(cmd *cobra.Command, name, outPath, targetPath string) error {
	which, err := dataset.ParseWhich(name)
	if err != nil {
		return err
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	var x *table.Table
	var y []float64
	err = logging.Step("assemble", func() error {
		x, y, err = newAssembler(cfg).Assemble(which)
		return err
	})
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := writeTable(cmd.OutOrStdout(), outPath, x); err != nil {
			return err
		}
	}
	if targetPath != "" {
		if err := writeTable(cmd.OutOrStdout(), targetPath, targetTable(y)); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if outPath == "-" || targetPath == "-" {
		return nil
	}
	if isJSON() {
		return printJSON(out, map[string]interface{}{
			"dataset":  string(which),
			"features": summarize(x),
			"targets":  len(y),
		})
	}

	fmt.Fprintf(out, "Assembled %s: %s rows, %d columns\n", which, formatCount(int64(x.Len())), x.Width())
	return nil
}

// targetTable wraps target values in a single-column table.
func targetTable(y []float64) *table.Table {
	t, _ := table.New(dataset.TargetColumn)
	for _, v := range y {
		_ = t.Append(table.Float(v))
	}
	return t
}
