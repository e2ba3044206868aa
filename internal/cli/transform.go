package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/parcelprep/internal/config"
	"github.com/evcraddock/parcelprep/internal/dataset"
	"github.com/evcraddock/parcelprep/internal/logging"
	"github.com/evcraddock/parcelprep/internal/table"
)

func newTransformCmd() *cobra.Command {
	var name, outPath string

	cmd := &cobra.Command{
		Use:   "transform <train|test|file.csv>",
		Short: "Encode a dataset with a stored schema",
		Long: "Encode an assembled dataset, or any CSV file with the same columns, into the numeric layout " +
			"of a stored schema. Output is CSV on stdout unless --out is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args[0], name, outPath)
		},
	}

	cmd.Flags().StringVar(&name, "name", "train", "schema name")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output CSV file (- for stdout)")

	return cmd
}

func runTransform(cmd *cobra.Command, source, name, outPath string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	repo, database, err := newSchemaRepo(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	rec, err := repo.GetByName(name)
	if err != nil {
		return err
	}

	x, err := loadSource(cfg, source)
	if err != nil {
		return err
	}

	var out *table.Table
	err = logging.Step("transform", func() error {
		out, err = rec.Transformer().Transform(x)
		return err
	})
	if err != nil {
		return err
	}

	if err := writeTable(cmd.OutOrStdout(), outPath, out); err != nil {
		return err
	}

	if outPath == "-" {
		return nil
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"schema": rec.Name,
			"output": outPath,
			"table":  summarize(out),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s rows, %d columns to %s\n", formatCount(int64(out.Len())), out.Width(), outPath)
	return nil
}

// loadSource assembles a named dataset, or reads a CSV file when source is not one.
// A target column in a CSV file is removed.
func loadSource(cfg config.Config, source string) (*table.Table, error) {
	which, err := dataset.ParseWhich(source)
	if err == nil {
		x, _, err := newAssembler(cfg).Assemble(which)
		return x, err
	}
	if !errors.Is(err, dataset.ErrUnknownDataset) {
		return nil, err
	}

	x, err := readTable(source)
	if err != nil {
		return nil, err
	}
	if x.Has(dataset.TargetColumn) {
		return x.Drop(dataset.TargetColumn)
	}
	return x, nil
}
