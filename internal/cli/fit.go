package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/parcelprep/internal/dataset"
	"github.com/evcraddock/parcelprep/internal/feature"
	"github.com/evcraddock/parcelprep/internal/logging"
	"github.com/evcraddock/parcelprep/internal/schema"
	"github.com/evcraddock/parcelprep/internal/table"
)

func newFitCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "fit <train|test>",
		Short: "Fit and store a feature schema",
		Long: "Assemble a dataset, fit the feature transformer on it using the configured drop and date columns, " +
			"and store the frozen schema under a name for later transforms.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd, args[0], name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "schema name (default: the dataset name)")

	return cmd
}

func runFit(cmd *cobra.Command, dsName, name string) error {
	which, err := dataset.ParseWhich(dsName)
	if err != nil {
		return err
	}
	if name == "" {
		name = string(which)
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	var x *table.Table
	err = logging.Step("assemble", func() error {
		x, _, err = newAssembler(cfg).Assemble(which)
		return err
	})
	if err != nil {
		return err
	}

	tr := feature.New(cfg.Transformer())
	var fitted feature.Schema
	err = logging.Step("fit", func() error {
		fitted, err = tr.Fit(x)
		return err
	})
	if err != nil {
		return err
	}

	repo, database, err := newSchemaRepo(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	rec, err := repo.Save(name, fitted, cfg.Seed, []schema.Source{
		{Dataset: which.TransactionsName(), Rows: x.Len()},
	})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), rec)
	}
	printSchemaSummary(cmd.OutOrStdout(), rec)
	return nil
}
