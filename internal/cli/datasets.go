package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/parcelprep/internal/dataset"
)

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List datasets in the data directory",
		Args:  cobra.NoArgs,
		RunE:  runDatasets,
	}
}

func runDatasets(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	names, err := dataset.NewStore(cfg.DataDir).Names()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if names == nil {
			names = []string{}
		}
		return printJSON(out, names)
	}

	if len(names) == 0 {
		fmt.Fprintf(out, "No datasets in %s.\n", cfg.DataDir)
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}
