package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/parcelprep/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective settings",
		Long:  "Show the settings in effect after applying the config file and PP_* environment overrides.",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a setting to the config file",
		Long: "Save a setting to the config file. Keys: data_dir, db_path, seed, drop_columns, " +
			"date_columns, dev. List values are comma-separated; an empty value clears the list.",
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, cfg)
	}

	for _, key := range config.Keys {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(out, "%-13s %s\n", key+":", v)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Start from the file alone so environment overrides are not persisted.
	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(flagConfig, cfg); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"key":   key,
			"value": value,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s.\n", key)
	return nil
}
