package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List stored schemas",
		Args:  cobra.NoArgs,
		RunE:  runSchemasList,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show a stored schema",
			Args:  cobra.ExactArgs(1),
			RunE:  runSchemasShow,
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a stored schema",
			Args:  cobra.ExactArgs(1),
			RunE:  runSchemasRemove,
		},
	)

	return cmd
}

func runSchemasList(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	repo, database, err := newSchemaRepo(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	recs, err := repo.List()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), recs)
	}
	return printSchemaTable(cmd.OutOrStdout(), recs)
}

func runSchemasShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	repo, database, err := newSchemaRepo(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	rec, err := repo.GetByName(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), rec)
	}
	printSchemaSummary(cmd.OutOrStdout(), rec)
	return nil
}

func runSchemasRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	repo, database, err := newSchemaRepo(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	if err := repo.Delete(args[0]); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"name":    args[0],
			"removed": true,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema %s removed.\n", args[0])
	return nil
}
