// Package cli defines the cobra command tree for parcelprep.
package cli

import (
	"database/sql"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/parcelprep/internal/config"
	"github.com/evcraddock/parcelprep/internal/dataset"
	"github.com/evcraddock/parcelprep/internal/db"
	"github.com/evcraddock/parcelprep/internal/logging"
	"github.com/evcraddock/parcelprep/internal/schema"
)

var (
	flagFormat string
	flagDB     string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pp",
		Short:         "Prepare parcel transaction data for log-error modeling",
		Long:          "Assemble transaction and property tables, fit a feature schema, and encode datasets into numeric feature tables.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/pp/parcelprep.db)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default: ~/.config/pp/config.yaml)")

	root.AddCommand(
		newDatasetsCmd(),
		newAssembleCmd(),
		newFitCmd(),
		newTransformCmd(),
		newSchemasCmd(),
		newScoreCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// loadSettings loads the config and initializes logging from it.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logging.Setup(cfg.Dev)
	return cfg, nil
}

// newAssembler creates a dataset assembler from the config.
func newAssembler(cfg config.Config) *dataset.Assembler {
	return dataset.NewAssembler(dataset.NewStore(cfg.DataDir), cfg.Seed)
}

// openDB opens the SQLite database using the --db flag, the config, or the default path.
func openDB(cfg config.Config) (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newSchemaRepo opens the database and returns a schema repository.
func newSchemaRepo(cfg config.Config) (*schema.Repository, *sql.DB, error) {
	database, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return schema.NewRepository(database), database, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
