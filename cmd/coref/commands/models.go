package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/db"
	"github.com/teranos/coref/errors"
)

// ModelsCmd lists stored models
var ModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List stored models",
	Long: `List the models stored in the database, newest first.

Examples:
  coref models                      # Models for the configured algorithm
  coref models --algorithm sieve`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

var modelsAlgorithm string

func init() {
	ModelsCmd.Flags().StringVarP(&modelsAlgorithm, "algorithm", "a", "", "Override resolver.algorithm")
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(modelsAlgorithm)
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	algorithms := []string{cfg.Resolver.Algorithm}
	if modelsAlgorithm == "" {
		algorithms = am.Algorithms
	}

	store := db.NewStore(database)
	data := pterm.TableData{{"ID", "Algorithm", "Version", "Created"}}
	for _, algorithm := range algorithms {
		models, err := store.List(cmd.Context(), algorithm)
		if err != nil {
			return errors.Wrapf(err, "list %s models", algorithm)
		}
		for _, m := range models {
			data = append(data, []string{m.ID, m.Algorithm, m.Version, m.CreatedAt.Local().Format(time.DateTime)})
		}
	}
	if len(data) == 1 {
		pterm.Info.Printfln("No models stored in %s", cfg.GetDatabasePath())
		return nil
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
