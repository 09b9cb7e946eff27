package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/cmd/coref/commands"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/logger"
)

var rootCmd = &cobra.Command{
	Use:   "coref",
	Short: "coref - coreference clustering engine",
	Long: `coref - Group the mentions of a document into the entities they refer to.

Mentions are resolved either by an ordered sieve of rules or by a learned
pairwise classifier that links each mention to its nearest accepted
antecedent. Trained models are stored in a local SQLite database.

Available commands:
  train    - Train the configured algorithm on a labelled corpus
  resolve  - Cluster the mentions of every document in a corpus
  trace    - Show what each sieve pass merged
  models   - List stored models
  watch    - Resolve corpus files as they land in a directory
  am       - Manage coref configuration

Examples:
  coref train data/train.yaml            # Train and store a model
  coref resolve data/dev.yaml            # Resolve with the latest model
  coref resolve data/dev.yaml --format json --out clusters.json
  coref am show                          # Show current configuration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput := false
		if cfg, err := am.Load(); err == nil {
			jsonOutput = cfg.Log.JSON
		}
		if err := logger.InitializeWithVerbosity(jsonOutput, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.TrainCmd)
	rootCmd.AddCommand(commands.ResolveCmd)
	rootCmd.AddCommand(commands.TraceCmd)
	rootCmd.AddCommand(commands.ModelsCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
