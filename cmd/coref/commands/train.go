package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/coref/coref"
	"github.com/teranos/coref/corpus"
	"github.com/teranos/coref/db"
	"github.com/teranos/coref/errors"
)

// TrainCmd trains the configured algorithm and stores the result
var TrainCmd = &cobra.Command{
	Use:   "train <corpus>",
	Short: "Train the configured algorithm on a labelled corpus",
	Long: `Train the configured algorithm on a corpus whose documents carry gold
clusters, then store the trained model in the database.

The sieve learns which head words co-occur in gold entities and the mean
distance between coreferent mentions. The classifier learns feature weights.
The singleton and one_cluster baselines have nothing to learn.

Examples:
  coref train data/train.yaml
  coref train data/train.json --algorithm classifier`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

var trainAlgorithm string

func init() {
	TrainCmd.Flags().StringVarP(&trainAlgorithm, "algorithm", "a", "", "Override resolver.algorithm")
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(trainAlgorithm)
	if err != nil {
		return err
	}

	c, err := corpus.Load(args[0])
	if err != nil {
		return err
	}
	labeled, err := c.Labeled()
	if err != nil {
		return errors.Wrapf(err, "training corpus %s", args[0])
	}

	sys, err := coref.Build(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	spinner, _ := pterm.DefaultSpinner.Start("Training " + sys.Name() + "...")
	if err := sys.Train(ctx, labeled); err != nil {
		spinner.Fail("Training failed")
		return errors.Wrapf(err, "train %s", sys.Name())
	}
	spinner.Success("Trained " + sys.Name() + " on " + pterm.Sprintf("%d documents, %d mentions", len(labeled), c.Mentions()))

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := coref.Persist(ctx, db.NewStore(database), sys)
	if err != nil {
		return err
	}
	if id == "" {
		pterm.Info.Printfln("%s has no trained state; nothing stored", sys.Name())
		return nil
	}
	pterm.Success.Printfln("Stored model %s (%s)", id, time.Since(start).Round(time.Millisecond))
	return nil
}
