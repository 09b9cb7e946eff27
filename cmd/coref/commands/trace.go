package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/corpus"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/sieve"
)

// TraceCmd shows the sieve's pass-by-pass progress on each document
var TraceCmd = &cobra.Command{
	Use:   "trace <corpus>",
	Short: "Show what each sieve pass merged",
	Long: `Run the sieve over a corpus and report, for every document, how many
merges each pass made and how many entities remained after it.

Uses the latest stored sieve model unless --model names one.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

var traceModel string

func init() {
	TraceCmd.Flags().StringVar(&traceModel, "model", "", "Stored sieve model id (default: latest)")
}

func runTrace(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(am.AlgorithmSieve)
	if err != nil {
		return err
	}
	sys, _, err := restoredSystem(ctx, cfg, traceModel)
	if err != nil {
		return err
	}
	s, ok := sys.(*sieve.Sieve)
	if !ok {
		return errors.AssertionFailedf("sieve algorithm built %T", sys)
	}

	c, err := corpus.Load(args[0])
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Document", "Pass", "Merges", "Entities"}}
	for _, d := range c.Documents() {
		steps, err := s.Trace(ctx, d)
		if err != nil {
			return errors.Wrapf(err, "trace document %s", d.ID)
		}
		for _, st := range steps {
			data = append(data, []string{d.ID, st.Pass, fmt.Sprint(st.Merges), fmt.Sprint(st.Entities)})
		}
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
