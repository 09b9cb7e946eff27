package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/coref"
	"github.com/teranos/coref/corpus"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/logger"
)

// ResolveCmd clusters the mentions of a corpus
var ResolveCmd = &cobra.Command{
	Use:   "resolve <corpus>",
	Short: "Cluster the mentions of every document in a corpus",
	Long: `Resolve every document in a corpus with the configured algorithm.

Trained algorithms load the most recent stored model unless --model names
one. Gold clusters in the corpus, if any, are ignored.

Examples:
  coref resolve data/dev.yaml
  coref resolve data/dev.yaml --model 5f0c...  --format json
  coref resolve data/dev.yaml --out clusters.json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

var (
	resolveModel     string
	resolveOut       string
	resolveFormat    string
	resolveAlgorithm string
)

func init() {
	ResolveCmd.Flags().StringVar(&resolveModel, "model", "", "Stored model id (default: latest for the algorithm)")
	ResolveCmd.Flags().StringVarP(&resolveOut, "out", "o", "", "Write JSON results to this file")
	ResolveCmd.Flags().StringVar(&resolveFormat, "format", "table", "Output format: table, json")
	ResolveCmd.Flags().StringVarP(&resolveAlgorithm, "algorithm", "a", "", "Override resolver.algorithm")
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolveFormat != "table" && resolveFormat != "json" {
		return errors.Newf("unsupported format: %s (supported: table, json)", resolveFormat)
	}
	ctx := cmd.Context()
	cfg, err := loadConfig(resolveAlgorithm)
	if err != nil {
		return err
	}

	sys, modelID, err := restoredSystem(ctx, cfg, resolveModel)
	if err != nil {
		return err
	}
	if modelID != "" {
		logger.Infow("Loaded model", logger.FieldModelID, modelID, logger.FieldAlgorithm, sys.Name())
	}

	results, err := resolveFile(ctx, cfg, sys, args[0])
	if err != nil {
		return err
	}

	if resolveOut != "" {
		f, err := os.Create(resolveOut)
		if err != nil {
			return errors.Wrapf(err, "create %s", resolveOut)
		}
		defer f.Close()
		if err := corpus.Write(f, results); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %d documents to %s", len(results), resolveOut)
		return nil
	}

	if resolveFormat == "json" {
		return corpus.Write(cmd.OutOrStdout(), results)
	}
	return renderTable(cmd.OutOrStdout(), results)
}

// resolveFile loads a corpus and resolves all of its documents.
func resolveFile(ctx context.Context, cfg *am.Config, sys coref.System, path string) ([]corpus.Result, error) {
	c, err := corpus.Load(path)
	if err != nil {
		return nil, err
	}
	docs := c.Documents()
	assignments, err := coref.ResolveAll(ctx, sys, docs, cfg.GetWorkers())
	if err != nil {
		return nil, err
	}
	results := make([]corpus.Result, len(docs))
	for i, d := range docs {
		results[i] = corpus.NewResult(d, assignments[i])
	}
	return results, nil
}

func renderTable(w io.Writer, results []corpus.Result) error {
	data := pterm.TableData{{"Document", "Entity", "Mentions"}}
	for _, r := range results {
		for i, members := range r.Clusters {
			glosses := make([]string, len(members))
			for j, m := range members {
				glosses[j] = fmt.Sprintf("%s [%d]", m.Gloss, m.Index)
			}
			data = append(data, []string{r.ID, fmt.Sprintf("%d", i), strings.Join(glosses, ", ")})
		}
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
