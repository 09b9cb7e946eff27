package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/corpus"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/watch"
)

// WatchCmd resolves corpus files as they are written into a directory
var WatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Resolve corpus files as they land in a directory",
	Long: `Watch a directory and resolve every YAML or JSON corpus file written
into it. Results go to <name>.clusters.json in the output directory, which
defaults to <dir>/resolved.

The model is loaded once at startup. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchOutDir    string
	watchModel     string
	watchAlgorithm string
)

func init() {
	WatchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "Directory for results (default: <dir>/resolved)")
	WatchCmd.Flags().StringVar(&watchModel, "model", "", "Stored model id (default: latest for the algorithm)")
	WatchCmd.Flags().StringVarP(&watchAlgorithm, "algorithm", "a", "", "Override resolver.algorithm")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := args[0]
	cfg, err := loadConfig(watchAlgorithm)
	if err != nil {
		return err
	}
	sys, _, err := restoredSystem(ctx, cfg, watchModel)
	if err != nil {
		return err
	}

	outDir := watchOutDir
	if outDir == "" {
		outDir = filepath.Join(dir, "resolved")
	}
	if err := os.MkdirAll(outDir, am.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "create %s", outDir)
	}

	w, err := watch.New(dir, isCorpusFile)
	if err != nil {
		return err
	}
	defer w.Close()

	pterm.Info.Printfln("Watching %s with %s, writing to %s", dir, sys.Name(), outDir)
	return w.Run(ctx, func(ctx context.Context, path string) error {
		results, err := resolveFile(ctx, cfg, sys, path)
		if err != nil {
			return err
		}
		return writeResults(outputPath(outDir, path), results)
	})
}

func isCorpusFile(path string) bool {
	return watch.Extensions(".yaml", ".yml", ".json")(path) && !strings.HasSuffix(path, ".clusters.json")
}

func outputPath(outDir, path string) string {
	base := filepath.Base(path)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".clusters.json")
}

func writeResults(path string, results []corpus.Result) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, am.DefaultFilePermissions)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := corpus.Write(f, results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	pterm.Success.Printfln("%s: %d documents", path, len(results))
	return nil
}
