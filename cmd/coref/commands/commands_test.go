package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/corpus"
	"github.com/teranos/coref/errors"
)

func testdata(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "..", "corpus", "testdata", name))
	require.NoError(t, err)
	return path
}

// isolate points configuration and the model database at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("COREF_DATABASE_PATH", filepath.Join(dir, "models.db"))
	t.Chdir(dir)
	am.Reset()
	t.Cleanup(am.Reset)
	return dir
}

func newCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(out)
	return cmd
}

func TestTrainThenResolve(t *testing.T) {
	train := testdata(t, "company.json")
	dev := testdata(t, "obama.yaml")
	isolate(t)

	trainAlgorithm = ""
	require.NoError(t, runTrain(newCmd(&bytes.Buffer{}), []string{train}))

	var out bytes.Buffer
	resolveFormat, resolveOut, resolveModel, resolveAlgorithm = "json", "", "", ""
	require.NoError(t, runResolve(newCmd(&out), []string{dev}))

	var results []corpus.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "obama", results[0].ID)
	require.Len(t, results[0].Clusters, 2)
	assert.Len(t, results[0].Clusters[0], 3)
	assert.Equal(t, "she", results[0].Clusters[1][0].Gloss)
}

func TestResolveWithoutModel(t *testing.T) {
	dev := testdata(t, "obama.yaml")
	isolate(t)

	resolveFormat, resolveOut, resolveModel, resolveAlgorithm = "table", "", "", "classifier"
	err := runResolve(newCmd(&bytes.Buffer{}), []string{dev})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no classifier model")
}

func TestResolveStatelessBaselineTable(t *testing.T) {
	dev := testdata(t, "obama.yaml")
	isolate(t)

	var out bytes.Buffer
	resolveFormat, resolveOut, resolveModel, resolveAlgorithm = "table", "", "", "one_cluster"
	require.NoError(t, runResolve(newCmd(&out), []string{dev}))
	assert.Contains(t, out.String(), "Obama [0], he [1], Obama [2], she [3]")
}

func TestResolveRejectsFormat(t *testing.T) {
	resolveFormat = "xml"
	defer func() { resolveFormat = "table" }()
	err := runResolve(newCmd(&bytes.Buffer{}), []string{"unused"})
	assert.ErrorContains(t, err, "unsupported format")
	assert.NotNil(t, errors.GetStack(err), "format errors carry a stack trace")
}

func TestWatchHelpers(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"in/a.yaml", true},
		{"in/a.yml", true},
		{"in/a.json", true},
		{"in/a.clusters.json", false},
		{"in/a.txt", false},
		{"in/coref.toml.back1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isCorpusFile(tt.path), tt.path)
	}
	assert.Equal(t, filepath.Join("out", "dev.clusters.json"), outputPath("out", "in/dev.yaml"))
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.clusters.json")
	require.NoError(t, writeResults(path, []corpus.Result{{ID: "d", Clusters: [][]corpus.Member{}}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"d","clusters":[]}]`, string(data))
}

func TestAmSetAndGet(t *testing.T) {
	dir := isolate(t)

	setUser = false
	require.NoError(t, runAmSet(newCmd(&bytes.Buffer{}), []string{"resolver.algorithm", "head_baseline"}))
	_, err := os.Stat(filepath.Join(dir, am.ProjectConfigName))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runAmGet(newCmd(&out), []string{"resolver.algorithm"}))
	assert.Equal(t, "head_baseline\n", out.String())

	err = runAmGet(newCmd(&bytes.Buffer{}), []string{"resolver.nope"})
	assert.Error(t, err)
}

func TestAmShowFormats(t *testing.T) {
	isolate(t)
	for _, format := range []string{"toml", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			configFormat = format
			var out bytes.Buffer
			require.NoError(t, runAmShow(newCmd(&out), nil))
			assert.Contains(t, out.String(), "predicate_window")
		})
	}
	configFormat = "ini"
	defer func() { configFormat = "toml" }()
	err := runAmShow(newCmd(&bytes.Buffer{}), nil)
	assert.ErrorContains(t, err, "unsupported format: ini")
	assert.NotNil(t, errors.GetStack(err))
}
