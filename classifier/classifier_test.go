package classifier

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/feature"
	"github.com/teranos/coref/lexicon"
)

// oneWordMentions builds a document with one single-token mention per
// sentence, heads taken from words.
func oneWordMentions(t *testing.T, words ...string) *doc.Document {
	t.Helper()
	var sentences [][]doc.Token
	var spans []doc.Span
	for i, w := range words {
		sentences = append(sentences, []doc.Token{{Word: w, POS: "NNP"}, {Word: "spoke", POS: "VBD"}})
		spans = append(spans, doc.Span{Sentence: i, Begin: 0, End: 1, Head: 0})
	}
	d, err := doc.New(t.Name(), sentences, spans)
	require.NoError(t, err)
	return d
}

func extractor(t *testing.T, names ...string) *feature.Extractor {
	t.Helper()
	spec, err := feature.ParseSpec(names)
	require.NoError(t, err)
	ext, err := feature.NewExtractor(spec, lexicon.English)
	require.NoError(t, err)
	return ext
}

func TestGenerateDataStopsAtClosestAntecedent(t *testing.T) {
	var words []string
	for i := 0; i < 10; i++ {
		words = append(words, fmt.Sprintf("m%d", i))
	}
	d := oneWordMentions(t, words...)
	gold := [][]int{{2, 5, 9}}
	for i := 0; i < 10; i++ {
		if i != 2 && i != 5 && i != 9 {
			gold = append(gold, []int{i})
		}
	}

	ds, err := GenerateData(context.Background(), extractor(t, "exact_match"), []doc.Labeled{{Doc: d, Gold: gold}})
	require.NoError(t, err)

	var fromNine []int
	for _, datum := range ds {
		if datum.Anaphor == 9 {
			fromNine = append(fromNine, datum.Candidate)
		}
	}
	assert.Equal(t, []int{8, 7, 6, 5}, fromNine)

	last := ds[len(ds)-1]
	assert.Equal(t, 9, last.Anaphor)
	assert.Equal(t, 5, last.Candidate)
	assert.True(t, last.Coreferent)

	// 1+2+3+4 before the first antecedent, 3 for mention 5, 6+7+8, 4 for mention 9.
	assert.Len(t, ds, 38)
	assert.Equal(t, 2, ds.Positives())
}

func TestGenerateDataMissingGold(t *testing.T) {
	d := oneWordMentions(t, "a", "b")
	_, err := GenerateData(context.Background(), extractor(t, "exact_match"), []doc.Labeled{{Doc: d, Gold: [][]int{{0}}}})
	assert.True(t, errors.Is(err, errors.ErrMissingGold))
}

// recordingModel accepts pairs whose head_pair feature is in accept and
// records every vector it was shown.
type recordingModel struct {
	accept map[string]bool
	seen   []feature.Vector
}

func (m *recordingModel) Classify(v feature.Vector) bool {
	m.seen = append(m.seen, v)
	for k := range v {
		if m.accept[k] {
			return true
		}
	}
	return false
}

func TestResolveLinksNearestAccepted(t *testing.T) {
	d := oneWordMentions(t, "cat", "dog", "cat", "cat")
	model := &recordingModel{accept: map[string]bool{`head_pair("cat|cat")`: true}}
	r := New(extractor(t, "head_pair"), nil)
	r.SetModel(model)

	out, err := r.Resolve(context.Background(), d)
	require.NoError(t, err)
	require.NoError(t, cluster.Verify(d, out))

	assert.Equal(t, [][]*doc.Mention{
		{d.Mentions[0], d.Mentions[2], d.Mentions[3]},
		{d.Mentions[1]},
	}, cluster.Group(out))
	// mention 1 asks once, mention 2 twice (dog then cat), mention 3 stops at 2.
	assert.Len(t, model.seen, 4)
}

func TestResolveSingletonWhenNothingAccepted(t *testing.T) {
	d := oneWordMentions(t, "a", "b", "c")
	r := New(extractor(t, "head_pair"), nil)
	r.SetModel(&recordingModel{})

	out, err := r.Resolve(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, cluster.Group(out), 3)
}

func TestResolveRequiresModel(t *testing.T) {
	r := New(extractor(t, "exact_match"), DefaultLogisticTrainer())
	_, err := r.Resolve(context.Background(), oneWordMentions(t, "a"))
	assert.True(t, errors.Is(err, errors.ErrNotTrained))
}

func TestLogisticTrainerSeparatesExactMatch(t *testing.T) {
	pos := feature.Vector{}
	pos.Add(feature.Indicator(feature.ExactMatch, true), 1)
	neg := feature.Vector{}
	neg.Add(feature.Indicator(feature.ExactMatch, false), 1)

	var ds Dataset
	for i := 0; i < 10; i++ {
		ds = append(ds, Datum{Features: pos, Coreferent: true}, Datum{Features: neg})
	}

	trainer := LogisticTrainer{Epochs: 50, LearningRate: 0.5, L2: 0.0001, Threshold: 0.5}
	model, err := trainer.Fit(context.Background(), ds)
	require.NoError(t, err)
	lm := model.(*LogisticModel)

	assert.True(t, lm.Classify(pos))
	assert.False(t, lm.Classify(neg))
	assert.Greater(t, lm.Probability(pos), 0.9)
	assert.Less(t, lm.Probability(neg), 0.1)

	top := lm.TopFeatures(5)
	require.Len(t, top, 2)
	weights := map[string]float64{}
	for _, w := range top {
		weights[w.Feature] = w.Weight
	}
	assert.Greater(t, weights["exact_match(true)"], 0.0)
	assert.Less(t, weights["exact_match(false)"], 0.0)

	again, err := trainer.Fit(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, lm.Weights, again.(*LogisticModel).Weights)
}

func TestTrainAndResolve(t *testing.T) {
	train := oneWordMentions(t, "Obama", "Smith", "Obama", "Smith")
	r := New(extractor(t, "exact_match"), LogisticTrainer{Epochs: 100, LearningRate: 0.5, L2: 0.0001, Threshold: 0.5})
	require.NoError(t, r.Train(context.Background(), []doc.Labeled{{Doc: train, Gold: [][]int{{0, 2}, {1, 3}}}}))

	test := oneWordMentions(t, "Clinton", "Bush", "Clinton")
	out, err := r.Resolve(context.Background(), test)
	require.NoError(t, err)
	assert.Equal(t, [][]*doc.Mention{
		{test.Mentions[0], test.Mentions[2]},
		{test.Mentions[1]},
	}, cluster.Group(out))

	data, err := r.Export()
	require.NoError(t, err)
	restored := New(extractor(t, "exact_match"), nil)
	require.NoError(t, restored.Import(data))
	again, err := restored.Resolve(context.Background(), test)
	require.NoError(t, err)
	assert.Equal(t, cluster.Group(out), cluster.Group(again))
}

func TestExportRequiresLogisticModel(t *testing.T) {
	r := New(extractor(t, "exact_match"), nil)
	_, err := r.Export()
	assert.True(t, errors.Is(err, errors.ErrNotTrained))
}

func TestImportRejectsDifferentFeatures(t *testing.T) {
	train := oneWordMentions(t, "Obama", "Smith", "Obama")
	r := New(extractor(t, "exact_match", "head_match"), LogisticTrainer{Epochs: 10, LearningRate: 0.5, Threshold: 0.5})
	require.NoError(t, r.Train(context.Background(), []doc.Labeled{{Doc: train, Gold: [][]int{{0, 2}, {1}}}}))
	data, err := r.Export()
	require.NoError(t, err)

	tests := []struct {
		name     string
		features []string
	}{
		{"fewer", []string{"exact_match"}},
		{"reordered", []string{"head_match", "exact_match"}},
		{"conjunction", []string{"exact_match", "head_match+distance"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(extractor(t, tt.features...), nil).Import(data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrIncompatibleModel))
			assert.Contains(t, errors.FlattenHints(err), "classifier.features")
		})
	}

	require.NoError(t, New(extractor(t, "exact_match", "head_match"), nil).Import(data))
}
