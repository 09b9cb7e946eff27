package classifier

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/teranos/coref/feature"
)

// Model decides whether an anaphor corefers with a candidate.
type Model interface {
	Classify(v feature.Vector) bool
}

// Trainer fits a Model to a dataset.
type Trainer interface {
	Fit(ctx context.Context, ds Dataset) (Model, error)
}

// LogisticTrainer fits an L2-regularised logistic regression by plain SGD.
// Datums are visited in dataset order every epoch, so fitting is
// deterministic.
type LogisticTrainer struct {
	Epochs       int
	LearningRate float64
	L2           float64
	Threshold    float64
}

// DefaultLogisticTrainer returns the standard hyperparameters.
func DefaultLogisticTrainer() LogisticTrainer {
	return LogisticTrainer{Epochs: 20, LearningRate: 0.1, L2: 0.0001, Threshold: 0.5}
}

// Fit trains a LogisticModel.
func (t LogisticTrainer) Fit(ctx context.Context, ds Dataset) (Model, error) {
	keys := make(map[string]struct{})
	for _, d := range ds {
		for k := range d.Features {
			keys[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	m := &LogisticModel{
		Index:     make(map[string]int, len(names)),
		Names:     names,
		Weights:   make([]float64, len(names)),
		Threshold: t.Threshold,
	}
	for i, k := range names {
		m.Index[k] = i
	}

	rows := make([][]float64, len(ds))
	for i, d := range ds {
		rows[i] = m.dense(d.Features)
	}

	decay := 1 - t.LearningRate*t.L2
	for epoch := 0; epoch < t.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, d := range ds {
			y := 0.0
			if d.Coreferent {
				y = 1
			}
			g := sigmoid(floats.Dot(m.Weights, rows[i])+m.Bias) - y
			floats.Scale(decay, m.Weights)
			floats.AddScaled(m.Weights, -t.LearningRate*g, rows[i])
			m.Bias -= t.LearningRate * g
		}
	}
	return m, nil
}

// LogisticModel is a trained logistic regression over feature keys.
type LogisticModel struct {
	Index     map[string]int `json:"-"`
	Names     []string       `json:"names"`
	Weights   []float64      `json:"weights"`
	Bias      float64        `json:"bias"`
	Threshold float64        `json:"threshold"`
	// Features is the extractor spec the weights were fitted against.
	Features []string `json:"features"`
}

// reindex rebuilds Index after decoding.
func (m *LogisticModel) reindex() {
	m.Index = make(map[string]int, len(m.Names))
	for i, k := range m.Names {
		m.Index[k] = i
	}
}

func (m *LogisticModel) dense(v feature.Vector) []float64 {
	x := make([]float64, len(m.Weights))
	for k, c := range v {
		if i, ok := m.Index[k]; ok {
			x[i] = c
		}
	}
	return x
}

// Probability returns P(coreferent | v). Features unseen in training are
// ignored.
func (m *LogisticModel) Probability(v feature.Vector) float64 {
	z := m.Bias
	for k, c := range v {
		if i, ok := m.Index[k]; ok {
			z += m.Weights[i] * c
		}
	}
	return sigmoid(z)
}

// Classify accepts pairs whose probability exceeds the threshold.
func (m *LogisticModel) Classify(v feature.Vector) bool {
	return m.Probability(v) > m.Threshold
}

// Weight is a learnt feature weight.
type Weight struct {
	Feature string
	Weight  float64
}

// TopFeatures returns the n weights of largest magnitude.
func (m *LogisticModel) TopFeatures(n int) []Weight {
	out := make([]Weight, len(m.Names))
	for i, k := range m.Names {
		out[i] = Weight{Feature: k, Weight: m.Weights[i]}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return math.Abs(out[a].Weight) > math.Abs(out[b].Weight)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
