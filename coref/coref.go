// Package coref selects a clustering algorithm from configuration and runs
// it over whole corpora.
package coref

import (
	"context"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/baseline"
	"github.com/teranos/coref/classifier"
	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/feature"
	"github.com/teranos/coref/lexicon"
	"github.com/teranos/coref/sieve"
)

// System partitions the mentions of a document into entities.
type System interface {
	Name() string
	Train(ctx context.Context, docs []doc.Labeled) error
	Resolve(ctx context.Context, d *doc.Document) ([]cluster.ClusteredMention, error)
}

// Snapshotter is implemented by systems whose trained state can be stored.
type Snapshotter interface {
	Export() ([]byte, error)
	Import(data []byte) error
}

// New builds the system named by cfg.Resolver.Algorithm.
func New(cfg *am.Config, lex lexicon.Lexicon) (System, error) {
	switch cfg.Resolver.Algorithm {
	case am.AlgorithmSieve:
		s, err := sieve.New(cfg.SieveSettings(), lex)
		if err != nil {
			return nil, errors.Wrap(err, "build sieve")
		}
		return s, nil
	case am.AlgorithmClassifier:
		spec, err := feature.ParseSpec(cfg.Classifier.Features)
		if err != nil {
			return nil, errors.Wrap(err, "parse classifier.features")
		}
		ext, err := feature.NewExtractor(spec, lex)
		if err != nil {
			return nil, errors.Wrap(err, "build extractor")
		}
		return classifier.New(ext, classifier.LogisticTrainer{
			Epochs:       cfg.Classifier.Epochs,
			LearningRate: cfg.Classifier.LearningRate,
			L2:           cfg.Classifier.L2,
			Threshold:    cfg.Classifier.Threshold,
		}), nil
	case am.AlgorithmSingleton:
		return baseline.AllSingleton{}, nil
	case am.AlgorithmOneCluster:
		return baseline.OneCluster{}, nil
	case am.AlgorithmHeadBaseline:
		return baseline.NewHeadBaseline(), nil
	default:
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrUnknownAlgorithm, "%q", cfg.Resolver.Algorithm),
			"resolver.algorithm must be one of %v", am.Algorithms,
		)
	}
}

// LoadLexicon returns the built-in English table, extended by lexicon.path
// when it is set.
func LoadLexicon(cfg *am.Config) (lexicon.Lexicon, error) {
	if cfg.Lexicon.Path == "" {
		return lexicon.English, nil
	}
	table, err := lexicon.LoadFile(cfg.Lexicon.Path, lexicon.English)
	if err != nil {
		return nil, errors.Wrap(err, "load lexicon")
	}
	return table, nil
}

// Build is New over LoadLexicon.
func Build(cfg *am.Config) (System, error) {
	lex, err := LoadLexicon(cfg)
	if err != nil {
		return nil, err
	}
	return New(cfg, lex)
}
