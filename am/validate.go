package am

import (
	"slices"

	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/feature"
	"github.com/teranos/coref/sieve"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Database path is optional, empty falls back to coref.db

	if !slices.Contains(Algorithms, c.Resolver.Algorithm) {
		return errors.Wrapf(errors.ErrUnknownAlgorithm, "resolver.algorithm %q (known: %v)", c.Resolver.Algorithm, Algorithms)
	}
	// Workers: 0 means one worker, negative is invalid
	if c.Resolver.Workers < 0 {
		return errors.Newf("resolver.workers must be >= 0, got %d", c.Resolver.Workers)
	}

	for _, name := range c.Sieve.Passes {
		if !sieve.KnownPass(name) {
			return errors.Wrapf(errors.ErrUnknownPass, "sieve.passes %q", name)
		}
	}
	if c.Sieve.PredicateWindow <= 0 {
		return errors.Newf("sieve.predicate_window must be > 0, got %d", c.Sieve.PredicateWindow)
	}
	if c.Sieve.PronounSentenceWindow <= 0 {
		return errors.Newf("sieve.pronoun_sentence_window must be > 0, got %d", c.Sieve.PronounSentenceWindow)
	}
	if c.Sieve.PronounNounScale <= 0 {
		return errors.Newf("sieve.pronoun_noun_scale must be > 0, got %f", c.Sieve.PronounNounScale)
	}

	spec, err := feature.ParseSpec(c.Classifier.Features)
	if err == nil {
		err = spec.Validate()
	}
	if err != nil {
		return errors.Wrap(err, "classifier.features")
	}
	if c.Classifier.Epochs <= 0 {
		return errors.Newf("classifier.epochs must be > 0, got %d", c.Classifier.Epochs)
	}
	if c.Classifier.LearningRate <= 0 {
		return errors.Newf("classifier.learning_rate must be > 0, got %f", c.Classifier.LearningRate)
	}
	if c.Classifier.L2 < 0 {
		return errors.Newf("classifier.l2 must be >= 0, got %f", c.Classifier.L2)
	}
	if c.Classifier.Threshold <= 0 || c.Classifier.Threshold >= 1 {
		return errors.Newf("classifier.threshold must be in (0, 1), got %f", c.Classifier.Threshold)
	}

	return nil
}

// SieveSettings converts the sieve section for sieve.New.
func (c *Config) SieveSettings() sieve.Config {
	return sieve.Config{
		Passes:                c.Sieve.Passes,
		PredicateWindow:       c.Sieve.PredicateWindow,
		PronounSentenceWindow: c.Sieve.PronounSentenceWindow,
		PronounNounScale:      c.Sieve.PronounNounScale,
		Demonstratives:        c.Sieve.Demonstratives,
	}
}
