// Package sieve is the rule-based resolver: a fixed sequence of passes, from
// most to least precise, each merging entities left by the pass before it.
// Entities only ever grow, so the entity count never increases across passes.
package sieve

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/lexicon"
	"github.com/teranos/coref/logger"
)

// Pass names accepted in Config.Passes.
const (
	PassExact       = "exact"
	PassConstructs  = "constructs"
	PassAcronym     = "acronym"
	PassHead        = "head"
	PassRelaxedHead = "relaxed_head"
	PassPronoun     = "pronoun"
	PassPronounNoun = "pronoun_noun"
	PassSpeaker     = "speaker"
)

// DefaultPasses is the standard six-pass order.
var DefaultPasses = []string{
	PassExact, PassConstructs, PassHead, PassRelaxedHead, PassPronoun, PassPronounNoun,
}

// Config tunes the sieve.
type Config struct {
	Passes                []string
	PredicateWindow       int
	PronounSentenceWindow int
	PronounNounScale      float64
	Demonstratives        []string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Passes:                append([]string(nil), DefaultPasses...),
		PredicateWindow:       12,
		PronounSentenceWindow: 3,
		PronounNounScale:      0.5,
		Demonstratives:        []string{"this", "that"},
	}
}

type pass struct {
	name string
	run  func(r *run) int
}

var registry = map[string]func(r *run) int{
	PassExact:       (*run).exact,
	PassConstructs:  (*run).constructs,
	PassAcronym:     (*run).acronym,
	PassHead:        (*run).head,
	PassRelaxedHead: (*run).relaxedHead,
	PassPronoun:     (*run).pronoun,
	PassPronounNoun: (*run).pronounNoun,
	PassSpeaker:     (*run).speaker,
}

// KnownPass reports whether name is a registered pass.
func KnownPass(name string) bool {
	_, ok := registry[name]
	return ok
}

// Sieve resolves documents with the configured passes.
type Sieve struct {
	cfg            Config
	lex            lexicon.Lexicon
	passes         []pass
	demonstratives map[string]bool
	stats          *Stats
	log            *zap.SugaredLogger
}

// New validates cfg and builds an untrained sieve.
func New(cfg Config, lex lexicon.Lexicon) (*Sieve, error) {
	if cfg.PredicateWindow <= 0 || cfg.PronounSentenceWindow <= 0 || cfg.PronounNounScale <= 0 {
		return nil, errors.Newf("sieve windows must be positive (predicate=%d pronoun_sentence=%d pronoun_noun_scale=%g)",
			cfg.PredicateWindow, cfg.PronounSentenceWindow, cfg.PronounNounScale)
	}
	s := &Sieve{
		cfg:            cfg,
		lex:            lex,
		demonstratives: make(map[string]bool, len(cfg.Demonstratives)),
		log:            logger.ComponentLogger("sieve"),
	}
	for _, name := range cfg.Passes {
		fn, ok := registry[name]
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownPass, "%q", name)
		}
		s.passes = append(s.passes, pass{name: name, run: fn})
	}
	for _, w := range cfg.Demonstratives {
		s.demonstratives[lexicon.Fold(w)] = true
	}
	return s, nil
}

// Name identifies the algorithm.
func (s *Sieve) Name() string { return "sieve" }

// Train collects head co-occurrence and distance statistics.
func (s *Sieve) Train(ctx context.Context, docs []doc.Labeled) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := Collect(docs)
	if err != nil {
		return err
	}
	s.stats = st
	s.log.Infow("sieve trained",
		logger.FieldCount, len(docs),
		"head_words", len(st.Heads),
		"distance_sum", st.DistanceSum,
		"distance_count", st.DistanceCount)
	return nil
}

// Stats returns the trained statistics, nil before training.
func (s *Sieve) Stats() *Stats { return s.stats }

// Export serializes the trained statistics.
func (s *Sieve) Export() ([]byte, error) {
	if s.stats == nil {
		return nil, errors.Wrap(errors.ErrNotTrained, "sieve")
	}
	return json.Marshal(s.stats)
}

// Import restores statistics written by Export.
func (s *Sieve) Import(data []byte) error {
	st := newStats()
	if err := json.Unmarshal(data, st); err != nil {
		return errors.Wrap(err, "decoding sieve statistics")
	}
	if st.Heads == nil {
		st.Heads = make(map[string]map[string]bool)
	}
	s.stats = st
	return nil
}

// Step records the state after one pass.
type Step struct {
	Pass     string
	Merges   int
	Entities int
}

// Resolve clusters the mentions of d.
func (s *Sieve) Resolve(ctx context.Context, d *doc.Document) ([]cluster.ClusteredMention, error) {
	reg, _, err := s.resolve(ctx, d)
	if err != nil {
		return nil, err
	}
	return reg.Assignments(), nil
}

// Trace resolves d and reports the live entity count after every pass.
func (s *Sieve) Trace(ctx context.Context, d *doc.Document) ([]Step, error) {
	_, steps, err := s.resolve(ctx, d)
	return steps, err
}

func (s *Sieve) resolve(ctx context.Context, d *doc.Document) (*cluster.Registry, []Step, error) {
	if s.stats == nil {
		return nil, nil, errors.Wrap(errors.ErrNotTrained, "sieve")
	}
	log := logger.ChildLogger(s.log, logger.FieldDocID, d.ID)
	r := &run{s: s, d: d, reg: cluster.NewRegistry(d)}
	for _, m := range d.Mentions {
		r.reg.MarkSingleton(m)
	}

	steps := make([]Step, 0, len(s.passes))
	for _, p := range s.passes {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		start := time.Now()
		merges := p.run(r)
		steps = append(steps, Step{Pass: p.name, Merges: merges, Entities: r.reg.Len()})
		log.Debugw("pass done",
			logger.FieldPass, p.name,
			logger.FieldMerges, merges,
			logger.FieldEntities, r.reg.Len(),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}
	return r.reg, steps, nil
}
