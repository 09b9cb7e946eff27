// Package baseline holds the reference resolvers every other algorithm is
// measured against.
package baseline

import (
	"context"
	"encoding/json"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/lexicon"
	"github.com/teranos/coref/sieve"
)

// AllSingleton puts every mention in its own entity.
type AllSingleton struct{}

func (AllSingleton) Name() string { return "singleton" }

func (AllSingleton) Train(context.Context, []doc.Labeled) error { return nil }

func (AllSingleton) Resolve(ctx context.Context, d *doc.Document) ([]cluster.ClusteredMention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg := cluster.NewRegistry(d)
	for _, m := range d.Mentions {
		reg.MarkSingleton(m)
	}
	return reg.Assignments(), nil
}

// OneCluster puts every mention in a single entity.
type OneCluster struct{}

func (OneCluster) Name() string { return "one_cluster" }

func (OneCluster) Train(context.Context, []doc.Labeled) error { return nil }

func (OneCluster) Resolve(ctx context.Context, d *doc.Document) ([]cluster.ClusteredMention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg := cluster.NewRegistry(d)
	if len(d.Mentions) == 0 {
		return nil, nil
	}
	first := reg.MarkSingleton(d.Mentions[0])
	for _, m := range d.Mentions[1:] {
		reg.MarkCoreferent(m, first.Entity.ID)
	}
	return reg.Assignments(), nil
}

// HeadBaseline joins a mention to an earlier one with identical text, or
// else to the most recent earlier mention whose head word was seen in the
// same gold entity during training.
type HeadBaseline struct {
	stats *sieve.Stats
}

// NewHeadBaseline returns an untrained head baseline.
func NewHeadBaseline() *HeadBaseline { return &HeadBaseline{} }

func (b *HeadBaseline) Name() string { return "head_baseline" }

// Train records head co-occurrence from the gold entities.
func (b *HeadBaseline) Train(ctx context.Context, docs []doc.Labeled) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := sieve.Collect(docs)
	if err != nil {
		return err
	}
	b.stats = st
	return nil
}

func (b *HeadBaseline) Resolve(ctx context.Context, d *doc.Document) ([]cluster.ClusteredMention, error) {
	if b.stats == nil {
		return nil, errors.Wrap(errors.ErrNotTrained, "head baseline")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg := cluster.NewRegistry(d)
	byGloss := make(map[string]*doc.Mention)
	var seen []*doc.Mention
	for _, m := range d.Mentions {
		if prev, ok := byGloss[m.Gloss()]; ok {
			reg.MarkCoreferent(m, reg.EntityOf(prev))
		} else if prev := b.recentCoOccurring(m, seen); prev != nil {
			reg.MarkCoreferent(m, reg.EntityOf(prev))
		} else {
			reg.MarkSingleton(m)
		}
		byGloss[m.Gloss()] = m
		seen = append(seen, m)
	}
	return reg.Assignments(), nil
}

func (b *HeadBaseline) recentCoOccurring(m *doc.Mention, seen []*doc.Mention) *doc.Mention {
	head := lexicon.Fold(m.HeadWord())
	for i := len(seen) - 1; i >= 0; i-- {
		if b.stats.CoOccurred(head, seen[i].HeadWord()) {
			return seen[i]
		}
	}
	return nil
}

// Export serializes the trained head statistics.
func (b *HeadBaseline) Export() ([]byte, error) {
	if b.stats == nil {
		return nil, errors.Wrap(errors.ErrNotTrained, "head baseline")
	}
	return json.Marshal(b.stats)
}

// Import restores statistics written by Export.
func (b *HeadBaseline) Import(data []byte) error {
	var st sieve.Stats
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.Wrap(err, "decoding head baseline statistics")
	}
	b.stats = &st
	return nil
}
