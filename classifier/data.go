// Package classifier resolves coreference with a learned pairwise model:
// for each mention it asks, nearest candidate first, whether the two corefer
// and links to the first candidate the model accepts.
package classifier

import (
	"context"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/feature"
)

// Datum is one labeled (anaphor, candidate) pair.
type Datum struct {
	Doc        string
	Anaphor    int
	Candidate  int
	Features   feature.Vector
	Coreferent bool
}

// Dataset is an ordered list of training pairs.
type Dataset []Datum

// Positives counts coreferent datums.
func (ds Dataset) Positives() int {
	n := 0
	for _, d := range ds {
		if d.Coreferent {
			n++
		}
	}
	return n
}

// GenerateData builds training pairs. Each mention is paired with its
// predecessors, nearest first, up to and including its closest gold
// antecedent; nothing further back is sampled.
func GenerateData(ctx context.Context, ext *feature.Extractor, docs []doc.Labeled) (Dataset, error) {
	var ds Dataset
	for _, l := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gold, err := cluster.FromGold(l)
		if err != nil {
			return nil, errors.Wrapf(err, "generating training data from %s", l.Doc.ID)
		}
		mentions := l.Doc.Mentions
		for i, anaphor := range mentions {
			source := gold.EntityOf(anaphor)
			for j := i - 1; j >= 0; j-- {
				cand := mentions[j]
				v, err := ext.Extract(anaphor, gold.Clustered(cand))
				if err != nil {
					return nil, errors.Wrapf(err, "document %s mentions %d/%d", l.Doc.ID, i, j)
				}
				coreferent := gold.EntityOf(cand) == source
				ds = append(ds, Datum{
					Doc:        l.Doc.ID,
					Anaphor:    i,
					Candidate:  j,
					Features:   v,
					Coreferent: coreferent,
				})
				if coreferent {
					break
				}
			}
		}
	}
	return ds, nil
}
