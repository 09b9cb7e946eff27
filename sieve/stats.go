package sieve

import (
	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/lexicon"
)

// Stats is what the sieve learns from gold-clustered documents: which head
// words were seen in the same entity, and how far apart same-sentence
// coreferent mentions tend to be. Stats is read-only once Train returns.
type Stats struct {
	Heads         map[string]map[string]bool `json:"heads"`
	DistanceSum   int                        `json:"distance_sum"`
	DistanceCount int                        `json:"distance_count"`
}

func newStats() *Stats {
	return &Stats{Heads: make(map[string]map[string]bool)}
}

// Collect builds statistics from labeled documents. Every ordered pair of
// members of a gold entity counts, a mention paired with itself included.
func Collect(docs []doc.Labeled) (*Stats, error) {
	st := newStats()
	for _, l := range docs {
		reg, err := cluster.FromGold(l)
		if err != nil {
			return nil, errors.Wrapf(err, "collecting statistics from %s", l.Doc.ID)
		}
		for _, e := range reg.Live() {
			st.observe(e.Mentions())
		}
	}
	return st, nil
}

func (st *Stats) observe(members []*doc.Mention) {
	for _, m1 := range members {
		for _, m2 := range members {
			h1, h2 := lexicon.Fold(m1.HeadWord()), lexicon.Fold(m2.HeadWord())
			st.link(h1, h2)
			st.link(h2, h1)
			if m1.SentenceIndex == m2.SentenceIndex {
				d := m2.Begin - m1.End
				if d < 0 {
					d = -d
				}
				st.DistanceSum += d
				st.DistanceCount++
			}
		}
	}
}

func (st *Stats) link(a, b string) {
	set, ok := st.Heads[a]
	if !ok {
		set = make(map[string]bool)
		st.Heads[a] = set
	}
	set[b] = true
}

// CoOccurred reports whether two head words were ever in the same gold
// entity. Lookups are case-insensitive.
func (st *Stats) CoOccurred(h1, h2 string) bool {
	return st.Heads[lexicon.Fold(h1)][lexicon.Fold(h2)]
}

// MeanDistance is the average same-sentence distance, false when nothing
// was observed.
func (st *Stats) MeanDistance() (float64, bool) {
	if st.DistanceCount == 0 {
		return 0, false
	}
	return float64(st.DistanceSum) / float64(st.DistanceCount), true
}
