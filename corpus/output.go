package corpus

import (
	"encoding/json"
	"io"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
)

// Member is one mention of an output cluster.
type Member struct {
	Index    int    `json:"index"`
	Sentence int    `json:"sentence"`
	Gloss    string `json:"gloss"`
}

// Result is the resolved partition of one document.
type Result struct {
	ID       string     `json:"id"`
	Clusters [][]Member `json:"clusters"`
}

// NewResult groups a document's assignments into output clusters, ordered
// by first mention.
func NewResult(d *doc.Document, assignments []cluster.ClusteredMention) Result {
	r := Result{ID: d.ID, Clusters: [][]Member{}}
	for _, group := range cluster.Group(assignments) {
		members := make([]Member, len(group))
		for i, m := range group {
			members[i] = Member{Index: m.Index, Sentence: m.SentenceIndex, Gloss: m.Gloss()}
		}
		r.Clusters = append(r.Clusters, members)
	}
	return r
}

// Write renders results as indented JSON.
func Write(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return errors.Wrap(err, "encoding results")
	}
	return nil
}
