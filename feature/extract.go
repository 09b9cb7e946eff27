package feature

import (
	"math"
	"strings"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/lexicon"
)

const (
	distanceCap     = 4
	distanceMax     = 5
	distanceBuckets = 5
	earlyToken      = 5
)

// extractable are the kinds Extract knows how to compute.
var extractable = map[Kind]bool{
	ExactMatch:    true,
	FuzzyMatch:    true,
	Distance:      true,
	EarlyMatch:    true,
	PronounMatch:  true,
	OnePronoun:    true,
	Compatible:    true,
	EarlyOrFuzzy:  true,
	HeadMatch:     true,
	FuzzyFraction: true,
	HeadPair:      true,
	ClusterHeads:  true,
}

// Spec is the active feature set: single kinds plus conjoined pairs.
type Spec struct {
	Singles []Kind
	Pairs   [][2]Kind
}

// ParseSpec reads configuration names. "a+b" conjoins two kinds.
func ParseSpec(names []string) (Spec, error) {
	var spec Spec
	for _, name := range names {
		if left, right, ok := strings.Cut(name, "+"); ok {
			a, err := ParseKind(strings.TrimSpace(left))
			if err != nil {
				return Spec{}, err
			}
			b, err := ParseKind(strings.TrimSpace(right))
			if err != nil {
				return Spec{}, err
			}
			spec.Pairs = append(spec.Pairs, [2]Kind{a, b})
			continue
		}
		k, err := ParseKind(strings.TrimSpace(name))
		if err != nil {
			return Spec{}, err
		}
		spec.Singles = append(spec.Singles, k)
	}
	return spec, nil
}

// Names renders the spec back into configuration names.
func (s Spec) Names() []string {
	names := make([]string, 0, len(s.Singles)+len(s.Pairs))
	for _, k := range s.Singles {
		names = append(names, k.String())
	}
	for _, p := range s.Pairs {
		names = append(names, p[0].String()+"+"+p[1].String())
	}
	return names
}

// Extractor computes the active features of an (anaphor, candidate) pair.
type Extractor struct {
	spec Spec
	lex  lexicon.Lexicon
}

// Validate checks that every kind in s can be extracted.
func (s Spec) Validate() error {
	check := func(k Kind) error {
		if !extractable[k] {
			return errors.Wrapf(errors.ErrUnknownFeature, "%s cannot be extracted", k)
		}
		return nil
	}
	for _, k := range s.Singles {
		if err := check(k); err != nil {
			return err
		}
	}
	for _, p := range s.Pairs {
		if err := check(p[0]); err != nil {
			return err
		}
		if err := check(p[1]); err != nil {
			return err
		}
	}
	return nil
}

// NewExtractor validates spec and binds it to a lexicon.
func NewExtractor(spec Spec, lex lexicon.Lexicon) (*Extractor, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{spec: spec, lex: lex}, nil
}

// Spec returns the active feature set.
func (e *Extractor) Spec() Spec { return e.spec }

// Label is the training-time output feature.
func (e *Extractor) Label(coreferent bool) Feature { return Indicator(Coreferent, coreferent) }

// Extract returns the vector of active features for anaphor against cand.
func (e *Extractor) Extract(anaphor *doc.Mention, cand cluster.ClusteredMention) (Vector, error) {
	v := make(Vector, len(e.spec.Singles)+len(e.spec.Pairs))
	for _, k := range e.spec.Singles {
		f, err := e.feature(k, anaphor, cand)
		if err != nil {
			return nil, err
		}
		v.Add(f, 1)
	}
	for _, p := range e.spec.Pairs {
		a, err := e.feature(p[0], anaphor, cand)
		if err != nil {
			return nil, err
		}
		b, err := e.feature(p[1], anaphor, cand)
		if err != nil {
			return nil, err
		}
		v.Add(Pair(a, b), 1)
	}
	return v, nil
}

func (e *Extractor) feature(k Kind, anaphor *doc.Mention, cand cluster.ClusteredMention) (Feature, error) {
	m := cand.Mention
	switch k {
	case ExactMatch:
		return Indicator(k, exactMatch(anaphor, m)), nil
	case FuzzyMatch:
		return Indicator(k, overlap(anaphor, m) > 1), nil
	case Distance:
		d := anaphor.SentenceIndex - m.SentenceIndex
		if d < 0 {
			d = -d
		}
		return Bucket(k, min(d, distanceCap), distanceMax, distanceBuckets)
	case EarlyMatch:
		return Indicator(k, early(anaphor, m)), nil
	case PronounMatch:
		return Indicator(k, e.isPronoun(anaphor) && e.isPronoun(m)), nil
	case OnePronoun:
		return Indicator(k, e.isPronoun(anaphor) != e.isPronoun(m)), nil
	case Compatible:
		return Indicator(k, e.compatible(anaphor, m)), nil
	case EarlyOrFuzzy:
		return Indicator(k, early(anaphor, m) || overlap(anaphor, m) > 1), nil
	case HeadMatch:
		return Indicator(k, lexicon.Fold(anaphor.HeadWord()) == lexicon.Fold(m.HeadWord())), nil
	case FuzzyFraction:
		n := len(anaphor.Span())
		frac := 0.0
		if n > 0 {
			frac = float64(overlap(anaphor, m)) / float64(n)
		}
		return Real(k, math.Round(frac*100)/100), nil
	case HeadPair:
		return String(k, lexicon.Fold(anaphor.HeadWord())+"|"+lexicon.Fold(m.HeadWord())), nil
	case ClusterHeads:
		var heads []string
		if cand.Entity != nil {
			for _, member := range cand.Entity.Mentions() {
				heads = append(heads, lexicon.Fold(member.HeadWord()))
			}
		} else {
			heads = append(heads, lexicon.Fold(m.HeadWord()))
		}
		return Set(k, heads), nil
	}
	return Feature{}, errors.Wrapf(errors.ErrUnknownFeature, "%s", k)
}

// compatible is false only for two pronouns that disagree in plurality,
// person or specific gender.
func (e *Extractor) compatible(a, b *doc.Mention) bool {
	pa, okA := e.lex.Pronoun(a.HeadWord())
	pb, okB := e.lex.Pronoun(b.HeadWord())
	if !okA || !okB {
		return true
	}
	if pa.Plural != pb.Plural || pa.Person != pb.Person {
		return false
	}
	return pa.Gender.Specific() == pb.Gender.Specific()
}

func (e *Extractor) isPronoun(m *doc.Mention) bool {
	_, ok := e.lex.Pronoun(m.HeadWord())
	return ok
}

func exactMatch(a, b *doc.Mention) bool {
	return lexicon.Fold(a.Gloss()) == lexicon.Fold(b.Gloss())
}

func early(a, b *doc.Mention) bool {
	return a.Begin < earlyToken && b.Begin < earlyToken
}

// overlap counts anaphor tokens whose word also occurs in the candidate span.
func overlap(anaphor, cand *doc.Mention) int {
	words := make(map[string]struct{}, cand.End-cand.Begin)
	for _, t := range cand.Span() {
		words[t.Word] = struct{}{}
	}
	n := 0
	for _, t := range anaphor.Span() {
		if _, ok := words[t.Word]; ok {
			n++
		}
	}
	return n
}
