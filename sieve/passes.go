package sieve

import (
	"strings"
	"unicode"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/lexicon"
)

// run is the state of one document moving through the passes.
type run struct {
	s   *Sieve
	d   *doc.Document
	reg *cluster.Registry
}

// pairs offers every ordered pair of mentions not yet in the same entity to
// match and merges the ones it accepts.
func (r *run) pairs(match func(m1, m2 *doc.Mention) bool) int {
	merges := 0
	for _, m1 := range r.d.Mentions {
		for _, m2 := range r.d.Mentions {
			if r.reg.Same(m1, m2) {
				continue
			}
			if match(m1, m2) && r.reg.MergeMentions(m1, m2) {
				merges++
			}
		}
	}
	return merges
}

func (r *run) lookup(m *doc.Mention) (lexicon.Pronoun, bool) {
	return r.s.lex.Pronoun(m.HeadWord())
}

func (r *run) isPronoun(m *doc.Mention) bool {
	_, ok := r.lookup(m)
	return ok
}

func (r *run) isThirdPerson(m *doc.Mention) bool {
	p, ok := r.lookup(m)
	return ok && p.Person == lexicon.ThirdPerson
}

// exact joins mentions with the same lowercased text when neither head is a
// pronoun. A mention that cannot join claims the key for itself instead.
func (r *run) exact() int {
	seen := make(map[string]*doc.Mention)
	merges := 0
	for _, m := range r.d.Mentions {
		key := lexicon.Fold(m.Gloss())
		if first, ok := seen[key]; ok && !r.isPronoun(m) && !r.isPronoun(first) {
			if r.reg.MergeMentions(first, m) {
				merges++
			}
			continue
		}
		seen[key] = m
	}
	return merges
}

// constructs links appositives and predicate nominatives inside a sentence.
func (r *run) constructs() int {
	return r.pairs(func(m1, m2 *doc.Mention) bool {
		if m1.SentenceIndex != m2.SentenceIndex {
			return false
		}
		return r.appositive(m1, m2) || r.predicateNominative(m1, m2)
	})
}

func (r *run) appositive(m1, m2 *doc.Mention) bool {
	toks := m1.Sentence.Tokens
	if m2.Begin != m1.End+1 || toks[m1.End].Word != "," {
		return false
	}
	tag1, tag2 := m1.HeadToken().POS, m2.HeadToken().POS
	if (tag1 == "PRP" && tag2 == "NNP") || (tag1 == "NNS" && tag2 == "DT") {
		return true
	}
	if tag1 == "NNP" && tag2 == "PRP" && !r.s.lex.IsName(m1.HeadWord()) && !r.isPronoun(m1) {
		p2, ok := r.lookup(m2)
		return ok && p2.Person == lexicon.ThirdPerson && !p2.Gender.Animate()
	}
	return false
}

func (r *run) predicateNominative(m1, m2 *doc.Mention) bool {
	toks := m1.Sentence.Tokens
	if m1.End >= len(toks) || toks[m1.End].Word != "is" {
		return false
	}
	if m2.Begin <= m1.End || m2.Begin-m1.End >= r.s.cfg.PredicateWindow {
		return false
	}
	if p2, ok := r.lookup(m2); ok && p2.Person == lexicon.ThirdPerson &&
		(!p2.Gender.Animate() || p2.Gender == lexicon.Either) && !r.isPronoun(m1) {
		return true
	}
	return m1.HeadToken().POS == "NNP" && m2.HeadToken().POS == "PRP$"
}

// acronym links an all-caps mention to a slightly longer one containing it
// in the same sentence ("UN" and "the UN", "USTC" and "USTC 's").
func (r *run) acronym() int {
	return r.pairs(func(m1, m2 *doc.Mention) bool {
		if m1.SentenceIndex != m2.SentenceIndex {
			return false
		}
		g1, g2 := m1.Gloss(), m2.Gloss()
		if g1 == "I" || strings.ToUpper(g1) != g1 || !strings.ContainsFunc(g1, unicode.IsUpper) {
			return false
		}
		return strings.Contains(g2, g1) && len(g2)-len(g1) < 5
	})
}

// head links equal head words, ignoring case. Third-person pronouns are
// left to the pronoun pass.
func (r *run) head() int {
	return r.pairs(func(m1, m2 *doc.Mention) bool {
		return strings.EqualFold(m1.HeadWord(), m2.HeadWord()) &&
			!r.isThirdPerson(m1) && !r.isThirdPerson(m2)
	})
}

// relaxedHead links head words that were coreferent in training.
func (r *run) relaxedHead() int {
	return r.pairs(func(m1, m2 *doc.Mention) bool {
		h1, h2 := m1.HeadWord(), m2.HeadWord()
		if !r.s.stats.CoOccurred(h1, h2) {
			return false
		}
		if r.isPronoun(m1) || r.isPronoun(m2) {
			return false
		}
		return !r.s.demonstratives[lexicon.Fold(h1)] && !r.s.demonstratives[lexicon.Fold(h2)]
	})
}

// pronoun links agreeing pronouns. Third-person pronouns must also be within
// the sentence window.
func (r *run) pronoun() int {
	return r.pairs(func(m1, m2 *doc.Mention) bool {
		p1, ok1 := r.lookup(m1)
		p2, ok2 := r.lookup(m2)
		if !ok1 || !ok2 || p1.Person != p2.Person {
			return false
		}
		switch p1.Person {
		case lexicon.FirstPerson:
			return p1.Plural == p2.Plural
		case lexicon.SecondPerson:
			return true
		case lexicon.ThirdPerson:
			dist := m1.SentenceIndex - m2.SentenceIndex
			if dist < 0 {
				dist = -dist
			}
			return p1.Gender.Compatible(p2.Gender) && p1.Plural == p2.Plural &&
				dist < r.s.cfg.PronounSentenceWindow
		}
		return false
	})
}

// pronounNoun links a third-person pronoun to a nearby noun of the same
// number in its sentence. Nearby is a fraction of the mean trained distance.
func (r *run) pronounNoun() int {
	mean, ok := r.s.stats.MeanDistance()
	if !ok {
		return 0
	}
	limit := r.s.cfg.PronounNounScale * mean
	return r.pairs(func(m1, m2 *doc.Mention) bool {
		if m1.SentenceIndex != m2.SentenceIndex {
			return false
		}
		gap := m1.Begin - m2.End
		if gap < 0 {
			gap = -gap
		}
		if float64(gap) > limit {
			return false
		}
		p1, ok := r.lookup(m1)
		head := m2.HeadToken()
		if !ok || p1.Person != lexicon.ThirdPerson || !head.IsNoun() {
			return false
		}
		if p1.Plural {
			return head.IsPluralNoun()
		}
		return !head.IsPluralNoun()
	})
}

// speaker links a quoted mention to the non-pronoun mention named as the
// speaker of its head token.
func (r *run) speaker() int {
	return r.pairs(func(m1, m2 *doc.Mention) bool {
		if m1.SentenceIndex != m2.SentenceIndex {
			return false
		}
		h := m1.HeadToken()
		return h.Quoted && h.Speaker != "" && strings.Contains(h.Speaker, m2.HeadWord()) && !r.isPronoun(m2)
	})
}
