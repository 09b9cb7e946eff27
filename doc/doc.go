// Package doc holds the annotated input of coreference resolution: tokenized
// sentences and the mentions extracted from them. Everything here is produced
// once by an upstream annotator and never mutated afterwards.
package doc

import (
	"strings"

	"github.com/teranos/coref/errors"
)

// Token is one word of a sentence with its annotations.
type Token struct {
	Word    string `json:"word" yaml:"word"`
	POS     string `json:"pos" yaml:"pos"`
	NER     string `json:"ner,omitempty" yaml:"ner,omitempty"`
	Quoted  bool   `json:"quoted,omitempty" yaml:"quoted,omitempty"`
	Speaker string `json:"speaker,omitempty" yaml:"speaker,omitempty"`
}

// IsNoun reports whether the token is tagged as any kind of noun.
func (t Token) IsNoun() bool { return strings.HasPrefix(t.POS, "NN") }

// IsProperNoun reports NNP/NNPS.
func (t Token) IsProperNoun() bool { return t.POS == "NNP" || t.POS == "NNPS" }

// IsPluralNoun reports NNS/NNPS.
func (t Token) IsPluralNoun() bool { return t.POS == "NNS" || t.POS == "NNPS" }

// IsPronoun reports personal and possessive pronoun tags.
func (t Token) IsPronoun() bool { return t.POS == "PRP" || t.POS == "PRP$" }

// Sentence is an ordered token sequence.
type Sentence struct {
	Index  int
	Tokens []Token
}

// Mention is a token span [Begin, End) in one sentence. Index is the
// mention's position in its document and is the identity every cluster
// registry keys on.
type Mention struct {
	Index         int
	Sentence      *Sentence
	SentenceIndex int
	Begin         int
	End           int
	Head          int
}

// Gloss is the surface text of the span.
func (m *Mention) Gloss() string {
	words := make([]string, 0, m.End-m.Begin)
	for _, tok := range m.Sentence.Tokens[m.Begin:m.End] {
		words = append(words, tok.Word)
	}
	return strings.Join(words, " ")
}

// HeadToken returns the token at the head index.
func (m *Mention) HeadToken() Token { return m.Sentence.Tokens[m.Head] }

// HeadWord returns the head token's surface word.
func (m *Mention) HeadWord() string { return m.Sentence.Tokens[m.Head].Word }

// Span returns the tokens covered by the mention.
func (m *Mention) Span() []Token { return m.Sentence.Tokens[m.Begin:m.End] }

func (m *Mention) String() string {
	return m.Gloss()
}

// Document is an ordered list of sentences plus the mentions found in them,
// in document order.
type Document struct {
	ID        string
	Sentences []*Sentence
	Mentions  []*Mention
}

// New builds a document and validates that every mention span fits its
// sentence. Mention Index and Sentence fields are filled in from position.
func New(id string, sentences [][]Token, spans []Span) (*Document, error) {
	d := &Document{ID: id}
	for i, toks := range sentences {
		d.Sentences = append(d.Sentences, &Sentence{Index: i, Tokens: toks})
	}
	for i, sp := range spans {
		if sp.Sentence < 0 || sp.Sentence >= len(d.Sentences) {
			return nil, errors.Wrapf(errors.ErrInvalidDocument,
				"document %s: mention %d references sentence %d of %d", id, i, sp.Sentence, len(d.Sentences))
		}
		s := d.Sentences[sp.Sentence]
		if sp.Begin < 0 || sp.End > len(s.Tokens) || sp.Begin >= sp.End {
			return nil, errors.Wrapf(errors.ErrInvalidDocument,
				"document %s: mention %d span [%d,%d) outside sentence of %d tokens", id, i, sp.Begin, sp.End, len(s.Tokens))
		}
		if sp.Head < sp.Begin || sp.Head >= sp.End {
			return nil, errors.Wrapf(errors.ErrInvalidDocument,
				"document %s: mention %d head %d outside span [%d,%d)", id, i, sp.Head, sp.Begin, sp.End)
		}
		d.Mentions = append(d.Mentions, &Mention{
			Index:         i,
			Sentence:      s,
			SentenceIndex: sp.Sentence,
			Begin:         sp.Begin,
			End:           sp.End,
			Head:          sp.Head,
		})
	}
	return d, nil
}

// Span locates a mention before it is bound to a document.
type Span struct {
	Sentence int `json:"sentence" yaml:"sentence"`
	Begin    int `json:"begin" yaml:"begin"`
	End      int `json:"end" yaml:"end"`
	Head     int `json:"head" yaml:"head"`
}

// IndexOfSentence returns the position of s in the document, or -1.
func (d *Document) IndexOfSentence(s *Sentence) int {
	for i, cand := range d.Sentences {
		if cand == s {
			return i
		}
	}
	return -1
}

// Labeled pairs a document with its gold partition: each inner slice lists
// the mention indices of one gold entity.
type Labeled struct {
	Doc  *Document
	Gold [][]int
}
