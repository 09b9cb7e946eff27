package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/coref/errors"
)

func words(tagged ...string) []Token {
	var toks []Token
	for i := 0; i+1 < len(tagged); i += 2 {
		toks = append(toks, Token{Word: tagged[i], POS: tagged[i+1]})
	}
	return toks
}

func TestNew(t *testing.T) {
	d, err := New("d1",
		[][]Token{
			words("The", "DT", "big", "JJ", "dog", "NN", "barked", "VBD"),
			words("It", "PRP", "slept", "VBD"),
		},
		[]Span{
			{Sentence: 0, Begin: 0, End: 3, Head: 2},
			{Sentence: 1, Begin: 0, End: 1, Head: 0},
		})
	require.NoError(t, err)
	require.Len(t, d.Mentions, 2)

	dog := d.Mentions[0]
	assert.Equal(t, 0, dog.Index)
	assert.Equal(t, "The big dog", dog.Gloss())
	assert.Equal(t, "dog", dog.HeadWord())
	assert.True(t, dog.HeadToken().IsNoun())
	assert.Len(t, dog.Span(), 3)

	it := d.Mentions[1]
	assert.Equal(t, 1, it.Index)
	assert.Equal(t, 1, it.SentenceIndex)
	assert.Same(t, d.Sentences[1], it.Sentence)
	assert.Equal(t, 1, d.IndexOfSentence(it.Sentence))
	assert.True(t, it.HeadToken().IsPronoun())
}

func TestNewRejectsBadSpans(t *testing.T) {
	sentences := [][]Token{words("Hello", "UH", "world", "NN")}

	tests := []struct {
		name string
		span Span
	}{
		{"unknown sentence", Span{Sentence: 1, Begin: 0, End: 1, Head: 0}},
		{"end past sentence", Span{Sentence: 0, Begin: 0, End: 3, Head: 0}},
		{"empty span", Span{Sentence: 0, Begin: 1, End: 1, Head: 1}},
		{"head outside span", Span{Sentence: 0, Begin: 0, End: 1, Head: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("bad", sentences, []Span{tt.span})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidDocument))
		})
	}
}

func TestTokenPredicates(t *testing.T) {
	tests := []struct {
		pos                           string
		noun, proper, plural, pronoun bool
	}{
		{"NN", true, false, false, false},
		{"NNS", true, false, true, false},
		{"NNP", true, true, false, false},
		{"NNPS", true, true, true, false},
		{"PRP", false, false, false, true},
		{"PRP$", false, false, false, true},
		{"DT", false, false, false, false},
	}

	for _, tt := range tests {
		tok := Token{Word: "x", POS: tt.pos}
		assert.Equal(t, tt.noun, tok.IsNoun(), tt.pos)
		assert.Equal(t, tt.proper, tok.IsProperNoun(), tt.pos)
		assert.Equal(t, tt.plural, tok.IsPluralNoun(), tt.pos)
		assert.Equal(t, tt.pronoun, tok.IsPronoun(), tt.pos)
	}
}
