// Package lexicon answers the word-level questions coreference rules ask:
// is this head word a pronoun (and with which person, number and gender), is
// it a known first name. Tables are built once and only read afterwards, so a
// *Table is safe to share between goroutines.
package lexicon

import (
	"golang.org/x/text/cases"
)

// Person is grammatical person.
type Person int

const (
	FirstPerson Person = iota + 1
	SecondPerson
	ThirdPerson
)

func (p Person) String() string {
	switch p {
	case FirstPerson:
		return "first"
	case SecondPerson:
		return "second"
	case ThirdPerson:
		return "third"
	}
	return "unknown"
}

// Gender of a pronoun or name. Either is the wildcard.
type Gender int

const (
	Male Gender = iota + 1
	Female
	Neutral
	Either
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	case Neutral:
		return "neutral"
	case Either:
		return "either"
	}
	return "unknown"
}

// Compatible reports whether two genders can describe the same entity: they
// are equal or one of them is Either.
func (g Gender) Compatible(other Gender) bool {
	return g == other || g == Either || other == Either
}

// Animate reports whether the gender can describe a person.
func (g Gender) Animate() bool {
	return g != Neutral
}

// Specific returns the gender with the non-committal values (Either,
// Neutral) collapsed to the zero value.
func (g Gender) Specific() Gender {
	if g == Either || g == Neutral {
		return 0
	}
	return g
}

// Pronoun describes one pronoun form.
type Pronoun struct {
	Word   string
	Person Person
	Plural bool
	Gender Gender
}

// Lexicon is the read-only lookup contract consumed by the resolvers.
type Lexicon interface {
	Pronoun(word string) (Pronoun, bool)
	IsName(word string) bool
}

// Fold returns the case-folded form used for every case-insensitive
// comparison in coref.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Table is a map-backed Lexicon.
type Table struct {
	pronouns map[string]Pronoun
	names    map[string]Gender
}

// NewTable builds a table from pronoun and name lists.
func NewTable(pronouns []Pronoun, names map[string]Gender) *Table {
	t := &Table{
		pronouns: make(map[string]Pronoun, len(pronouns)),
		names:    make(map[string]Gender, len(names)),
	}
	for _, p := range pronouns {
		p.Word = Fold(p.Word)
		t.pronouns[p.Word] = p
	}
	for name, g := range names {
		t.names[Fold(name)] = g
	}
	return t
}

// Pronoun looks up a word case-insensitively.
func (t *Table) Pronoun(word string) (Pronoun, bool) {
	p, ok := t.pronouns[Fold(word)]
	return p, ok
}

// IsName reports whether word is a known first name.
func (t *Table) IsName(word string) bool {
	_, ok := t.names[Fold(word)]
	return ok
}

// NameGender returns the gender recorded for a first name.
func (t *Table) NameGender(word string) (Gender, bool) {
	g, ok := t.names[Fold(word)]
	return g, ok
}

// With returns a new table holding t's entries overridden by the given ones.
func (t *Table) With(pronouns []Pronoun, names map[string]Gender) *Table {
	merged := make([]Pronoun, 0, len(t.pronouns)+len(pronouns))
	for _, p := range t.pronouns {
		merged = append(merged, p)
	}
	merged = append(merged, pronouns...)
	allNames := make(map[string]Gender, len(t.names)+len(names))
	for n, g := range t.names {
		allNames[n] = g
	}
	for n, g := range names {
		allNames[n] = g
	}
	return NewTable(merged, allNames)
}
