package lexicon

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/coref/errors"
)

// fileTable is the on-disk TOML shape:
//
//	[[pronoun]]
//	word = "xe"
//	person = "third"
//	plural = false
//	gender = "either"
//
//	[names]
//	male = ["arthur"]
//	female = ["ada"]
type fileTable struct {
	Pronoun []filePronoun       `toml:"pronoun"`
	Names   map[string][]string `toml:"names"`
}

type filePronoun struct {
	Word   string `toml:"word"`
	Person string `toml:"person"`
	Plural bool   `toml:"plural"`
	Gender string `toml:"gender"`
}

// LoadFile reads a TOML table and layers it over base.
func LoadFile(path string, base *Table) (*Table, error) {
	var ft fileTable
	meta, err := toml.DecodeFile(path, &ft)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode lexicon %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("lexicon %s: unknown keys %v", path, undecoded)
	}

	pronouns := make([]Pronoun, 0, len(ft.Pronoun))
	for _, fp := range ft.Pronoun {
		person, err := parsePerson(fp.Person)
		if err != nil {
			return nil, errors.Wrapf(err, "lexicon %s: pronoun %q", path, fp.Word)
		}
		gender, err := parseGender(fp.Gender)
		if err != nil {
			return nil, errors.Wrapf(err, "lexicon %s: pronoun %q", path, fp.Word)
		}
		pronouns = append(pronouns, Pronoun{Word: fp.Word, Person: person, Plural: fp.Plural, Gender: gender})
	}

	names := make(map[string]Gender)
	for key, list := range ft.Names {
		gender, err := parseGender(key)
		if err != nil {
			return nil, errors.Wrapf(err, "lexicon %s: names", path)
		}
		for _, n := range list {
			names[n] = gender
		}
	}

	if base == nil {
		return NewTable(pronouns, names), nil
	}
	return base.With(pronouns, names), nil
}

func parsePerson(s string) (Person, error) {
	switch strings.ToLower(s) {
	case "first", "1":
		return FirstPerson, nil
	case "second", "2":
		return SecondPerson, nil
	case "third", "3":
		return ThirdPerson, nil
	}
	return 0, errors.Newf("unknown person %q", s)
}

func parseGender(s string) (Gender, error) {
	switch strings.ToLower(s) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	case "neutral":
		return Neutral, nil
	case "either", "":
		return Either, nil
	}
	return 0, errors.Newf("unknown gender %q", s)
}
