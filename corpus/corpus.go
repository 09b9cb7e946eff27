// Package corpus reads annotated documents from YAML or JSON files and writes
// resolved clusters back out.
package corpus

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
)

// Format is a corpus file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension; anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

type fileDocument struct {
	ID        string         `json:"id" yaml:"id"`
	Sentences []fileSentence `json:"sentences" yaml:"sentences"`
	Mentions  []doc.Span     `json:"mentions" yaml:"mentions"`
	Gold      [][]int        `json:"gold,omitempty" yaml:"gold,omitempty"`
}

type fileSentence struct {
	Tokens []doc.Token `json:"tokens" yaml:"tokens"`
}

type file struct {
	Documents []fileDocument `json:"documents" yaml:"documents"`
}

// Entry is one loaded document and its gold partition, if the file had one.
type Entry struct {
	Doc  *doc.Document
	Gold [][]int
}

// Corpus is an ordered set of documents.
type Corpus struct {
	Source  string
	Entries []Entry
}

// Load reads a corpus file.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading corpus %s", path)
	}
	c, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "corpus %s", path)
	}
	c.Source = path
	return c, nil
}

// Decode parses corpus bytes and validates every mention span.
func Decode(data []byte, format Format) (*Corpus, error) {
	var f file
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "decoding JSON")
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "decoding YAML")
		}
	}

	c := &Corpus{Entries: make([]Entry, 0, len(f.Documents))}
	seen := make(map[string]bool, len(f.Documents))
	for i, fd := range f.Documents {
		if fd.ID == "" {
			fd.ID = "doc-" + strconv.Itoa(i)
		}
		if seen[fd.ID] {
			return nil, errors.Wrapf(errors.ErrInvalidDocument, "duplicate document id %q", fd.ID)
		}
		seen[fd.ID] = true

		sentences := make([][]doc.Token, len(fd.Sentences))
		for j, s := range fd.Sentences {
			sentences[j] = s.Tokens
		}
		d, err := doc.New(fd.ID, sentences, fd.Mentions)
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, Entry{Doc: d, Gold: fd.Gold})
	}
	return c, nil
}

// Documents returns the documents in file order.
func (c *Corpus) Documents() []*doc.Document {
	docs := make([]*doc.Document, len(c.Entries))
	for i, e := range c.Entries {
		docs[i] = e.Doc
	}
	return docs
}

// Labeled returns the documents with their gold partitions. Every document
// must carry a valid partition.
func (c *Corpus) Labeled() ([]doc.Labeled, error) {
	out := make([]doc.Labeled, 0, len(c.Entries))
	for _, e := range c.Entries {
		if e.Gold == nil {
			return nil, errors.Wrapf(errors.ErrMissingGold, "document %s has no gold clusters", e.Doc.ID)
		}
		l := doc.Labeled{Doc: e.Doc, Gold: e.Gold}
		if _, err := cluster.FromGold(l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Mentions counts mentions across the corpus.
func (c *Corpus) Mentions() int {
	n := 0
	for _, e := range c.Entries {
		n += len(e.Doc.Mentions)
	}
	return n
}
