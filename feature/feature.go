// Package feature turns a pair of mentions into the sparse feature vector
// consumed by the pairwise classifier.
//
// A Feature is a tagged value: its Kind names the family it belongs to and
// its payload is one of bool, int, bucket, real, string, set or a
// conjunction of two features. Identity is kind plus payload; Key renders
// that identity canonically and is what vectors and models index by.
package feature

import (
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/coref/errors"
)

// Kind names a feature family.
type Kind int

const (
	Coreferent Kind = iota + 1
	ExactMatch
	FuzzyMatch
	Distance
	EarlyMatch
	PronounMatch
	OnePronoun
	Compatible
	EarlyOrFuzzy
	HeadMatch
	FuzzyFraction
	HeadPair
	ClusterHeads
	Conjunction
)

var kindNames = map[Kind]string{
	Coreferent:    "coreferent",
	ExactMatch:    "exact_match",
	FuzzyMatch:    "fuzzy_match",
	Distance:      "distance",
	EarlyMatch:    "early_match",
	PronounMatch:  "pronoun_match",
	OnePronoun:    "one_pronoun",
	Compatible:    "compatible",
	EarlyOrFuzzy:  "early_or_fuzzy",
	HeadMatch:     "head_match",
	FuzzyFraction: "fuzzy_fraction",
	HeadPair:      "head_pair",
	ClusterHeads:  "cluster_heads",
	Conjunction:   "pair",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind resolves a configuration name to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrUnknownFeature, "%q", name)
}

// Type is the payload variant of a Feature.
type Type int

const (
	TypeBool Type = iota + 1
	TypeInt
	TypeBucket
	TypeReal
	TypeString
	TypeSet
	TypePair
)

// Feature is an immutable tagged value.
type Feature struct {
	kind    Kind
	typ     Type
	b       bool
	n       int
	buckets int
	f       float64
	s       string
	set     []string
	parts   []Feature
}

// Indicator builds a boolean feature.
func Indicator(k Kind, v bool) Feature { return Feature{kind: k, typ: TypeBool, b: v} }

// Int builds an integer feature.
func Int(k Kind, v int) Feature { return Feature{kind: k, typ: TypeInt, n: v} }

// Real builds a real-valued feature.
func Real(k Kind, v float64) Feature { return Feature{kind: k, typ: TypeReal, f: v} }

// String builds a string feature.
func String(k Kind, v string) Feature { return Feature{kind: k, typ: TypeString, s: v} }

// Set builds a set feature; duplicates are dropped and order is irrelevant.
func Set(k Kind, members []string) Feature {
	uniq := make(map[string]struct{}, len(members))
	for _, m := range members {
		uniq[m] = struct{}{}
	}
	set := make([]string, 0, len(uniq))
	for m := range uniq {
		set = append(set, m)
	}
	sort.Strings(set)
	return Feature{kind: k, typ: TypeSet, set: set}
}

// Bucket places value into one of numBuckets equal-width buckets over
// [0, max). Values that land outside the buckets are an error, never clamped.
func Bucket(k Kind, value, max, numBuckets int) (Feature, error) {
	if max <= 0 || numBuckets <= 0 {
		return Feature{}, errors.Wrapf(errors.ErrBucketRange, "%s: max=%d buckets=%d", k, max, numBuckets)
	}
	bucket := value * numBuckets / max
	if value < 0 || bucket >= numBuckets {
		return Feature{}, errors.Wrapf(errors.ErrBucketRange, "%s: value=%d max=%d buckets=%d", k, value, max, numBuckets)
	}
	return Feature{kind: k, typ: TypeBucket, n: bucket, buckets: numBuckets}, nil
}

// Pair conjoins two features into one.
func Pair(a, b Feature) Feature {
	return Feature{kind: Conjunction, typ: TypePair, parts: []Feature{a, b}}
}

// Kind returns the family.
func (f Feature) Kind() Kind { return f.kind }

// Type returns the payload variant.
func (f Feature) Type() Type { return f.typ }

// Bool returns the payload of an indicator.
func (f Feature) Bool() bool { return f.b }

// Int returns the payload of an integer feature, or the bucket index.
func (f Feature) Int() int { return f.n }

// Parts returns the two halves of a conjunction.
func (f Feature) Parts() (Feature, Feature) {
	if f.typ != TypePair {
		return Feature{}, Feature{}
	}
	return f.parts[0], f.parts[1]
}

// Key is the canonical rendering of kind and payload. Two features are equal
// iff their keys are equal.
func (f Feature) Key() string {
	var sb strings.Builder
	f.writeKey(&sb)
	return sb.String()
}

func (f Feature) writeKey(sb *strings.Builder) {
	if f.typ == TypePair {
		sb.WriteByte('(')
		f.parts[0].writeKey(sb)
		sb.WriteByte('&')
		f.parts[1].writeKey(sb)
		sb.WriteByte(')')
		return
	}
	sb.WriteString(f.kind.String())
	switch f.typ {
	case TypeBool:
		sb.WriteString("(" + strconv.FormatBool(f.b) + ")")
	case TypeInt:
		sb.WriteString("(" + strconv.Itoa(f.n) + ")")
	case TypeBucket:
		sb.WriteString("(" + strconv.Itoa(f.n) + "/" + strconv.Itoa(f.buckets) + ")")
	case TypeReal:
		sb.WriteString("(" + strconv.FormatFloat(f.f, 'g', 4, 64) + ")")
	case TypeString:
		sb.WriteString("(" + strconv.Quote(f.s) + ")")
	case TypeSet:
		sb.WriteString("{" + strings.Join(f.set, ",") + "}")
	}
}

func (f Feature) String() string { return f.Key() }

// Equal compares kind and payload.
func (f Feature) Equal(other Feature) bool { return f.Key() == other.Key() }

// Vector is a sparse feature counter keyed by Feature.Key.
type Vector map[string]float64

// Add increments the count of f.
func (v Vector) Add(f Feature, count float64) {
	v[f.Key()] += count
}

// Has reports whether f is present.
func (v Vector) Has(f Feature) bool {
	_, ok := v[f.Key()]
	return ok
}

// Keys returns the feature keys in sorted order.
func (v Vector) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
