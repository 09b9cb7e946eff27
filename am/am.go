package am

// Config is the complete coref configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database" toml:"database" json:"database" yaml:"database"`
	Resolver   ResolverConfig   `mapstructure:"resolver" toml:"resolver" json:"resolver" yaml:"resolver"`
	Sieve      SieveConfig      `mapstructure:"sieve" toml:"sieve" json:"sieve" yaml:"sieve"`
	Classifier ClassifierConfig `mapstructure:"classifier" toml:"classifier" json:"classifier" yaml:"classifier"`
	Lexicon    LexiconConfig    `mapstructure:"lexicon" toml:"lexicon" json:"lexicon" yaml:"lexicon"`
	Log        LogConfig        `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// DatabaseConfig configures the SQLite model store
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// ResolverConfig selects the algorithm and the document fan-out
type ResolverConfig struct {
	Algorithm string `mapstructure:"algorithm" toml:"algorithm" json:"algorithm" yaml:"algorithm"` // sieve, classifier, singleton, one_cluster, head_baseline
	Workers   int    `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"`         // documents resolved concurrently
}

// SieveConfig tunes the rule-based resolver
type SieveConfig struct {
	Passes                []string `mapstructure:"passes" toml:"passes" json:"passes" yaml:"passes"`
	PredicateWindow       int      `mapstructure:"predicate_window" toml:"predicate_window" json:"predicate_window" yaml:"predicate_window"`                             // max tokens between "is" and the predicate
	PronounSentenceWindow int      `mapstructure:"pronoun_sentence_window" toml:"pronoun_sentence_window" json:"pronoun_sentence_window" yaml:"pronoun_sentence_window"` // third-person pronouns further apart never link
	PronounNounScale      float64  `mapstructure:"pronoun_noun_scale" toml:"pronoun_noun_scale" json:"pronoun_noun_scale" yaml:"pronoun_noun_scale"`                     // fraction of the mean trained distance
	Demonstratives        []string `mapstructure:"demonstratives" toml:"demonstratives" json:"demonstratives" yaml:"demonstratives"`
}

// ClassifierConfig configures features and the logistic regression trainer
type ClassifierConfig struct {
	Features     []string `mapstructure:"features" toml:"features" json:"features" yaml:"features"` // "a+b" conjoins two features
	Epochs       int      `mapstructure:"epochs" toml:"epochs" json:"epochs" yaml:"epochs"`
	LearningRate float64  `mapstructure:"learning_rate" toml:"learning_rate" json:"learning_rate" yaml:"learning_rate"`
	L2           float64  `mapstructure:"l2" toml:"l2" json:"l2" yaml:"l2"`
	Threshold    float64  `mapstructure:"threshold" toml:"threshold" json:"threshold" yaml:"threshold"`
}

// LexiconConfig points at an optional extra pronoun/name table
type LexiconConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
