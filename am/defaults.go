package am

import (
	"github.com/spf13/viper"
)

// Algorithm names accepted by resolver.algorithm.
const (
	AlgorithmSieve        = "sieve"
	AlgorithmClassifier   = "classifier"
	AlgorithmSingleton    = "singleton"
	AlgorithmOneCluster   = "one_cluster"
	AlgorithmHeadBaseline = "head_baseline"
)

// Algorithms lists every known algorithm.
var Algorithms = []string{
	AlgorithmSieve, AlgorithmClassifier, AlgorithmSingleton, AlgorithmOneCluster, AlgorithmHeadBaseline,
}

const defaultDatabasePath = "coref.db"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", defaultDatabasePath)

	v.SetDefault("resolver.algorithm", AlgorithmSieve)
	v.SetDefault("resolver.workers", 4)

	v.SetDefault("sieve.passes", []string{"exact", "constructs", "head", "relaxed_head", "pronoun", "pronoun_noun"})
	v.SetDefault("sieve.predicate_window", 12)
	v.SetDefault("sieve.pronoun_sentence_window", 3)
	v.SetDefault("sieve.pronoun_noun_scale", 0.5)
	v.SetDefault("sieve.demonstratives", []string{"this", "that"})

	v.SetDefault("classifier.features", []string{"exact_match", "distance", "early_match", "pronoun_match", "one_pronoun"})
	v.SetDefault("classifier.epochs", 20)
	v.SetDefault("classifier.learning_rate", 0.1)
	v.SetDefault("classifier.l2", 0.0001)
	v.SetDefault("classifier.threshold", 0.5)

	v.SetDefault("lexicon.path", "")
	v.SetDefault("log.json", false)
}

// BindEnvVars explicitly binds the settings most often overridden per run
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "COREF_DATABASE_PATH")
	v.BindEnv("resolver.algorithm", "COREF_RESOLVER_ALGORITHM")
	v.BindEnv("resolver.workers", "COREF_RESOLVER_WORKERS")
	v.BindEnv("lexicon.path", "COREF_LEXICON_PATH")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return defaultDatabasePath
	}
	return c.Database.Path
}

// GetWorkers returns the document fan-out, at least 1
func (c *Config) GetWorkers() int {
	if c.Resolver.Workers < 1 {
		return 1
	}
	return c.Resolver.Workers
}
