package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/coref/errors"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := defaultConfig(t)

	if cfg.Database.Path != "coref.db" {
		t.Errorf("expected default database path 'coref.db', got %q", cfg.Database.Path)
	}
	if cfg.Resolver.Algorithm != AlgorithmSieve {
		t.Errorf("expected default algorithm %q, got %q", AlgorithmSieve, cfg.Resolver.Algorithm)
	}
	if cfg.Sieve.PredicateWindow != 12 {
		t.Errorf("expected predicate window 12, got %d", cfg.Sieve.PredicateWindow)
	}
	if len(cfg.Sieve.Passes) != 6 {
		t.Errorf("expected 6 default passes, got %v", cfg.Sieve.Passes)
	}
	if cfg.Classifier.Epochs != 20 {
		t.Errorf("expected 20 epochs, got %d", cfg.Classifier.Epochs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"database.path", "coref.db"},
		{"resolver.algorithm", "sieve"},
		{"resolver.workers", 4},
		{"sieve.pronoun_sentence_window", 3},
		{"sieve.pronoun_noun_scale", 0.5},
		{"classifier.threshold", 0.5},
		{"log.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := v.Get(tt.key)
			if got != tt.expected {
				t.Errorf("default %s = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"zero workers is valid", func(c *Config) { c.Resolver.Workers = 0 }, nil},
		{"conjoined features", func(c *Config) { c.Classifier.Features = []string{"exact_match+distance"} }, nil},
		{"unknown algorithm", func(c *Config) { c.Resolver.Algorithm = "oracle" }, errors.ErrUnknownAlgorithm},
		{"unknown pass", func(c *Config) { c.Sieve.Passes = []string{"exact", "guess"} }, errors.ErrUnknownPass},
		{"unknown feature", func(c *Config) { c.Classifier.Features = []string{"vibes"} }, errors.ErrUnknownFeature},
		{"label is not a feature", func(c *Config) { c.Classifier.Features = []string{"coreferent"} }, errors.ErrUnknownFeature},
		{"negative workers", func(c *Config) { c.Resolver.Workers = -1 }, errAny},
		{"zero predicate window", func(c *Config) { c.Sieve.PredicateWindow = 0 }, errAny},
		{"zero pronoun window", func(c *Config) { c.Sieve.PronounSentenceWindow = 0 }, errAny},
		{"zero scale", func(c *Config) { c.Sieve.PronounNounScale = 0 }, errAny},
		{"threshold of one", func(c *Config) { c.Classifier.Threshold = 1 }, errAny},
		{"zero epochs", func(c *Config) { c.Classifier.Epochs = 0 }, errAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			switch tt.wantErr {
			case nil:
				assert.NoError(t, err)
			case errAny:
				assert.Error(t, err)
			default:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

var errAny = errors.New("any error")

func TestFindProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("found from subdirectory", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "found", "subdir")
		require.NoError(t, os.MkdirAll(subDir, DefaultDirPermissions))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "found", ProjectConfigName), nil, DefaultFilePermissions))
		t.Chdir(subDir)

		result := findProjectConfig()
		if filepath.Base(result) != ProjectConfigName {
			t.Errorf("expected %s, got %q", ProjectConfigName, result)
		}
		if !filepath.IsAbs(result) {
			t.Error("expected absolute path")
		}
	})

	t.Run("no config found", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "missing", "subdir")
		require.NoError(t, os.MkdirAll(subDir, DefaultDirPermissions))
		t.Chdir(subDir)

		if result := findProjectConfig(); result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})
}

func TestLoadPrecedence(t *testing.T) {
	Reset()
	defer Reset()

	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(project)

	userDir := filepath.Join(home, ".coref")
	require.NoError(t, os.MkdirAll(userDir, DefaultDirPermissions))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, ProjectConfigName), []byte(`
[resolver]
algorithm = "classifier"
workers = 6
`), DefaultFilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(project, ProjectConfigName), []byte(`
[resolver]
workers = 8

[sieve]
passes = ["exact", "head"]
`), DefaultFilePermissions))
	t.Setenv("COREF_DATABASE_PATH", "env.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "classifier", cfg.Resolver.Algorithm, "user file beats defaults")
	assert.Equal(t, 8, cfg.Resolver.Workers, "project file beats user file")
	assert.Equal(t, []string{"exact", "head"}, cfg.Sieve.Passes)
	assert.Equal(t, 12, cfg.Sieve.PredicateWindow, "untouched keys keep defaults")
	assert.Equal(t, "env.db", cfg.Database.Path, "environment beats files")

	sources := map[string]SettingInfo{}
	for _, s := range Introspect() {
		sources[s.Key] = s
	}
	assert.Equal(t, SourceUser, sources["resolver.algorithm"].Source)
	assert.Equal(t, SourceProject, sources["resolver.workers"].Source)
	assert.Equal(t, SourceEnvironment, sources["database.path"].Source)
	assert.Equal(t, SourceDefault, sources["classifier.epochs"].Source)
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ProjectConfigName)

	require.NoError(t, SetValue(path, "sieve.predicate_window", "9"))
	require.NoError(t, SetValue(path, "resolver.algorithm", "head_baseline"))
	require.NoError(t, SetValue(path, "sieve.passes", `["exact", "pronoun"]`))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Sieve.PredicateWindow)
	assert.Equal(t, "head_baseline", cfg.Resolver.Algorithm)
	assert.Equal(t, []string{"exact", "pronoun"}, cfg.Sieve.Passes)
	assert.Equal(t, 3, cfg.Sieve.PronounSentenceWindow)

	assert.FileExists(t, path+".back1")
	assert.FileExists(t, path+".back2")
	assert.True(t, IsBackupFile(path+".back2"))
	assert.False(t, IsBackupFile(path))

	err = SetValue(path, "sieve.nonsense", "1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
