// Package config loads decompounder settings from a file, DECOMPOUND_*
// environment variables and command-line flags, and builds a Decompounder
// from them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kerem-kaynak/german-decompounder/pkg/analysis"
	"github.com/kerem-kaynak/german-decompounder/pkg/classifier"
	"github.com/kerem-kaynak/german-decompounder/pkg/decompound"
)

// Backends.
const (
	BackendAutomaton  = "automaton"
	BackendClassifier = "classifier"
)

// Cache policies.
const (
	CacheLFU  = "lfu"
	CacheLRU  = "lru"
	CacheNone = "none"
)

// EnvPrefix prefixes environment overrides, e.g. DECOMPOUND_CACHE_POLICY.
const EnvPrefix = "DECOMPOUND"

// Config holds all decompounder settings.
type Config struct {
	Backend    string `mapstructure:"backend"`
	Dictionary string `mapstructure:"dictionary"`
	// FoldUmlauts lets ä, ö, ü and ß match a, o, u and ss in the dictionary.
	FoldUmlauts bool             `mapstructure:"fold_umlauts"`
	Glue        GlueConfig       `mapstructure:"glue"`
	Classifier  ClassifierConfig `mapstructure:"classifier"`
	Cache       CacheConfig      `mapstructure:"cache"`
	Analysis    analysis.Config  `mapstructure:"analysis"`
	Log         LogConfig        `mapstructure:"log"`
}

// GlueConfig configures linking infixes. Empty Morphemes selects the defaults.
type GlueConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Morphemes []string `mapstructure:"morphemes"`
}

// ClassifierConfig names the training files of the classifier backend.
type ClassifierConfig struct {
	PrefixTrie   string  `mapstructure:"prefix_trie"`
	SuffixTrie   string  `mapstructure:"suffix_trie"`
	BaseFormTrie string  `mapstructure:"base_form_trie"`
	Threshold    float64 `mapstructure:"threshold"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Policy         string  `mapstructure:"policy"`
	Capacity       int     `mapstructure:"capacity"`
	EvictionFactor float64 `mapstructure:"eviction_factor"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Default returns the automaton backend with glue and an LFU cache.
func Default() Config {
	return Config{
		Backend: BackendAutomaton,
		Glue:    GlueConfig{Enabled: true},
		Classifier: ClassifierConfig{
			Threshold: classifier.DefaultThreshold,
		},
		Cache: CacheConfig{
			Policy:         CacheLFU,
			Capacity:       decompound.DefaultCacheCapacity,
			EvictionFactor: decompound.DefaultEvictionFactor,
		},
		Analysis: analysis.DefaultConfig(),
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendAutomaton:
		if c.Dictionary == "" {
			errs = append(errs, errors.New("dictionary is required for the automaton backend"))
		}
	case BackendClassifier:
		if c.Classifier.PrefixTrie == "" && c.Classifier.SuffixTrie == "" {
			errs = append(errs, errors.New("classifier backend needs a prefix or suffix trie"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if t := c.Classifier.Threshold; t <= 0 || t > 1 {
		errs = append(errs, fmt.Errorf("classifier threshold %v out of range (0, 1]", t))
	}

	switch c.Cache.Policy {
	case CacheNone:
	case CacheLFU, CacheLRU:
		if c.Cache.Capacity < 1 {
			errs = append(errs, fmt.Errorf("cache capacity %d must be positive", c.Cache.Capacity))
		}
		if f := c.Cache.EvictionFactor; c.Cache.Policy == CacheLFU && (f <= 0 || f > 1) {
			errs = append(errs, fmt.Errorf("eviction factor %v out of range (0, 1]", f))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache policy %q", c.Cache.Policy))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"backend":            "backend",
	"dict":               "dictionary",
	"fold-umlauts":       "fold_umlauts",
	"glue":               "glue.enabled",
	"glue-morphemes":     "glue.morphemes",
	"prefix-trie":        "classifier.prefix_trie",
	"suffix-trie":        "classifier.suffix_trie",
	"base-form-trie":     "classifier.base_form_trie",
	"threshold":          "classifier.threshold",
	"cache":              "cache.policy",
	"cache-capacity":     "cache.capacity",
	"eviction-factor":    "cache.eviction_factor",
	"lowercase-original": "analysis.lowercase_original",
	"stem":               "analysis.normalizers.stem_german",
	"log-level":          "log.level",
	"log-format":         "log.format",
}

// RegisterFlags adds the configuration flags to fs, defaulting to Default().
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "Configuration file (yaml, toml or json)")
	fs.String("backend", d.Backend, "Oracle backend: automaton or classifier")
	fs.String("dict", d.Dictionary, "Dictionary word list or compiled .fst file")
	fs.Bool("fold-umlauts", d.FoldUmlauts, "Match umlauts and ß against a, o, u and ss in the dictionary")
	fs.Bool("glue", d.Glue.Enabled, "Allow linking infixes between words")
	fs.StringSlice("glue-morphemes", d.Glue.Morphemes, "Linking infixes (default: e,es,en,er,n,ens,ns,s)")
	fs.String("prefix-trie", "", "Classifier training file predicting cuts from the word start")
	fs.String("suffix-trie", "", "Classifier training file predicting cuts from the word end")
	fs.String("base-form-trie", "", "Classifier training file with base-form reduction rules")
	fs.Float64("threshold", d.Classifier.Threshold, "Classifier confidence threshold")
	fs.String("cache", d.Cache.Policy, "Result cache policy: lfu, lru or none")
	fs.Int("cache-capacity", d.Cache.Capacity, "Result cache capacity")
	fs.Float64("eviction-factor", d.Cache.EvictionFactor, "Share of the LFU cache evicted when full")
	fs.Bool("lowercase-original", d.Analysis.LowercaseOriginal, "Emit each analyzed word next to its parts")
	fs.Bool("stem", d.Analysis.Normalizers.StemGerman, "Stem analyzed parts with the German snowball stemmer")
	fs.String("log-level", d.Log.Level, "Log level: debug, info, warn, error")
	fs.String("log-format", d.Log.Format, "Log format: text or json")
}

// Load reads the configuration. Precedence from high to low: changed flags,
// DECOMPOUND_* environment variables, the file at path, Default(). Both path
// and flags may be empty.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("backend", d.Backend)
	v.SetDefault("dictionary", d.Dictionary)
	v.SetDefault("fold_umlauts", d.FoldUmlauts)
	v.SetDefault("glue.enabled", d.Glue.Enabled)
	v.SetDefault("glue.morphemes", d.Glue.Morphemes)
	v.SetDefault("classifier.prefix_trie", d.Classifier.PrefixTrie)
	v.SetDefault("classifier.suffix_trie", d.Classifier.SuffixTrie)
	v.SetDefault("classifier.base_form_trie", d.Classifier.BaseFormTrie)
	v.SetDefault("classifier.threshold", d.Classifier.Threshold)
	v.SetDefault("cache.policy", d.Cache.Policy)
	v.SetDefault("cache.capacity", d.Cache.Capacity)
	v.SetDefault("cache.eviction_factor", d.Cache.EvictionFactor)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	n := d.Analysis.Normalizers
	v.SetDefault("analysis.lowercase_original", d.Analysis.LowercaseOriginal)
	v.SetDefault("analysis.normalizers.nfkd_decompose", n.NFKDDecompose)
	v.SetDefault("analysis.normalizers.remove_control_chars", n.RemoveControlChars)
	v.SetDefault("analysis.normalizers.lowercase", n.Lowercase)
	v.SetDefault("analysis.normalizers.normalize_quotes", n.NormalizeQuotes)
	v.SetDefault("analysis.normalizers.expand_ligatures", n.ExpandLigatures)
	v.SetDefault("analysis.normalizers.convert_eszett", n.ConvertEszett)
	v.SetDefault("analysis.normalizers.remove_combining_marks", n.RemoveCombiningMarks)
	v.SetDefault("analysis.normalizers.stem_german", n.StemGerman)
}
