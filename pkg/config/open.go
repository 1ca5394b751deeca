package config

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kerem-kaynak/german-decompounder/pkg/cache"
	"github.com/kerem-kaynak/german-decompounder/pkg/classifier"
	"github.com/kerem-kaynak/german-decompounder/pkg/decompound"
)

// Open builds a Decompounder from cfg. metrics may be nil.
func Open(cfg Config, logger *slog.Logger, metrics *decompound.Metrics) (*decompound.Decompounder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := decompound.Options{Metrics: metrics, Logger: logger}

	start := time.Now()
	switch cfg.Backend {
	case BackendAutomaton:
		dict, err := decompound.OpenDictionary(cfg.Dictionary)
		if err != nil {
			return nil, err
		}
		opts.Oracle = dict
		if cfg.FoldUmlauts {
			opts.Oracle = decompound.UmlautFold{Dictionary: dict}
		}
		logger.Info("dictionary loaded", "path", cfg.Dictionary, "words", dict.WordCount(), "elapsed", time.Since(start))
	case BackendClassifier:
		oracle, err := openClassifierOracle(cfg.Classifier, logger)
		if err != nil {
			return nil, err
		}
		opts.Oracle = oracle
	}

	d, err := build(cfg, opts, logger)
	if err != nil {
		if c, ok := opts.Oracle.(io.Closer); ok {
			c.Close()
		}
		return nil, err
	}
	return d, nil
}

// build adds the reducer, glue and cache to opts.
func build(cfg Config, opts decompound.Options, logger *slog.Logger) (*decompound.Decompounder, error) {
	if cfg.Classifier.BaseFormTrie != "" {
		rules, err := decompound.OpenClassifier(cfg.Classifier.BaseFormTrie, cfg.Classifier.Threshold)
		if err != nil {
			return nil, err
		}
		opts.Reducer = decompound.NewBaseFormReducer(rules)
		logger.Info("base-form rules loaded", "path", cfg.Classifier.BaseFormTrie, "keys", rules.Len())
	}

	if cfg.Glue.Enabled {
		glue, err := decompound.NewGlueMorphemeSet(cfg.Glue.Morphemes)
		if err != nil {
			return nil, fmt.Errorf("config: glue morphemes: %w", err)
		}
		opts.Glue = glue
	}

	c, err := newCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if c != nil {
		opts.Cache = c
	}

	return decompound.New(opts)
}

func openClassifierOracle(cfg ClassifierConfig, logger *slog.Logger) (*decompound.ClassifierOracle, error) {
	var tries [2]*classifier.Classifier
	for i, path := range []string{cfg.PrefixTrie, cfg.SuffixTrie} {
		if path == "" {
			continue
		}
		c, err := decompound.OpenClassifier(path, cfg.Threshold)
		if err != nil {
			return nil, err
		}
		logger.Info("classifier loaded", "path", path, "keys", c.Len())
		tries[i] = c
	}
	return decompound.NewClassifierOracle(tries[0], tries[1]), nil
}

// newCache returns nil for CacheNone.
func newCache(cfg CacheConfig) (cache.Cache[string, []decompound.Alternative], error) {
	switch cfg.Policy {
	case CacheLFU:
		return cache.NewLFU[string, []decompound.Alternative](cfg.Capacity, cfg.EvictionFactor)
	case CacheLRU:
		return cache.NewLRU[string, []decompound.Alternative](cfg.Capacity)
	}
	return nil, nil
}
