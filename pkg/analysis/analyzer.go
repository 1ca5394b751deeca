// Package analysis turns running text into index tokens: words are split
// out of the text, decompounded, and their parts normalized.
package analysis

import (
	"github.com/kerem-kaynak/german-decompounder/pkg/decompound"
)

// OriginalAlternative marks the token holding the word as written.
const OriginalAlternative = -1

// Config controls which tokens an Analyzer emits.
type Config struct {
	// LowercaseOriginal emits each word lower-cased, umlauts kept, next to its parts.
	LowercaseOriginal bool             `mapstructure:"lowercase_original"`
	Normalizers       NormalizerConfig `mapstructure:"normalizers"`
}

// DefaultConfig emits originals and runs the full normalizer pipeline.
func DefaultConfig() Config {
	return Config{
		LowercaseOriginal: true,
		Normalizers:       DefaultNormalizerConfig(),
	}
}

// Token is one index term. Start and End are byte offsets into the analyzed
// text. Position is the index of the word the token came from; parts of
// different alternatives of one word share it.
type Token struct {
	Text        string `json:"text" yaml:"text"`
	Start       int    `json:"start" yaml:"start"`
	End         int    `json:"end" yaml:"end"`
	Position    int    `json:"position" yaml:"position"`
	Alternative int    `json:"alternative" yaml:"alternative"`
}

// Analyzer is safe for concurrent use when its Decompounder is.
type Analyzer struct {
	decompounder      *decompound.Decompounder
	normalizer        *Normalizer
	lowercaseOriginal bool
}

// NewAnalyzer creates an analyzer over d.
func NewAnalyzer(d *decompound.Decompounder, cfg Config) *Analyzer {
	return &Analyzer{
		decompounder:      d,
		normalizer:        NewNormalizerFromConfig(cfg.Normalizers),
		lowercaseOriginal: cfg.LowercaseOriginal,
	}
}

// NewAnalyzerWithNormalizer creates an analyzer with a custom normalizer.
func NewAnalyzerWithNormalizer(d *decompound.Decompounder, n *Normalizer, lowercaseOriginal bool) *Analyzer {
	return &Analyzer{decompounder: d, normalizer: n, lowercaseOriginal: lowercaseOriginal}
}

// Analyze returns the tokens of text in order: for every word the original
// (when enabled), then the normalized parts of each decomposition.
func (a *Analyzer) Analyze(text string) []Token {
	var tokens []Token
	position := 0
	for _, raw := range SplitWords(text) {
		if raw.Type != TokenWord {
			continue
		}
		if a.lowercaseOriginal {
			tokens = append(tokens, Token{
				Text:        a.normalizer.LowercaseOnly(raw.Text),
				Start:       raw.Start,
				End:         raw.End,
				Position:    position,
				Alternative: OriginalAlternative,
			})
		}
		for i, alt := range a.decompounder.Decompound(raw.Text) {
			for _, part := range alt {
				start, end := partSpan(raw, part)
				tokens = append(tokens, Token{
					Text:        a.normalizer.Normalize(part.Text),
					Start:       start,
					End:         end,
					Position:    position,
					Alternative: i,
				})
			}
		}
		position++
	}
	return tokens
}

// partSpan maps a part into the text. Part offsets index the word as
// written; a span outside it gets the whole word's span.
func partSpan(raw RawToken, p decompound.Part) (int, int) {
	if p.Start < 0 || p.End > len(raw.Text) || p.Start > p.End {
		return raw.Start, raw.End
	}
	return raw.Start + p.Start, raw.Start + p.End
}

// Tokenize processes input text and returns deduplicated token texts in
// first-seen order.
func (a *Analyzer) Tokenize(text string) []string {
	seen := make(map[string]struct{})
	var results []string
	for _, tok := range a.Analyze(text) {
		if _, exists := seen[tok.Text]; exists {
			continue
		}
		seen[tok.Text] = struct{}{}
		results = append(results, tok.Text)
	}
	return results
}

// Decompounder returns the underlying decompounder.
func (a *Analyzer) Decompounder() *decompound.Decompounder {
	return a.decompounder
}
