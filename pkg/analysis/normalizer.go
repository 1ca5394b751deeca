package analysis

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
)

// NormalizerFunc is one step of a normalization pipeline.
type NormalizerFunc func(string) string

// NormalizerConfig switches the individual pipeline steps on or off.
// Steps always run in the order of the fields.
type NormalizerConfig struct {
	NFKDDecompose        bool `mapstructure:"nfkd_decompose"`
	RemoveControlChars   bool `mapstructure:"remove_control_chars"`
	Lowercase            bool `mapstructure:"lowercase"`
	NormalizeQuotes      bool `mapstructure:"normalize_quotes"`
	ExpandLigatures      bool `mapstructure:"expand_ligatures"`
	ConvertEszett        bool `mapstructure:"convert_eszett"`
	RemoveCombiningMarks bool `mapstructure:"remove_combining_marks"`
	StemGerman           bool `mapstructure:"stem_german"`
}

// DefaultNormalizerConfig enables every step.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		NFKDDecompose:        true,
		RemoveControlChars:   true,
		Lowercase:            true,
		NormalizeQuotes:      true,
		ExpandLigatures:      true,
		ConvertEszett:        true,
		RemoveCombiningMarks: true,
		StemGerman:           true,
	}
}

// Steps returns the enabled steps in pipeline order.
func (c NormalizerConfig) Steps() []NormalizerFunc {
	candidates := []struct {
		on   bool
		step NormalizerFunc
	}{
		{c.NFKDDecompose, NFKDDecompose},
		{c.RemoveControlChars, RemoveControlChars},
		{c.Lowercase, Lowercase},
		{c.NormalizeQuotes, NormalizeQuotes},
		{c.ExpandLigatures, ExpandLigatures},
		{c.ConvertEszett, ConvertEszett},
		{c.RemoveCombiningMarks, RemoveCombiningMarks},
		{c.StemGerman, StemGerman},
	}
	var steps []NormalizerFunc
	for _, s := range candidates {
		if s.on {
			steps = append(steps, s.step)
		}
	}
	return steps
}

// Normalizer turns decompounded parts into index terms.
type Normalizer struct {
	steps []NormalizerFunc
}

// NewNormalizer creates a normalizer running every step.
func NewNormalizer() *Normalizer {
	return NewNormalizerFromConfig(DefaultNormalizerConfig())
}

// NewNormalizerFromConfig creates a normalizer running the enabled steps.
func NewNormalizerFromConfig(cfg NormalizerConfig) *Normalizer {
	return &Normalizer{steps: cfg.Steps()}
}

// NewNormalizerWithSteps creates a normalizer with a custom pipeline.
func NewNormalizerWithSteps(steps ...NormalizerFunc) *Normalizer {
	return &Normalizer{steps: steps}
}

// Normalize applies all configured steps in order.
func (n *Normalizer) Normalize(s string) string {
	for _, step := range n.steps {
		s = step(s)
	}
	return s
}

// LowercaseOnly lowercases without other transformations (preserves umlauts).
func (n *Normalizer) LowercaseOnly(s string) string {
	return strings.ToLower(s)
}

// NFKDDecompose applies Unicode NFKD: ä becomes a + U+0308, ﬁ becomes fi.
func NFKDDecompose(s string) string {
	return norm.NFKD.String(s)
}

// RemoveControlChars drops Unicode control characters.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Lowercase converts to lowercase.
func Lowercase(s string) string {
	return strings.ToLower(s)
}

var quoteReplacer = strings.NewReplacer(
	"\u201E", `"`, // German opening quote
	"\u201C", `"`, // left double quote
	"\u201D", `"`, // right double quote
	"\u00AB", `"`, // left-pointing double angle
	"\u00BB", `"`, // right-pointing double angle
	"\u2018", "'", // left single quote
	"\u2019", "'", // right single quote
	"\u201A", "'", // single low-9 quote
	"\u2039", "'", // single left-pointing angle
	"\u203A", "'", // single right-pointing angle
)

// NormalizeQuotes maps typographic quotes to ASCII.
func NormalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

var ligatureReplacer = strings.NewReplacer("æ", "ae", "Æ", "ae", "œ", "oe", "Œ", "oe")

// ExpandLigatures expands æ to ae and œ to oe.
func ExpandLigatures(s string) string {
	return ligatureReplacer.Replace(s)
}

// ConvertEszett converts ß to ss. NFKD leaves ß alone.
func ConvertEszett(s string) string {
	return strings.ReplaceAll(s, "ß", "ss")
}

// RemoveCombiningMarks drops nonspacing marks (category Mn), e.g. the
// umlaut dots left by NFKD.
func RemoveCombiningMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
}

// StemGerman applies the German Snowball stemmer.
func StemGerman(s string) string {
	stemmed, err := snowball.Stem(s, "german", true)
	if err != nil {
		return s
	}
	return stemmed
}
