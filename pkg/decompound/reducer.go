package decompound

import (
	"unicode"

	"github.com/kerem-kaynak/german-decompounder/pkg/classifier"
)

// BaseFormReducer rewrites an inflected word to its base form before
// segmentation. Its classifier is keyed by reversed lower-cased words and
// predicts <cut-count><suffix>: drop that many trailing runes, append suffix.
type BaseFormReducer struct {
	rules *classifier.Classifier
}

// NewBaseFormReducer creates a reducer over a rule classifier.
func NewBaseFormReducer(rules *classifier.Classifier) *BaseFormReducer {
	return &BaseFormReducer{rules: rules}
}

// Reduce returns the base form of word, or word itself when no rule applies.
func (r *BaseFormReducer) Reduce(word string) string {
	form, _ := r.reduce(word)
	return form
}

// reduce also returns how many leading runes of word the base form keeps.
func (r *BaseFormReducer) reduce(word string) (string, int) {
	runes := []rune(word)
	key := make([]rune, len(runes))
	for i, c := range runes {
		key[len(runes)-1-i] = unicode.ToLower(c)
	}
	label, ok := r.rules.Classify(string(key))
	if !ok {
		return word, len(runes)
	}
	count, suffix, ok := parseLabel(label)
	if !ok {
		return word, len(runes)
	}
	kept := len(runes) - min(count, len(runes))
	return string(runes[:kept]) + string(suffix), kept
}
