package decompound

import (
	"os"
	"strconv"
	"unicode"

	"github.com/kerem-kaynak/german-decompounder/pkg/classifier"
)

// reconcileTolerance is the largest distance (exclusive) between the forward
// and the suffix-anchored cut for which both are treated as the same cut.
const reconcileTolerance = 3

// ClassifierOracle is the classifier backend. Two prefix-tree classifiers
// predict a cut for the whole word: prefix reads the word front to back and
// anchors the cut at the start, suffix reads it reversed and anchors the cut
// at the end. Labels have the form <cut-count><literal>; the literal is the
// linking infix expected at the cut.
//
// A word is planned into parts and the literal gaps between them. Candidates
// reports the part starting at an offset and Gaps reports the gaps, which the
// search bridges as glue chunks.
type ClassifierOracle struct {
	prefix *classifier.Classifier
	suffix *classifier.Classifier
}

// NewClassifierOracle creates the classifier backend. Either classifier may be nil.
func NewClassifierOracle(prefix, suffix *classifier.Classifier) *ClassifierOracle {
	return &ClassifierOracle{prefix: prefix, suffix: suffix}
}

// OpenClassifier loads a classifier from a training file.
func OpenClassifier(path string, threshold float64) (*classifier.Classifier, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	defer file.Close()
	c, err := classifier.Load(file, threshold)
	if err != nil {
		return nil, loadError(path, err)
	}
	return c, nil
}

type span struct {
	start, end int
}

// cut splits a word into [0, firstEnd), a literal [firstEnd, secondStart)
// and [secondStart, len).
type cut struct {
	firstEnd, secondStart int
}

// Candidates returns the end of the planned part that starts at offset.
func (o *ClassifierOracle) Candidates(buf *CodepointBuffer, offset int) []int {
	n := buf.Len()
	for _, p := range o.planWord(buf.Folded()) {
		if n-p.end == offset {
			return []int{n - p.start}
		}
	}
	return nil
}

// Gaps returns a GlueMatcher reporting the literals between planned parts.
func (o *ClassifierOracle) Gaps() GlueMatcher {
	return gapMatcher{oracle: o}
}

type gapMatcher struct {
	oracle *ClassifierOracle
}

func (g gapMatcher) Matches(buf *CodepointBuffer, offset int) []int {
	n := buf.Len()
	parts := g.oracle.planWord(buf.Folded())
	for i := 1; i < len(parts); i++ {
		gap := span{parts[i-1].end, parts[i].start}
		if gap.start < gap.end && n-gap.end == offset {
			return []int{n - gap.start}
		}
	}
	return nil
}

// planWord splits word (lower-cased, reading order) into parts, recursively
// until no part splits further. Uncovered runes between parts are literals.
func (o *ClassifierOracle) planWord(word []rune) []span {
	return o.plan(word, 0, len(word), nil)
}

func (o *ClassifierOracle) plan(word []rune, start, end int, parts []span) []span {
	sub := o.splitOnce(word[start:end])
	if len(sub) == 1 {
		return append(parts, span{start, end})
	}
	for _, p := range sub {
		parts = o.plan(word, start+p.start, start+p.end, parts)
	}
	return parts
}

// splitOnce reconciles the forward and suffix-anchored predictions for s.
func (o *ClassifierOracle) splitOnce(s []rune) []span {
	n := len(s)
	fwd, fok := o.forwardCut(s)
	bwd, bok := o.suffixCut(s)
	switch {
	case fok && bok:
		return reconcile(n, fwd, bwd)
	case fok:
		return fwd.parts(n)
	case bok:
		return bwd.parts(n)
	}
	return []span{{0, n}}
}

func reconcile(n int, fwd, bwd cut) []span {
	lo, hi := fwd, bwd
	if hi.firstEnd < lo.firstEnd {
		lo, hi = hi, lo
	}
	if hi.firstEnd-lo.firstEnd >= reconcileTolerance && lo.secondStart < hi.firstEnd {
		return []span{{0, lo.firstEnd}, {lo.secondStart, hi.firstEnd}, {hi.secondStart, n}}
	}
	if n-bwd.secondStart < n-fwd.secondStart {
		return bwd.parts(n)
	}
	return fwd.parts(n)
}

func (c cut) parts(n int) []span {
	return []span{{0, c.firstEnd}, {c.secondStart, n}}
}

// forwardCut: the first part is s[:cut], the literal follows it.
func (o *ClassifierOracle) forwardCut(s []rune) (cut, bool) {
	if o.prefix == nil {
		return cut{}, false
	}
	label, ok := o.prefix.Classify(string(s))
	if !ok {
		return cut{}, false
	}
	count, literal, ok := parseLabel(label)
	n := len(s)
	if !ok || count <= 0 || count >= n || count+len(literal) >= n {
		return cut{}, false
	}
	if !matchesAt(s, count, literal) {
		return cut{}, false
	}
	return cut{firstEnd: count, secondStart: count + len(literal)}, true
}

// suffixCut: the last part is the final cut runes, the literal precedes it.
func (o *ClassifierOracle) suffixCut(s []rune) (cut, bool) {
	if o.suffix == nil {
		return cut{}, false
	}
	label, ok := o.suffix.Classify(string(reverseRunes(s)))
	if !ok {
		return cut{}, false
	}
	count, literal, ok := parseLabel(label)
	n := len(s)
	if !ok || count <= 0 || count >= n {
		return cut{}, false
	}
	firstEnd := n - count - len(literal)
	if firstEnd <= 0 || !matchesAt(s, firstEnd, literal) {
		return cut{}, false
	}
	return cut{firstEnd: firstEnd, secondStart: n - count}, true
}

func matchesAt(s []rune, at int, literal []rune) bool {
	if at+len(literal) > len(s) {
		return false
	}
	for i, r := range literal {
		if s[at+i] != r {
			return false
		}
	}
	return true
}

// parseLabel decodes <cut-count><literal>. A label without a leading number
// is undecided.
func parseLabel(label string) (int, []rune, bool) {
	runes := []rune(label)
	i := 0
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	if i == 0 {
		return 0, nil, false
	}
	count, err := strconv.Atoi(string(runes[:i]))
	if err != nil {
		return 0, nil, false
	}
	return count, runes[i:], true
}
