package decompound

// Oracle answers which known words start at a buffer position. Dictionary is
// the automaton backend, ClassifierOracle the classifier backend.
type Oracle interface {
	// Candidates returns every end such that buf[offset:end] is a recognized
	// complete word, in discovery order. Ends are strictly greater than offset.
	Candidates(buf *CodepointBuffer, offset int) []int
}

var (
	_ Oracle      = (*Dictionary)(nil)
	_ Oracle      = (*ClassifierOracle)(nil)
	_ GlueMatcher = (*GlueMorphemeSet)(nil)
	_ GlueMatcher = gapMatcher{}
)
