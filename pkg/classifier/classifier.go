// Package classifier implements a prefix-tree classifier: keys sharing a
// prefix vote for the label of an unseen key that shares the same prefix.
//
// The decompounder uses three of them, one predicting the cut position of a
// compound from its beginning, one from its end, and one predicting base-form
// reduction rules.
package classifier

import (
	"sort"

	"github.com/derekparker/trie"
)

// Undecided is returned by Label when no class reaches the confidence threshold.
const Undecided = "undecided"

// DefaultThreshold is the confidence a majority label needs to be accepted.
const DefaultThreshold = 0.46

// Entry is one training example.
type Entry struct {
	Key   string
	Label string
}

// decision is the majority label of a trie node and its share of the votes.
type decision struct {
	label      string
	confidence float64
}

// Classifier is immutable after New and safe for concurrent use.
type Classifier struct {
	trie      *trie.Trie
	decisions map[*trie.Node]decision
	exact     map[string]decision
	threshold float64
	size      int
}

// New builds a classifier from entries. Entries are sorted before insertion;
// a repeated key keeps its last label. A threshold <= 0 selects DefaultThreshold.
func New(entries []Entry, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	labels := make(map[string]string, len(sorted))
	for _, e := range sorted {
		if e.Key == "" {
			continue
		}
		labels[e.Key] = e.Label
	}

	t := trie.New()
	votes := make(map[*trie.Node]map[string]int)
	type terminal struct {
		node  *trie.Node
		label string
	}
	terminals := make(map[string]terminal, len(labels))
	for _, e := range sorted {
		label, ok := labels[e.Key]
		if !ok {
			continue
		}
		delete(labels, e.Key)
		t.Add(e.Key, label)

		node := t.Root()
		for _, r := range e.Key {
			node = node.Children()[r]
			counts := votes[node]
			if counts == nil {
				counts = make(map[string]int)
				votes[node] = counts
			}
			counts[label]++
		}
		terminals[e.Key] = terminal{node: node, label: label}
	}

	c := &Classifier{
		trie:      t,
		decisions: make(map[*trie.Node]decision, len(votes)),
		exact:     make(map[string]decision, len(terminals)),
		threshold: threshold,
		size:      len(terminals),
	}
	for node, counts := range votes {
		c.decisions[node] = majority(counts)
	}
	// A training key's own label competes with the keys extending it.
	for key, term := range terminals {
		counts := votes[term.node]
		total := 0
		for _, n := range counts {
			total += n
		}
		c.exact[key] = decision{label: term.label, confidence: float64(counts[term.label]) / float64(total)}
	}
	return c
}

// majority picks the most voted label, the smallest label on ties.
func majority(counts map[string]int) decision {
	var best string
	bestCount, total := -1, 0
	for label, n := range counts {
		total += n
		if n > bestCount || (n == bestCount && label < best) {
			best, bestCount = label, n
		}
	}
	return decision{label: best, confidence: float64(bestCount) / float64(total)}
}

// Classify returns the label predicted for key. A training key yields its own
// label; otherwise the deepest trie node matching a prefix of key decides.
// Either way the label must reach the confidence threshold: a training key's
// confidence is its label's share among the keys it prefixes, itself included.
func (c *Classifier) Classify(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	if d, ok := c.exact[key]; ok {
		if d.confidence < c.threshold {
			return "", false
		}
		return d.label, true
	}

	node := c.trie.Root()
	depth := 0
	for _, r := range key {
		child, ok := node.Children()[r]
		if !ok {
			break
		}
		node = child
		depth++
	}
	if depth == 0 {
		return "", false
	}
	d, ok := c.decisions[node]
	if !ok || d.confidence < c.threshold {
		return "", false
	}
	return d.label, true
}

// Label is Classify with the Undecided sentinel instead of a flag.
func (c *Classifier) Label(key string) string {
	if label, ok := c.Classify(key); ok {
		return label
	}
	return Undecided
}

// Threshold returns the confidence threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Len returns the number of distinct training keys.
func (c *Classifier) Len() int {
	return c.size
}
