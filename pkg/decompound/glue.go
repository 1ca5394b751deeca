package decompound

import (
	"io"
	"slices"
	"strings"

	"github.com/blevesearch/vellum"
)

// DefaultGlueMorphemes are the German linking infixes (Fugenelemente).
var DefaultGlueMorphemes = []string{"e", "es", "en", "er", "n", "ens", "ns", "s"}

// GlueMatcher recognizes linking infixes between two content words.
type GlueMatcher interface {
	// Matches returns every end such that buf[offset:end] is a linking infix,
	// shortest first.
	Matches(buf *CodepointBuffer, offset int) []int
}

// GlueMorphemeSet is a small immutable automaton over reversed linking infixes.
type GlueMorphemeSet struct {
	fst  *vellum.FST
	data []byte
}

// NewGlueMorphemeSet compiles morphemes. An empty list selects DefaultGlueMorphemes.
func NewGlueMorphemeSet(morphemes []string) (*GlueMorphemeSet, error) {
	keys := make([][]byte, 0, len(morphemes))
	for _, m := range morphemes {
		if m = strings.TrimSpace(m); m != "" {
			keys = append(keys, []byte(string(foldReversed(m))))
		}
	}
	if len(keys) == 0 {
		for _, m := range DefaultGlueMorphemes {
			keys = append(keys, []byte(string(foldReversed(m))))
		}
	}
	data, err := compileFST(keys)
	if err != nil {
		return nil, err
	}
	return loadGlueBytes("glue morphemes", data)
}

// LoadGlueMorphemeSet reads a compiled set from a flat byte stream, as
// written by WriteTo.
func LoadGlueMorphemeSet(r io.Reader) (*GlueMorphemeSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, loadError("glue stream", err)
	}
	return loadGlueBytes("glue stream", data)
}

func loadGlueBytes(source string, data []byte) (*GlueMorphemeSet, error) {
	fst, err := vellum.Load(data)
	if err != nil {
		return nil, loadError(source, err)
	}
	if fst.Len() == 0 {
		fst.Close()
		return NewGlueMorphemeSet(nil)
	}
	return &GlueMorphemeSet{fst: fst, data: data}, nil
}

// Matches records every position after offset where the automaton accepts.
func (g *GlueMorphemeSet) Matches(buf *CodepointBuffer, offset int) []int {
	var ends []int
	addr := g.fst.Start()
	for i := offset; i < buf.Len(); i++ {
		var ok bool
		addr, ok = acceptRune(g.fst, addr, buf.At(i))
		if !ok {
			break
		}
		if g.fst.IsMatch(addr) {
			ends = append(ends, i+1)
		}
	}
	return ends
}

// Morphemes returns the recognized infixes in reading order, sorted.
func (g *GlueMorphemeSet) Morphemes() []string {
	keys, err := fstKeys(g.fst)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, string(reverseRunes([]rune(string(key)))))
	}
	slices.Sort(out)
	return out
}

// WriteTo writes the compiled automaton.
func (g *GlueMorphemeSet) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(g.data)
	return int64(n), err
}

// glueUnion reports the ends found by any of its matchers.
type glueUnion []GlueMatcher

func (u glueUnion) Matches(buf *CodepointBuffer, offset int) []int {
	var ends []int
	for _, m := range u {
		if m != nil {
			ends = append(ends, m.Matches(buf, offset)...)
		}
	}
	slices.Sort(ends)
	return slices.Compact(ends)
}
