package decompound

import "math"

// ChunkKind tells content words from linking infixes.
type ChunkKind uint8

const (
	WordChunk ChunkKind = iota
	GlueChunk
)

func (k ChunkKind) String() string {
	if k == GlueChunk {
		return "glue"
	}
	return "word"
}

// Chunk is a half-open span of a CodepointBuffer.
type Chunk struct {
	Start int
	End   int
	Kind  ChunkKind
}

// searcher holds the state of one segmentation. It is created per call and
// never shared: path is the chunk stack of the current branch, minChunks[pos]
// the fewest chunks any branch has needed to reach pos.
type searcher struct {
	buf       *CodepointBuffer
	oracle    Oracle
	glue      GlueMatcher
	path      []Chunk
	minChunks []int
	found     [][]Chunk
}

// segment returns every minimal decomposition of buf as chunk paths in search
// order (buffer orientation, glue chunks included). No decomposition yields nil.
func segment(buf *CodepointBuffer, oracle Oracle, glue GlueMatcher) [][]Chunk {
	n := buf.Len()
	if n == 0 {
		return nil
	}
	s := &searcher{
		buf:       buf,
		oracle:    oracle,
		glue:      glue,
		path:      make([]Chunk, 0, 8),
		minChunks: make([]int, n+1),
	}
	for i := range s.minChunks {
		s.minChunks[i] = math.MaxInt
	}
	s.expandWord(0)

	// A branch can complete before a shorter one lowers minChunks[n].
	best := s.minChunks[n]
	out := s.found[:0]
	for _, p := range s.found {
		if len(p) == best {
			out = append(out, p)
		}
	}
	return out
}

// expandWord tries every word starting at offset, longest first.
func (s *searcher) expandWord(offset int) {
	n := s.buf.Len()
	ends := s.oracle.Candidates(s.buf, offset)
	for k := len(ends) - 1; k >= 0; k-- {
		end := ends[k]
		if end <= offset || end > n {
			continue
		}
		depth := len(s.path) + 1
		if depth > s.minChunks[end] {
			continue
		}
		s.minChunks[end] = depth

		s.path = append(s.path, Chunk{Start: offset, End: end, Kind: WordChunk})
		if end == n {
			s.emit()
		} else {
			s.expandWord(end)
			s.expandGlue(end)
		}
		s.path = s.path[:len(s.path)-1]
	}
}

// expandGlue tries every linking infix starting at offset, each followed by a word.
func (s *searcher) expandGlue(offset int) {
	if s.glue == nil {
		return
	}
	n := s.buf.Len()
	for _, end := range s.glue.Matches(s.buf, offset) {
		if end <= offset || end >= n {
			continue
		}
		s.path = append(s.path, Chunk{Start: offset, End: end, Kind: GlueChunk})
		s.expandWord(end)
		s.path = s.path[:len(s.path)-1]
	}
}

func (s *searcher) emit() {
	p := make([]Chunk, len(s.path))
	copy(p, s.path)
	s.found = append(s.found, p)
}
