// Package decompound splits compound words into their dictionary words,
// optionally joined by linking infixes, returning every minimal segmentation.
package decompound

import (
	"errors"
	"io"
	"log/slog"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/kerem-kaynak/german-decompounder/pkg/cache"
)

const (
	// DefaultCacheCapacity is the default number of cached words.
	// At ~100 bytes per entry, 100k entries uses approximately 10MB of memory.
	DefaultCacheCapacity = 100_000

	// DefaultEvictionFactor is the share of the capacity dropped per eviction.
	DefaultEvictionFactor = 0.1
)

// Part is one word of a decomposition. Start and End are byte offsets into
// the word as given, whatever its normalization form. When a reducer rewrote
// the word's ending, a part reaching into the rewritten runes ends at the end
// of the word.
type Part struct {
	Text  string `json:"text" yaml:"text"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// Alternative is one complete decomposition, parts in reading order.
type Alternative []Part

// Texts returns the part texts.
func (a Alternative) Texts() []string {
	out := make([]string, len(a))
	for i, p := range a {
		out[i] = p.Text
	}
	return out
}

// Options configures a Decompounder. Only Oracle is required.
type Options struct {
	Oracle  Oracle
	Glue    GlueMatcher
	Reducer *BaseFormReducer
	Cache   cache.Cache[string, []Alternative]
	Metrics *Metrics
	Logger  *slog.Logger
}

// Decompounder segments compound words. It is safe for concurrent use.
type Decompounder struct {
	oracle  Oracle
	glue    GlueMatcher
	reducer *BaseFormReducer
	cache   cache.Cache[string, []Alternative]
	flight  singleflight.Group
	metrics *Metrics
	logger  *slog.Logger
}

// New creates a Decompounder from opts. A ClassifierOracle gets its literal
// gaps added to the glue matcher.
func New(opts Options) (*Decompounder, error) {
	if opts.Oracle == nil {
		return nil, errors.New("decompound: oracle is required")
	}
	glue := opts.Glue
	if co, ok := opts.Oracle.(*ClassifierOracle); ok {
		glue = glueUnion{opts.Glue, co.Gaps()}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Decompounder{
		oracle:  opts.Oracle,
		glue:    glue,
		reducer: opts.Reducer,
		cache:   opts.Cache,
		metrics: opts.Metrics,
		logger:  logger,
	}, nil
}

// NewDecompounder creates a decompounder over dict with the default glue
// morphemes and an LFU cache.
func NewDecompounder(dict *Dictionary) *Decompounder {
	c, _ := cache.NewLFU[string, []Alternative](DefaultCacheCapacity, DefaultEvictionFactor)
	return newAutomaton(dict, c)
}

// NewDecompounderNoCache creates a decompounder without caching.
// Use this when memory is constrained or words are rarely repeated.
func NewDecompounderNoCache(dict *Dictionary) *Decompounder {
	return newAutomaton(dict, nil)
}

func newAutomaton(dict *Dictionary, c cache.Cache[string, []Alternative]) *Decompounder {
	glue, _ := NewGlueMorphemeSet(nil)
	d, _ := New(Options{Oracle: dict, Glue: glue, Cache: c})
	return d
}

// Decompound returns the minimal decompositions of word. When none exists the
// result is the single alternative [word]. Cached results are shared and must
// not be modified.
func (d *Decompounder) Decompound(word string) []Alternative {
	if d.cache == nil {
		return d.decompoundUncached(word)
	}
	if result, ok := d.cache.Get(word); ok {
		d.metrics.observeHit()
		return result
	}
	v, _, _ := d.flight.Do(word, func() (any, error) {
		if result, ok := d.cache.Get(word); ok {
			d.metrics.observeHit()
			return result, nil
		}
		result := d.decompoundUncached(word)
		d.cache.Put(word, result)
		return result, nil
	})
	return v.([]Alternative)
}

// Split returns the texts of the first decomposition of word, or [word].
func (d *Decompounder) Split(word string) []string {
	return d.Decompound(word)[0].Texts()
}

func (d *Decompounder) decompoundUncached(word string) []Alternative {
	start := time.Now()
	nfc, source := sourceOffsets(word)
	form, kept := nfc, len(source)-1
	if d.reducer != nil {
		form, kept = d.reducer.reduce(nfc)
	}
	buf := Normalize(form)
	paths := segment(buf, d.oracle, d.glue)
	if len(paths) == 0 {
		d.metrics.observeSearch(outcomeFallback, time.Since(start), 1)
		d.logger.Debug("no decomposition", "word", word)
		return []Alternative{{{Text: word, Start: 0, End: len(word)}}}
	}

	offsets := formOffsets(source, kept, buf.Len(), len(word))
	alternatives := make([]Alternative, 0, len(paths))
	for _, path := range paths {
		alternatives = append(alternatives, d.alternative(buf, offsets, path))
	}
	d.metrics.observeSearch(outcomeSplit, time.Since(start), len(alternatives))
	d.logger.Debug("decomposed", "word", word, "form", form, "alternatives", len(alternatives))
	return alternatives
}

// alternative turns a search path into parts in reading order. Glue chunks
// are dropped. Parts of a capitalized word are capitalized.
func (d *Decompounder) alternative(buf *CodepointBuffer, offsets []int, path []Chunk) Alternative {
	n := buf.Len()
	capitalized := buf.Capitalized()
	alt := make(Alternative, 0, len(path))
	for k := len(path) - 1; k >= 0; k-- {
		c := path[k]
		if c.Kind != WordChunk {
			continue
		}
		text := buf.Span(c.Start, c.End)
		if capitalized {
			text = titleFirst(text)
		}
		alt = append(alt, Part{Text: text, Start: offsets[n-c.End], End: offsets[n-c.Start]})
	}
	return alt
}

// formOffsets maps each rune boundary of the segmented form onto word. The
// first kept runes come from word; boundaries past them map to its end.
func formOffsets(source []int, kept, n, end int) []int {
	offsets := make([]int, n+1)
	for i := range offsets {
		if i <= kept && i < len(source) {
			offsets[i] = source[i]
		} else {
			offsets[i] = end
		}
	}
	return offsets
}

func titleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}

// ClearCache clears the memoization cache.
func (d *Decompounder) ClearCache() {
	if d.cache != nil {
		d.cache.Purge()
	}
}

// CacheSize returns the number of cached entries (0 if cache is disabled).
func (d *Decompounder) CacheSize() int {
	if d.cache == nil {
		return 0
	}
	return d.cache.Len()
}

// CacheEnabled returns true if caching is enabled.
func (d *Decompounder) CacheEnabled() bool {
	return d.cache != nil
}

// Oracle returns the word oracle the decompounder searches with.
func (d *Decompounder) Oracle() Oracle {
	return d.oracle
}

// Close releases the oracle's resources when it holds any.
func (d *Decompounder) Close() error {
	if c, ok := d.oracle.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
