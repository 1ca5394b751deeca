package decompound

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// CodepointBuffer is a word prepared for segmentation: NFC code points in
// reverse order, lower-cased except for the word's leading rune, which ends
// up at the last index. All chunk spans index into Runes.
type CodepointBuffer struct {
	Runes  []rune
	source string // NFC form of the word, reading order
}

// Normalize builds the CodepointBuffer for word.
func Normalize(word string) *CodepointBuffer {
	source := norm.NFC.String(word)
	n := utf8.RuneCountInString(source)
	runes := make([]rune, n)
	i := 0
	for _, r := range source {
		if i > 0 {
			r = unicode.ToLower(r)
		}
		runes[n-1-i] = r
		i++
	}
	return &CodepointBuffer{Runes: runes, source: source}
}

// Len returns the number of code points.
func (b *CodepointBuffer) Len() int {
	return len(b.Runes)
}

// At returns the lower-cased rune at buffer index i, the form used for matching.
func (b *CodepointBuffer) At(i int) rune {
	return unicode.ToLower(b.Runes[i])
}

// Span returns buffer span [start, end) as text in reading order.
func (b *CodepointBuffer) Span(start, end int) string {
	out := make([]rune, 0, end-start)
	for i := end - 1; i >= start; i-- {
		out = append(out, b.Runes[i])
	}
	return string(out)
}

// Folded returns the whole word lower-cased, in reading order.
func (b *CodepointBuffer) Folded() []rune {
	n := len(b.Runes)
	out := make([]rune, n)
	for i := range b.Runes {
		out[n-1-i] = b.At(i)
	}
	return out
}

// Source returns the NFC form of the normalized word.
func (b *CodepointBuffer) Source() string {
	return b.source
}

// Capitalized reports whether the word starts with an upper-case rune.
func (b *CodepointBuffer) Capitalized() bool {
	n := len(b.Runes)
	return n > 0 && unicode.IsUpper(b.Runes[n-1])
}

// foldReversed lower-cases the NFC form of s and reverses it. Dictionary and
// glue keys are stored this way so they line up with CodepointBuffer.At.
func foldReversed(s string) []rune {
	runes := []rune(norm.NFC.String(s))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func reverseRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[len(rs)-1-i] = r
	}
	return out
}

// sourceOffsets returns the NFC form of word together with the byte offset in
// word of every NFC rune boundary (len = rune count + 1). A boundary inside a
// segment that composition rewrote maps to the end of that segment.
func sourceOffsets(word string) (string, []int) {
	var it norm.Iter
	it.InitString(norm.NFC, word)
	var nfc strings.Builder
	nfc.Grow(len(word))
	offsets := make([]int, 1, len(word)+1)
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		end := it.Pos()
		nfc.Write(seg)
		if string(seg) == word[start:end] {
			for _, off := range runeByteOffsets(word[start:end])[1:] {
				offsets = append(offsets, start+off)
			}
			continue
		}
		for range utf8.RuneCount(seg) {
			offsets = append(offsets, end)
		}
	}
	return nfc.String(), offsets
}

// runeByteOffsets maps rune index to byte offset; the last entry is len(s).
func runeByteOffsets(s string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
