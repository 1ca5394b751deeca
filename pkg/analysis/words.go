package analysis

import (
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the type of a raw token.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenSeparator
)

// RawToken is a run of word or separator characters. Start and End are byte
// offsets into the split text.
type RawToken struct {
	Text  string
	Type  TokenType
	Start int
	End   int
}

// SplitWords splits text into alternating runs of word characters (letters
// and numbers) and separators (whitespace, punctuation, symbols).
func SplitWords(text string) []RawToken {
	tokens := []RawToken{}
	if text == "" {
		return tokens
	}

	first, _ := utf8.DecodeRuneInString(text)
	start, current := 0, tokenType(first)
	for i, r := range text {
		if typ := tokenType(r); typ != current {
			tokens = append(tokens, RawToken{Text: text[start:i], Type: current, Start: start, End: i})
			start, current = i, typ
		}
	}
	return append(tokens, RawToken{Text: text[start:], Type: current, Start: start, End: len(text)})
}

// tokenType keeps combining marks with their base letter.
func tokenType(r rune) TokenType {
	if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r) {
		return TokenWord
	}
	return TokenSeparator
}
