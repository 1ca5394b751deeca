package analysis

import (
	"testing"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input string
		want  []RawToken
	}{
		{"", []RawToken{}},
		{"Bahnhofsuhr", []RawToken{
			{Text: "Bahnhofsuhr", Type: TokenWord, Start: 0, End: 11},
		}},
		{"Die Haustür klemmt.", []RawToken{
			{Text: "Die", Type: TokenWord, Start: 0, End: 3},
			{Text: " ", Type: TokenSeparator, Start: 3, End: 4},
			{Text: "Haustür", Type: TokenWord, Start: 4, End: 12},
			{Text: " ", Type: TokenSeparator, Start: 12, End: 13},
			{Text: "klemmt", Type: TokenWord, Start: 13, End: 19},
			{Text: ".", Type: TokenSeparator, Start: 19, End: 20},
		}},
		{"Wärme-Dämmung", []RawToken{
			{Text: "Wärme", Type: TokenWord, Start: 0, End: 6},
			{Text: "-", Type: TokenSeparator, Start: 6, End: 7},
			{Text: "Dämmung", Type: TokenWord, Start: 7, End: 15},
		}},
		{"B12 „Stahl“", []RawToken{
			{Text: "B12", Type: TokenWord, Start: 0, End: 3},
			{Text: " „", Type: TokenSeparator, Start: 3, End: 7},
			{Text: "Stahl", Type: TokenWord, Start: 7, End: 12},
			{Text: "“", Type: TokenSeparator, Start: 12, End: 15},
		}},
		{" \t", []RawToken{
			{Text: " \t", Type: TokenSeparator, Start: 0, End: 2},
		}},
		{"Tu\u0308r", []RawToken{
			{Text: "Tu\u0308r", Type: TokenWord, Start: 0, End: 5},
		}},
	}

	for _, tt := range tests {
		got := SplitWords(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("SplitWords(%q) returned %d tokens, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, tok := range got {
			if tok != tt.want[i] {
				t.Errorf("SplitWords(%q)[%d] = %+v, want %+v", tt.input, i, tok, tt.want[i])
			}
			if tt.input[tok.Start:tok.End] != tok.Text {
				t.Errorf("SplitWords(%q)[%d] offsets do not cover %q", tt.input, i, tok.Text)
			}
		}
	}
}

func TestTokenType(t *testing.T) {
	words := []rune{'b', 'B', 'ü', 'ß', '7', '\u0308'}
	for _, r := range words {
		if got := tokenType(r); got != TokenWord {
			t.Errorf("tokenType(%q) = %v, want TokenWord", r, got)
		}
	}

	separators := []rune{' ', '\n', '-', '/', '„', '§'}
	for _, r := range separators {
		if got := tokenType(r); got != TokenSeparator {
			t.Errorf("tokenType(%q) = %v, want TokenSeparator", r, got)
		}
	}
}
