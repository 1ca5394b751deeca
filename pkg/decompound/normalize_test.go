package decompound

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input       string
		runes       string
		folded      string
		capitalized bool
	}{
		{"Bahnhofsuhr", "rhusfohnhaB", "bahnhofsuhr", true},
		{"ÄPFEL", "lefpÄ", "äpfel", true},
		{"haus", "suah", "haus", false},
		{"a\u0308pfel", "lefp\u00e4", "\u00e4pfel", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		buf := Normalize(tt.input)
		if got := string(buf.Runes); got != tt.runes {
			t.Errorf("Normalize(%q).Runes = %q, want %q", tt.input, got, tt.runes)
		}
		if got := string(buf.Folded()); got != tt.folded {
			t.Errorf("Normalize(%q).Folded() = %q, want %q", tt.input, got, tt.folded)
		}
		if got := buf.Capitalized(); got != tt.capitalized {
			t.Errorf("Normalize(%q).Capitalized() = %v, want %v", tt.input, got, tt.capitalized)
		}
	}
}

func TestCodepointBuffer_NFC(t *testing.T) {
	buf := Normalize("a\u0308pfel")
	if buf.Len() != 5 {
		t.Errorf("Len() = %d, want 5", buf.Len())
	}
	if buf.Source() != "\u00e4pfel" {
		t.Errorf("Source() = %q, want composed form", buf.Source())
	}
}

func TestCodepointBuffer_Span(t *testing.T) {
	buf := Normalize("Bahnhofsuhr")

	tests := []struct {
		start, end int
		expected   string
	}{
		{0, 3, "uhr"},
		{3, 4, "s"},
		{4, 11, "Bahnhof"},
		{0, 11, "Bahnhofsuhr"},
		{5, 5, ""},
	}
	for _, tt := range tests {
		if got := buf.Span(tt.start, tt.end); got != tt.expected {
			t.Errorf("Span(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.expected)
		}
	}
	if got := buf.At(10); got != 'b' {
		t.Errorf("At(10) = %q, want 'b'", got)
	}
}

func TestRuneByteOffsets(t *testing.T) {
	got := runeByteOffsets("Tür")
	want := []int{0, 1, 3, 4}
	if !slices.Equal(got, want) {
		t.Errorf("runeByteOffsets(Tür) = %v, want %v", got, want)
	}
}

func TestSourceOffsets(t *testing.T) {
	tests := []struct {
		input   string
		nfc     string
		offsets []int
	}{
		{"", "", []int{0}},
		{"Uhr", "Uhr", []int{0, 1, 2, 3}},
		{"T\u00fcr", "T\u00fcr", []int{0, 1, 3, 4}},
		{"Tu\u0308r", "T\u00fcr", []int{0, 1, 4, 5}},
		{"a\u0308pfel", "\u00e4pfel", []int{0, 3, 4, 5, 6, 7}},
	}
	for _, tt := range tests {
		nfc, offsets := sourceOffsets(tt.input)
		if nfc != tt.nfc {
			t.Errorf("sourceOffsets(%q) form = %q, want %q", tt.input, nfc, tt.nfc)
		}
		if !slices.Equal(offsets, tt.offsets) {
			t.Errorf("sourceOffsets(%q) offsets = %v, want %v", tt.input, offsets, tt.offsets)
		}
	}
}

func TestFormOffsets(t *testing.T) {
	// "Häuser" reduced to "Haus": one rune kept, the rest rewritten.
	_, source := sourceOffsets("H\u00e4user")
	got := formOffsets(source, 1, 4, len("H\u00e4user"))
	want := []int{0, 1, 7, 7, 7}
	if !slices.Equal(got, want) {
		t.Errorf("formOffsets = %v, want %v", got, want)
	}
}

func TestTitleFirst(t *testing.T) {
	tests := map[string]string{
		"uhr":  "Uhr",
		"über": "Über",
		"Haus": "Haus",
		"":     "",
	}
	for input, want := range tests {
		if got := titleFirst(input); got != want {
			t.Errorf("titleFirst(%q) = %q, want %q", input, got, want)
		}
	}
}
