package decompound

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestDictionary_Candidates(t *testing.T) {
	dict := testDictionary(t)

	tests := []struct {
		word     string
		offset   int
		expected []int
	}{
		// "Bahnhof" reversed is "fohnhaB": hof ends at 3, bahnhof at 7.
		{"Bahnhof", 0, []int{3, 7}},
		{"Bahnhof", 3, []int{7}},
		{"Bahnhofsuhr", 0, []int{3}},
		{"Bahnhofsuhr", 3, nil},
		{"xyz", 0, nil},
		{"Wachstube", 0, []int{4, 5}},
	}

	for _, tt := range tests {
		got := dict.Candidates(Normalize(tt.word), tt.offset)
		if !slices.Equal(got, tt.expected) {
			t.Errorf("Candidates(%q, %d) = %v, want %v", tt.word, tt.offset, got, tt.expected)
		}
	}
}

func TestUmlautFold_Candidates(t *testing.T) {
	dict, err := CompileDictionary([]string{"haus", "tur", "strasse", "bahn"})
	if err != nil {
		t.Fatal(err)
	}
	defer dict.Close()
	fold := UmlautFold{Dictionary: dict}

	if got := dict.Candidates(Normalize("T\u00fcr"), 0); got != nil {
		t.Errorf("Dictionary.Candidates(T\u00fcr) = %v, want nil", got)
	}

	tests := []struct {
		word     string
		offset   int
		expected []int
	}{
		{"T\u00fcr", 0, []int{3}},
		{"Tur", 0, []int{3}},
		{"Stra\u00dfe", 0, []int{6}},
		{"Haust\u00fcr", 0, []int{3}},
		{"Haust\u00fcr", 3, []int{7}},
		{"B\u00e4hn", 0, []int{4}},
		{"H\u00fcus", 0, nil},
	}
	for _, tt := range tests {
		got := fold.Candidates(Normalize(tt.word), tt.offset)
		if !slices.Equal(got, tt.expected) {
			t.Errorf("UmlautFold.Candidates(%q, %d) = %v, want %v", tt.word, tt.offset, got, tt.expected)
		}
	}
}

func TestUmlautFold_Decompound(t *testing.T) {
	dict, err := CompileDictionary([]string{"haus", "tur", "strasse", "bahn"})
	if err != nil {
		t.Fatal(err)
	}
	glue, err := NewGlueMorphemeSet(nil)
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(Options{Oracle: UmlautFold{Dictionary: dict}, Glue: glue})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	tests := []struct {
		word     string
		expected Alternative
	}{
		{"Haust\u00fcr", Alternative{{Text: "Haus", Start: 0, End: 4}, {Text: "T\u00fcr", Start: 4, End: 8}}},
		{"Stra\u00dfenbahn", Alternative{{Text: "Stra\u00dfe", Start: 0, End: 7}, {Text: "Bahn", Start: 8, End: 12}}},
	}
	for _, tt := range tests {
		result := d.Decompound(tt.word)
		if len(result) != 1 || !slices.Equal(result[0], tt.expected) {
			t.Errorf("Decompound(%q) = %+v, want %+v", tt.word, result, tt.expected)
		}
	}
}

func TestDictionary_Contains(t *testing.T) {
	dict := testDictionary(t)

	tests := []struct {
		word     string
		expected bool
	}{
		{"haus", true},
		{"Haus", true},
		{"HAUS", true},
		{"tür", true},
		{"Tu\u0308r", true},
		{"hau", false},
		{"häuser", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := dict.Contains(tt.word); got != tt.expected {
			t.Errorf("Contains(%q) = %v, want %v", tt.word, got, tt.expected)
		}
	}
}

func TestDictionary_Words(t *testing.T) {
	dict := testDictionary(t)

	if dict.WordCount() != len(testWords) {
		t.Errorf("WordCount() = %d, want %d", dict.WordCount(), len(testWords))
	}

	words, err := dict.Words()
	if err != nil {
		t.Fatal(err)
	}
	got := slices.Clone(words)
	want := slices.Clone(testWords)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestCompileDictionary_SkipsEmptyAndDuplicates(t *testing.T) {
	dict, err := CompileDictionary([]string{"haus", "", "  ", "Haus", "HAUS", "tür"})
	if err != nil {
		t.Fatal(err)
	}
	defer dict.Close()

	if dict.WordCount() != 2 {
		t.Errorf("WordCount() = %d, want 2", dict.WordCount())
	}
}

func TestDictionary_RoundTrip(t *testing.T) {
	dict := testDictionary(t)

	var buf bytes.Buffer
	if _, err := dict.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadDictionary(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer loaded.Close()

	for _, word := range testWords {
		if !loaded.Contains(word) {
			t.Errorf("loaded dictionary is missing %q", word)
		}
	}
	if loaded.WordCount() != dict.WordCount() {
		t.Errorf("WordCount() = %d, want %d", loaded.WordCount(), dict.WordCount())
	}
}

func TestOpenDictionary(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "words.txt")
	content := "# German nouns\nhaus\n\ntür\nbahnhof\n"
	if err := os.WriteFile(listPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dict, err := OpenDictionary(listPath)
	if err != nil {
		t.Fatalf("OpenDictionary(%s) error = %v", listPath, err)
	}
	if dict.WordCount() != 3 {
		t.Errorf("WordCount() = %d, want 3", dict.WordCount())
	}
	dict.Close()

	fstPath := filepath.Join(dir, "words.fst")
	if _, err := os.Stat(fstPath); err != nil {
		t.Fatalf("compiled dictionary was not written: %v", err)
	}

	fromFST, err := OpenDictionary(fstPath)
	if err != nil {
		t.Fatal(err)
	}
	defer fromFST.Close()
	if !fromFST.Contains("bahnhof") {
		t.Error("compiled dictionary should contain bahnhof")
	}

	// A second open of the word list reuses the compiled file.
	again, err := OpenDictionary(listPath)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	if again.WordCount() != 3 {
		t.Errorf("WordCount() = %d, want 3", again.WordCount())
	}
}

func TestReadWordList(t *testing.T) {
	input := "haus\n  tür  \n# comment\n\nbahnhof\n"
	words, err := ReadWordList(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"haus", "tür", "bahnhof"}
	if !slices.Equal(words, want) {
		t.Errorf("ReadWordList() = %v, want %v", words, want)
	}
}

func TestDictionary_CloseTwice(t *testing.T) {
	dict, err := CompileDictionary([]string{"haus"})
	if err != nil {
		t.Fatal(err)
	}
	if err := dict.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := dict.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
