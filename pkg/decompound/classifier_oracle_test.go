package decompound

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/kerem-kaynak/german-decompounder/pkg/classifier"
)

func testClassifierOracle(prefix, suffix []classifier.Entry) *ClassifierOracle {
	var p, s *classifier.Classifier
	if prefix != nil {
		p = classifier.New(prefix, 0)
	}
	if suffix != nil {
		s = classifier.New(suffix, 0)
	}
	return NewClassifierOracle(p, s)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label   string
		count   int
		literal string
		ok      bool
	}{
		{"7s", 7, "s", true},
		{"4", 4, "", true},
		{"12en", 12, "en", true},
		{"s", 0, "", false},
		{"undecided", 0, "", false},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		count, literal, ok := parseLabel(tt.label)
		if ok != tt.ok || count != tt.count || string(literal) != tt.literal {
			t.Errorf("parseLabel(%q) = %d, %q, %v, want %d, %q, %v",
				tt.label, count, string(literal), ok, tt.count, tt.literal, tt.ok)
		}
	}
}

func TestClassifierOracle_PlanWord(t *testing.T) {
	tests := []struct {
		name     string
		prefix   []classifier.Entry
		suffix   []classifier.Entry
		word     string
		expected []span
	}{
		{
			name:     "forward cut with literal",
			prefix:   []classifier.Entry{{Key: "bahnhofsuhr", Label: "7s"}},
			word:     "bahnhofsuhr",
			expected: []span{{0, 7}, {8, 11}},
		},
		{
			name:     "suffix cut",
			suffix:   []classifier.Entry{{Key: "rhusfohnhab", Label: "3s"}},
			word:     "bahnhofsuhr",
			expected: []span{{0, 7}, {8, 11}},
		},
		{
			name:     "close cuts keep shorter second part",
			prefix:   []classifier.Entry{{Key: "bahnhofsuhr", Label: "7s"}},
			suffix:   []classifier.Entry{{Key: "rhusfohnhab", Label: "3"}},
			word:     "bahnhofsuhr",
			expected: []span{{0, 7}, {8, 11}},
		},
		{
			name:     "distant cuts give three parts",
			prefix:   []classifier.Entry{{Key: "haustürschloss", Label: "4"}},
			suffix:   []classifier.Entry{{Key: "ssolhcsrütsuah", Label: "7"}},
			word:     "haustürschloss",
			expected: []span{{0, 4}, {4, 7}, {7, 14}},
		},
		{
			name:     "literal mismatch is ignored",
			prefix:   []classifier.Entry{{Key: "haustür", Label: "4s"}},
			word:     "haustür",
			expected: []span{{0, 7}},
		},
		{
			name:     "cut beyond the word is ignored",
			prefix:   []classifier.Entry{{Key: "haus", Label: "9"}},
			word:     "haus",
			expected: []span{{0, 4}},
		},
		{
			name:     "undecided label",
			prefix:   []classifier.Entry{{Key: "haus", Label: classifier.Undecided}},
			word:     "haus",
			expected: []span{{0, 4}},
		},
		{
			name:     "unknown word",
			prefix:   []classifier.Entry{{Key: "bahnhofsuhr", Label: "7s"}},
			word:     "xyz",
			expected: []span{{0, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testClassifierOracle(tt.prefix, tt.suffix)
			got := o.planWord([]rune(tt.word))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("planWord(%q) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}

func TestReconcile_TieKeepsForward(t *testing.T) {
	// Both second parts have length 3; the forward cut wins.
	got := reconcile(11, cut{7, 8}, cut{8, 8})
	want := []span{{0, 7}, {8, 11}}
	if !slices.Equal(got, want) {
		t.Errorf("reconcile() = %v, want %v", got, want)
	}

	// The suffix cut leaves the shorter second part.
	got = reconcile(11, cut{6, 6}, cut{7, 8})
	want = []span{{0, 7}, {8, 11}}
	if !slices.Equal(got, want) {
		t.Errorf("reconcile() = %v, want %v", got, want)
	}
}

func TestClassifierOracle_Decompound(t *testing.T) {
	oracle := testClassifierOracle(
		[]classifier.Entry{
			{Key: "bahnhofsuhr", Label: "7s"},
			{Key: "haustürschloss", Label: "4"},
		},
		[]classifier.Entry{{Key: "ssolhcsrütsuah", Label: "7"}},
	)
	d, err := New(Options{Oracle: oracle})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input    string
		expected []string
	}{
		{"Bahnhofsuhr", []string{"Bahnhof", "Uhr"}},
		{"Haustürschloss", []string{"Haus", "Tür", "Schloss"}},
		{"Haus", []string{"Haus"}},
		{"xyz", []string{"xyz"}},
	}

	for _, tt := range tests {
		result := d.Decompound(tt.input)
		if len(result) != 1 || !slices.Equal(result[0].Texts(), tt.expected) {
			t.Errorf("Decompound(%q) = %v, want [%v]", tt.input, texts(result), tt.expected)
		}
	}

	parts := d.Decompound("Bahnhofsuhr")[0]
	if parts[1].Start != 8 || parts[1].End != 11 {
		t.Errorf("Uhr spans [%d, %d), want [8, 11)", parts[1].Start, parts[1].End)
	}
}

func TestClassifierOracle_WithReducer(t *testing.T) {
	oracle := testClassifierOracle(
		[]classifier.Entry{{Key: "bahnhofsuhr", Label: "7s"}},
		nil,
	)
	rules := classifier.New([]classifier.Entry{{Key: "nerhusfohnhab", Label: "2"}}, 0)
	d, err := New(Options{Oracle: oracle, Reducer: NewBaseFormReducer(rules)})
	if err != nil {
		t.Fatal(err)
	}

	got := d.Split("Bahnhofsuhren")
	if !slices.Equal(got, []string{"Bahnhof", "Uhr"}) {
		t.Errorf("Split(Bahnhofsuhren) = %v, want [Bahnhof Uhr]", got)
	}
}

func TestOpenClassifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefix.tsv")
	content := "# word\tlabel\nbahnhofsuhr\t7s\nhaustür+4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := OpenClassifier(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	if _, err := OpenClassifier(filepath.Join(t.TempDir(), "missing.tsv"), 0); err == nil {
		t.Error("OpenClassifier(missing) should fail")
	}
}
