package decompound

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/blevesearch/vellum"
)

// wordEndMarker follows every dictionary key. A complete word is recognized
// by the marker transition, a mere prefix of a longer word has none.
const wordEndMarker byte = 0x00

// Dictionary is the automaton backend: an immutable FST over known surface
// forms, stored lower-cased and reversed like CodepointBuffer.
type Dictionary struct {
	fst  *vellum.FST
	data []byte
}

// CompileDictionary builds a Dictionary from surface forms.
func CompileDictionary(words []string) (*Dictionary, error) {
	keys := make([][]byte, 0, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" || strings.IndexByte(word, wordEndMarker) >= 0 {
			continue
		}
		key := []byte(string(foldReversed(word)))
		keys = append(keys, append(key, wordEndMarker))
	}
	data, err := compileFST(keys)
	if err != nil {
		return nil, err
	}
	return loadDictionaryBytes("compiled word list", data)
}

// LoadDictionary reads a compiled dictionary from a flat byte stream, as
// written by WriteTo.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, loadError("dictionary stream", err)
	}
	return loadDictionaryBytes("dictionary stream", data)
}

func loadDictionaryBytes(source string, data []byte) (*Dictionary, error) {
	fst, err := vellum.Load(data)
	if err != nil {
		return nil, loadError(source, err)
	}
	return &Dictionary{fst: fst, data: data}, nil
}

// OpenDictionary opens a dictionary file. A ".fst" file is loaded as is. Any
// other file is read as a word list; its sibling ".fst" is loaded when it
// exists, otherwise the list is compiled and the FST written next to it.
func OpenDictionary(path string) (*Dictionary, error) {
	if filepath.Ext(path) == ".fst" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, loadError(path, err)
		}
		return loadDictionaryBytes(path, data)
	}

	fstPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".fst"
	if data, err := os.ReadFile(fstPath); err == nil {
		return loadDictionaryBytes(fstPath, data)
	}

	words, err := ReadWordListFile(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	dict, err := CompileDictionary(words)
	if err != nil {
		return nil, loadError(path, err)
	}
	if err := dict.Save(fstPath); err != nil {
		return nil, err
	}
	return dict, nil
}

// ReadWordList reads one word per line, skipping blank lines and '#' comments.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}

// ReadWordListFile reads a word list from path.
func ReadWordListFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadWordList(file)
}

// Candidates walks the automaton from offset and returns every end such that
// buf[offset:end] is a known word, shortest first. The walk stops at the
// first code point without a transition.
func (d *Dictionary) Candidates(buf *CodepointBuffer, offset int) []int {
	var ends []int
	addr := d.fst.Start()
	for i := offset; i < buf.Len(); i++ {
		var ok bool
		addr, ok = acceptRune(d.fst, addr, buf.At(i))
		if !ok {
			break
		}
		if end := d.fst.Accept(addr, wordEndMarker); d.fst.CanMatch(end) && d.fst.IsMatch(end) {
			ends = append(ends, i+1)
		}
	}
	return ends
}

// umlautFolds are the spellings tried in place of umlauts and ß.
var umlautFolds = map[rune]string{'ä': "a", 'ö': "o", 'ü': "u", 'ß': "ss"}

// UmlautFold is a Dictionary oracle that also matches ä, ö, ü and ß in the
// word against a, o, u and ss in the dictionary, for word lists written
// without them. Part texts keep the word's own spelling.
type UmlautFold struct {
	*Dictionary
}

// Candidates walks every spelling of buf[offset:] in parallel and returns the
// ends at which any of them is a known word.
func (f UmlautFold) Candidates(buf *CodepointBuffer, offset int) []int {
	fst := f.fst
	var ends []int
	states := []int{fst.Start()}
	for i := offset; i < buf.Len() && len(states) > 0; i++ {
		r := buf.At(i)
		next := make([]int, 0, 2*len(states))
		for _, addr := range states {
			if to, ok := acceptRune(fst, addr, r); ok && !slices.Contains(next, to) {
				next = append(next, to)
			}
			if fold, ok := umlautFolds[r]; ok {
				if to, ok := acceptString(fst, addr, fold); ok && !slices.Contains(next, to) {
					next = append(next, to)
				}
			}
		}
		states = next
		for _, addr := range states {
			if end := fst.Accept(addr, wordEndMarker); fst.CanMatch(end) && fst.IsMatch(end) {
				ends = append(ends, i+1)
				break
			}
		}
	}
	return ends
}

// Contains reports whether word is a known surface form (case-insensitive).
func (d *Dictionary) Contains(word string) bool {
	_, exists, _ := d.fst.Get(append([]byte(string(foldReversed(word))), wordEndMarker))
	return exists
}

// Words returns the stored surface forms, lower-cased, in key order.
func (d *Dictionary) Words() ([]string, error) {
	keys, err := fstKeys(d.fst)
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, len(keys))
	for _, key := range keys {
		key = key[:len(key)-1]
		words = append(words, string(reverseRunes([]rune(string(key)))))
	}
	return words, nil
}

// WordCount returns the number of words in the dictionary.
func (d *Dictionary) WordCount() int {
	return d.fst.Len()
}

// WriteTo writes the compiled automaton; LoadDictionary reads it back.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)
	return int64(n), err
}

// Save writes the compiled automaton to path.
func (d *Dictionary) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := d.WriteTo(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Close releases FST resources.
func (d *Dictionary) Close() error {
	if d.fst == nil {
		return nil
	}
	err := d.fst.Close()
	d.fst = nil
	return err
}
