package classifier

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadEntries parses training entries, one "key<TAB>label" per line (UTF-8).
// Lines exported with the tab replaced by '+' are accepted too; the last '+'
// separates key and label. Blank lines and lines starting with '#' are skipped.
func ReadEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, label, ok := strings.Cut(line, "\t")
		if !ok {
			i := strings.LastIndexByte(line, '+')
			if i < 0 {
				return nil, fmt.Errorf("line %d: missing separator in %q", lineNo, line)
			}
			key, label = line[:i], line[i+1:]
		}
		if key == "" || label == "" {
			return nil, fmt.Errorf("line %d: empty key or label in %q", lineNo, line)
		}
		entries = append(entries, Entry{Key: key, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Load reads entries from r and builds a classifier.
func Load(r io.Reader, threshold float64) (*Classifier, error) {
	entries, err := ReadEntries(r)
	if err != nil {
		return nil, err
	}
	return New(entries, threshold), nil
}
