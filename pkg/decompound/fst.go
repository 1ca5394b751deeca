package decompound

import (
	"bytes"
	"sort"
	"unicode/utf8"

	"github.com/blevesearch/vellum"
)

// compileFST builds a serialized vellum FST from keys. Keys are sorted and
// deduplicated here; vellum requires strictly increasing insertion order.
func compileFST(keys [][]byte) ([]byte, error) {
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}
	var prev []byte
	for i, key := range keys {
		if i > 0 && bytes.Equal(key, prev) {
			continue
		}
		if err := builder.Insert(key, 0); err != nil {
			builder.Close()
			return nil, err
		}
		prev = key
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// acceptRune feeds the UTF-8 encoding of r to fst starting at state addr.
// It reports false as soon as a byte has no transition.
func acceptRune(fst *vellum.FST, addr int, r rune) (int, bool) {
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	for _, b := range enc[:n] {
		addr = fst.Accept(addr, b)
		if !fst.CanMatch(addr) {
			return addr, false
		}
	}
	return addr, true
}

// acceptString feeds every rune of s to fst starting at state addr.
func acceptString(fst *vellum.FST, addr int, s string) (int, bool) {
	for _, r := range s {
		var ok bool
		if addr, ok = acceptRune(fst, addr, r); !ok {
			return addr, false
		}
	}
	return addr, true
}

// fstKeys lists every key stored in fst, in order.
func fstKeys(fst *vellum.FST) ([][]byte, error) {
	var keys [][]byte
	itr, err := fst.Iterator(nil, nil)
	for err == nil {
		key, _ := itr.Current()
		keys = append(keys, append([]byte(nil), key...))
		err = itr.Next()
	}
	if err != vellum.ErrIteratorDone {
		return nil, err
	}
	return keys, nil
}
