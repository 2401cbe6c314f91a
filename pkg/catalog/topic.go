package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tmmcguire/ashurbanipal-web-go/pkg/bitset"
)

// Topic holds the sparse noun bit-sets for the topic recommender, indexed
// the same way as Style.
type Topic struct {
	rows         []*bitset.BitSet
	etextToIndex map[uint64]int
	indexToEtext []uint64
}

// ReadTopic parses "etext_no\tn1\tn2\t..." lines, where each ni is a
// non-negative noun-id. Row length may vary.
func ReadTopic(path string, log Logger) (*Topic, error) {
	if log == nil {
		log = NopLogger()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapLoadError("catalog.ReadTopic", path, 0, err)
	}
	defer f.Close()

	t := &Topic{etextToIndex: make(map[uint64]int)}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		etextNo, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, wrapLoadError("catalog.ReadTopic", path, lineNo,
				fmt.Errorf("%w: etext_no %q: %v", ErrMalformedField, fields[0], err))
		}
		nouns := make([]int, 0, len(fields)-1)
		for i, raw := range fields[1:] {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, wrapLoadError("catalog.ReadTopic", path, lineNo,
					fmt.Errorf("%w: noun-id %d %q", ErrMalformedField, i, raw))
			}
			nouns = append(nouns, n)
		}

		idx := len(t.rows)
		t.rows = append(t.rows, bitset.FromInts(nouns))
		t.etextToIndex[etextNo] = idx
		t.indexToEtext = append(t.indexToEtext, etextNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapLoadError("catalog.ReadTopic", path, lineNo, err)
	}
	log.Info("loaded topic bit-sets", "path", path, "rows", len(t.rows))
	return t, nil
}

// Len reports the number of rows.
func (t *Topic) Len() int { return len(t.rows) }

// IndexOf returns the row position for an etext number.
func (t *Topic) IndexOf(etextNo uint64) (int, bool) {
	idx, ok := t.etextToIndex[etextNo]
	return idx, ok
}

// EtextAt returns the etext number stored at a row position.
func (t *Topic) EtextAt(idx int) uint64 { return t.indexToEtext[idx] }

// Row returns the bit-set at a row position. Callers must not mutate it.
func (t *Topic) Row(idx int) *bitset.BitSet { return t.rows[idx] }
