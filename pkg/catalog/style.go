package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Style holds the dense feature matrix for the style recommender: one fixed
// arity row of doubles per etext, plus the index<->etext cross-reference.
type Style struct {
	rows         [][]float64
	etextToIndex map[uint64]int
	indexToEtext []uint64
	arity        int
}

// ReadStyle parses "etext_no\tf1\tf2\t...\tfD" lines. Every row must share
// the same arity D, established by the first row; a mismatch is fatal.
func ReadStyle(path string, log Logger) (*Style, error) {
	if log == nil {
		log = NopLogger()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapLoadError("catalog.ReadStyle", path, 0, err)
	}
	defer f.Close()

	s := &Style{etextToIndex: make(map[uint64]int)}
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
			return nil, wrapLoadError("catalog.ReadStyle", path, lineNo,
				fmt.Errorf("%w: etext_no %q: %v", ErrMalformedField, fields[0], err))
		}
		row := make([]float64, len(fields)-1)
		for i, raw := range fields[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, wrapLoadError("catalog.ReadStyle", path, lineNo,
					fmt.Errorf("%w: feature %d %q: %v", ErrMalformedField, i, raw, err))
			}
			row[i] = v
		}

		if s.arity == 0 && len(s.rows) == 0 {
			s.arity = len(row)
		}
		if len(row) != s.arity {
			return nil, wrapLoadError("catalog.ReadStyle", path, lineNo,
				fmt.Errorf("%w: row has %d features, want %d", ErrArityMismatch, len(row), s.arity))
		}

		idx := len(s.rows)
		s.rows = append(s.rows, row)
		s.etextToIndex[etextNo] = idx
		s.indexToEtext = append(s.indexToEtext, etextNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapLoadError("catalog.ReadStyle", path, lineNo, err)
	}
	log.Info("loaded style matrix", "path", path, "rows", len(s.rows), "arity", s.arity)
	return s, nil
}

// Len reports the number of rows.
func (s *Style) Len() int { return len(s.rows) }

// Arity reports the shared feature count of every row.
func (s *Style) Arity() int { return s.arity }

// IndexOf returns the row position for an etext number.
func (s *Style) IndexOf(etextNo uint64) (int, bool) {
	idx, ok := s.etextToIndex[etextNo]
	return idx, ok
}

// EtextAt returns the etext number stored at a row position.
func (s *Style) EtextAt(idx int) uint64 { return s.indexToEtext[idx] }

// Row returns the feature vector at a row position. Callers must not
// mutate the returned slice.
func (s *Style) Row(idx int) []float64 { return s.rows[idx] }
