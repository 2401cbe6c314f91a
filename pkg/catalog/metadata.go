package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Record is one Gutenberg etext's metadata. Records are immutable after
// load.
type Record struct {
	EtextNo         uint64
	Link            string
	Title           string
	Author          string
	Subject         string
	Language        string
	ReleaseDate     string
	LOCClass        string
	Notes           string
	CopyrightStatus string
}

// Scored pairs a Record with a similarity or relevance score, attached at
// query time.
type Scored struct {
	Record
	Score float64
}

// Metadata is the in-memory catalog of etext records keyed by etext number.
type Metadata struct {
	byEtext map[uint64]Record
}

const metadataFieldCount = 10

// ReadMetadata parses the metadata file format: a header line (skipped),
// then lines of exactly 10 tab-separated fields. Duplicate etext numbers
// are resolved last-wins; malformed lines are fatal.
func ReadMetadata(path string, log Logger) (*Metadata, error) {
	if log == nil {
		log = NopLogger()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapLoadError("catalog.ReadMetadata", path, 0, err)
	}
	defer f.Close()

	m := &Metadata{byEtext: make(map[uint64]Record)}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	skippedHeader := false
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !skippedHeader {
			skippedHeader = true
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != metadataFieldCount {
			return nil, wrapLoadError("catalog.ReadMetadata", path, lineNo,
				fmt.Errorf("%w: got %d fields, want %d", ErrShortRecord, len(fields), metadataFieldCount))
		}
		etextNo, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, wrapLoadError("catalog.ReadMetadata", path, lineNo,
				fmt.Errorf("%w: etext_no %q: %v", ErrMalformedField, fields[0], err))
		}
		m.byEtext[etextNo] = Record{
			EtextNo:         etextNo,
			Link:            fields[1],
			Title:           fields[2],
			Author:          fields[3],
			Subject:         fields[4],
			Language:        fields[5],
			ReleaseDate:     fields[6],
			LOCClass:        fields[7],
			Notes:           fields[8],
			CopyrightStatus: fields[9],
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapLoadError("catalog.ReadMetadata", path, lineNo, err)
	}
	log.Info("loaded metadata", "path", path, "records", len(m.byEtext))
	return m, nil
}

// Get looks up a record by etext number.
func (m *Metadata) Get(etextNo uint64) (Record, bool) {
	r, ok := m.byEtext[etextNo]
	return r, ok
}

// Len reports the number of records in the catalog.
func (m *Metadata) Len() int {
	return len(m.byEtext)
}

// Iter calls fn for every record in the catalog, in unspecified order.
// Iteration stops early if fn returns false.
func (m *Metadata) Iter(fn func(Record) bool) {
	for _, r := range m.byEtext {
		if !fn(r) {
			return
		}
	}
}

// Posting is one (etext_no, score) pair, the element type of a postings
// list produced by a recommender or the phonetic index.
type Posting struct {
	EtextNo uint64
	Score   float64
}

// Join attaches metadata to a sorted postings list: skip start entries, take
// up to limit, drop postings without a matching record, preserving input
// order.
func (m *Metadata) Join(rows []Posting, start, limit int) []Scored {
	if start < 0 {
		start = 0
	}
	if start >= len(rows) {
		return []Scored{}
	}
	rows = rows[start:]

	out := make([]Scored, 0, minInt(limit, len(rows)))
	for _, row := range rows {
		if len(out) >= limit {
			break
		}
		rec, ok := m.Get(row.EtextNo)
		if !ok {
			continue
		}
		out = append(out, Scored{Record: rec, Score: row.Score})
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
