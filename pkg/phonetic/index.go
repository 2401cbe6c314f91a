// Package phonetic builds a NYSIIS-keyed inverted index over a catalog's
// title/author/subject text and answers multi-term queries against it.
package phonetic

import (
	"sort"
	"strings"

	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/nysiis"
)

const (
	weightTitle   = 3.0
	weightAuthor  = 2.0
	weightSubject = 1.0
)

// Posting is the (etext_no, score) pair stored in a postings list.
type Posting = catalog.Posting

// Index maps a NYSIIS key to the postings list of etexts that contain it.
type Index struct {
	postings map[string][]Posting
}

type triple struct {
	key     string
	etextNo uint64
	weight  float64
}

// Build constructs the index from a loaded catalog: tokenize title/author/
// subject on single spaces, NYSIIS-encode every token, weight occurrences
// 3/2/1 respectively, sum weights per (key, etext) pair, and group into
// postings lists sorted ascending by etext number.
func Build(meta *catalog.Metadata, log catalog.Logger) *Index {
	if log == nil {
		log = catalog.NopLogger()
	}

	var triples []triple
	meta.Iter(func(rec catalog.Record) bool {
		triples = appendWeighted(triples, rec.Title, rec.EtextNo, weightTitle)
		triples = appendWeighted(triples, rec.Author, rec.EtextNo, weightAuthor)
		triples = appendWeighted(triples, rec.Subject, rec.EtextNo, weightSubject)
		return true
	})

	sort.Slice(triples, func(i, j int) bool {
		if triples[i].key != triples[j].key {
			return triples[i].key < triples[j].key
		}
		return triples[i].etextNo < triples[j].etextNo
	})

	index := make(map[string][]Posting)
	i := 0
	for i < len(triples) {
		j := i + 1
		for j < len(triples) && triples[j].key == triples[i].key && triples[j].etextNo == triples[i].etextNo {
			j++
		}
		var total float64
		for k := i; k < j; k++ {
			total += triples[k].weight
		}
		key := triples[i].key
		index[key] = append(index[key], Posting{EtextNo: triples[i].etextNo, Score: total})
		i = j
	}

	for key, rows := range index {
		sort.Slice(rows, func(a, b int) bool { return rows[a].EtextNo < rows[b].EtextNo })
		index[key] = rows
	}

	log.Info("built phonetic index", "keys", len(index), "triples", len(triples))
	return &Index{postings: index}
}

func appendWeighted(triples []triple, text string, etextNo uint64, weight float64) []triple {
	if text == "" {
		return triples
	}
	for _, token := range strings.Split(text, " ") {
		key := nysiis.Encode(token)
		if key == "" {
			continue
		}
		triples = append(triples, triple{key: key, etextNo: etextNo, weight: weight})
	}
	return triples
}

// GetEntries tokenizes the query on single spaces, NYSIIS-encodes each
// token, and AND-intersects their postings lists with summed scores: the
// first token's postings seed the result; each subsequent token keeps only
// etexts present in both the running result and its own postings, summing
// scores for survivors. A token absent from the index contributes nothing
// and leaves the running result unchanged. The final list is sorted by
// score descending.
func (idx *Index) GetEntries(query string) []Posting {
	var results []Posting
	seeded := false

	for _, token := range strings.Split(query, " ") {
		if token == "" {
			continue
		}
		key := nysiis.Encode(token)
		if key == "" {
			continue
		}
		postings, ok := idx.postings[key]
		if !ok {
			continue
		}
		if !seeded {
			results = append([]Posting{}, postings...)
			seeded = true
			continue
		}
		results = intersectAndSum(results, postings)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// intersectAndSum keeps only etexts present in both sorted-by-etext lists,
// summing their scores.
func intersectAndSum(results, postings []Posting) []Posting {
	out := make([]Posting, 0, min(len(results), len(postings)))
	r, p := 0, 0
	for r < len(results) && p < len(postings) {
		switch {
		case results[r].EtextNo < postings[p].EtextNo:
			r++
		case results[r].EtextNo > postings[p].EtextNo:
			p++
		default:
			out = append(out, Posting{
				EtextNo: results[r].EtextNo,
				Score:   results[r].Score + postings[p].Score,
			})
			r++
			p++
		}
	}
	return out
}
