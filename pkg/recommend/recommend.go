// Package recommend computes ranked similarity lists over a loaded catalog:
// style (dense Euclidean), topic (sparse Jaccard), and their multiplicative
// combination.
package recommend

import (
	"sort"

	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
)

// Posting is an alias of catalog.Posting, the shared (etext_no, score) pair
// used by every recommender and the phonetic index.
type Posting = catalog.Posting

// Recommender produces a postings list for a reference etext. ScoredResults
// returns the list in natural row order (ascending etext number as loaded);
// the boolean reports whether the etext was found at all.
type Recommender interface {
	ScoredResults(etextNo uint64) ([]Posting, bool)
}

// SortedResults returns ScoredResults sorted ascending by score, the
// polarity shared by style, topic, and combination: smaller score means
// more similar.
func SortedResults(r Recommender, etextNo uint64) ([]Posting, bool) {
	rows, ok := r.ScoredResults(etextNo)
	if !ok {
		return nil, false
	}
	sorted := make([]Posting, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })
	return sorted, true
}
