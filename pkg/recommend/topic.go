package recommend

import (
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/bitset"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
)

// Topic computes Jaccard distance over the sparse noun bit-sets: smaller
// distance means more similar. One scratch bit-set for the union is reused
// across the whole-catalog scan for one query, and the intersection is
// counted without materializing a set, so the dominant per-document cost is
// an AND/OR over words, not an allocation.
type Topic struct {
	data *catalog.Topic
}

// NewTopic wraps a loaded topic matrix as a Recommender.
func NewTopic(data *catalog.Topic) *Topic {
	return &Topic{data: data}
}

// ScoredResults returns a row for every etext, ascending row-index order.
func (t *Topic) ScoredResults(etextNo uint64) ([]Posting, bool) {
	qIdx, ok := t.data.IndexOf(etextNo)
	if !ok {
		return nil, false
	}
	query := t.data.Row(qIdx)

	n := t.data.Len()
	out := make([]Posting, n)
	union := bitset.New()
	for i := 0; i < n; i++ {
		row := t.data.Row(i)
		out[i] = Posting{
			EtextNo: t.data.EtextAt(i),
			Score:   jaccardDistance(union, row, query),
		}
	}
	return out, true
}

// jaccardDistance computes 1 - |a∩b|/|a∪b|, using scratchUnion as working
// space for the union (reused across the whole-catalog scan) and
// IntersectionCardinality for the intersection, which never mutates either
// operand and so is correct regardless of which one has more words. When
// both sets are empty the union has cardinality 0; by convention this
// returns 1.0 rather than dividing by zero.
func jaccardDistance(scratchUnion *bitset.BitSet, a, b *bitset.BitSet) float64 {
	scratchUnion.CopyFrom(a).UnionWith(b)

	unionCard := scratchUnion.Cardinality()
	if unionCard == 0 {
		return 1.0
	}
	interCard := a.IntersectionCardinality(b)
	return 1.0 - float64(interCard)/float64(unionCard)
}
