package recommend

import "sort"

// Combination holds non-owning references to two recommenders and fuses
// their per-etext scores by multiplication. Both underlying results are
// distances (smaller = better), so the product preserves that polarity.
type Combination struct {
	left, right Recommender
}

// NewCombination builds a Combination over two existing recommenders.
func NewCombination(left, right Recommender) *Combination {
	return &Combination{left: left, right: right}
}

// ScoredResults requires both underlying recommenders to produce a result
// for etextNo; if either is absent, the combination is absent. The two
// etext-sorted lists are merged on matching etext numbers only: an etext
// present in one list but not the other contributes nothing to the output.
func (c *Combination) ScoredResults(etextNo uint64) ([]Posting, bool) {
	leftRows, ok := c.left.ScoredResults(etextNo)
	if !ok {
		return nil, false
	}
	rightRows, ok := c.right.ScoredResults(etextNo)
	if !ok {
		return nil, false
	}

	leftSorted := sortedByEtext(leftRows)
	rightSorted := sortedByEtext(rightRows)

	out := make([]Posting, 0, min(len(leftSorted), len(rightSorted)))
	i, j := 0, 0
	for i < len(leftSorted) && j < len(rightSorted) {
		switch {
		case leftSorted[i].EtextNo < rightSorted[j].EtextNo:
			i++
		case leftSorted[i].EtextNo > rightSorted[j].EtextNo:
			j++
		default:
			out = append(out, Posting{
				EtextNo: leftSorted[i].EtextNo,
				Score:   leftSorted[i].Score * rightSorted[j].Score,
			})
			i++
			j++
		}
	}
	return out, true
}

// sortedByEtext re-sorts a recommender's output by etext number. Recommender
// rows are already in ascending row-index order, which matches etext order
// only when the catalog was loaded that way; sorting here keeps the merge
// correct regardless.
func sortedByEtext(rows []Posting) []Posting {
	out := make([]Posting, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].EtextNo < out[j].EtextNo })
	return out
}
