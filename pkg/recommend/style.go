package recommend

import (
	"math"

	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
)

// Style computes Euclidean distance over the dense feature matrix: smaller
// distance means more similar.
type Style struct {
	data *catalog.Style
}

// NewStyle wraps a loaded style matrix as a Recommender.
func NewStyle(data *catalog.Style) *Style {
	return &Style{data: data}
}

// ScoredResults returns a row for every etext in the catalog, in ascending
// row-index order (equivalently, ascending load order), with the reference
// etext present at distance 0.
func (s *Style) ScoredResults(etextNo uint64) ([]Posting, bool) {
	qIdx, ok := s.data.IndexOf(etextNo)
	if !ok {
		return nil, false
	}
	query := s.data.Row(qIdx)

	n := s.data.Len()
	out := make([]Posting, n)
	for i := 0; i < n; i++ {
		out[i] = Posting{
			EtextNo: s.data.EtextAt(i),
			Score:   euclidean(s.data.Row(i), query),
		}
	}
	return out, true
}

// euclidean computes sqrt(sum((a_i - b_i)^2)). Both vectors must share
// arity; the catalog's arity check at load time guarantees this.
func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
