package recommend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestStyleDistanceWorkedExample(t *testing.T) {
	path := writeTemp(t, "style.tsv", "1\t0.0\t0.0\n2\t3.0\t4.0\n")
	data, err := catalog.ReadStyle(path, nil)
	if err != nil {
		t.Fatalf("ReadStyle: %v", err)
	}
	rec := NewStyle(data)

	rows, ok := SortedResults(rec, 1)
	if !ok {
		t.Fatalf("expected etext 1 present")
	}
	want := []Posting{{EtextNo: 1, Score: 0.0}, {EtextNo: 2, Score: 5.0}}
	if len(rows) != len(want) || rows[0] != want[0] || rows[1] != want[1] {
		t.Fatalf("got %v, want %v", rows, want)
	}
}

func TestStyleIncludesSelfAtZero(t *testing.T) {
	path := writeTemp(t, "style.tsv", "1\t1.0\t2.0\n2\t2.0\t3.0\n3\t9.0\t9.0\n")
	data, err := catalog.ReadStyle(path, nil)
	if err != nil {
		t.Fatalf("ReadStyle: %v", err)
	}
	rec := NewStyle(data)

	rows, ok := rec.ScoredResults(2)
	if !ok {
		t.Fatalf("expected etext 2 present")
	}
	if len(rows) != 3 {
		t.Fatalf("expected one row per catalog entry, got %d", len(rows))
	}
	found := false
	for _, r := range rows {
		if r.EtextNo == 2 {
			found = true
			if r.Score != 0.0 {
				t.Errorf("self distance should be 0, got %v", r.Score)
			}
		}
	}
	if !found {
		t.Fatalf("reference etext missing from its own results")
	}
}

func TestStyleUnknownEtextAbsent(t *testing.T) {
	path := writeTemp(t, "style.tsv", "1\t0.0\n")
	data, err := catalog.ReadStyle(path, nil)
	if err != nil {
		t.Fatalf("ReadStyle: %v", err)
	}
	if _, ok := NewStyle(data).ScoredResults(999); ok {
		t.Fatalf("expected absent result for unknown etext")
	}
}

func TestTopicJaccardWorkedExample(t *testing.T) {
	path := writeTemp(t, "topic.tsv", "1\t1\t2\t3\n2\t2\t3\t4\n")
	data, err := catalog.ReadTopic(path, nil)
	if err != nil {
		t.Fatalf("ReadTopic: %v", err)
	}
	rec := NewTopic(data)

	rows, ok := rec.ScoredResults(1)
	if !ok {
		t.Fatalf("expected etext 1 present")
	}
	for _, r := range rows {
		if r.EtextNo == 2 {
			if r.Score != 0.5 {
				t.Errorf("expected Jaccard distance 0.5, got %v", r.Score)
			}
		}
		if r.Score < 0.0 || r.Score > 1.0 {
			t.Errorf("Jaccard distance out of [0,1]: %v", r.Score)
		}
	}
}

func TestTopicJaccardDisjointAcrossWordBoundary(t *testing.T) {
	// Etext 1's bit-set spans two 64-bit words while etext 3's is entirely
	// within the first; the sets share no elements, so the true distance is
	// 1.0 regardless of which operand has more words.
	path := writeTemp(t, "topic.tsv", "1\t4\t19\t42\t103\n2\t4\t19\t44\t103\n3\t7\t8\t9\n")
	data, err := catalog.ReadTopic(path, nil)
	if err != nil {
		t.Fatalf("ReadTopic: %v", err)
	}
	rows, ok := NewTopic(data).ScoredResults(3)
	if !ok {
		t.Fatalf("expected etext 3 present")
	}
	for _, r := range rows {
		if r.EtextNo == 1 && r.Score != 1.0 {
			t.Errorf("expected disjoint sets to have Jaccard distance 1.0, got %v", r.Score)
		}
	}
}

func TestTopicEmptyVsEmptyIsOne(t *testing.T) {
	path := writeTemp(t, "topic.tsv", "1\n2\n")
	data, err := catalog.ReadTopic(path, nil)
	if err != nil {
		t.Fatalf("ReadTopic: %v", err)
	}
	rows, ok := NewTopic(data).ScoredResults(1)
	if !ok {
		t.Fatalf("expected etext 1 present")
	}
	for _, r := range rows {
		if r.EtextNo == 2 && r.Score != 1.0 {
			t.Errorf("empty/empty Jaccard distance should be 1.0 by convention, got %v", r.Score)
		}
	}
}

// fakeRecommender lets combination tests construct score lists directly,
// matching spec's worked combination example without needing file fixtures.
type fakeRecommender struct {
	byEtext map[uint64][]Posting
}

func (f *fakeRecommender) ScoredResults(etextNo uint64) ([]Posting, bool) {
	rows, ok := f.byEtext[etextNo]
	return rows, ok
}

func TestCombinationWorkedExample(t *testing.T) {
	style := &fakeRecommender{byEtext: map[uint64][]Posting{
		10: {{EtextNo: 10, Score: 0.2}, {EtextNo: 20, Score: 0.5}},
	}}
	topic := &fakeRecommender{byEtext: map[uint64][]Posting{
		10: {{EtextNo: 20, Score: 0.4}, {EtextNo: 30, Score: 0.1}},
	}}
	comb := NewCombination(style, topic)

	rows, ok := comb.ScoredResults(10)
	if !ok {
		t.Fatalf("expected combination present")
	}
	want := []Posting{{EtextNo: 20, Score: 0.2}}
	if len(rows) != 1 || rows[0].EtextNo != want[0].EtextNo {
		t.Fatalf("got %v, want %v", rows, want)
	}
	if diff := rows[0].Score - want[0].Score; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("score mismatch: got %v, want %v", rows[0].Score, want[0].Score)
	}
}

func TestCombinationAbsentWhenEitherSideAbsent(t *testing.T) {
	style := &fakeRecommender{byEtext: map[uint64][]Posting{10: {{EtextNo: 10, Score: 0.1}}}}
	topic := &fakeRecommender{byEtext: map[uint64][]Posting{}}
	comb := NewCombination(style, topic)
	if _, ok := comb.ScoredResults(10); ok {
		t.Fatalf("expected absent when right side has no result")
	}
}

func TestSortedResultsMatchesScoredResultsOrderedByScore(t *testing.T) {
	path := writeTemp(t, "style.tsv", "1\t0.0\t0.0\n2\t3.0\t4.0\n3\t1.0\t1.0\n")
	data, err := catalog.ReadStyle(path, nil)
	if err != nil {
		t.Fatalf("ReadStyle: %v", err)
	}
	rec := NewStyle(data)

	scored, _ := rec.ScoredResults(1)
	sorted, _ := SortedResults(rec, 1)
	if len(scored) != len(sorted) {
		t.Fatalf("length mismatch")
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Score > sorted[i].Score {
			t.Fatalf("SortedResults not ascending at %d: %v", i, sorted)
		}
	}
}
