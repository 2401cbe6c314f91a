package phonetic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
)

func buildMetadata(t *testing.T, rows [][10]string) *catalog.Metadata {
	t.Helper()
	content := "header\n"
	for _, r := range rows {
		line := r[0]
		for _, f := range r[1:] {
			line += "\t" + f
		}
		content += line + "\n"
	}
	path := filepath.Join(t.TempDir(), "metadata.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	m, err := catalog.ReadMetadata(path, nil)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	return m
}

func TestGetEntriesWorkedExample(t *testing.T) {
	meta := buildMetadata(t, [][10]string{
		{"1", "", "brown fox", "", "", "en", "", "", "", ""},
		{"2", "", "brown", "fox", "", "en", "", "", "", ""},
	})
	idx := Build(meta, nil)

	brown := idx.GetEntries("brown")
	scoreByEtext := map[uint64]float64{}
	for _, p := range brown {
		scoreByEtext[p.EtextNo] = p.Score
	}
	if scoreByEtext[1] != 3 || scoreByEtext[2] != 3 {
		t.Fatalf("query %q: got %v, want both etexts at score 3", "brown", brown)
	}

	both := idx.GetEntries("brown fox")
	if len(both) != 2 {
		t.Fatalf("query %q: got %d rows, want 2: %v", "brown fox", len(both), both)
	}
	// descending by score: etext 1 (3+3=6) before etext 2 (3+2=5)
	if both[0].EtextNo != 1 || both[0].Score != 6 {
		t.Errorf("expected etext 1 first with score 6, got %+v", both[0])
	}
	if both[1].EtextNo != 2 || both[1].Score != 5 {
		t.Errorf("expected etext 2 second with score 5, got %+v", both[1])
	}
}

func TestGetEntriesIntersectionEmptiesOnMiss(t *testing.T) {
	meta := buildMetadata(t, [][10]string{
		{"1", "", "brown fox", "", "", "en", "", "", "", ""},
		{"2", "", "brown bear", "", "", "en", "", "", "", ""},
	})
	idx := Build(meta, nil)

	// "fox" only matches etext 1; combined with "brown" (both etexts) the
	// AND-intersection must keep only etext 1, not union in etext 2.
	rows := idx.GetEntries("brown fox")
	if len(rows) != 1 || rows[0].EtextNo != 1 {
		t.Fatalf("expected intersection-only result [etext 1], got %v", rows)
	}
}

func TestGetEntriesUnknownTokenLeavesResultUnchanged(t *testing.T) {
	meta := buildMetadata(t, [][10]string{
		{"1", "", "brown fox", "", "", "en", "", "", "", ""},
	})
	idx := Build(meta, nil)

	withUnknown := idx.GetEntries("brown zzzzqqqq")
	withoutUnknown := idx.GetEntries("brown")
	if len(withUnknown) != len(withoutUnknown) {
		t.Fatalf("unknown token should leave result unchanged: %v vs %v", withUnknown, withoutUnknown)
	}
}

func TestGetEntriesMonotonicityAddingTokenNeverGrows(t *testing.T) {
	meta := buildMetadata(t, [][10]string{
		{"1", "", "brown fox", "", "", "en", "", "", "", ""},
		{"2", "", "brown bear", "", "", "en", "", "", "", ""},
		{"3", "", "brown fox bear", "", "", "en", "", "", "", ""},
	})
	idx := Build(meta, nil)

	before := idx.GetEntries("brown")
	after := idx.GetEntries("brown fox")
	if len(after) > len(before) {
		t.Fatalf("adding a token must not grow the result set: before=%v after=%v", before, after)
	}
}

func TestGetEntriesEmptyQuery(t *testing.T) {
	meta := buildMetadata(t, [][10]string{
		{"1", "", "brown fox", "", "", "en", "", "", "", ""},
	})
	idx := Build(meta, nil)
	if rows := idx.GetEntries(""); len(rows) != 0 {
		t.Fatalf("empty query should yield no results, got %v", rows)
	}
}
