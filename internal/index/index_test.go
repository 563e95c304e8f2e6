package index

import (
	"testing"

	"recipe-rag/internal/domain"
	"recipe-rag/internal/embedding/tfidf"
	"recipe-rag/internal/vectorstore/memory"
)

func entries(texts ...string) []domain.CorpusEntry {
	out := make([]domain.CorpusEntry, len(texts))
	for i, t := range texts {
		out[i] = domain.CorpusEntry{Name: t, CombinedText: t}
	}
	return out
}

func build(t *testing.T, es []domain.CorpusEntry) *SimilarityIndex {
	t.Helper()
	x := New(tfidf.NewEmbedder(), memory.NewStorage())
	if err := x.Build(es); err != nil {
		t.Fatal(err)
	}
	return x
}

var corpusTexts = []string{
	"Chocolate cake dessert sugar flour",
	"Tomato soup basil",
	"Garlic Chicken stew chicken garlic broth",
	"Lemon tart dessert lemon butter",
	"Beef chili beans",
}

func TestQuery_ranksMatchingEntryFirst(t *testing.T) {
	x := build(t, entries(corpusTexts...))
	matches, err := x.Query([]string{"chicken", "garlic"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches", len(matches))
	}
	if matches[0].Entry.Name != corpusTexts[2] || matches[0].Position != 2 {
		t.Errorf("first match = %+v", matches[0])
	}
	if matches[0].Score <= 0 || matches[0].Score > 1 {
		t.Errorf("score out of range: %v", matches[0].Score)
	}
}

func TestQuery_boundedAndSorted(t *testing.T) {
	x := build(t, entries(corpusTexts...))
	for _, topN := range []int{1, 2, 5, 50} {
		matches, err := x.Query([]string{"dessert", "lemon", "soup"}, topN)
		if err != nil {
			t.Fatal(err)
		}
		want := topN
		if want > len(corpusTexts) {
			want = len(corpusTexts)
		}
		if len(matches) != want {
			t.Errorf("topN %d: got %d matches", topN, len(matches))
		}
		for i := 1; i < len(matches); i++ {
			if matches[i].Score > matches[i-1].Score {
				t.Errorf("topN %d: scores not non-increasing at %d", topN, i)
			}
			if matches[i].Score == matches[i-1].Score && matches[i].Position < matches[i-1].Position {
				t.Errorf("topN %d: tie not in corpus order at %d", topN, i)
			}
		}
	}
}

func TestQuery_defaultTopN(t *testing.T) {
	texts := make([]string, 15)
	for i := range texts {
		texts[i] = "rice dish"
	}
	x := build(t, entries(texts...))
	matches, err := x.Query([]string{"rice"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != DefaultTopN {
		t.Errorf("got %d, want %d", len(matches), DefaultTopN)
	}
}

func TestQuery_rebuildIsIdempotent(t *testing.T) {
	es := entries(corpusTexts...)
	a, _ := build(t, es).Query([]string{"dessert", "garlic"}, 5)
	b, _ := build(t, es).Query([]string{"dessert", "garlic"}, 5)
	for i := range a {
		if a[i].Position != b[i].Position || a[i].Score != b[i].Score {
			t.Fatalf("rank %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestQuery_outOfVocabularyScoresZero(t *testing.T) {
	x := build(t, entries(corpusTexts...))
	matches, err := x.Query([]string{"quinoa"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range matches {
		if m.Score != 0 || m.Position != i {
			t.Errorf("match %d = %+v, want zero score in corpus order", i, m)
		}
	}
}

func TestQuery_emptyVocabulary(t *testing.T) {
	x := build(t, entries("", "the of and"))
	matches, err := x.Query([]string{"chicken"}, 10)
	if err != nil {
		t.Fatalf("empty vocabulary should not error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches", len(matches))
	}
	for _, m := range matches {
		if m.Score != 0 {
			t.Errorf("score = %v, want 0", m.Score)
		}
	}
}

func TestQuery_emptyCorpus(t *testing.T) {
	x := build(t, nil)
	matches, err := x.Query([]string{"chicken"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches", len(matches))
	}
}
