package memory

import (
	"testing"

	"recipe-rag/internal/embedding"
)

func vec(w map[int]float64) embedding.Vector { return embedding.NewVector(w) }

func TestStorage_SearchOrdersByScoreThenPosition(t *testing.T) {
	s := NewStorage()
	if err := s.Init(3); err != nil {
		t.Fatal(err)
	}
	err := s.Upsert([]embedding.Vector{
		vec(map[int]float64{0: 1}),
		vec(map[int]float64{1: 1}),
		vec(map[int]float64{0: 1}),
		{},
	})
	if err != nil {
		t.Fatal(err)
	}
	hits, err := s.Search(vec(map[int]float64{0: 1}), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 4 {
		t.Fatalf("got %d hits", len(hits))
	}
	wantPos := []int{0, 2, 1, 3}
	for i, h := range hits {
		if h.Position != wantPos[i] {
			t.Errorf("hit %d position = %d, want %d", i, h.Position, wantPos[i])
		}
	}
	if hits[0].Score != 1 || hits[2].Score != 0 {
		t.Errorf("unexpected scores %+v", hits)
	}
}

func TestStorage_topKAndErrors(t *testing.T) {
	s := NewStorage()
	_ = s.Init(2)
	if err := s.Upsert([]embedding.Vector{vec(map[int]float64{5: 1})}); err == nil {
		t.Error("expected dimension mismatch")
	}
	_ = s.Upsert([]embedding.Vector{vec(map[int]float64{0: 1}), vec(map[int]float64{1: 1})})
	hits, _ := s.Search(vec(map[int]float64{1: 1}), 1)
	if len(hits) != 1 || hits[0].Position != 1 {
		t.Errorf("hits = %+v", hits)
	}
	if _, err := s.Search(vec(nil), 0); err == nil {
		t.Error("expected error for topK 0")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}
	_ = s.Clear()
	if s.Len() != 0 {
		t.Error("Clear should drop rows")
	}
	if err := s.Init(-1); err == nil {
		t.Error("expected error for negative dimension")
	}
}
