package memory

import (
	"errors"
	"sort"
	"sync"

	"recipe-rag/internal/embedding"
	"recipe-rag/internal/vectorstore"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
// Rows keep their insertion position so results map back to the corpus.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   []embedding.Vector
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension < 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	return nil
}

func (s *Storage) Upsert(vectors []embedding.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if n := len(v.Indices); n > 0 && v.Indices[n-1] >= s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns up to topK rows ordered by descending score. Equal scores
// keep insertion order. Scores are clamped to [0,1].
func (s *Storage) Search(vector embedding.Vector, topK int) ([]vectorstore.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		return nil, errors.New("topK must be positive")
	}
	// vectors are L2-normalized, so the dot product is the cosine
	hits := make([]vectorstore.Hit, len(s.vectors))
	for i := range s.vectors {
		hits[i] = vectorstore.Hit{Position: i, Score: clamp(embedding.Dot(s.vectors[i], vector))}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	return nil
}

func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
