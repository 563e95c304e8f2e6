package vectorstore

import "recipe-rag/internal/embedding"

// Hit is one stored row and its similarity to a query vector.
type Hit struct {
	Position int
	Score    float64
}

// Storage holds row vectors in insertion order and answers similarity queries.
type Storage interface {
	Init(dimension int) error
	Upsert(vectors []embedding.Vector) error
	Search(vector embedding.Vector, topK int) ([]Hit, error)
	Len() int
	Clear() error
}
