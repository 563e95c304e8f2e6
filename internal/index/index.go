// Package index builds a TF-IDF similarity index over corpus entries and
// answers nearest-neighbour queries against it.
package index

import (
	"errors"
	"fmt"
	"strings"

	"recipe-rag/internal/domain"
	"recipe-rag/internal/embedding"
	"recipe-rag/internal/vectorstore"
)

// DefaultTopN is the number of matches returned when a query does not say.
const DefaultTopN = 10

// SimilarityIndex ranks corpus entries against keyword queries. Its rows are
// aligned 1:1 with the entries it was built from; it is read-only after Build
// and safe for concurrent queries.
type SimilarityIndex struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	entries  []domain.CorpusEntry
}

// New creates an empty index over the given embedder and store.
func New(embedder embedding.Embedder, store vectorstore.Storage) *SimilarityIndex {
	return &SimilarityIndex{embedder: embedder, store: store}
}

// Build fits the embedder on every entry's combined text and stores one
// vector per entry. Rebuilding replaces any previous state.
func (x *SimilarityIndex) Build(entries []domain.CorpusEntry) error {
	texts := make([]string, len(entries))
	for i := range entries {
		texts[i] = entries[i].CombinedText
	}
	if err := x.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}
	if err := x.store.Init(x.embedder.Dimension()); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	vectors := make([]embedding.Vector, len(entries))
	for i, text := range texts {
		v, err := x.embedder.Embed(text)
		if err != nil {
			return fmt.Errorf("embed entry %d: %w", i, err)
		}
		vectors[i] = v
	}
	if err := x.store.Upsert(vectors); err != nil {
		return fmt.Errorf("store vectors: %w", err)
	}
	x.entries = entries
	return nil
}

// Len returns the number of indexed entries.
func (x *SimilarityIndex) Len() int { return len(x.entries) }

// Entries returns the indexed corpus in index order.
func (x *SimilarityIndex) Entries() []domain.CorpusEntry { return x.entries }

// Query joins keywords into one bag-of-words text and returns up to topN
// matches by descending cosine similarity, ties in corpus order. topN <= 0
// means DefaultTopN. A query with no known terms scores every entry 0.
func (x *SimilarityIndex) Query(keywords []string, topN int) ([]domain.RankedMatch, error) {
	if len(x.entries) == 0 {
		return []domain.RankedMatch{}, nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	q, err := x.embedder.Embed(strings.Join(keywords, " "))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := x.store.Search(q, topN)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	matches := make([]domain.RankedMatch, 0, len(hits))
	for _, h := range hits {
		if h.Position < 0 || h.Position >= len(x.entries) {
			return nil, errors.New("index out of sync with corpus")
		}
		matches = append(matches, domain.RankedMatch{Entry: &x.entries[h.Position], Position: h.Position, Score: h.Score})
	}
	return matches, nil
}
