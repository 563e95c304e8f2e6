package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"recipe-rag/internal/embedding"
)

// Embedder implements a TF-IDF vectorizer producing sparse, L2-normalized vectors.
// It builds a vocabulary from the corpus and computes smoothed IDF values.
// After Prepare it is read-only and safe for concurrent Embed calls.
type Embedder struct {
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewEmbedder creates an unprepared TF-IDF embedder using the English stop-word list.
func NewEmbedder() *Embedder {
	return &Embedder{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_]{2,}`),
		stopwords:    EnglishStopwords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
// A corpus without any indexable token leaves an empty vocabulary; every
// embedding is then the zero vector.
func (e *Embedder) Prepare(corpus []string) error {
	if corpus == nil {
		return errors.New("nil corpus for TF-IDF prepare")
	}
	// Build vocabulary and document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the vocabulary size.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed returns the TF-IDF vector of text. Out-of-vocabulary terms contribute nothing.
func (e *Embedder) Embed(text string) (embedding.Vector, error) {
	if !e.prepared {
		return embedding.Vector{}, errors.New("tfidf embedder not prepared")
	}
	tf := make(map[int]float64)
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return embedding.Vector{}, nil
	}
	norm := 0.0
	for idx, count := range tf {
		w := count * e.idf[idx]
		tf[idx] = w
		norm += w * w
	}
	// L2 normalize
	norm = math.Sqrt(norm)
	for idx := range tf {
		tf[idx] /= norm
	}
	return embedding.NewVector(tf), nil
}

// Vocabulary reports whether term is part of the fitted vocabulary.
func (e *Embedder) Vocabulary(term string) bool {
	_, ok := e.vocabulary[strings.ToLower(term)]
	return ok
}

func (e *Embedder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}
