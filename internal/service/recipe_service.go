// Package service runs the recipe pipeline: load, index, sample, generate, parse.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-rag/internal/corpus"
	"recipe-rag/internal/domain"
	"recipe-rag/internal/generation"
	"recipe-rag/internal/index"
	"recipe-rag/internal/parser"
	"recipe-rag/internal/sampler"
	"recipe-rag/internal/summarizer"
)

// ErrNoKeywords is returned when a request carries no usable keyword.
var ErrNoKeywords = errors.New("at least one keyword is required")

const summaryTerms = 5

// GenerateRequest is one recipe generation request.
type GenerateRequest struct {
	Keywords            []string
	DietaryRestrictions string
	Model               string
}

// Stats describes the loaded corpus.
type Stats struct {
	Entries int                `json:"entries"`
	Load    corpus.LoadStats   `json:"load"`
	Summary summarizer.Summary `json:"summary"`
}

// RecipeService wires the pipeline components together. Queries and
// generation may run concurrently; loading a corpus takes the write lock.
type RecipeService struct {
	mu         sync.RWMutex
	loader     *corpus.Loader
	index      *index.SimilarityIndex
	sampler    *sampler.Sampler
	adapter    *generation.Adapter
	summarizer *summarizer.FrequencySummarizer
	topN       int
	logger     *zap.Logger

	loadStats corpus.LoadStats
	summary   summarizer.Summary
}

// NewRecipeService creates a service. topN <= 0 uses index.DefaultTopN.
func NewRecipeService(loader *corpus.Loader, idx *index.SimilarityIndex, smp *sampler.Sampler, adapter *generation.Adapter, topN int, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topN <= 0 {
		topN = index.DefaultTopN
	}
	return &RecipeService{
		loader:     loader,
		index:      idx,
		sampler:    smp,
		adapter:    adapter,
		summarizer: summarizer.NewFrequencySummarizer(),
		topN:       topN,
		logger:     logger,
	}
}

// IngestFile loads a corpus file and rebuilds the index from it.
func (s *RecipeService) IngestFile(path string) (corpus.LoadStats, error) {
	entries, stats, err := s.loader.LoadFile(path)
	if err != nil {
		return stats, fmt.Errorf("load corpus: %w", err)
	}
	if err := s.load(entries, stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// Load rebuilds the index from already normalized entries.
func (s *RecipeService) Load(entries []domain.CorpusEntry) error {
	return s.load(entries, corpus.LoadStats{Rows: len(entries)})
}

func (s *RecipeService) load(entries []domain.CorpusEntry, stats corpus.LoadStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.index.Build(entries); err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	s.loadStats = stats
	s.summary = s.summarizer.Summarize(entries, summaryTerms)
	s.logger.Info("corpus indexed", zap.Int("entries", len(entries)))
	return nil
}

// Search ranks corpus entries against keywords. topN <= 0 uses the service default.
func (s *RecipeService) Search(keywords []string, topN int) ([]domain.RankedMatch, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}
	if topN <= 0 {
		topN = s.topN
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Query(keywords, topN)
}

// Generate produces a structured recipe. It always returns an outcome: when
// generation fails the outcome is KindFailed and carries the sentinel recipe.
func (s *RecipeService) Generate(ctx context.Context, req GenerateRequest) domain.Outcome {
	requestID := uuid.NewString()
	log := s.logger.With(zap.String("request_id", requestID))

	var sample []string
	matches, err := s.Search(req.Keywords, s.topN)
	if err != nil {
		log.Warn("search failed, generating without corpus context", zap.Error(err))
	} else {
		sample = s.sampler.Sample(matches)
	}
	log.Debug("sampled ingredients", zap.Int("matches", len(matches)), zap.Strings("sample", sample))

	out := s.adapter.Generate(ctx, generation.Request{
		Keywords:            req.Keywords,
		SampleIngredients:   sample,
		DietaryRestrictions: req.DietaryRestrictions,
		Model:               req.Model,
		RequestID:           requestID,
	})
	if out.Kind == domain.KindOK {
		out.Recipe = parser.Parse(out.RawText)
	}
	log.Info("recipe generated", zap.Stringer("kind", out.Kind), zap.String("title", out.Recipe.Title))
	return out
}

// Stats reports the loaded corpus.
func (s *RecipeService) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Entries: s.index.Len(), Load: s.loadStats, Summary: s.summary}
}

// SplitKeywords splits comma separated input into trimmed, non-empty keywords.
func SplitKeywords(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
