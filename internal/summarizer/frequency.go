// Package summarizer describes a loaded corpus by its most frequent terms.
package summarizer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"recipe-rag/internal/corpus"
	"recipe-rag/internal/domain"
	"recipe-rag/internal/embedding/tfidf"
)

// TermCount is a term and the number of entries it appears in.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Summary lists the dominant categories and keyword terms of a corpus.
type Summary struct {
	Entries    int         `json:"entries"`
	Categories []TermCount `json:"categories"`
	Keywords   []TermCount `json:"keywords"`
}

// FrequencySummarizer ranks corpus terms by document frequency (stopwords filtered).
type FrequencySummarizer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewFrequencySummarizer creates a frequency-based corpus summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    tfidf.EnglishStopwords(),
	}
}

// Summarize returns up to maxTerms categories and keyword terms, most frequent first.
func (s *FrequencySummarizer) Summarize(entries []domain.CorpusEntry, maxTerms int) Summary {
	if maxTerms <= 0 {
		maxTerms = 5
	}
	categories := map[string]int{}
	keywords := map[string]int{}
	for _, e := range entries {
		if c := strings.TrimSpace(e.Category); c != "" {
			categories[c]++
		}
		seen := map[string]struct{}{}
		for _, item := range corpus.ParseList(e.Keywords).Items {
			for _, tok := range s.tokens(item) {
				if _, ok := s.stopwords[tok]; ok {
					continue
				}
				if _, ok := seen[tok]; ok {
					continue
				}
				seen[tok] = struct{}{}
				keywords[tok]++
			}
		}
	}
	return Summary{
		Entries:    len(entries),
		Categories: top(categories, maxTerms),
		Keywords:   top(keywords, maxTerms),
	}
}

// String renders the summary on one line.
func (s Summary) String() string {
	var b strings.Builder
	b.WriteString(plural(s.Entries, "recipe"))
	if len(s.Categories) > 0 {
		b.WriteString(" · ")
		b.WriteString(joinTerms(s.Categories))
	}
	if len(s.Keywords) > 0 {
		b.WriteString(" · ")
		b.WriteString(joinTerms(s.Keywords))
	}
	return b.String()
}

func (s *FrequencySummarizer) tokens(text string) []string {
	return s.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func top(counts map[string]int, n int) []TermCount {
	out := make([]TermCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TermCount{Term: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func joinTerms(terms []TermCount) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Term
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
