// Package sampler picks the ingredient hints that ground a generation request.
package sampler

import "recipe-rag/internal/domain"

// Defaults for Sampler limits.
const (
	DefaultPerEntry = 5
	DefaultMaxTotal = 10
)

// Sampler collects a bounded, deduplicated ingredient sample from ranked matches.
type Sampler struct {
	perEntry int
	maxTotal int
}

// New creates a sampler; non-positive limits fall back to the defaults.
func New(perEntry, maxTotal int) *Sampler {
	if perEntry <= 0 {
		perEntry = DefaultPerEntry
	}
	if maxTotal <= 0 {
		maxTotal = DefaultMaxTotal
	}
	return &Sampler{perEntry: perEntry, maxTotal: maxTotal}
}

// Sample takes up to perEntry ingredients from each match, drops exact
// duplicates and keeps at most maxTotal, in first-seen order.
func (s *Sampler) Sample(matches []domain.RankedMatch) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, s.maxTotal)
	for _, m := range matches {
		if m.Entry == nil {
			continue
		}
		list := m.Entry.IngredientsList
		if len(list) > s.perEntry {
			list = list[:s.perEntry]
		}
		for _, ing := range list {
			if _, dup := seen[ing]; dup {
				continue
			}
			seen[ing] = struct{}{}
			out = append(out, ing)
			if len(out) == s.maxTotal {
				return out
			}
		}
	}
	return out
}
