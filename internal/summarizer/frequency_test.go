package summarizer

import (
	"testing"

	"recipe-rag/internal/domain"
)

func TestSummarize(t *testing.T) {
	entries := []domain.CorpusEntry{
		{Category: "Soup", Keywords: `c("Easy", "Winter Soup")`},
		{Category: "Soup", Keywords: `c("Easy", "Vegan")`},
		{Category: "Dessert", Keywords: `["Sweet", "Easy"]`},
		{Category: "", Keywords: ""},
	}
	s := NewFrequencySummarizer().Summarize(entries, 2)

	if s.Entries != 4 {
		t.Errorf("Entries = %d", s.Entries)
	}
	wantCats := []TermCount{{"Soup", 2}, {"Dessert", 1}}
	if len(s.Categories) != 2 || s.Categories[0] != wantCats[0] || s.Categories[1] != wantCats[1] {
		t.Errorf("Categories = %v, want %v", s.Categories, wantCats)
	}
	if len(s.Keywords) != 2 || s.Keywords[0] != (TermCount{"easy", 3}) {
		t.Errorf("Keywords = %v", s.Keywords)
	}
	// ties break alphabetically
	if s.Keywords[1].Term != "soup" {
		t.Errorf("second keyword = %q, want soup", s.Keywords[1].Term)
	}
}

func TestSummarize_countsTermOncePerEntry(t *testing.T) {
	entries := []domain.CorpusEntry{{Keywords: `c("Spicy", "Spicy Chicken")`}}
	s := NewFrequencySummarizer().Summarize(entries, 5)
	for _, k := range s.Keywords {
		if k.Term == "spicy" && k.Count != 1 {
			t.Errorf("spicy counted %d times", k.Count)
		}
	}
}

func TestSummary_String(t *testing.T) {
	s := Summary{Entries: 1, Categories: []TermCount{{"Soup", 1}}}
	if got := s.String(); got != "1 recipe · Soup" {
		t.Errorf("String() = %q", got)
	}
	if got := (Summary{Entries: 3}).String(); got != "3 recipes" {
		t.Errorf("String() = %q", got)
	}
}
