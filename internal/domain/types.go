package domain

import "fmt"

// CorpusEntry is one recipe row plus the fields derived from it at load time.
// Derived fields are computed once by the corpus loader and never mutated.
type CorpusEntry struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Keywords        string `json:"keywords"`
	IngredientParts string `json:"ingredient_parts"`
	Instructions    string `json:"instructions"`

	CombinedText     string   `json:"-"`
	IngredientsList  []string `json:"ingredients_list"`
	InstructionsList []string `json:"instructions_list"`
}

// RankedMatch pairs a corpus entry with its cosine similarity to a query.
// Position is the entry's index in the corpus.
type RankedMatch struct {
	Entry    *CorpusEntry `json:"entry"`
	Position int          `json:"position"`
	Score    float64      `json:"score"`
}

// GeneratedRecipe is the structured form of a generated recipe text.
type GeneratedRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Kind tags how an operation produced its value.
type Kind int

const (
	// KindOK means the primary path succeeded.
	KindOK Kind = iota
	// KindFallback means a value was produced by a degraded path.
	KindFallback
	// KindFailed means the operation failed and the value is a default or sentinel.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindFallback:
		return "fallback"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ok":
		*k = KindOK
	case "fallback":
		*k = KindFallback
	case "failed":
		*k = KindFailed
	default:
		return fmt.Errorf("unknown kind %q", b)
	}
	return nil
}

// Outcome is the result of one generation request. On KindFailed Recipe holds
// the sentinel failure recipe; on KindOK it holds the recipe parsed from RawText.
type Outcome struct {
	Kind      Kind            `json:"kind"`
	Recipe    GeneratedRecipe `json:"recipe"`
	RawText   string          `json:"raw_text,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}
