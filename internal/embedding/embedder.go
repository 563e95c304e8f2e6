package embedding

import "sort"

// Vector is a sparse embedding: Indices are strictly increasing dimensions
// and Values holds the weight for each index.
type Vector struct {
	Indices []int
	Values  []float64
}

// Embedder converts free text into a sparse vector.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) (Vector, error)
}

// NewVector builds a sorted sparse vector from a dimension->weight map, skipping zeros.
func NewVector(weights map[int]float64) Vector {
	idx := make([]int, 0, len(weights))
	for i, w := range weights {
		if w != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for k, i := range idx {
		vals[k] = weights[i]
	}
	return Vector{Indices: idx, Values: vals}
}

// IsZero reports whether the vector has no non-zero weight.
func (v Vector) IsZero() bool { return len(v.Indices) == 0 }

// Dot returns the inner product of two sparse vectors.
func Dot(a, b Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
