package embedding

import (
	"math"
	"reflect"
	"testing"
)

func TestNewVector_sortsAndDropsZeros(t *testing.T) {
	v := NewVector(map[int]float64{5: 0.5, 1: 0.25, 3: 0})
	if !reflect.DeepEqual(v.Indices, []int{1, 5}) {
		t.Errorf("indices = %v", v.Indices)
	}
	if !reflect.DeepEqual(v.Values, []float64{0.25, 0.5}) {
		t.Errorf("values = %v", v.Values)
	}
	if NewVector(nil).IsZero() != true {
		t.Error("empty map should give zero vector")
	}
}

func TestDot(t *testing.T) {
	a := NewVector(map[int]float64{0: 1, 2: 2, 7: 3})
	b := NewVector(map[int]float64{2: 4, 7: 1, 9: 10})
	if got := Dot(a, b); math.Abs(got-11) > 1e-12 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := Dot(a, Vector{}); got != 0 {
		t.Errorf("Dot with zero = %v", got)
	}
}
