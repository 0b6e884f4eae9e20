package storer

import (
	"math"
	"testing"
)

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 0},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 1},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: 2},
		{name: "mismatched lengths", a: []float32{1, 0}, b: []float32{1, 0, 0}, want: 1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 1},
		{name: "empty", a: nil, b: nil, want: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := CosineDistance(test.a, test.b)
			if math.Abs(got-test.want) > 1e-9 {
				t.Errorf("expected %f, got %f", test.want, got)
			}
		})
	}
}

func TestCosineDistanceScalesWithAngle(t *testing.T) {
	query := []float32{1, 0}

	near := CosineDistance(query, []float32{0.9, 0.1})
	far := CosineDistance(query, []float32{0.1, 0.9})

	if near >= far {
		t.Errorf("expected the closer vector to have the smaller distance: %f vs %f", near, far)
	}
}
