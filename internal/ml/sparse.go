package ml

import "math"

// SparseVector is a sorted-by-index sparse feature vector.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot computes the dot product against a dense weight vector.
func (v SparseVector) Dot(weights []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		if idx < len(weights) {
			sum += v.Values[i] * weights[idx]
		}
	}
	return sum
}

// SquaredNorm returns the squared Euclidean norm of the vector.
func (v SparseVector) SquaredNorm() float64 {
	var sum float64
	for _, val := range v.Values {
		sum += val * val
	}
	return sum
}

func (v SparseVector) scale(factor float64) {
	for i := range v.Values {
		v.Values[i] *= factor
	}
}

func l2normalize(v SparseVector) SparseVector {
	norm := math.Sqrt(v.SquaredNorm())
	if norm > 0 {
		v.scale(1 / norm)
	}
	return v
}
