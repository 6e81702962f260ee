// Package vector provides the float64 vector value type and its numeric
// primitives: element-wise arithmetic, dot product, L2 norm, Euclidean
// distance and cosine similarity.
//
// Vectors are plain values. Operations never mutate their operands; anything
// that produces a vector allocates a fresh one.
package vector

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrZeroNorm is returned when cosine similarity is requested for a
// zero-norm operand. The division is undefined, and returning an error keeps
// the textual protocol output well-defined instead of leaking NaN.
var ErrZeroNorm = errors.New("zero-norm vector")

// ErrDimensionMismatch indicates that two vectors of different dimensions
// were combined.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Vector is an ordered sequence of float64 components.
type Vector []float64

// Dimension returns the number of components.
func (v Vector) Dimension() int {
	return len(v)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	return Vector(slices.Clone(v))
}

// Add returns the element-wise sum of v and other.
func (v Vector) Add(other Vector) (Vector, error) {
	if len(v) != len(other) {
		return nil, &ErrDimensionMismatch{Expected: len(v), Actual: len(other)}
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + other[i]
	}
	return out, nil
}

// Sub returns the element-wise difference v - other.
func (v Vector) Sub(other Vector) (Vector, error) {
	if len(v) != len(other) {
		return nil, &ErrDimensionMismatch{Expected: len(v), Actual: len(other)}
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - other[i]
	}
	return out, nil
}

// Scale returns v with every component multiplied by scalar.
func (v Vector) Scale(scalar float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * scalar
	}
	return out
}

// Dot returns the dot product of v and other.
// Assumes equal dimensions (caller's responsibility).
func (v Vector) Dot(other Vector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * other[i]
	}
	return sum
}

// Norm returns the Euclidean (L2) norm of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// EuclideanDistance returns the L2 distance between v and other.
func (v Vector) EuclideanDistance(other Vector) (float64, error) {
	if len(v) != len(other) {
		return 0, &ErrDimensionMismatch{Expected: len(v), Actual: len(other)}
	}
	var sum float64
	for i := range v {
		d := v[i] - other[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// CosineSimilarity returns the cosine of the angle between v and other.
// It fails with ErrZeroNorm when either operand has zero L2 norm.
func (v Vector) CosineSimilarity(other Vector) (float64, error) {
	if len(v) != len(other) {
		return 0, &ErrDimensionMismatch{Expected: len(v), Actual: len(other)}
	}
	na := v.Norm()
	nb := other.Norm()
	if na == 0 || nb == 0 {
		return 0, ErrZeroNorm
	}
	return v.Dot(other) / (na * nb), nil
}

// Equal reports whether v and other have the same dimension and all
// components agree within tolerance.
func (v Vector) Equal(other Vector, tolerance float64) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if math.Abs(v[i]-other[i]) > tolerance {
			return false
		}
	}
	return true
}
