// Package hrr implements the holographic reduced representation algebra
// over fixed-dimensional real vectors (semantic pointers).
//
// Binding is circular convolution, unbinding is circular correlation with
// an involuted operand, and superposition is elementwise addition. Binding
// and unbinding are computed via FFT in O(n log n). All operations are
// deterministic and allocate fresh output slices; inputs are never
// modified.
//
// Results of Bind, Unbind and Superpose are generally not unit-norm.
// Callers storing results in a vocabulary normalize explicitly via
// Normalize.
package hrr

import (
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// zeroNormEps is the threshold below which a vector norm is treated as zero.
const zeroNormEps = 1e-10

// Bind combines two semantic pointers via circular convolution.
//
// The result is dissimilar to both inputs but, given either input, the
// other can be approximately recovered with Unbind. Bind is commutative
// and associative; it is not idempotent and the result is not normalized.
func Bind(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	n := len(a)
	if n == 0 {
		return nil, &ErrInvalidDimension{Dimension: 0}
	}

	fft := fourier.NewFFT(n)
	ca := fft.Coefficients(nil, a)
	cb := fft.Coefficients(nil, b)
	for i := range ca {
		ca[i] *= cb[i]
	}

	out := fft.Sequence(nil, ca)
	// The gonum real FFT round trip scales by the sequence length.
	floats.Scale(1/float64(n), out)

	return out, nil
}

// Unbind recovers the counterpart of key from the bound pointer c via
// circular correlation, implemented as Bind(c, Involution(key)).
//
// Recovery is approximate: for near-orthogonal unit operands the result
// correlates well with the original but is contaminated by convolution
// noise. Clean-up against a vocabulary is the intended follow-up, not
// higher precision here.
func Unbind(c, key []float64) ([]float64, error) {
	if len(c) != len(key) {
		return nil, &ErrDimensionMismatch{Expected: len(c), Actual: len(key)}
	}
	return Bind(c, Involution(key))
}

// Involution reverses all components of a except index 0:
// out[i] = a[(n-i) mod n]. Binding with an involuted operand performs
// circular correlation.
func Involution(a []float64) []float64 {
	n := len(a)
	out := make([]float64, n)
	for i := range a {
		out[i] = a[(n-i)%n]
	}
	return out
}

// Superpose sums the given semantic pointers elementwise.
//
// The sum is exact, commutative and associative, and is not normalized.
// At least one vector is required, and all vectors must share one
// dimensionality.
func Superpose(vs ...[]float64) ([]float64, error) {
	if len(vs) == 0 {
		return nil, ErrNoVectors
	}
	dim := len(vs[0])
	out := make([]float64, dim)
	for _, v := range vs {
		if len(v) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(v)}
		}
		floats.Add(out, v)
	}
	return out, nil
}

// Normalize returns a fresh unit-norm copy of v.
//
// A zero-norm input cannot be normalized and yields ErrZeroVector rather
// than a silent NaN.
func Normalize(v []float64) ([]float64, error) {
	n := floats.Norm(v, 2)
	if n < zeroNormEps {
		return nil, ErrZeroVector
	}
	out := make([]float64, len(v))
	copy(out, v)
	floats.Scale(1/n, out)
	return out, nil
}

// Dot returns the inner product of a and b.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	return floats.Dot(a, b), nil
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
//
// If either vector has zero norm the similarity is 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na < zeroNormEps || nb < zeroNormEps {
		return 0, nil
	}
	return floats.Dot(a, b) / (na * nb), nil
}
