// Package weights builds the matrix forms of semantic operations.
//
// Circular convolution by a fixed vector is a linear map, so binding and
// unbinding with a known key can be expressed as circulant matrices and
// composed with neural encoder/decoder matrices into population-to-population
// connection weights.
package weights

import (
	"github.com/hupe1980/semgo/cleanup"
	"github.com/hupe1980/semgo/hrr"
	"github.com/hupe1980/semgo/neural"
	"github.com/hupe1980/semgo/vocab"
	"gonum.org/v1/gonum/mat"
)

// BindingOperator returns the dim×dim circulant matrix M with
// M·x = Bind(v, x) for every x.
func BindingOperator(v []float64) (*mat.Dense, error) {
	n := len(v)
	if n < 2 {
		return nil, &hrr.ErrInvalidDimension{Dimension: n}
	}
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			m.Set(i, k, v[((i-k)%n+n)%n])
		}
	}
	return m, nil
}

// UnbindingOperator returns the dim×dim matrix M with
// M·x ≈ Unbind(x, v), i.e. the circulant of the involuted key.
func UnbindingOperator(v []float64) (*mat.Dense, error) {
	return BindingOperator(hrr.Involution(v))
}

// CleanupOperator returns the dim×dim Hopfield weight matrix formed from
// the vectors of the given entries, summing outer products row by row.
func CleanupOperator(entries []vocab.Entry, zeroDiagonal bool) (*mat.Dense, error) {
	if len(entries) == 0 {
		return nil, vocab.ErrEmptyVocabulary
	}
	dim := len(entries[0].Vector)
	patterns := mat.NewDense(len(entries), dim, nil)
	for i, e := range entries {
		if len(e.Vector) != dim {
			return nil, &hrr.ErrDimensionMismatch{Expected: dim, Actual: len(e.Vector)}
		}
		patterns.SetRow(i, e.Vector)
	}
	return cleanup.HopfieldWeights(patterns, zeroDiagonal), nil
}

// Connection derives synaptic weight matrices between two neural
// populations. A weight matrix W applied to the source firing rates yields
// the target's idealized input current: W = E_tgt·T·D_src for a vector
// transform T.
type Connection struct {
	src, tgt *neural.Encoder
}

// NewConnection pairs a source and a target population. Their vector
// dimensionalities must agree; population sizes may differ.
func NewConnection(src, tgt *neural.Encoder) (*Connection, error) {
	if src.Dim() != tgt.Dim() {
		return nil, &hrr.ErrDimensionMismatch{Expected: src.Dim(), Actual: tgt.Dim()}
	}
	return &Connection{src: src, tgt: tgt}, nil
}

// Identity returns the nTgt×nSrc weight matrix that communicates a vector
// unchanged between the populations.
func (c *Connection) Identity() *mat.Dense {
	var w mat.Dense
	w.Mul(c.tgt.EncoderMatrix(), c.src.DecoderMatrix())
	return &w
}

// Binding returns the nTgt×nSrc weight matrix that binds the communicated
// vector with the given key in transit.
func (c *Connection) Binding(key []float64) (*mat.Dense, error) {
	op, err := BindingOperator(key)
	if err != nil {
		return nil, err
	}
	if op.RawMatrix().Cols != c.src.Dim() {
		return nil, &hrr.ErrDimensionMismatch{Expected: c.src.Dim(), Actual: op.RawMatrix().Cols}
	}
	return c.compose(op), nil
}

// Unbinding returns the nTgt×nSrc weight matrix that unbinds the
// communicated vector with the given key in transit.
func (c *Connection) Unbinding(key []float64) (*mat.Dense, error) {
	return c.Binding(hrr.Involution(key))
}

func (c *Connection) compose(transform mat.Matrix) *mat.Dense {
	var td mat.Dense
	td.Mul(transform, c.src.DecoderMatrix())
	var w mat.Dense
	w.Mul(c.tgt.EncoderMatrix(), &td)
	return &w
}
