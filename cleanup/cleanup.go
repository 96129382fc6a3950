// Package cleanup implements an attractor memory that drives noisy
// semantic pointers to the nearest stored concept.
//
// A Memory is built from an immutable snapshot of vocabulary concepts. Its
// recurrent weight matrix is the Hopfield outer-product sum W = Σ v⊗v,
// symmetric by construction. Settling iterates a bounded update until the
// state stops changing or an iteration budget is exhausted; running out of
// the budget is a reported outcome, not an error.
//
// The update factors the weight matrix through the stored pattern matrix V
// (W = Vᵀ·V) and applies a separation function between the two
// projections:
//
//	x ← normalize(Vᵀ · σ(β · V·x))
//
// With σ = softmax (the default) this is a dense associative memory whose
// stored patterns are near-exact fixed points: a clean concept settles in a
// single iteration and a noisy one snaps to the nearest stored concept.
// The classic Hopfield squashes tanh and sign remain available; they apply
// σ to the full field W·x and trade recovery accuracy for tradition.
package cleanup

import (
	"math"

	"github.com/hupe1980/semgo/hrr"
	"github.com/hupe1980/semgo/vocab"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Options contains configuration options for an attractor memory.
type Options struct {
	// Separation selects the nonlinearity applied during settling.
	Separation Separation

	// Sharpness is the gain β applied before the separation function.
	// Larger values snap harder to individual stored patterns.
	Sharpness float64

	// ZeroDiagonal suppresses unconditional self-reinforcement in the
	// exposed weight matrix and in the classic tanh/sign updates.
	ZeroDiagonal bool
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Separation:   SeparationSoftmax,
	Sharpness:    20,
	ZeroDiagonal: true,
}

// Memory is an attractor network over a fixed concept snapshot.
//
// A Memory is immutable and stateless across Settle calls; if the source
// vocabulary changes, build a new Memory rather than reusing a stale one.
type Memory struct {
	dim      int
	names    []string
	patterns *mat.Dense // k×dim, one stored concept per row
	weights  *mat.Dense // dim×dim Hopfield matrix
	opts     Options
}

// Build constructs a Memory from a snapshot of vocabulary concepts.
func Build(concepts []vocab.Entry, optFns ...func(o *Options)) (*Memory, error) {
	if len(concepts) == 0 {
		return nil, vocab.ErrEmptyVocabulary
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Sharpness <= 0 {
		return nil, ErrNonPositiveSharpness
	}

	dim := len(concepts[0].Vector)
	if dim < 2 {
		return nil, &hrr.ErrInvalidDimension{Dimension: dim}
	}

	names := make([]string, len(concepts))
	patterns := mat.NewDense(len(concepts), dim, nil)
	for i, c := range concepts {
		if len(c.Vector) != dim {
			return nil, &hrr.ErrDimensionMismatch{Expected: dim, Actual: len(c.Vector)}
		}
		names[i] = c.Name
		patterns.SetRow(i, c.Vector)
	}

	return &Memory{
		dim:      dim,
		names:    names,
		patterns: patterns,
		weights:  HopfieldWeights(patterns, opts.ZeroDiagonal),
		opts:     opts,
	}, nil
}

// HopfieldWeights accumulates the outer products of all pattern rows into a
// symmetric dim×dim weight matrix, optionally zeroing the diagonal.
func HopfieldWeights(patterns *mat.Dense, zeroDiagonal bool) *mat.Dense {
	_, dim := patterns.Dims()
	w := mat.NewDense(dim, dim, nil)
	w.Mul(patterns.T(), patterns)
	if zeroDiagonal {
		for i := 0; i < dim; i++ {
			w.Set(i, i, 0)
		}
	}
	return w
}

// Dim returns the vector dimensionality of the memory.
func (m *Memory) Dim() int { return m.dim }

// Size returns the number of stored concepts.
func (m *Memory) Size() int { return len(m.names) }

// Weights returns a copy of the Hopfield weight matrix.
func (m *Memory) Weights() *mat.Dense {
	return mat.DenseCopyOf(m.weights)
}

// Result reports the outcome of a settling run.
type Result struct {
	// Vector is the settled unit vector. It is best-effort when State is
	// StateMaxIterations.
	Vector []float64

	// Iterations is the number of update steps executed.
	Iterations int

	// Converged reports whether successive states stopped changing within
	// the tolerance before the iteration budget ran out.
	Converged bool

	// State is the terminal settling state.
	State State
}

// Settle drives a noisy vector toward the nearest stored concept.
//
// The state is updated until the Euclidean change between successive
// iterations falls below tolerance (converged) or maxIterations steps have
// run (best-effort result, Converged false). Termination is hard-bounded
// by maxIterations; there is no other cancellation mechanism.
func (m *Memory) Settle(x []float64, maxIterations int, tolerance float64) (Result, error) {
	if len(x) != m.dim {
		return Result{}, &hrr.ErrDimensionMismatch{Expected: m.dim, Actual: len(x)}
	}
	if maxIterations <= 0 {
		return Result{}, ErrNonPositiveIterations
	}
	if tolerance <= 0 {
		return Result{}, ErrNonPositiveTolerance
	}

	state, err := hrr.Normalize(x)
	if err != nil {
		return Result{}, err
	}

	next := make([]float64, m.dim)
	for iter := 1; iter <= maxIterations; iter++ {
		if err := m.step(state, next); err != nil {
			return Result{}, err
		}
		change := distance(next, state)
		copy(state, next)
		if change < tolerance {
			return Result{
				Vector:     state,
				Iterations: iter,
				Converged:  true,
				State:      StateConverged,
			}, nil
		}
	}

	return Result{
		Vector:     state,
		Iterations: maxIterations,
		Converged:  false,
		State:      StateMaxIterations,
	}, nil
}

// step writes the next settled state for x into out.
func (m *Memory) step(x, out []float64) error {
	switch m.opts.Separation {
	case SeparationSoftmax:
		m.softmaxStep(x, out)
	default:
		m.fieldStep(x, out)
	}

	n := floats.Norm(out, 2)
	if n < 1e-10 {
		// Degenerate state (e.g. sign of an all-zero field); hold position.
		copy(out, x)
		return nil
	}
	floats.Scale(1/n, out)
	return nil
}

// softmaxStep computes out = Vᵀ · softmax(β · V·x): similarity to every
// stored pattern, softmax competition, then recombination.
func (m *Memory) softmaxStep(x, out []float64) {
	k := len(m.names)
	sims := make([]float64, k)
	simVec := mat.NewVecDense(k, sims)
	simVec.MulVec(m.patterns, mat.NewVecDense(len(x), x))

	maxSim := floats.Max(sims)
	total := 0.0
	for i, s := range sims {
		w := math.Exp(m.opts.Sharpness * (s - maxSim))
		sims[i] = w
		total += w
	}
	floats.Scale(1/total, sims)

	mat.NewVecDense(len(out), out).MulVec(m.patterns.T(), simVec)
}

// fieldStep computes the classic Hopfield update, squashing the full field
// W·x componentwise with tanh or sign.
func (m *Memory) fieldStep(x, out []float64) {
	mat.NewVecDense(len(out), out).MulVec(m.weights, mat.NewVecDense(len(x), x))
	switch m.opts.Separation {
	case SeparationSign:
		for i, z := range out {
			switch {
			case z > 0:
				out[i] = 1
			case z < 0:
				out[i] = -1
			default:
				out[i] = 0
			}
		}
	default: // SeparationTanh
		for i, z := range out {
			out[i] = math.Tanh(m.opts.Sharpness * z)
		}
	}
}

// Nearest scans the stored concepts and returns the name and cosine
// similarity of the best match. This brute-force scan is the ground truth
// the attractor dynamics approximate.
func (m *Memory) Nearest(x []float64) (string, float64, error) {
	if len(x) != m.dim {
		return "", 0, &hrr.ErrDimensionMismatch{Expected: m.dim, Actual: len(x)}
	}
	best := 0
	bestScore := math.Inf(-1)
	for i := range m.names {
		score, err := hrr.Cosine(x, m.patterns.RawRowView(i))
		if err != nil {
			return "", 0, err
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return m.names[best], bestScore, nil
}

func distance(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}
