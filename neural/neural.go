// Package neural maps semantic pointers to population firing-rate codes
// and back, in the style of the Neural Engineering Framework.
//
// Each neuron in a population has a preferred direction on the unit
// hypersphere plus a gain and bias; encoding projects a vector onto these
// tuning curves through a rectified-linear response. Decoding is a linear
// readout whose weights are fit once at construction by ridge-regularized
// least squares over a dense sample of the unit sphere, so that
// Decode(Encode(v)) approximates v for arbitrary v, not only vocabulary
// items.
//
// The channel is intentionally lossy. Accuracy grows with population size
// and degrades gracefully as it shrinks; the only failure mode at call time
// is a dimension mismatch.
package neural

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/hupe1980/semgo/hrr"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Options contains configuration options for an encoder population.
type Options struct {
	// GainMin and GainMax bound the uniform per-neuron gain draw.
	GainMin, GainMax float64

	// BiasMin and BiasMax bound the uniform per-neuron bias draw.
	BiasMin, BiasMax float64

	// TrainingSamples is the number of unit-sphere samples used to fit the
	// decoders. Raised to the population size when a pool is larger, so
	// the fit never becomes underdetermined.
	TrainingSamples int

	// Ridge is the relative Tikhonov regularization strength for the
	// decoder fit.
	Ridge float64
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	GainMin:         0.5,
	GainMax:         2.0,
	BiasMin:         -0.2,
	BiasMax:         0.2,
	TrainingSamples: 600,
	Ridge:           0.1,
}

// Encoder is an immutable population code for one dimensionality.
type Encoder struct {
	nNeurons int
	dim      int
	encoders *mat.Dense // nNeurons×dim preferred directions, unit rows
	gains    []float64
	biases   []float64
	decoders *mat.Dense // dim×nNeurons linear readout
}

// New constructs an encoder population with random preferred directions
// and a precomputed decoding matrix.
//
// If rng is nil a time-seeded source is used; pass a seeded *rand.Rand for
// reproducible populations.
func New(nNeurons, dim int, rng *rand.Rand, optFns ...func(o *Options)) (*Encoder, error) {
	if nNeurons < 1 {
		return nil, ErrNoNeurons
	}
	if dim < 2 {
		return nil, &hrr.ErrInvalidDimension{Dimension: dim}
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.TrainingSamples < nNeurons {
		// Keep the decoder fit overdetermined for pools larger than the
		// configured sample count; the ridge term holds the normal
		// equations well-posed at any size.
		opts.TrainingSamples = nNeurons
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Encoder{
		nNeurons: nNeurons,
		dim:      dim,
		encoders: mat.NewDense(nNeurons, dim, nil),
		gains:    make([]float64, nNeurons),
		biases:   make([]float64, nNeurons),
	}
	row := make([]float64, dim)
	for i := 0; i < nNeurons; i++ {
		fillUnit(rng, row)
		e.encoders.SetRow(i, row)
		e.gains[i] = opts.GainMin + rng.Float64()*(opts.GainMax-opts.GainMin)
		e.biases[i] = opts.BiasMin + rng.Float64()*(opts.BiasMax-opts.BiasMin)
	}

	if err := e.fitDecoders(rng, opts); err != nil {
		return nil, err
	}
	return e, nil
}

// NNeurons returns the population size.
func (e *Encoder) NNeurons() int { return e.nNeurons }

// Dim returns the vector dimensionality.
func (e *Encoder) Dim() int { return e.dim }

// Encode returns the firing rate of every neuron for the given vector:
// rate_i = max(0, gain_i·(encoder_i·v) + bias_i).
func (e *Encoder) Encode(v []float64) ([]float64, error) {
	if len(v) != e.dim {
		return nil, &hrr.ErrDimensionMismatch{Expected: e.dim, Actual: len(v)}
	}
	rates := make([]float64, e.nNeurons)
	e.encodeInto(v, rates)
	return rates, nil
}

func (e *Encoder) encodeInto(v, rates []float64) {
	mat.NewVecDense(e.nNeurons, rates).MulVec(e.encoders, mat.NewVecDense(e.dim, v))
	for i := range rates {
		r := e.gains[i]*rates[i] + e.biases[i]
		if r < 0 {
			r = 0
		}
		rates[i] = r
	}
}

// Decode reconstructs a unit vector from firing rates via the linear
// readout fit at construction time.
func (e *Encoder) Decode(rates []float64) ([]float64, error) {
	if len(rates) != e.nNeurons {
		return nil, &hrr.ErrDimensionMismatch{Expected: e.nNeurons, Actual: len(rates)}
	}
	out := make([]float64, e.dim)
	mat.NewVecDense(e.dim, out).MulVec(e.decoders, mat.NewVecDense(e.nNeurons, rates))
	if floats.Norm(out, 2) < 1e-10 {
		// Silent population (e.g. all rates zero); nothing to reconstruct.
		return out, nil
	}
	return hrr.Normalize(out)
}

// EncoderMatrix returns the nNeurons×dim matrix of preferred directions.
// The returned matrix must not be modified.
func (e *Encoder) EncoderMatrix() mat.Matrix { return e.encoders }

// DecoderMatrix returns the dim×nNeurons decoding matrix. The returned
// matrix must not be modified.
func (e *Encoder) DecoderMatrix() mat.Matrix { return e.decoders }

// Gain returns the gain of neuron i.
func (e *Encoder) Gain(i int) float64 { return e.gains[i] }

// Bias returns the bias of neuron i.
func (e *Encoder) Bias(i int) float64 { return e.biases[i] }

// fitDecoders solves the ridge-regularized normal equations
// (AᵀA + λI)·X = Aᵀ·S for the decoding matrix, where A holds the
// population response to every training sample and S the samples.
func (e *Encoder) fitDecoders(rng *rand.Rand, opts Options) error {
	m := opts.TrainingSamples

	// Samples are drawn sequentially so a seeded rng stays reproducible;
	// the pure per-sample encoding fans out across cores.
	samples := mat.NewDense(m, e.dim, nil)
	row := make([]float64, e.dim)
	for i := 0; i < m; i++ {
		fillUnit(rng, row)
		samples.SetRow(i, row)
	}

	activities := mat.NewDense(m, e.nNeurons, nil)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < m; i++ {
		g.Go(func() error {
			e.encodeInto(samples.RawRowView(i), activities.RawRowView(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var gram mat.Dense
	gram.Mul(activities.T(), activities)
	lambda := opts.Ridge * float64(m) / float64(e.nNeurons)
	for i := 0; i < e.nNeurons; i++ {
		gram.Set(i, i, gram.At(i, i)+lambda)
	}

	var rhs mat.Dense
	rhs.Mul(activities.T(), samples)

	var x mat.Dense
	if err := x.Solve(&gram, &rhs); err != nil {
		return err
	}

	e.decoders = mat.DenseCopyOf(x.T())
	return nil
}

// fillUnit fills dst with a uniformly distributed point on the unit
// hypersphere.
func fillUnit(rng *rand.Rand, dst []float64) {
	for {
		for i := range dst {
			dst[i] = rng.NormFloat64()
		}
		n := floats.Norm(dst, 2)
		if n > 1e-10 {
			floats.Scale(1/n, dst)
			return
		}
	}
}
