package neural

import (
	"testing"

	"github.com/hupe1980/semgo/hrr"
	"github.com/hupe1980/semgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 50

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		rng := testutil.NewRNG(4711)

		e, err := New(100, testDim, rng.Rand())
		require.NoError(t, err)

		assert.Equal(t, 100, e.NNeurons())
		assert.Equal(t, testDim, e.Dim())

		rows, cols := e.EncoderMatrix().Dims()
		assert.Equal(t, 100, rows)
		assert.Equal(t, testDim, cols)

		rows, cols = e.DecoderMatrix().Dims()
		assert.Equal(t, testDim, rows)
		assert.Equal(t, 100, cols)
	})

	t.Run("NoNeurons", func(t *testing.T) {
		_, err := New(0, testDim, nil)
		assert.ErrorIs(t, err, ErrNoNeurons)
	})

	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := New(100, 1, nil)
		assert.Error(t, err)
		assert.IsType(t, &hrr.ErrInvalidDimension{}, err)
	})

	t.Run("PoolLargerThanSamples", func(t *testing.T) {
		rng := testutil.NewRNG(4711)

		// Accuracy degrades with a small fit, but construction never fails.
		e, err := New(100, testDim, rng.Rand(), func(o *Options) { o.TrainingSamples = 50 })
		require.NoError(t, err)
		assert.Equal(t, 100, e.NNeurons())

		v := rng.UnitVector(testDim)
		rates, err := e.Encode(v)
		require.NoError(t, err)
		decoded, err := e.Decode(rates)
		require.NoError(t, err)

		score, err := hrr.Cosine(decoded, v)
		require.NoError(t, err)
		assert.Greater(t, score, 0.5)
	})

	t.Run("GainBiasRanges", func(t *testing.T) {
		rng := testutil.NewRNG(4711)

		e, err := New(100, testDim, rng.Rand())
		require.NoError(t, err)

		for i := 0; i < e.NNeurons(); i++ {
			assert.GreaterOrEqual(t, e.Gain(i), DefaultOptions.GainMin)
			assert.Less(t, e.Gain(i), DefaultOptions.GainMax)
			assert.GreaterOrEqual(t, e.Bias(i), DefaultOptions.BiasMin)
			assert.Less(t, e.Bias(i), DefaultOptions.BiasMax)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		e1, err := New(50, testDim, testutil.NewRNG(7).Rand())
		require.NoError(t, err)
		e2, err := New(50, testDim, testutil.NewRNG(7).Rand())
		require.NoError(t, err)

		v := testutil.NewRNG(8).UnitVector(testDim)
		r1, err := e1.Encode(v)
		require.NoError(t, err)
		r2, err := e2.Encode(v)
		require.NoError(t, err)
		assert.Equal(t, r1, r2)
	})
}

func TestEncode(t *testing.T) {
	rng := testutil.NewRNG(4711)
	e, err := New(100, testDim, rng.Rand())
	require.NoError(t, err)

	t.Run("RatesAreNonNegative", func(t *testing.T) {
		rates, err := e.Encode(rng.UnitVector(testDim))
		require.NoError(t, err)
		require.Len(t, rates, 100)

		for _, r := range rates {
			assert.GreaterOrEqual(t, r, 0.0)
		}
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := e.Encode(rng.UnitVector(testDim + 1))
		assert.Error(t, err)
		assert.IsType(t, &hrr.ErrDimensionMismatch{}, err)
	})
}

func TestDecode(t *testing.T) {
	rng := testutil.NewRNG(4711)
	e, err := New(100, testDim, rng.Rand())
	require.NoError(t, err)

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := e.Decode(make([]float64, 99))
		assert.Error(t, err)
		assert.IsType(t, &hrr.ErrDimensionMismatch{}, err)
	})

	t.Run("SilentPopulation", func(t *testing.T) {
		out, err := e.Decode(make([]float64, 100))
		require.NoError(t, err)
		assert.Equal(t, make([]float64, testDim), out)
	})
}

func roundTripMean(t *testing.T, e *Encoder, vectors [][]float64, each float64) float64 {
	t.Helper()

	var sum float64
	for i, v := range vectors {
		rates, err := e.Encode(v)
		require.NoError(t, err)
		decoded, err := e.Decode(rates)
		require.NoError(t, err)

		score, err := hrr.Cosine(decoded, v)
		require.NoError(t, err)
		assert.Greater(t, score, each, "vector %d", i)
		sum += score
	}
	return sum / float64(len(vectors))
}

func TestRoundTripFidelity(t *testing.T) {
	rng := testutil.NewRNG(42)
	vectors := rng.UnitVectors(10, testDim)

	e, err := New(100, testDim, rng.Rand())
	require.NoError(t, err)

	mean := roundTripMean(t, e, vectors, 0.6)
	assert.Greater(t, mean, 0.75)
}

func TestGracefulDegradation(t *testing.T) {
	rng := testutil.NewRNG(42)
	vectors := rng.UnitVectors(10, testDim)

	big, err := New(100, testDim, rng.Rand())
	require.NoError(t, err)
	small, err := New(40, testDim, rng.Rand())
	require.NoError(t, err)

	bigMean := roundTripMean(t, big, vectors, 0.6)
	smallMean := roundTripMean(t, small, vectors, 0.2)

	// Fewer neurons degrade fidelity but never break decoding.
	assert.Greater(t, bigMean, smallMean)
}
