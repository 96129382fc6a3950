package cleanup

import (
	"testing"

	"github.com/hupe1980/semgo/hrr"
	"github.com/hupe1980/semgo/testutil"
	"github.com/hupe1980/semgo/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 50

func buildTestMemory(t *testing.T, rng *testutil.RNG, names ...string) (*Memory, map[string][]float64) {
	t.Helper()

	concepts := make([]vocab.Entry, len(names))
	byName := make(map[string][]float64, len(names))
	for i, name := range names {
		vec := rng.UnitVector(testDim)
		concepts[i] = vocab.Entry{Name: name, Vector: vec}
		byName[name] = vec
	}

	m, err := Build(concepts)
	require.NoError(t, err)
	return m, byName
}

func TestBuild(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := Build(nil)
		assert.ErrorIs(t, err, vocab.ErrEmptyVocabulary)
	})

	t.Run("NonPositiveSharpness", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		concepts := []vocab.Entry{{Name: "SHAPE", Vector: rng.UnitVector(testDim)}}

		_, err := Build(concepts, func(o *Options) { o.Sharpness = 0 })
		assert.ErrorIs(t, err, ErrNonPositiveSharpness)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		concepts := []vocab.Entry{
			{Name: "A", Vector: rng.UnitVector(testDim)},
			{Name: "B", Vector: rng.UnitVector(testDim + 1)},
		}

		_, err := Build(concepts)
		assert.Error(t, err)
		assert.IsType(t, &hrr.ErrDimensionMismatch{}, err)
	})

	t.Run("Size", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		m, _ := buildTestMemory(t, rng, "SHAPE", "CIRCLE")

		assert.Equal(t, 2, m.Size())
		assert.Equal(t, testDim, m.Dim())
	})
}

func TestWeightsSymmetric(t *testing.T) {
	rng := testutil.NewRNG(4711)
	m, _ := buildTestMemory(t, rng, "SHAPE", "CIRCLE", "SQUARE")

	w := m.Weights()
	for i := 0; i < testDim; i++ {
		assert.Equal(t, 0.0, w.At(i, i))
		for j := i + 1; j < testDim; j++ {
			assert.Equal(t, w.At(i, j), w.At(j, i))
		}
	}
}

func TestSettle(t *testing.T) {
	t.Run("CleanConceptIsFixedPoint", func(t *testing.T) {
		rng := testutil.NewRNG(42)
		m, byName := buildTestMemory(t, rng, "SHAPE", "CIRCLE")

		res, err := m.Settle(byName["SHAPE"], 100, 1e-4)
		require.NoError(t, err)

		assert.True(t, res.Converged)
		assert.Equal(t, StateConverged, res.State)
		assert.Equal(t, 1, res.Iterations)

		score, err := hrr.Cosine(res.Vector, byName["SHAPE"])
		require.NoError(t, err)
		assert.Greater(t, score, 0.999)
	})

	t.Run("NoisyInputSnapsToNearest", func(t *testing.T) {
		rng := testutil.NewRNG(42)
		m, byName := buildTestMemory(t, rng, "SHAPE", "CIRCLE")

		for i, noisy := range rng.NoisyVariants(byName["SHAPE"], 10, 0.4) {
			res, err := m.Settle(noisy, 100, 1e-4)
			require.NoError(t, err, "variant %d", i)

			assert.True(t, res.Converged, "variant %d", i)
			assert.GreaterOrEqual(t, res.Iterations, 1)
			assert.LessOrEqual(t, res.Iterations, 60)

			// The settled state must agree with the brute-force winner.
			winner, _, err := m.Nearest(noisy)
			require.NoError(t, err)
			score, err := hrr.Cosine(res.Vector, byName[winner])
			require.NoError(t, err)
			assert.Greater(t, score, 0.9, "variant %d", i)
		}
	})

	t.Run("MaxIterationsIsNotAnError", func(t *testing.T) {
		rng := testutil.NewRNG(42)
		m, byName := buildTestMemory(t, rng, "SHAPE", "CIRCLE")
		noisy := rng.NoisyVariants(byName["SHAPE"], 1, 0.4)[0]

		res, err := m.Settle(noisy, 1, 1e-18)
		require.NoError(t, err)

		assert.False(t, res.Converged)
		assert.Equal(t, StateMaxIterations, res.State)
		assert.Equal(t, 1, res.Iterations)
		assert.Len(t, res.Vector, testDim)
	})

	t.Run("ParameterValidation", func(t *testing.T) {
		rng := testutil.NewRNG(42)
		m, byName := buildTestMemory(t, rng, "SHAPE")

		_, err := m.Settle(byName["SHAPE"], 0, 1e-4)
		assert.ErrorIs(t, err, ErrNonPositiveIterations)

		_, err = m.Settle(byName["SHAPE"], 100, 0)
		assert.ErrorIs(t, err, ErrNonPositiveTolerance)

		_, err = m.Settle(make([]float64, testDim), 100, 1e-4)
		assert.ErrorIs(t, err, hrr.ErrZeroVector)

		_, err = m.Settle(make([]float64, testDim+1), 100, 1e-4)
		assert.IsType(t, &hrr.ErrDimensionMismatch{}, err)
	})

	t.Run("TanhSeparation", func(t *testing.T) {
		rng := testutil.NewRNG(42)

		concepts := []vocab.Entry{
			{Name: "SHAPE", Vector: rng.UnitVector(testDim)},
			{Name: "CIRCLE", Vector: rng.UnitVector(testDim)},
		}
		m, err := Build(concepts, func(o *Options) { o.Separation = SeparationTanh })
		require.NoError(t, err)

		// The classic field update still terminates within the budget and
		// returns a unit-norm state.
		res, err := m.Settle(concepts[0].Vector, 100, 1e-4)
		require.NoError(t, err)
		dot, err := hrr.Dot(res.Vector, res.Vector)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, dot, 1e-9)
	})

	t.Run("TanhSettlesSlowly", func(t *testing.T) {
		rng := testutil.NewRNG(42)

		concepts := []vocab.Entry{
			{Name: "SHAPE", Vector: rng.UnitVector(testDim)},
			{Name: "CIRCLE", Vector: rng.UnitVector(testDim)},
		}
		m, err := Build(concepts, func(o *Options) { o.Separation = SeparationTanh })
		require.NoError(t, err)

		// Unlike the softmax update, the saturating field update needs
		// many iterations to stop moving.
		for i, noisy := range rng.NoisyVariants(concepts[0].Vector, 5, 0.4) {
			res, err := m.Settle(noisy, 300, 1e-4)
			require.NoError(t, err, "variant %d", i)

			assert.True(t, res.Converged, "variant %d", i)
			assert.GreaterOrEqual(t, res.Iterations, 5, "variant %d", i)
			assert.LessOrEqual(t, res.Iterations, 300, "variant %d", i)
		}
	})
}

func TestNearest(t *testing.T) {
	rng := testutil.NewRNG(42)
	m, byName := buildTestMemory(t, rng, "SHAPE", "CIRCLE")

	name, score, err := m.Nearest(byName["CIRCLE"])
	require.NoError(t, err)
	assert.Equal(t, "CIRCLE", name)
	assert.InDelta(t, 1.0, score, 1e-12)

	_, _, err = m.Nearest(make([]float64, testDim+1))
	assert.IsType(t, &hrr.ErrDimensionMismatch{}, err)
}

func TestSeparationString(t *testing.T) {
	assert.Equal(t, "Softmax", SeparationSoftmax.String())
	assert.Equal(t, "Tanh", SeparationTanh.String())
	assert.Equal(t, "Sign", SeparationSign.String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Running", StateRunning.String())
	assert.Equal(t, "Converged", StateConverged.String())
	assert.Equal(t, "MaxIterationsReached", StateMaxIterations.String())
}
