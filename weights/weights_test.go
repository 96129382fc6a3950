package weights

import (
	"testing"

	"github.com/hupe1980/semgo/cleanup"
	"github.com/hupe1980/semgo/hrr"
	"github.com/hupe1980/semgo/neural"
	"github.com/hupe1980/semgo/testutil"
	"github.com/hupe1980/semgo/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const testDim = 50

func mulVec(m *mat.Dense, x []float64) []float64 {
	out := make([]float64, len(x))
	mat.NewVecDense(len(out), out).MulVec(m, mat.NewVecDense(len(x), x))
	return out
}

func TestBindingOperator(t *testing.T) {
	t.Run("MatchesBind", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		v := rng.UnitVector(testDim)
		x := rng.UnitVector(testDim)

		op, err := BindingOperator(v)
		require.NoError(t, err)

		want, err := hrr.Bind(v, x)
		require.NoError(t, err)

		got := mulVec(op, x)
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-9)
		}
	})

	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := BindingOperator([]float64{1})
		assert.Error(t, err)
		assert.IsType(t, &hrr.ErrInvalidDimension{}, err)
	})
}

func TestUnbindingOperator(t *testing.T) {
	rng := testutil.NewRNG(4711)
	key := rng.UnitVector(testDim)
	x := rng.UnitVector(testDim)

	op, err := UnbindingOperator(key)
	require.NoError(t, err)

	want, err := hrr.Unbind(x, key)
	require.NoError(t, err)

	got := mulVec(op, x)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestCleanupOperator(t *testing.T) {
	t.Run("MatchesMemoryWeights", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		entries := []vocab.Entry{
			{Name: "SHAPE", Vector: rng.UnitVector(testDim)},
			{Name: "CIRCLE", Vector: rng.UnitVector(testDim)},
		}

		op, err := CleanupOperator(entries, true)
		require.NoError(t, err)

		mem, err := cleanup.Build(entries)
		require.NoError(t, err)

		assert.True(t, mat.Equal(op, mem.Weights()))
	})

	t.Run("Symmetric", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		entries := []vocab.Entry{
			{Name: "SHAPE", Vector: rng.UnitVector(testDim)},
			{Name: "CIRCLE", Vector: rng.UnitVector(testDim)},
			{Name: "SQUARE", Vector: rng.UnitVector(testDim)},
		}

		op, err := CleanupOperator(entries, false)
		require.NoError(t, err)

		for i := 0; i < testDim; i++ {
			for j := i + 1; j < testDim; j++ {
				assert.Equal(t, op.At(i, j), op.At(j, i))
			}
		}
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := CleanupOperator(nil, true)
		assert.ErrorIs(t, err, vocab.ErrEmptyVocabulary)
	})
}

func TestConnection(t *testing.T) {
	rng := testutil.NewRNG(42)

	src, err := neural.New(80, testDim, rng.Rand())
	require.NoError(t, err)
	tgt, err := neural.New(60, testDim, rng.Rand())
	require.NoError(t, err)

	conn, err := NewConnection(src, tgt)
	require.NoError(t, err)

	t.Run("IdentityShape", func(t *testing.T) {
		w := conn.Identity()
		rows, cols := w.Dims()
		assert.Equal(t, 60, rows)
		assert.Equal(t, 80, cols)
	})

	t.Run("IdentityComposition", func(t *testing.T) {
		// W·rates must equal encoding the decoded vector's current:
		// E_tgt·(D_src·rates).
		v := rng.UnitVector(testDim)
		rates, err := src.Encode(v)
		require.NoError(t, err)

		w := conn.Identity()
		got := make([]float64, 60)
		mat.NewVecDense(60, got).MulVec(w, mat.NewVecDense(80, rates))

		decoded := make([]float64, testDim)
		mat.NewVecDense(testDim, decoded).MulVec(src.DecoderMatrix(), mat.NewVecDense(80, rates))
		want := make([]float64, 60)
		mat.NewVecDense(60, want).MulVec(tgt.EncoderMatrix(), mat.NewVecDense(testDim, decoded))

		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-9)
		}
	})

	t.Run("BindingShape", func(t *testing.T) {
		w, err := conn.Binding(rng.UnitVector(testDim))
		require.NoError(t, err)

		rows, cols := w.Dims()
		assert.Equal(t, 60, rows)
		assert.Equal(t, 80, cols)
	})

	t.Run("UnbindingShape", func(t *testing.T) {
		w, err := conn.Unbinding(rng.UnitVector(testDim))
		require.NoError(t, err)

		rows, cols := w.Dims()
		assert.Equal(t, 60, rows)
		assert.Equal(t, 80, cols)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		other, err := neural.New(10, testDim+2, rng.Rand())
		require.NoError(t, err)

		_, err = NewConnection(src, other)
		assert.Error(t, err)
		assert.IsType(t, &hrr.ErrDimensionMismatch{}, err)
	})
}
