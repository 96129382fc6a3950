package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussianVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.GaussianVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
}

func TestUnitVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UnitVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))

	// Check normalization
	for _, vec := range v {
		var sum float64
		for _, val := range vec {
			sum += val * val
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestNoisyVariants(t *testing.T) {
	rng := NewRNG(4711)
	base := rng.UnitVector(32)

	v := rng.NoisyVariants(base, 5, 0.1)

	assert.Equal(t, 5, len(v))
	for _, vec := range v {
		var sum, dot float64
		for i, val := range vec {
			sum += val * val
			dot += val * base[i]
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
		// Small noise keeps the variant close to the base direction.
		assert.Greater(t, dot, 0.5)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.GaussianVectors(1, 10)

	rng.Reset()
	v2 := rng.GaussianVectors(1, 10)

	assert.Equal(t, v1, v2)
}

func TestRandDeterminism(t *testing.T) {
	r1 := NewRNG(99).Rand()
	r2 := NewRNG(99).Rand()

	for i := 0; i < 10; i++ {
		assert.Equal(t, r1.Int63(), r2.Int63())
	}
}
