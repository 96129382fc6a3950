// Package testutil provides deterministic random vector generators for
// tests and benchmarks.
package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Rand returns a fresh, unguarded *rand.Rand seeded from this RNG. Use it
// to hand a deterministic source to APIs that take *rand.Rand directly.
func (r *RNG) Rand() *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rand.New(rand.NewSource(r.rand.Int63()))
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// FillNorm fills dst with standard-normal values.
// Locks only once per call (preferred over calling NormFloat64 in a loop).
func (r *RNG) FillNorm(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// GaussianVectors generates random vectors with values from a standard
// normal distribution. Uses a single backing array for efficiency.
func (r *RNG) GaussianVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}

	return vectors
}

// UnitVectors generates L2-normalized random vectors (on the hypersphere).
// Uses Gaussian draws so the directions are uniformly distributed.
func (r *RNG) UnitVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		normalizeLocked(r.rand, vec)
		vectors[i] = vec
	}

	return vectors
}

// UnitVector generates a single L2-normalized random vector.
func (r *RNG) UnitVector(dimensions int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vec := make([]float64, dimensions)
	normalizeLocked(r.rand, vec)
	return vec
}

// NoisyVariants generates num unit vectors obtained by adding Gaussian
// noise with the given standard deviation to base and renormalizing.
// Useful for exercising cleanup and decoding under controlled corruption.
func (r *RNG) NoisyVariants(base []float64, num int, sigma float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*len(base))
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*len(base) : (i+1)*len(base)]
		var norm float64
		for j := range vec {
			v := base[j] + r.rand.NormFloat64()*sigma
			vec[j] = v
			norm += v * v
		}
		if norm == 0 {
			norm = 1
		}
		invNorm := 1.0 / math.Sqrt(norm)
		for j := range vec {
			vec[j] *= invNorm
		}
		vectors[i] = vec
	}

	return vectors
}

// normalizeLocked fills vec with a unit-norm Gaussian draw (caller must
// hold the lock).
func normalizeLocked(rng *rand.Rand, vec []float64) {
	var norm float64
	for j := range vec {
		v := rng.NormFloat64()
		vec[j] = v
		norm += v * v
	}

	if norm == 0 {
		norm = 1 // Avoid division by zero, though unlikely with floats
	}

	invNorm := 1.0 / math.Sqrt(norm)
	for j := range vec {
		vec[j] *= invNorm
	}
}
