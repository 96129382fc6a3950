// Package testutil provides testing utilities for semgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic random vectors on the
// unit hypersphere and noisy variants of them.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := rng.UnitVector(128)          // unit norm
//	noisy := rng.NoisyVariants(vec, 5, 0.3)
package testutil
