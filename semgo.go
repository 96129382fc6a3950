// Package semgo provides an embedded semantic pointer algebra for Go.
//
// Semgo implements holographic reduced representations (HRR): concepts are
// high-dimensional unit vectors, structured knowledge is built by binding
// pairs of vectors with circular convolution, and approximate recovery works
// through circular correlation plus attractor-based cleanup. Features:
//
//   - Named vocabulary of deterministic, seedable random unit vectors
//   - Binding/unbinding via FFT-based circular convolution (O(N log N))
//   - Superposition, similarity and Gaussian noise injection
//   - Attractor cleanup memory with configurable pattern separation
//   - NEF-style neural population encoding/decoding of pointers
//   - Matrix forms of all operations for synaptic weight generation
//   - Self-describing binary snapshots with LZ4/ZSTD compression
//
// # Quick Start
//
// Create a session and do some algebra:
//
//	s, err := semgo.New(512, semgo.WithSeed(42))
//	if err != nil {
//	    panic(err)
//	}
//
//	s.AddVector("SHAPE")
//	s.AddVector("CIRCLE")
//	s.Bind("SHAPE", "CIRCLE", "SHAPE_CIRCLE")
//	s.Unbind("SHAPE_CIRCLE", "CIRCLE", "RECOVERED")
//
//	score, _ := s.Similarity("SHAPE", "RECOVERED") // ≈ 0.55..0.75
//
// Clean a corrupted pointer back to its attractor:
//
//	s.AddNoise("SHAPE", 0.4, "SHAPE_NOISY")
//	res, _ := s.Cleanup("SHAPE_NOISY", 100, 1e-4)
//	fmt.Println(res.Match, res.Converged, res.Iterations)
//
// Sessions are fully independent; two sessions never share state. All
// methods are safe for concurrent use.
package semgo

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/hupe1980/semgo/cleanup"
	"github.com/hupe1980/semgo/codec"
	"github.com/hupe1980/semgo/hrr"
	"github.com/hupe1980/semgo/neural"
	"github.com/hupe1980/semgo/snapshot"
	"github.com/hupe1980/semgo/vocab"
)

// Session is an isolated semantic algebra workspace: a vocabulary of named
// vectors of one fixed dimensionality plus the derived state (cleanup
// memory, neural channels) computed from it.
//
// A single mutex serializes all operations; failed calls leave the session
// unchanged.
type Session struct {
	mu sync.Mutex

	dim   int
	rng   *rand.Rand
	vocab *vocab.Vocabulary

	// Memoized cleanup memory, rebuilt when the vocabulary version moves.
	cleanupMem     *cleanup.Memory
	cleanupVersion uint64

	// Memoized neural channels by population size.
	channels map[int]*neural.Encoder

	cleanupOptions []func(*cleanup.Options)
	encoderOptions []func(*neural.Options)
	codec          codec.Codec
	compression    snapshot.Compression
	metrics        MetricsCollector
	logger         *Logger
}

// CleanupResult reports the outcome of a cleanup operation.
type CleanupResult struct {
	// Vector is the cleaned unit vector.
	Vector []float64

	// Match is the name of the stored concept nearest to Vector.
	Match string

	// Score is the cosine similarity between Vector and Match.
	Score float64

	// Iterations is the number of settle steps executed.
	Iterations int

	// Converged reports whether settling reached the tolerance before the
	// iteration budget ran out. A false value is a valid outcome, not an
	// error.
	Converged bool
}

// New creates an empty session for vectors of the given dimensionality.
func New(dim int, optFns ...Option) (*Session, error) {
	opts := applyOptions(optFns)

	rng := opts.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	v, err := vocab.New(dim, rng)
	if err != nil {
		return nil, translateError(err)
	}

	return &Session{
		dim:            dim,
		rng:            rng,
		vocab:          v,
		channels:       make(map[int]*neural.Encoder),
		cleanupOptions: opts.cleanupOptions,
		encoderOptions: opts.encoderOptions,
		codec:          opts.codec,
		compression:    opts.compression,
		metrics:        opts.metricsCollector,
		logger:         opts.logger,
	}, nil
}

// Dim returns the session's vector dimensionality.
func (s *Session) Dim() int {
	return s.dim
}

// Len returns the number of stored vectors.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vocab.Len()
}

// AddVector generates a fresh random unit vector and stores it as a concept
// under name. The returned slice is a copy.
func (s *Session) AddVector(name string) ([]float64, error) {
	start := time.Now()
	s.mu.Lock()
	vec, err := s.vocab.Add(name)
	s.mu.Unlock()

	err = translateError(err)
	s.metrics.RecordAdd(time.Since(start), err)
	s.logger.LogAdd(context.Background(), name, s.dim, err)
	return vec, err
}

// SetVector stores an explicit vector as a concept under name. The vector
// is normalized before storage; the returned slice is a copy of the stored
// form.
func (s *Session) SetVector(name string, vec []float64) ([]float64, error) {
	start := time.Now()
	s.mu.Lock()
	stored, err := s.vocab.AddVector(name, vec)
	s.mu.Unlock()

	err = translateError(err)
	s.metrics.RecordAdd(time.Since(start), err)
	s.logger.LogAdd(context.Background(), name, s.dim, err)
	return stored, err
}

// GetVector returns a copy of the vector stored under name.
func (s *Session) GetVector(name string) ([]float64, error) {
	s.mu.Lock()
	vec, err := s.vocab.Get(name)
	s.mu.Unlock()
	return vec, translateError(err)
}

// Bind circularly convolves the vectors stored under a and b and stores the
// normalized result under resultName as a derived entry.
func (s *Session) Bind(a, b, resultName string) ([]float64, error) {
	start := time.Now()
	vec, err := s.binaryOp(hrr.Bind, a, b, resultName)
	s.metrics.RecordBind(time.Since(start), err)
	s.logger.LogBind(context.Background(), a, b, resultName, err)
	return vec, err
}

// Unbind circularly correlates the vector stored under boundName with the
// key stored under keyName and stores the normalized recovery under
// resultName as a derived entry.
//
// Recovery is approximate: expect a similarity of roughly 0.55 to 0.75 to
// the originally bound vector, improving with dimensionality.
func (s *Session) Unbind(boundName, keyName, resultName string) ([]float64, error) {
	start := time.Now()
	vec, err := s.binaryOp(hrr.Unbind, boundName, keyName, resultName)
	s.metrics.RecordUnbind(time.Since(start), err)
	s.logger.LogUnbind(context.Background(), boundName, keyName, resultName, err)
	return vec, err
}

func (s *Session) binaryOp(op func(a, b []float64) ([]float64, error), a, b, resultName string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	va, err := s.vocab.Get(a)
	if err != nil {
		return nil, translateError(err)
	}
	vb, err := s.vocab.Get(b)
	if err != nil {
		return nil, translateError(err)
	}
	out, err := op(va, vb)
	if err != nil {
		return nil, translateError(err)
	}
	stored, err := s.vocab.AddDerived(resultName, out)
	return stored, translateError(err)
}

// Superpose sums the vectors stored under names and stores the normalized
// result under resultName as a derived entry.
func (s *Session) Superpose(resultName string, names ...string) ([]float64, error) {
	start := time.Now()
	vec, err := s.superpose(resultName, names)
	s.metrics.RecordSuperpose(time.Since(start), err)
	return vec, err
}

func (s *Session) superpose(resultName string, names []string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs := make([][]float64, 0, len(names))
	for _, name := range names {
		v, err := s.vocab.Get(name)
		if err != nil {
			return nil, translateError(err)
		}
		vs = append(vs, v)
	}
	sum, err := hrr.Superpose(vs...)
	if err != nil {
		return nil, translateError(err)
	}
	stored, err := s.vocab.AddDerived(resultName, sum)
	return stored, translateError(err)
}

// Similarity returns the cosine similarity of the vectors stored under a
// and b.
func (s *Session) Similarity(a, b string) (float64, error) {
	start := time.Now()
	s.mu.Lock()
	score, err := s.vocab.Similarity(a, b)
	s.mu.Unlock()

	err = translateError(err)
	s.metrics.RecordQuery(time.Since(start), err)
	return score, err
}

// AddNoise perturbs the vector stored under name with independent Gaussian
// noise of standard deviation sigma per component and stores the
// renormalized result under resultName as a derived entry.
func (s *Session) AddNoise(name string, sigma float64, resultName string) ([]float64, error) {
	start := time.Now()
	vec, err := s.addNoise(name, sigma, resultName)
	s.metrics.RecordNoise(time.Since(start), err)
	return vec, err
}

func (s *Session) addNoise(name string, sigma float64, resultName string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.vocab.Get(name)
	if err != nil {
		return nil, translateError(err)
	}
	noisy, err := s.vocab.AddNoise(v, sigma)
	if err != nil {
		return nil, translateError(err)
	}
	stored, err := s.vocab.AddDerived(resultName, noisy)
	return stored, translateError(err)
}

// Cleanup drives the vector stored under name toward the nearest stored
// concept and reports the settled vector, the matched concept and the
// settling statistics. The session does not store the result; use
// CleanupInto for that.
//
// A cleanup that runs out of iterations returns Converged false with the
// best-effort vector; that is a valid outcome, not an error.
func (s *Session) Cleanup(name string, maxIterations int, tolerance float64) (CleanupResult, error) {
	start := time.Now()
	res, err := s.runCleanup(name, maxIterations, tolerance)
	s.metrics.RecordCleanup(res.Iterations, res.Converged, time.Since(start), err)
	s.logger.LogCleanup(context.Background(), name, res.Iterations, res.Converged, err)
	return res, err
}

// CleanupInto behaves like Cleanup and additionally stores the cleaned
// vector under resultName as a derived entry.
func (s *Session) CleanupInto(name, resultName string, maxIterations int, tolerance float64) (CleanupResult, error) {
	start := time.Now()
	res, err := s.cleanupInto(name, resultName, maxIterations, tolerance)
	s.metrics.RecordCleanup(res.Iterations, res.Converged, time.Since(start), err)
	s.logger.LogCleanup(context.Background(), name, res.Iterations, res.Converged, err)
	return res, err
}

func (s *Session) runCleanup(name string, maxIterations int, tolerance float64) (CleanupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked(name, maxIterations, tolerance)
}

func (s *Session) cleanupInto(name, resultName string, maxIterations int, tolerance float64) (CleanupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.cleanupLocked(name, maxIterations, tolerance)
	if err != nil {
		return res, err
	}
	if _, err := s.vocab.AddDerived(resultName, res.Vector); err != nil {
		return CleanupResult{}, translateError(err)
	}
	return res, nil
}

func (s *Session) cleanupLocked(name string, maxIterations int, tolerance float64) (CleanupResult, error) {
	v, err := s.vocab.Get(name)
	if err != nil {
		return CleanupResult{}, translateError(err)
	}

	mem, err := s.cleanupMemoryLocked()
	if err != nil {
		return CleanupResult{}, translateError(err)
	}

	settled, err := mem.Settle(v, maxIterations, tolerance)
	if err != nil {
		return CleanupResult{}, translateError(err)
	}

	match, score, err := mem.Nearest(settled.Vector)
	if err != nil {
		return CleanupResult{}, translateError(err)
	}

	return CleanupResult{
		Vector:     settled.Vector,
		Match:      match,
		Score:      score,
		Iterations: settled.Iterations,
		Converged:  settled.Converged,
	}, nil
}

// cleanupMemoryLocked returns the memoized cleanup memory, rebuilding it if
// the vocabulary has changed since it was built.
func (s *Session) cleanupMemoryLocked() (*cleanup.Memory, error) {
	if s.cleanupMem != nil && s.cleanupVersion == s.vocab.Version() {
		return s.cleanupMem, nil
	}

	mem, err := cleanup.Build(s.vocab.Concepts(), s.cleanupOptions...)
	if err != nil {
		return nil, err
	}
	s.cleanupMem = mem
	s.cleanupVersion = s.vocab.Version()
	return mem, nil
}

// Nearest matches the vector stored under name against the rest of the
// vocabulary and returns the best match name and cosine similarity. The
// entry itself is excluded from the scan.
func (s *Session) Nearest(name string) (string, float64, error) {
	start := time.Now()
	s.mu.Lock()
	match, score, err := s.nearestLocked(name)
	s.mu.Unlock()

	s.metrics.RecordQuery(time.Since(start), err)
	return match, score, err
}

func (s *Session) nearestLocked(name string) (string, float64, error) {
	v, err := s.vocab.Get(name)
	if err != nil {
		return "", 0, translateError(err)
	}
	match, score, err := s.vocab.NearestExcluding(v, name)
	return match, score, translateError(err)
}

// Transmit passes the vector stored under name through a neural population
// channel (encode to firing rates, decode back) and stores the degraded
// result under resultName as a derived entry.
//
// Channels are memoized per population size. Transmission fidelity grows
// with nNeurons and degrades gracefully as it shrinks.
func (s *Session) Transmit(name, resultName string, nNeurons int) ([]float64, error) {
	start := time.Now()
	vec, err := s.transmit(name, resultName, nNeurons)
	s.metrics.RecordQuery(time.Since(start), err)
	return vec, err
}

func (s *Session) transmit(name, resultName string, nNeurons int) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.vocab.Get(name)
	if err != nil {
		return nil, translateError(err)
	}

	enc, ok := s.channels[nNeurons]
	if !ok {
		enc, err = neural.New(nNeurons, s.dim, s.rng, s.encoderOptions...)
		if err != nil {
			return nil, translateError(err)
		}
		s.channels[nNeurons] = enc
	}

	rates, err := enc.Encode(v)
	if err != nil {
		return nil, translateError(err)
	}
	decoded, err := enc.Decode(rates)
	if err != nil {
		return nil, translateError(err)
	}

	stored, err := s.vocab.AddDerived(resultName, decoded)
	return stored, translateError(err)
}

// ListVectors returns the names of all stored vectors in insertion order.
func (s *Session) ListVectors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vocab.Names()
}

// Snapshot returns a serializable copy of the session's vocabulary.
func (s *Session) Snapshot() *snapshot.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.vocab.Entries()
	state := &snapshot.State{
		Dim:     s.dim,
		Entries: make([]snapshot.EntryState, len(entries)),
	}
	for i, e := range entries {
		state.Entries[i] = snapshot.EntryState{
			Name:    e.Name,
			Vector:  e.Vector,
			Derived: e.Derived,
		}
	}
	return state
}

// Restore replaces the session's vocabulary with the given state. Derived
// caches are discarded. On error the session is unchanged.
func (s *Session) Restore(state *snapshot.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return &ErrInvalidParameter{Param: "state"}
	}
	if state.Dim != s.dim {
		return translateError(&hrr.ErrDimensionMismatch{Expected: s.dim, Actual: state.Dim})
	}
	v, err := vocab.New(state.Dim, s.rng)
	if err != nil {
		return translateError(err)
	}
	for _, e := range state.Entries {
		if e.Derived {
			_, err = v.AddDerived(e.Name, e.Vector)
		} else {
			_, err = v.AddVector(e.Name, e.Vector)
		}
		if err != nil {
			return translateError(err)
		}
	}

	s.vocab = v
	s.cleanupMem = nil
	s.cleanupVersion = 0
	return nil
}

// Save writes the session's vocabulary to a snapshot file atomically.
func (s *Session) Save(path string) error {
	state := s.Snapshot()

	err := snapshot.Save(path, state, func(o *snapshot.Options) {
		if s.codec != nil {
			o.Codec = s.codec
		}
		o.Compression = s.compression
	})
	s.logger.LogSnapshot(context.Background(), path, err)
	return err
}

// Load creates a new session from a snapshot file. Options apply to the
// new session; the dimensionality comes from the file.
func Load(path string, optFns ...Option) (*Session, error) {
	state, err := snapshot.Load(path)
	if err != nil {
		return nil, err
	}

	s, err := New(state.Dim, optFns...)
	if err != nil {
		return nil, err
	}
	if err := s.Restore(state); err != nil {
		return nil, err
	}
	return s, nil
}
