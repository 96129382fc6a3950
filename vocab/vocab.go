// Package vocab provides a named collection of unit-norm semantic pointers.
//
// A Vocabulary maps unique names to vectors of one fixed dimensionality.
// Entries are either concepts (atomic, randomly generated or explicitly
// supplied) or derived (results of algebra operations). Derived entries are
// listed and retrievable like any other, but attractor memories are built
// from the concept subset only.
//
// Vocabularies are not safe for concurrent use; callers serialize access.
package vocab

import (
	"math/rand"
	"time"

	"github.com/hupe1980/semgo/hrr"
	"gonum.org/v1/gonum/floats"
)

// Entry is a single named vector.
type Entry struct {
	Name    string
	Vector  []float64
	Derived bool
}

// Vocabulary maps unique names to unit-norm vectors of one dimensionality.
type Vocabulary struct {
	dim     int
	rng     *rand.Rand
	entries []*Entry // insertion order, used for nearest tie-breaks
	byName  map[string]*Entry
	version uint64
}

// New creates an empty vocabulary for vectors of the given dimensionality.
//
// If rng is nil a time-seeded source is used; pass a seeded *rand.Rand for
// deterministic vector generation.
func New(dim int, rng *rand.Rand) (*Vocabulary, error) {
	if dim < 2 {
		return nil, &hrr.ErrInvalidDimension{Dimension: dim}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Vocabulary{
		dim:    dim,
		rng:    rng,
		byName: make(map[string]*Entry),
	}, nil
}

// Dim returns the vector dimensionality of this vocabulary.
func (v *Vocabulary) Dim() int { return v.dim }

// Len returns the number of entries.
func (v *Vocabulary) Len() int { return len(v.entries) }

// Version returns a counter that increases on every mutation. Derived
// structures (cleanup memories, precomputed operators) key their validity
// off this value.
func (v *Vocabulary) Version() uint64 { return v.version }

// Add generates a fresh random unit vector, stores it as a concept under
// name and returns a copy of it.
func (v *Vocabulary) Add(name string) ([]float64, error) {
	if _, ok := v.byName[name]; ok {
		return nil, &ErrDuplicateName{Name: name}
	}
	vec := make([]float64, v.dim)
	for i := range vec {
		vec[i] = v.rng.NormFloat64()
	}
	unit, err := hrr.Normalize(vec)
	if err != nil {
		return nil, err
	}
	v.insert(&Entry{Name: name, Vector: unit})
	return clone(unit), nil
}

// AddVector stores an explicit vector as a concept under name. The vector
// is normalized before storage.
func (v *Vocabulary) AddVector(name string, vec []float64) ([]float64, error) {
	return v.addExplicit(name, vec, false)
}

// AddDerived stores the result of an algebra operation under name. The
// vector is normalized before storage. Derived entries do not become
// cleanup attractors.
func (v *Vocabulary) AddDerived(name string, vec []float64) ([]float64, error) {
	return v.addExplicit(name, vec, true)
}

func (v *Vocabulary) addExplicit(name string, vec []float64, derived bool) ([]float64, error) {
	if _, ok := v.byName[name]; ok {
		return nil, &ErrDuplicateName{Name: name}
	}
	if len(vec) != v.dim {
		return nil, &hrr.ErrDimensionMismatch{Expected: v.dim, Actual: len(vec)}
	}
	unit, err := hrr.Normalize(vec)
	if err != nil {
		return nil, err
	}
	v.insert(&Entry{Name: name, Vector: unit, Derived: derived})
	return clone(unit), nil
}

func (v *Vocabulary) insert(e *Entry) {
	v.entries = append(v.entries, e)
	v.byName[e.Name] = e
	v.version++
}

// Get returns a copy of the vector stored under name.
func (v *Vocabulary) Get(name string) ([]float64, error) {
	e, ok := v.byName[name]
	if !ok {
		return nil, &ErrUnknownName{Name: name}
	}
	return clone(e.Vector), nil
}

// Has reports whether name exists in the vocabulary.
func (v *Vocabulary) Has(name string) bool {
	_, ok := v.byName[name]
	return ok
}

// Names returns all entry names in insertion order.
func (v *Vocabulary) Names() []string {
	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	return names
}

// Concepts returns a snapshot copy of all non-derived entries in insertion
// order. The copy is isolated from later vocabulary mutations.
func (v *Vocabulary) Concepts() []Entry {
	var out []Entry
	for _, e := range v.entries {
		if e.Derived {
			continue
		}
		out = append(out, Entry{Name: e.Name, Vector: clone(e.Vector)})
	}
	return out
}

// Entries returns a snapshot copy of all entries in insertion order.
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	for i, e := range v.entries {
		out[i] = Entry{Name: e.Name, Vector: clone(e.Vector), Derived: e.Derived}
	}
	return out
}

// Similarity returns the cosine similarity of two stored vectors.
func (v *Vocabulary) Similarity(a, b string) (float64, error) {
	ea, ok := v.byName[a]
	if !ok {
		return 0, &ErrUnknownName{Name: a}
	}
	eb, ok := v.byName[b]
	if !ok {
		return 0, &ErrUnknownName{Name: b}
	}
	return hrr.Cosine(ea.Vector, eb.Vector)
}

// Nearest scans all entries and returns the name and cosine similarity of
// the best match for query. Ties are broken by insertion order.
func (v *Vocabulary) Nearest(query []float64) (string, float64, error) {
	return v.nearest(query, "")
}

// NearestExcluding behaves like Nearest but skips the entry stored under
// skip, so a stored vector can be matched against the rest of the
// vocabulary.
func (v *Vocabulary) NearestExcluding(query []float64, skip string) (string, float64, error) {
	return v.nearest(query, skip)
}

func (v *Vocabulary) nearest(query []float64, skip string) (string, float64, error) {
	if len(query) != v.dim {
		return "", 0, &hrr.ErrDimensionMismatch{Expected: v.dim, Actual: len(query)}
	}
	best := ""
	bestScore := 0.0
	found := false
	for _, e := range v.entries {
		if skip != "" && e.Name == skip {
			continue
		}
		score, err := hrr.Cosine(query, e.Vector)
		if err != nil {
			return "", 0, err
		}
		if !found || score > bestScore {
			best, bestScore, found = e.Name, score, true
		}
	}
	if !found {
		return "", 0, ErrEmptyVocabulary
	}
	return best, bestScore, nil
}

// AddNoise returns a fresh unit vector equal to vec plus independent
// Gaussian noise with standard deviation sigma per component.
func (v *Vocabulary) AddNoise(vec []float64, sigma float64) ([]float64, error) {
	if sigma < 0 {
		return nil, ErrNegativeSigma
	}
	if len(vec) != v.dim {
		return nil, &hrr.ErrDimensionMismatch{Expected: v.dim, Actual: len(vec)}
	}
	out := clone(vec)
	for i := range out {
		out[i] += sigma * v.rng.NormFloat64()
	}
	if floats.Norm(out, 2) < 1e-10 {
		// Noise exactly cancelled the vector; keep the original direction.
		return hrr.Normalize(vec)
	}
	return hrr.Normalize(out)
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
