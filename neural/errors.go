package neural

import "errors"

// ErrNoNeurons is returned when a population of size zero is requested.
var ErrNoNeurons = errors.New("population must contain at least one neuron")
