package cleanup

// Separation selects the nonlinearity applied during settling.
type Separation int

// Constants representing the supported separation functions.
const (
	// SeparationSoftmax applies softmax competition between pattern
	// similarities (dense associative memory). Stored concepts are
	// near-exact fixed points.
	SeparationSoftmax Separation = iota

	// SeparationTanh applies tanh to the full Hopfield field W·x.
	SeparationTanh

	// SeparationSign applies the sign function to the full Hopfield field.
	SeparationSign
)

// String returns a string representation of the Separation.
func (s Separation) String() string {
	switch s {
	case SeparationSoftmax:
		return "Softmax"
	case SeparationTanh:
		return "Tanh"
	case SeparationSign:
		return "Sign"
	default:
		return "Unknown"
	}
}

// State is the settling state of a run.
type State int

// Settling proceeds from StateRunning to exactly one of the two terminal
// states; no other transitions exist.
const (
	StateRunning State = iota
	StateConverged
	StateMaxIterations
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateConverged:
		return "Converged"
	case StateMaxIterations:
		return "MaxIterationsReached"
	default:
		return "Unknown"
	}
}
