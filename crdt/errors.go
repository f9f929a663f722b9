package crdt

import (
	"github.com/pkg/errors"
)

// Variables

var (
	// ErrNotInflationary is returned by a state-based
	// update whose resulting value is not greater than or
	// equal to the value it was computed from.
	ErrNotInflationary = errors.New("update result is not greater than or equal to current value")

	// ErrSourceDownstream is returned when an operation
	// generated by AtSource cannot be applied downstream
	// at the very replica that generated it.
	ErrSourceDownstream = errors.New("downstream precondition of generated operation failed at source")
)
