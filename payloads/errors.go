package payloads

import (
	"github.com/pkg/errors"
)

// Variables

var (
	// ErrOverflow is returned if an update would leave
	// the range of the payload's integer type.
	ErrOverflow = errors.New("counter update overflows")

	// ErrNoReplica is returned if a grow-only counter
	// is incremented without naming a replica.
	ErrNoReplica = errors.New("increment needs a replica name")

	// ErrUnknownKind is returned for ORSet arguments or
	// operations that are neither add nor remove.
	ErrUnknownKind = errors.New("unsupported ORSet update kind")

	// ErrMalformedOp is returned for ORSet operations
	// that do not carry any tag.
	ErrMalformedOp = errors.New("ORSet operation without tags")
)
