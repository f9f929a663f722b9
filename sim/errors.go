package sim

import (
	"github.com/pkg/errors"
)

// Variables

var (
	// ErrUnknownReplica is returned for updates issued
	// at a replica name the network does not know.
	ErrUnknownReplica = errors.New("unknown replica")

	// ErrStalled is returned by Flush if none of the
	// pending messages can be applied anymore.
	ErrStalled = errors.New("no pending message is applicable")
)
