package payloads

import (
	"github.com/go-pluto/lattice/crdt"
)

// Structs

// Max is an integer register that only ever grows. Its
// values form the max semilattice, so it can be replicated
// state-based. It can be replicated operation-based as well,
// with the operation being the new value.
type Max int64

// Functions

// Compare reports whether m <= other.
func (m Max) Compare(other Max) bool {
	return m <= other
}

// Merge returns the larger of m and other.
func (m Max) Merge(other Max) Max {

	if other > m {
		return other
	}

	return m
}

// AtSource generates an operation raising the register
// to n. It only does so if n exceeds the current value.
func (m Max) AtSource(n Max) (Max, bool, error) {

	if n <= m {
		return 0, false, nil
	}

	return n, true, nil
}

// Downstream applies the operation n. Raising to a value
// below the current one leaves the register unchanged,
// which makes the operation idempotent.
func (m Max) Downstream(n Max) (Max, bool, error) {
	return m.Merge(n), true, nil
}

// RaiseTo returns a state-based update setting the
// register to n if n exceeds the current value.
func RaiseTo(n Max) crdt.UpdateFunc[Max] {

	return func(m Max) (Max, bool, error) {

		if n <= m {
			return m, false, nil
		}

		return n, true, nil
	}
}
