package payloads

import (
	"math"

	"github.com/go-pluto/lattice/crdt"
)

// Structs

// GCounter is a state-based grow-only counter. Each
// replica increments only its own entry, merging takes
// the maximum per entry.
type GCounter struct {
	Counts map[string]uint64 `msgpack:"counts"`
}

// Functions

// NewGCounter returns a counter at zero.
func NewGCounter() GCounter {

	return GCounter{
		Counts: make(map[string]uint64),
	}
}

// Sum returns the value of the counter.
func (g GCounter) Sum() uint64 {

	var sum uint64

	for _, n := range g.Counts {
		sum += n
	}

	return sum
}

// Compare reports whether every entry of g is less
// than or equal to the same entry of other.
func (g GCounter) Compare(other GCounter) bool {

	for replica, n := range g.Counts {

		if n > other.Counts[replica] {
			return false
		}
	}

	return true
}

// Merge returns the entry-wise maximum of g and other.
func (g GCounter) Merge(other GCounter) GCounter {

	merged := NewGCounter()

	for replica, n := range g.Counts {
		merged.Counts[replica] = n
	}

	for replica, n := range other.Counts {

		if n > merged.Counts[replica] {
			merged.Counts[replica] = n
		}
	}

	return merged
}

// add returns the entry of replica raised by n or
// ErrOverflow if it would wrap around.
func (g GCounter) add(replica string, n uint64) (uint64, error) {

	cur := g.Counts[replica]
	if cur > math.MaxUint64-n {
		return cur, ErrOverflow
	}

	return cur + n, nil
}

// Equal reports whether g and other hold the same
// non-zero entries.
func (g GCounter) Equal(other GCounter) bool {
	return g.Compare(other) && other.Compare(g)
}

// Increment returns a state-based update adding n to
// the entry of replica. The result is the full new state.
func Increment(replica string, n uint64) crdt.UpdateFunc[GCounter] {

	return func(g GCounter) (GCounter, bool, error) {

		if replica == "" {
			return g, false, ErrNoReplica
		}

		if n == 0 {
			return g, false, nil
		}

		sum, err := g.add(replica, n)
		if err != nil {
			return g, false, err
		}

		next := g.Merge(GCounter{})
		next.Counts[replica] = sum

		return next, true, nil
	}
}

// IncrementDelta returns a delta update adding n to the
// entry of replica. The delta only holds that one entry.
func IncrementDelta(replica string, n uint64) crdt.UpdateFunc[GCounter] {

	return func(g GCounter) (GCounter, bool, error) {

		if replica == "" {
			return g, false, ErrNoReplica
		}

		if n == 0 {
			return g, false, nil
		}

		sum, err := g.add(replica, n)
		if err != nil {
			return g, false, err
		}

		delta := NewGCounter()
		delta.Counts[replica] = sum

		return delta, true, nil
	}
}
