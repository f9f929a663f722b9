package crdt

import (
	"sync"
	"sync/atomic"
)

// Structs

// payload holds the committed value of one replica.
// Writers serialize on lock, readers load the current
// value without taking it. A payload has to be set up
// with reset, the zero value has no current value.
type payload[T any] struct {
	lock    *sync.Mutex
	current atomic.Pointer[T]
}

// Functions

// reset prepares p and commits initial as its value.
func (p *payload[T]) reset(initial T) {

	p.lock = new(sync.Mutex)
	p.commit(initial)
}

// commit publishes value as the new current value.
// Callers have to hold the lock.
func (p *payload[T]) commit(value T) {
	p.current.Store(&value)
}

// Value returns the last committed value of this replica.
// It panics on a container not built by its Init function.
func (p *payload[T]) Value() T {
	return *p.current.Load()
}

// Query evaluates q against the last committed value.
// It never waits for an in-flight update to finish.
func (p *payload[T]) Query(q QueryFunc[T]) (T, bool, error) {
	return q(p.Value())
}

// Reader is anything exposing a replica's committed value.
type Reader[T any] interface {
	Value() T
}

// Evaluate runs a query whose result type differs from
// the payload type against the last committed value of r.
func Evaluate[T, R any](r Reader[T], q func(value T) (R, bool, error)) (R, bool, error) {
	return q(r.Value())
}
