package crdt

// Structs

// Semilattice is implemented by payload types whose
// values form a join-semilattice. Both methods have to
// be pure functions over immutable values.
type Semilattice[T any] interface {

	// Compare reports whether the receiver is less than
	// or equal to other in the semilattice order.
	Compare(other T) bool

	// Merge returns the least upper bound of the receiver
	// and other.
	Merge(other T) T
}

// StateBased is the capability set a payload type needs
// for state-based replication. The update itself is
// supplied by the caller as an UpdateFunc.
type StateBased[T any] interface {
	Semilattice[T]
}

// OpsBased is the capability set a payload type needs
// for operation-based replication. A is the type of the
// arguments an update is seeded with, O the type of the
// operation broadcast to all replicas.
type OpsBased[T, A, O any] interface {

	// AtSource evaluates the source precondition against
	// the receiver and, if it holds, computes the operation
	// to broadcast. It must not have side effects. If the
	// precondition does not hold, ok is false.
	AtSource(args A) (op O, ok bool, err error)

	// Downstream checks the downstream precondition of op
	// against the receiver and returns the value after op's
	// effect. If the precondition does not hold yet, ok is
	// false and next is meaningless.
	Downstream(op O) (next T, ok bool, err error)
}

// QueryFunc evaluates a side-effect free query against
// a payload value. If the query's precondition does not
// hold, ok is false.
type QueryFunc[T any] func(value T) (result T, ok bool, err error)

// UpdateFunc computes the successor of a payload value
// for a state-based update. If the update's precondition
// does not hold, ok is false. It must not mutate value.
type UpdateFunc[T any] func(value T) (next T, ok bool, err error)
