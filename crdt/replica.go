package crdt

// Structs

// OpReplica is the surface an operation-based payload
// container offers to a replication layer.
type OpReplica[T, A, O any] interface {
	Value() T
	Query(q QueryFunc[T]) (T, bool, error)
	Update(args A) (O, bool, error)
	Downstream(op O) (bool, error)
}

// StateReplica is the surface a state-based payload
// container offers to a replication layer.
type StateReplica[T any] interface {
	Value() T
	Query(q QueryFunc[T]) (T, bool, error)
	Update(u UpdateFunc[T]) (T, bool, error)
	UpdateDelta(u UpdateFunc[T]) (T, bool, error)
	Merge(remote T) T
	Covers(remote T) bool
}
