package crdt

// Structs

// StatePayload is the container of one replica's value
// of a state-based payload type T.
type StatePayload[T StateBased[T]] struct {
	payload[T]
}

// Functions

// InitStatePayload returns a new container holding initial.
func InitStatePayload[T StateBased[T]](initial T) *StatePayload[T] {

	p := new(StatePayload[T])
	p.reset(initial)

	return p
}

// Update applies u at this replica. The value returned
// is the complete new state which has to be merged into
// all other replicas eventually. Updates that would move
// the value down in the semilattice are rejected with
// ErrNotInflationary.
func (p *StatePayload[T]) Update(u UpdateFunc[T]) (T, bool, error) {

	var none T

	p.lock.Lock()
	defer p.lock.Unlock()

	cur := p.Value()

	next, ok, err := u(cur)
	if err != nil {
		return none, false, err
	}

	if !ok {
		return none, false, nil
	}

	if !cur.Compare(next) {
		return none, false, ErrNotInflationary
	}

	p.commit(next)

	return next, true, nil
}

// UpdateDelta applies u at this replica, where u returns
// a delta that is itself a valid lattice element. The delta
// is joined into the current value and returned so that only
// the delta needs to be shipped to other replicas.
func (p *StatePayload[T]) UpdateDelta(u UpdateFunc[T]) (T, bool, error) {

	var none T

	p.lock.Lock()
	defer p.lock.Unlock()

	cur := p.Value()

	delta, ok, err := u(cur)
	if err != nil {
		return none, false, err
	}

	if !ok {
		return none, false, nil
	}

	p.commit(cur.Merge(delta))

	return delta, true, nil
}

// Merge joins a state or delta received from another
// replica into the local value and returns the result.
// Merging the same remote value again does not change it.
func (p *StatePayload[T]) Merge(remote T) T {

	p.lock.Lock()
	defer p.lock.Unlock()

	merged := p.Value().Merge(remote)
	p.commit(merged)

	return merged
}

// Covers reports whether remote is less than or equal to
// the local value, i.e. merging it would be a no-op.
func (p *StatePayload[T]) Covers(remote T) bool {
	return remote.Compare(p.Value())
}
