package crdt

// Structs

// OpPayload is the container of one replica's value of
// an operation-based payload type T.
type OpPayload[T OpsBased[T, A, O], A, O any] struct {
	payload[T]
}

// Functions

// InitOpPayload returns a new container holding initial.
func InitOpPayload[T OpsBased[T, A, O], A, O any](initial T) *OpPayload[T, A, O] {

	p := new(OpPayload[T, A, O])
	p.reset(initial)

	return p
}

// Update executes both phases of an operation-based update
// at the source replica. AtSource generates the operation,
// which is then applied locally via Downstream. The returned
// operation is what has to be broadcast to all other replicas.
// If the source precondition fails, ok is false and nothing
// is to be broadcast.
func (p *OpPayload[T, A, O]) Update(args A) (O, bool, error) {

	var none O

	p.lock.Lock()
	defer p.lock.Unlock()

	cur := p.Value()

	// First phase, no side effects.
	op, ok, err := cur.AtSource(args)
	if err != nil {
		return none, false, err
	}

	if !ok {
		return none, false, nil
	}

	// Second phase at the source itself.
	next, ok, err := cur.Downstream(op)
	if err != nil {
		return none, false, err
	}

	if !ok {
		return none, false, ErrSourceDownstream
	}

	p.commit(next)

	return op, true, nil
}

// Downstream applies an operation received from another
// replica. It reports false without touching the value if
// the operation's downstream precondition does not hold yet.
func (p *OpPayload[T, A, O]) Downstream(op O) (bool, error) {

	p.lock.Lock()
	defer p.lock.Unlock()

	next, ok, err := p.Value().Downstream(op)
	if err != nil {
		return false, err
	}

	if !ok {
		return false, nil
	}

	p.commit(next)

	return true, nil
}
