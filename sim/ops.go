package sim

import (
	"github.com/go-kit/kit/log/level"
	"github.com/go-pluto/lattice/crdt"
	"github.com/pkg/errors"
)

// Structs

// OpNetwork replicates an operation-based payload.
type OpNetwork[T, A, O any] struct {
	*network
	replicas map[string]crdt.OpReplica[T, A, O]
	applied  map[string]map[msgID]struct{}
}

// Functions

// NewOpNetwork creates a network of replicas with the
// given names, each one built by calling build.
func NewOpNetwork[T, A, O any](names []string, build func(name string) crdt.OpReplica[T, A, O], opts Options) *OpNetwork[T, A, O] {

	n := &OpNetwork[T, A, O]{
		network:  initNetwork(names, opts),
		replicas: make(map[string]crdt.OpReplica[T, A, O], len(names)),
		applied:  make(map[string]map[msgID]struct{}, len(names)),
	}

	for _, name := range n.names {
		n.replicas[name] = build(name)
		n.applied[name] = make(map[msgID]struct{})
	}

	return n
}

// Replica returns the replica called name or nil.
func (n *OpNetwork[T, A, O]) Replica(name string) crdt.OpReplica[T, A, O] {
	return n.replicas[name]
}

// Update issues an update at replica name. If the source
// precondition holds, the generated operation is sent to
// all other replicas. The source replica commits before
// the operation is encoded, so if encoding fails the
// source keeps the update while nothing is sent and the
// replicas will not converge.
func (n *OpNetwork[T, A, O]) Update(name string, args A) (bool, error) {

	r, found := n.replicas[name]
	if !found {
		return false, errors.Wrapf(ErrUnknownReplica, "update at '%s'", name)
	}

	op, ok, err := r.Update(args)
	if err != nil || !ok {
		return ok, err
	}

	return true, broadcast(n.network, name, op)
}

// deliver offers d to its receiver. It reports whether
// the message was consumed, i.e. applied or recognized
// as duplicate. A refused message is not consumed.
func (n *OpNetwork[T, A, O]) deliver(d delivery) (bool, error) {

	msg, err := Parse(d.raw)
	if err != nil {
		return false, err
	}

	logger := n.logger
	seen := n.applied[d.to]

	if _, dup := seen[msg.id()]; dup {
		level.Debug(logger).Log("msg", "dropping duplicate", "to", d.to, "sender", msg.Sender, "seq", msg.Seq)
		return true, nil
	}

	op, err := Decode[O](msg)
	if err != nil {
		return false, err
	}

	ok, err := n.replicas[d.to].Downstream(op)
	if err != nil {
		return false, errors.Wrapf(err, "applying %s/%d at '%s'", msg.Sender, msg.Seq, d.to)
	}

	if !ok {
		level.Debug(logger).Log("msg", "downstream precondition not met, retrying later", "to", d.to, "sender", msg.Sender, "seq", msg.Seq)
		return false, nil
	}

	seen[msg.id()] = struct{}{}

	return true, nil
}

// Step delivers one random pending message. It returns
// false if the pool was empty or the message was refused,
// in which case it stays pending.
func (n *OpNetwork[T, A, O]) Step() (bool, error) {

	if len(n.pool) == 0 {
		return false, nil
	}

	d := n.take()

	consumed, err := n.deliver(d)
	if err != nil {
		return false, err
	}

	if !consumed {
		n.pool = append(n.pool, d)
	}

	return consumed, nil
}

// Flush delivers messages in rounds of random order until
// none is pending. A refused message is offered again in
// the next round. If a whole round consumes no message,
// ErrStalled is returned.
func (n *OpNetwork[T, A, O]) Flush() error {

	for len(n.pool) > 0 {

		progress := false

		for _, d := range n.drain() {

			consumed, err := n.deliver(d)
			if err != nil {
				return err
			}

			if consumed {
				progress = true
			} else {
				n.pool = append(n.pool, d)
			}
		}

		if !progress {
			return errors.Wrapf(ErrStalled, "%d messages pending", len(n.pool))
		}
	}

	return nil
}

// Converged reports whether all replicas hold equal values.
func (n *OpNetwork[T, A, O]) Converged(eq crdt.EqualFunc[T]) bool {

	if len(n.names) == 0 {
		return true
	}

	first := n.replicas[n.names[0]].Value()

	for _, name := range n.names[1:] {

		if !eq(first, n.replicas[name].Value()) {
			return false
		}
	}

	return true
}
