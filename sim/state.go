package sim

import (
	"github.com/go-kit/kit/log/level"
	"github.com/go-pluto/lattice/crdt"
	"github.com/pkg/errors"
)

// Structs

// StateNetwork replicates a state-based payload.
type StateNetwork[T crdt.StateBased[T]] struct {
	*network
	replicas map[string]crdt.StateReplica[T]
}

// Functions

// NewStateNetwork creates a network of replicas with the
// given names, each one built by calling build.
func NewStateNetwork[T crdt.StateBased[T]](names []string, build func(name string) crdt.StateReplica[T], opts Options) *StateNetwork[T] {

	n := &StateNetwork[T]{
		network:  initNetwork(names, opts),
		replicas: make(map[string]crdt.StateReplica[T], len(names)),
	}

	for _, name := range n.names {
		n.replicas[name] = build(name)
	}

	return n
}

// Replica returns the replica called name or nil.
func (n *StateNetwork[T]) Replica(name string) crdt.StateReplica[T] {
	return n.replicas[name]
}

// Update issues a full-state update at replica name and
// sends the resulting state to all other replicas. As with
// OpNetwork.Update, a value that fails to encode is left
// committed at the source but never sent.
func (n *StateNetwork[T]) Update(name string, u crdt.UpdateFunc[T]) (bool, error) {
	return n.update(name, u, false)
}

// UpdateDelta issues a delta update at replica name and
// sends only the delta to all other replicas.
func (n *StateNetwork[T]) UpdateDelta(name string, u crdt.UpdateFunc[T]) (bool, error) {
	return n.update(name, u, true)
}

func (n *StateNetwork[T]) update(name string, u crdt.UpdateFunc[T], delta bool) (bool, error) {

	r, found := n.replicas[name]
	if !found {
		return false, errors.Wrapf(ErrUnknownReplica, "update at '%s'", name)
	}

	var (
		ship T
		ok   bool
		err  error
	)

	if delta {
		ship, ok, err = r.UpdateDelta(u)
	} else {
		ship, ok, err = r.Update(u)
	}

	if err != nil || !ok {
		return ok, err
	}

	return true, broadcast(n.network, name, ship)
}

// deliver merges d into its receiver.
func (n *StateNetwork[T]) deliver(d delivery) error {

	msg, err := Parse(d.raw)
	if err != nil {
		return err
	}

	remote, err := Decode[T](msg)
	if err != nil {
		return err
	}

	r := n.replicas[d.to]

	if r.Covers(remote) {
		level.Debug(n.logger).Log("msg", "state already covered", "to", d.to, "sender", msg.Sender, "seq", msg.Seq)
		return nil
	}

	r.Merge(remote)

	return nil
}

// Step merges one random pending message. It returns
// false if the pool was empty.
func (n *StateNetwork[T]) Step() (bool, error) {

	if len(n.pool) == 0 {
		return false, nil
	}

	if err := n.deliver(n.take()); err != nil {
		return false, err
	}

	return true, nil
}

// Flush merges all pending messages in random order.
func (n *StateNetwork[T]) Flush() error {

	for _, d := range n.drain() {

		if err := n.deliver(d); err != nil {
			return err
		}
	}

	return nil
}

// Converged reports whether all replicas hold equal values.
func (n *StateNetwork[T]) Converged(eq crdt.EqualFunc[T]) bool {

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
