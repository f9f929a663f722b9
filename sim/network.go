package sim

import (
	"math/rand"
	"sort"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Structs

// Options configure the delivery behavior of a network.
type Options struct {

	// Seed makes delivery order reproducible.
	Seed int64

	// Duplicate is the probability with which a message
	// is delivered twice to the same replica.
	Duplicate float64

	// Logger receives delivery events. Defaults to a
	// no-op logger.
	Logger log.Logger
}

// delivery is one message in flight to one replica.
type delivery struct {
	to  string
	raw []byte
}

// network carries what both network flavors share: the
// replica names, per-sender sequence numbers and the pool
// of messages in flight.
type network struct {
	names  []string
	seq    map[string]uint64
	pool   []delivery
	rand   *rand.Rand
	dup    float64
	logger log.Logger
}

// Functions

func initNetwork(names []string, opts Options) *network {

	sorted := append([]string{}, names...)
	sort.Strings(sorted)

	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &network{
		names:  sorted,
		seq:    make(map[string]uint64, len(names)),
		rand:   rand.New(rand.NewSource(opts.Seed)),
		dup:    opts.Duplicate,
		logger: logger,
	}
}

// Names returns the names of all replicas, sorted.
func (n *network) Names() []string {
	return append([]string{}, n.names...)
}

// Pending returns the number of messages in flight.
func (n *network) Pending() int {
	return len(n.pool)
}

// broadcast sends v from sender to every other replica.
func broadcast[V any](n *network, sender string, v V) error {

	msg, err := InitMessage(sender, n.seq[sender]+1, v)
	if err != nil {
		return err
	}

	raw, err := msg.Marshal()
	if err != nil {
		return err
	}

	n.seq[sender] = msg.Seq

	for _, name := range n.names {

		if name == sender {
			continue
		}

		n.pool = append(n.pool, delivery{name, raw})

		if n.rand.Float64() < n.dup {
			n.pool = append(n.pool, delivery{name, raw})
		}
	}

	level.Debug(n.logger).Log(
		"msg", "broadcast",
		"sender", sender,
		"seq", msg.Seq,
		"bytes", len(raw),
	)

	return nil
}

// take removes and returns a random pending delivery.
func (n *network) take() delivery {

	i := n.rand.Intn(len(n.pool))
	d := n.pool[i]

	n.pool[i] = n.pool[len(n.pool)-1]
	n.pool = n.pool[:len(n.pool)-1]

	return d
}

// drain removes all pending deliveries and returns
// them in random order.
func (n *network) drain() []delivery {

	pending := n.pool
	n.pool = nil

	n.rand.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	return pending
}
