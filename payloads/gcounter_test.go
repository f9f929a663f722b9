package payloads_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-pluto/lattice/crdt"
	"github.com/go-pluto/lattice/payloads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Functions

func gcounter(counts map[string]uint64) payloads.GCounter {

	g := payloads.NewGCounter()
	for replica, n := range counts {
		g.Counts[replica] = n
	}

	return g
}

// TestGCounterLaws checks the semilattice laws over
// randomly drawn counters.
func TestGCounterLaws(t *testing.T) {

	r := rand.New(rand.NewSource(7))
	replicas := []string{"a", "b", "c"}

	samples := []payloads.GCounter{payloads.NewGCounter()}
	for i := 0; i < 8; i++ {

		g := payloads.NewGCounter()
		for _, replica := range replicas {

			if r.Intn(2) == 0 {
				g.Counts[replica] = uint64(r.Intn(5))
			}
		}

		samples = append(samples, g)
	}

	assert.NoError(t, crdt.CheckLaws(samples, payloads.GCounter.Equal))
}

// TestGCounterCompare checks the entry-wise order.
func TestGCounterCompare(t *testing.T) {

	x := gcounter(map[string]uint64{"a": 1})
	y := gcounter(map[string]uint64{"a": 1, "b": 2})
	z := gcounter(map[string]uint64{"a": 2})

	assert.True(t, x.Compare(y))
	assert.False(t, y.Compare(x))
	assert.True(t, x.Compare(z))
	assert.False(t, y.Compare(z))
	assert.False(t, z.Compare(y))
	assert.Equal(t, uint64(4), y.Merge(z).Sum())
}

// TestGCounterReplicas increments at two replicas, ships
// full states and deltas, and merges them duplicated and
// in different orders.
func TestGCounterReplicas(t *testing.T) {

	a := crdt.InitStatePayload(payloads.NewGCounter())
	b := crdt.InitStatePayload(payloads.NewGCounter())

	fullA, ok, err := a.Update(payloads.Increment("a", 3))
	require.NoError(t, err)
	require.True(t, ok)

	deltaB1, ok, err := b.UpdateDelta(payloads.IncrementDelta("b", 2))
	require.NoError(t, err)
	require.True(t, ok)

	deltaB2, ok, err := b.UpdateDelta(payloads.IncrementDelta("b", 5))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(7), deltaB2.Counts["b"])
	assert.Len(t, deltaB2.Counts, 1)

	// Deltas arrive at a reordered and duplicated.
	a.Merge(deltaB2)
	a.Merge(deltaB1)
	a.Merge(deltaB2)

	b.Merge(fullA)
	b.Merge(fullA)

	assert.True(t, a.Value().Equal(b.Value()))
	assert.Equal(t, uint64(10), a.Value().Sum())
	assert.True(t, a.Covers(b.Value()))
}

// TestGCounterPreconditions checks the update edge cases.
func TestGCounterPreconditions(t *testing.T) {

	p := crdt.InitStatePayload(payloads.NewGCounter())

	_, ok, err := p.Update(payloads.Increment("a", 0))
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = p.Update(payloads.Increment("", 1))
	assert.False(t, ok)
	assert.ErrorIs(t, err, payloads.ErrNoReplica)

	_, _, err = p.UpdateDelta(payloads.IncrementDelta("", 1))
	assert.ErrorIs(t, err, payloads.ErrNoReplica)

	assert.Equal(t, uint64(0), p.Value().Sum())
}

// TestGCounterSnapshot makes sure an update does not
// modify the value a query already handed out.
func TestGCounterSnapshot(t *testing.T) {

	p := crdt.InitStatePayload(payloads.NewGCounter())
	before := p.Value()

	_, _, err := p.Update(payloads.Increment("a", 1))
	require.NoError(t, err)

	assert.Equal(t, uint64(0), before.Sum())
	assert.Equal(t, uint64(1), p.Value().Sum())
}

// TestGCounterOverflow makes sure an increment that would
// wrap an entry fails on both update paths and leaves the
// value untouched.
func TestGCounterOverflow(t *testing.T) {

	start := gcounter(map[string]uint64{"a": math.MaxUint64 - 1})
	p := crdt.InitStatePayload(start)

	_, ok, err := p.Update(payloads.Increment("a", 5))
	assert.False(t, ok)
	assert.ErrorIs(t, err, payloads.ErrOverflow)

	_, ok, err = p.UpdateDelta(payloads.IncrementDelta("a", 5))
	assert.False(t, ok)
	assert.ErrorIs(t, err, payloads.ErrOverflow)

	assert.Equal(t, uint64(math.MaxUint64-1), p.Value().Counts["a"])

	// Reaching the maximum exactly is fine.
	delta, ok, err := p.UpdateDelta(payloads.IncrementDelta("a", 1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), delta.Counts["a"])
	assert.Equal(t, uint64(math.MaxUint64), p.Value().Counts["a"])
}
