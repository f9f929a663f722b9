package payloads_test

import (
	"testing"

	"github.com/go-pluto/lattice/crdt"
	"github.com/go-pluto/lattice/payloads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Functions

type orset = crdt.OpPayload[payloads.ORSet[string], payloads.ORSetArgs[string], payloads.ORSetOp[string]]

func mustUpdate(t *testing.T, s *orset, args payloads.ORSetArgs[string]) payloads.ORSetOp[string] {

	op, ok, err := s.Update(args)
	require.NoError(t, err)
	require.True(t, ok)

	return op
}

func mustApply(t *testing.T, s *orset, op payloads.ORSetOp[string]) {

	ok, err := s.Downstream(op)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestORSetAddRemove executes a white-box unit test on
// adding and removing elements at a single replica.
func TestORSetAddRemove(t *testing.T) {

	s := payloads.InitORSetPayload[string]()
	assert.False(t, s.Value().Lookup("☕"))

	add := mustUpdate(t, s, payloads.AddArgs("☕"))
	assert.Equal(t, payloads.Add, add.Kind)
	assert.Len(t, add.Tags, 1)
	assert.True(t, s.Value().Lookup("☕"))

	mustUpdate(t, s, payloads.AddArgs("☕"))
	mustUpdate(t, s, payloads.AddArgs("Hey there, I am a test."))
	assert.Len(t, s.Value().Elements(), 2)

	rmv := mustUpdate(t, s, payloads.RemoveArgs("☕"))
	assert.Equal(t, payloads.Remove, rmv.Kind)
	assert.Len(t, rmv.Tags, 2)
	assert.False(t, s.Value().Lookup("☕"))
	assert.Equal(t, []string{"Hey there, I am a test."}, s.Value().Elements())

	// Removing an absent element is not applicable.
	_, ok, err := s.Update(payloads.RemoveArgs("☕"))
	assert.NoError(t, err)
	assert.False(t, ok)
}

// TestORSetAddWins checks that an add concurrent to a
// remove of the same element survives at all replicas.
func TestORSetAddWins(t *testing.T) {

	a := payloads.InitORSetPayload[string]()
	b := payloads.InitORSetPayload[string]()

	add1 := mustUpdate(t, a, payloads.AddArgs("x"))
	mustApply(t, b, add1)

	// Concurrently: a removes x, b adds x again.
	rmv := mustUpdate(t, a, payloads.RemoveArgs("x"))
	add2 := mustUpdate(t, b, payloads.AddArgs("x"))

	mustApply(t, a, add2)
	mustApply(t, b, rmv)

	assert.True(t, a.Value().Lookup("x"))
	assert.True(t, a.Value().Equal(b.Value()))
}

// TestORSetCausalPrecondition delivers a remove before
// the add it observed and expects it to be refused.
func TestORSetCausalPrecondition(t *testing.T) {

	a := payloads.InitORSetPayload[string]()
	b := payloads.InitORSetPayload[string]()

	add := mustUpdate(t, a, payloads.AddArgs("y"))
	rmv := mustUpdate(t, a, payloads.RemoveArgs("y"))

	ok, err := b.Downstream(rmv)
	require.NoError(t, err)
	assert.False(t, ok)

	mustApply(t, b, add)
	assert.True(t, b.Value().Lookup("y"))

	mustApply(t, b, rmv)
	assert.False(t, b.Value().Lookup("y"))
	assert.True(t, a.Value().Equal(b.Value()))
}

// TestORSetConcurrentRemoves applies two removes of the
// same tags, which both have to be applicable everywhere.
func TestORSetConcurrentRemoves(t *testing.T) {

	a := payloads.InitORSetPayload[string]()
	b := payloads.InitORSetPayload[string]()

	add := mustUpdate(t, a, payloads.AddArgs("z"))
	mustApply(t, b, add)

	rmvA := mustUpdate(t, a, payloads.RemoveArgs("z"))
	rmvB := mustUpdate(t, b, payloads.RemoveArgs("z"))

	mustApply(t, a, rmvB)
	mustApply(t, b, rmvA)

	assert.False(t, a.Value().Lookup("z"))
	assert.True(t, a.Value().Equal(b.Value()))
}

// TestORSetMalformed checks the domain errors.
func TestORSetMalformed(t *testing.T) {

	s := payloads.InitORSetPayload[string]()

	_, _, err := s.Update(payloads.ORSetArgs[string]{Kind: "upd", Element: "a"})
	assert.ErrorIs(t, err, payloads.ErrUnknownKind)

	_, err = s.Downstream(payloads.ORSetOp[string]{Kind: payloads.Add, Element: "a"})
	assert.ErrorIs(t, err, payloads.ErrMalformedOp)

	_, err = s.Downstream(payloads.ORSetOp[string]{Kind: "upd", Tags: []string{"t"}})
	assert.ErrorIs(t, err, payloads.ErrUnknownKind)
}
