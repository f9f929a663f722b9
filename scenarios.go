package main

import (
	"fmt"
	"math/rand"

	"github.com/go-kit/kit/log"
	"github.com/go-pluto/lattice/config"
	"github.com/go-pluto/lattice/crdt"
	"github.com/go-pluto/lattice/payloads"
	"github.com/go-pluto/lattice/sim"
)

// Structs

// scenario runs a random workload of one payload type
// through a simulated network and reports whether all
// replicas converged afterwards.
type scenario func(sc config.Simulation, logger log.Logger, m *crdt.Metrics) (bool, error)

type (
	orSet     = payloads.ORSet[string]
	orSetArgs = payloads.ORSetArgs[string]
	orSetOp   = payloads.ORSetOp[string]
)

// Variables

var scenarios = map[string]scenario{
	"counter":  runCounter,
	"orset":    runORSet,
	"max":      runMax,
	"gcounter": runGCounter,
}

// Functions

func simOptions(sc config.Simulation, logger log.Logger) sim.Options {

	return sim.Options{
		Seed:      sc.Seed,
		Duplicate: sc.Duplicate,
		Logger:    logger,
	}
}

// opReplica wraps a fresh operation-based payload with
// the logging and metrics middlewares.
func opReplica[T crdt.OpsBased[T, A, O], A, O any](initial T, name string, logger log.Logger, m *crdt.Metrics) crdt.OpReplica[T, A, O] {

	var r crdt.OpReplica[T, A, O]
	r = crdt.InitOpPayload[T, A, O](initial)
	r = crdt.NewLoggingOpReplica(r, log.With(logger, "replica", name))
	r = crdt.NewMetricsOpReplica(r, m)

	return r
}

// stateReplica wraps a fresh state-based payload with
// the logging and metrics middlewares.
func stateReplica[T crdt.StateBased[T]](initial T, name string, logger log.Logger, m *crdt.Metrics) crdt.StateReplica[T] {

	var r crdt.StateReplica[T]
	r = crdt.InitStatePayload(initial)
	r = crdt.NewLoggingStateReplica(r, log.With(logger, "replica", name))
	r = crdt.NewMetricsStateReplica(r, m)

	return r
}

// stepper is the part of both network flavors
// the workload loops below need.
type stepper interface {
	Step() (bool, error)
	Flush() error
}

// workload calls update in roughly half of all rounds
// and delivers a pending message in the others. At the
// end, everything still in flight is delivered.
func workload(sc config.Simulation, n stepper, update func(r *rand.Rand, name string) error) error {

	r := rand.New(rand.NewSource(sc.Seed))

	for i := 0; i < sc.Rounds; i++ {

		if r.Intn(2) == 0 {

			name := sc.Replicas[r.Intn(len(sc.Replicas))]
			if err := update(r, name); err != nil {
				return err
			}
		} else if _, err := n.Step(); err != nil {
			return err
		}
	}

	return n.Flush()
}

func runCounter(sc config.Simulation, logger log.Logger, m *crdt.Metrics) (bool, error) {

	n := sim.NewOpNetwork(sc.Replicas, func(name string) crdt.OpReplica[payloads.Counter, int64, int64] {
		return opReplica[payloads.Counter, int64, int64](0, name, logger, m)
	}, simOptions(sc, logger))

	err := workload(sc, n, func(r *rand.Rand, name string) error {
		_, err := n.Update(name, int64(r.Intn(21)-10))
		return err
	})
	if err != nil {
		return false, err
	}

	return n.Converged(crdt.DeepEqual[payloads.Counter]), nil
}

func runORSet(sc config.Simulation, logger log.Logger, m *crdt.Metrics) (bool, error) {

	n := sim.NewOpNetwork(sc.Replicas, func(name string) crdt.OpReplica[orSet, orSetArgs, orSetOp] {
		return opReplica[orSet, orSetArgs, orSetOp](payloads.InitORSet[string](), name, logger, m)
	}, simOptions(sc, logger))

	err := workload(sc, n, func(r *rand.Rand, name string) error {

		element := fmt.Sprintf("element-%d", r.Intn(8))

		args := payloads.AddArgs(element)
		if r.Intn(2) == 0 {
			args = payloads.RemoveArgs(element)
		}

		_, err := n.Update(name, args)
		return err
	})
	if err != nil {
		return false, err
	}

	return n.Converged(orSet.Equal), nil
}

func runMax(sc config.Simulation, logger log.Logger, m *crdt.Metrics) (bool, error) {

	n := sim.NewStateNetwork(sc.Replicas, func(name string) crdt.StateReplica[payloads.Max] {
		return stateReplica(payloads.Max(0), name, logger, m)
	}, simOptions(sc, logger))

	err := workload(sc, n, func(r *rand.Rand, name string) error {
		_, err := n.Update(name, payloads.RaiseTo(payloads.Max(r.Intn(1000))))
		return err
	})
	if err != nil {
		return false, err
	}

	return n.Converged(crdt.DeepEqual[payloads.Max]), nil
}

func runGCounter(sc config.Simulation, logger log.Logger, m *crdt.Metrics) (bool, error) {

	n := sim.NewStateNetwork(sc.Replicas, func(name string) crdt.StateReplica[payloads.GCounter] {
		return stateReplica(payloads.NewGCounter(), name, logger, m)
	}, simOptions(sc, logger))

	err := workload(sc, n, func(r *rand.Rand, name string) error {

		inc := uint64(r.Intn(5))

		if r.Intn(2) == 0 {
			_, err := n.UpdateDelta(name, payloads.IncrementDelta(name, inc))
			return err
		}

		_, err := n.Update(name, payloads.Increment(name, inc))
		return err
	})
	if err != nil {
		return false, err
	}

	return n.Converged(payloads.GCounter.Equal), nil
}
