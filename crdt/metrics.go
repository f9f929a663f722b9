package crdt

import (
	"github.com/go-kit/kit/metrics"
)

// Structs

// Metrics bundles the counters the metrics middlewares
// below report to. All counters but Merges are labelled
// by "method".
type Metrics struct {
	Applied metrics.Counter
	Skipped metrics.Counter
	Failed  metrics.Counter
	Merges  metrics.Counter
}

type metricsOpReplica[T, A, O any] struct {
	replica OpReplica[T, A, O]
	metrics *Metrics
}

type metricsStateReplica[T any] struct {
	replica StateReplica[T]
	metrics *Metrics
}

// Functions

// NewMetricsOpReplica wraps r so that every update and
// downstream operation is counted in m by its outcome.
func NewMetricsOpReplica[T, A, O any](r OpReplica[T, A, O], m *Metrics) OpReplica[T, A, O] {
	return &metricsOpReplica[T, A, O]{
		replica: r,
		metrics: m,
	}
}

// NewMetricsStateReplica wraps r so that every update is
// counted in m by its outcome and every merge in m.Merges.
func NewMetricsStateReplica[T any](r StateReplica[T], m *Metrics) StateReplica[T] {
	return &metricsStateReplica[T]{
		replica: r,
		metrics: m,
	}
}

func (m *Metrics) count(method string, ok bool, err error) {

	switch {
	case err != nil:
		m.Failed.With("method", method).Add(1)
	case !ok:
		m.Skipped.With("method", method).Add(1)
	default:
		m.Applied.With("method", method).Add(1)
	}
}

func (r *metricsOpReplica[T, A, O]) Value() T {
	return r.replica.Value()
}

func (r *metricsOpReplica[T, A, O]) Query(q QueryFunc[T]) (T, bool, error) {
	return r.replica.Query(q)
}

func (r *metricsOpReplica[T, A, O]) Update(args A) (O, bool, error) {

	op, ok, err := r.replica.Update(args)
	r.metrics.count("update", ok, err)

	return op, ok, err
}

func (r *metricsOpReplica[T, A, O]) Downstream(op O) (bool, error) {

	ok, err := r.replica.Downstream(op)
	r.metrics.count("downstream", ok, err)

	return ok, err
}

func (r *metricsStateReplica[T]) Value() T {
	return r.replica.Value()
}

func (r *metricsStateReplica[T]) Query(q QueryFunc[T]) (T, bool, error) {
	return r.replica.Query(q)
}

func (r *metricsStateReplica[T]) Covers(remote T) bool {
	return r.replica.Covers(remote)
}

func (r *metricsStateReplica[T]) Update(u UpdateFunc[T]) (T, bool, error) {

	next, ok, err := r.replica.Update(u)
	r.metrics.count("update", ok, err)

	return next, ok, err
}

func (r *metricsStateReplica[T]) UpdateDelta(u UpdateFunc[T]) (T, bool, error) {

	delta, ok, err := r.replica.UpdateDelta(u)
	r.metrics.count("update_delta", ok, err)

	return delta, ok, err
}

func (r *metricsStateReplica[T]) Merge(remote T) T {

	merged := r.replica.Merge(remote)
	r.metrics.Merges.Add(1)

	return merged
}
