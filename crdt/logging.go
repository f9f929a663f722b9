package crdt

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Structs

type loggingOpReplica[T, A, O any] struct {
	logger  log.Logger
	replica OpReplica[T, A, O]
}

type loggingStateReplica[T any] struct {
	logger  log.Logger
	replica StateReplica[T]
}

// Functions

// NewLoggingOpReplica wraps a provided existing
// operation-based replica with the provided logger.
func NewLoggingOpReplica[T, A, O any](r OpReplica[T, A, O], logger log.Logger) OpReplica[T, A, O] {
	return &loggingOpReplica[T, A, O]{logger, r}
}

// NewLoggingStateReplica wraps a provided existing
// state-based replica with the provided logger.
func NewLoggingStateReplica[T any](r StateReplica[T], logger log.Logger) StateReplica[T] {
	return &loggingStateReplica[T]{logger, r}
}

// logOutcome logs the result of a call that may be
// skipped because of a failed precondition.
func logOutcome(logger log.Logger, ok bool, err error) {

	if err != nil {
		level.Warn(logger).Log("msg", "payload returned an error", "err", err)
	} else if !ok {
		level.Info(logger).Log("msg", "precondition not met")
	} else {
		level.Debug(logger).Log()
	}
}

func (r *loggingOpReplica[T, A, O]) Value() T {
	return r.replica.Value()
}

// Query wraps this replica's Query method with
// added logging capabilities.
func (r *loggingOpReplica[T, A, O]) Query(q QueryFunc[T]) (T, bool, error) {

	res, ok, err := r.replica.Query(q)

	logOutcome(log.With(r.logger, "method", "query"), ok, err)

	return res, ok, err
}

// Update wraps this replica's Update method with
// added logging capabilities.
func (r *loggingOpReplica[T, A, O]) Update(args A) (O, bool, error) {

	op, ok, err := r.replica.Update(args)

	logger := log.With(r.logger,
		"method", "update",
		"args", args,
	)

	if ok {
		logger = log.With(logger, "op", op)
	}

	logOutcome(logger, ok, err)

	return op, ok, err
}

// Downstream wraps this replica's Downstream method
// with added logging capabilities.
func (r *loggingOpReplica[T, A, O]) Downstream(op O) (bool, error) {

	ok, err := r.replica.Downstream(op)

	logOutcome(log.With(r.logger, "method", "downstream", "op", op), ok, err)

	return ok, err
}

func (r *loggingStateReplica[T]) Value() T {
	return r.replica.Value()
}

func (r *loggingStateReplica[T]) Covers(remote T) bool {
	return r.replica.Covers(remote)
}

// Query wraps this replica's Query method with
// added logging capabilities.
func (r *loggingStateReplica[T]) Query(q QueryFunc[T]) (T, bool, error) {

	res, ok, err := r.replica.Query(q)

	logOutcome(log.With(r.logger, "method", "query"), ok, err)

	return res, ok, err
}

// Update wraps this replica's Update method with
// added logging capabilities.
func (r *loggingStateReplica[T]) Update(u UpdateFunc[T]) (T, bool, error) {

	next, ok, err := r.replica.Update(u)

	logOutcome(log.With(r.logger, "method", "update"), ok, err)

	return next, ok, err
}

// UpdateDelta wraps this replica's UpdateDelta method
// with added logging capabilities.
func (r *loggingStateReplica[T]) UpdateDelta(u UpdateFunc[T]) (T, bool, error) {

	delta, ok, err := r.replica.UpdateDelta(u)

	logOutcome(log.With(r.logger, "method", "update_delta"), ok, err)

	return delta, ok, err
}

// Merge wraps this replica's Merge method with
// added logging capabilities.
func (r *loggingStateReplica[T]) Merge(remote T) T {

	merged := r.replica.Merge(remote)

	level.Debug(r.logger).Log(
		"method", "merge",
		"remote", remote,
		"merged", merged,
	)

	return merged
}
