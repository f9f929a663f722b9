package payloads

import (
	"math"
)

// Structs

// Counter is an operation-based integer counter. The
// broadcast operation is the increment itself. Increments
// commute, so any delivery order converges.
type Counter int64

// Functions

// add returns c + n or ErrOverflow.
func (c Counter) add(n int64) (Counter, error) {

	if (n > 0 && int64(c) > math.MaxInt64-n) ||
		(n < 0 && int64(c) < math.MinInt64-n) {
		return c, ErrOverflow
	}

	return c + Counter(n), nil
}

// AtSource generates the increment n. A zero increment
// does not produce an operation.
func (c Counter) AtSource(n int64) (int64, bool, error) {

	if n == 0 {
		return 0, false, nil
	}

	if _, err := c.add(n); err != nil {
		return 0, false, err
	}

	return n, true, nil
}

// Downstream applies the increment n.
func (c Counter) Downstream(n int64) (Counter, bool, error) {

	next, err := c.add(n)
	if err != nil {
		return c, false, err
	}

	return next, true, nil
}
