package crdt

import (
	"sync"

	"github.com/go-kit/kit/metrics"
	"github.com/pkg/errors"
)

// Variables

var errOddArgs = errors.New("odd arguments not accepted")

// Compile-time checks that both containers satisfy
// the replica surfaces.
var (
	_ OpReplica[register, int, int] = (*OpPayload[register, int, int])(nil)
	_ StateReplica[maxInt]          = (*StatePayload[maxInt])(nil)
)

// Structs

// maxInt is the max semilattice over integers.
type maxInt int

// register is an operation-based integer whose
// operations are increments. Non-positive increments
// fail the source precondition, odd ones are rejected
// with a domain error.
type register int

// sequenced only accepts operations carrying exactly
// its successor, modelling a causal dependency.
type sequenced int

// broken generates operations it cannot apply itself.
type broken int

// minus is a merge that is neither commutative nor
// idempotent.
type minus int

// recordingCounter is a metrics.Counter remembering
// the sum added per label value set.
type recordingCounter struct {
	lock   *sync.Mutex
	lvs    []string
	counts map[string]float64
}

// Functions

func (x maxInt) Compare(o maxInt) bool { return x <= o }
func (x maxInt) Merge(o maxInt) maxInt { return max(x, o) }

func (r register) AtSource(n int) (int, bool, error) {

	if n <= 0 {
		return 0, false, nil
	}

	if n%2 != 0 {
		return 0, false, errOddArgs
	}

	return n, true, nil
}

func (r register) Downstream(n int) (register, bool, error) {
	return r + register(n), true, nil
}

func (s sequenced) AtSource(n int) (int, bool, error) {
	return int(s) + 1, true, nil
}

func (s sequenced) Downstream(n int) (sequenced, bool, error) {

	if n != int(s)+1 {
		return s, false, nil
	}

	return sequenced(n), true, nil
}

func (b broken) AtSource(n int) (int, bool, error)      { return n, true, nil }
func (b broken) Downstream(n int) (broken, bool, error) { return b, false, nil }

func (x minus) Compare(o minus) bool { return x <= o }
func (x minus) Merge(o minus) minus  { return x - o }

func newRecordingCounter() *recordingCounter {

	return &recordingCounter{
		lock:   new(sync.Mutex),
		counts: make(map[string]float64),
	}
}

func (c *recordingCounter) With(lvs ...string) metrics.Counter {

	return &recordingCounter{
		lock:   c.lock,
		lvs:    append(append([]string{}, c.lvs...), lvs...),
		counts: c.counts,
	}
}

func (c *recordingCounter) Add(delta float64) {

	c.lock.Lock()
	defer c.lock.Unlock()

	key := ""
	for _, lv := range c.lvs {
		key += lv + ";"
	}

	c.counts[key] += delta
}

func (c *recordingCounter) get(lvs ...string) float64 {

	c.lock.Lock()
	defer c.lock.Unlock()

	key := ""
	for _, lv := range lvs {
		key += lv + ";"
	}

	return c.counts[key]
}
