package conn

import (
	"sync/atomic"

	"github.com/epochdb/epoch/pkg/log"
	"github.com/epochdb/epoch/pkg/metrics"
	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/txn"
)

// History is the ordered, oldest-first sequence of Snapshots a Connection
// has ever committed. The last element is the present. A History value is
// never mutated in place; Connection.Transact builds a new one and swaps
// it in atomically.
type History struct {
	Snapshots []*storage.Snapshot
}

// Present returns the last, current Snapshot in the history.
func (h *History) Present() *storage.Snapshot {
	return h.Snapshots[len(h.Snapshots)-1]
}

// Connection owns one History and the single atomically-swapped pointer
// that makes commits safe without locks. Readers load the pointer once
// and see a stable, internally consistent view; writers are serialized
// by the compare-and-set retry loop in Transact.
type Connection struct {
	Name    string
	history atomic.Pointer[History]
}

func newConnection(name string) *Connection {
	c := &Connection{Name: name}
	c.history.Store(&History{Snapshots: []*storage.Snapshot{storage.Empty()}})
	return c
}

// Snapshot returns the present snapshot: a single atomic load of the
// history pointer, so the value returned cannot change beneath the
// caller even as other writers commit.
func (c *Connection) Snapshot() *storage.Snapshot {
	return c.history.Load().Present()
}

// History returns every snapshot ever committed on this connection,
// oldest first, as of a single atomic load.
func (c *Connection) History() []*storage.Snapshot {
	h := c.history.Load()
	out := make([]*storage.Snapshot, len(h.Snapshots))
	copy(out, h.Snapshots)
	return out
}

// Transact applies ops as one atomic unit against the present snapshot
// and, on success, appends exactly one new snapshot to the history. It
// implements the retry side of the commit primitive described by the
// storage model: read the current history, compute the next snapshot,
// attempt a compare-and-set, and on conflict recompute against whatever
// is present now. No operation here blocks or suspends; every retry runs
// to completion on the caller's goroutine.
func (c *Connection) Transact(ops ...txn.Op) (*storage.Snapshot, error) {
	timer := metrics.NewTimer()
	logger := log.WithConnection(c.Name)

	for attempt := 0; ; attempt++ {
		h := c.history.Load()
		present := h.Present()

		next, err := txn.Transact(present, ops...)
		if err != nil {
			timer.ObserveDurationVec(metrics.TransactDuration, c.Name, "error")
			return nil, err
		}

		grown := &History{Snapshots: append(append([]*storage.Snapshot{}, h.Snapshots...), next)}
		if c.history.CompareAndSwap(h, grown) {
			if attempt > 0 {
				metrics.TransactRetries.WithLabelValues(c.Name).Add(float64(attempt))
				logger.Debug().Int("attempts", attempt).Msg("transact committed after retries")
			}
			timer.ObserveDurationVec(metrics.TransactDuration, c.Name, "ok")
			return next, nil
		}
		// Lost the race to another writer; loop and reapply ops against
		// whatever is present now.
	}
}
