package conn

import (
	"time"

	"github.com/epochdb/epoch/pkg/metrics"
	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/types"
)

// Collector periodically refreshes the gauges that describe the whole
// registry's state (snapshot counts, index sizes per connection) rather
// than being bumped inline on every commit, since those are cheap to
// recompute but awkward to keep incrementally in sync across retries.
type Collector struct {
	stopCh chan struct{}
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{stopCh: make(chan struct{})}
}

// Start begins collecting metrics every interval, starting with an
// immediate collection.
func (c *Collector) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	registryMu.Lock()
	snapshot := make(map[string]*Connection, len(registry))
	for name, conn := range registry {
		snapshot[name] = conn
	}
	registryMu.Unlock()

	for name, conn := range snapshot {
		h := conn.history.Load()
		metrics.SnapshotsTotal.WithLabelValues(name).Set(float64(len(h.Snapshots)))

		present := h.Present()
		metrics.IndexSize.WithLabelValues(name, "EAVT").Set(float64(countFacts(present.EAVTIdx)))
		metrics.IndexSize.WithLabelValues(name, "AVET").Set(float64(countFacts(present.AVETIdx)))
		metrics.IndexSize.WithLabelValues(name, "VEAT").Set(float64(countFacts(present.VEATIdx)))
	}
}

func countFacts(ix *storage.Index) int {
	n := 0
	ix.All(func(e, a, v types.Value) bool {
		n++
		return true
	})
	return n
}
