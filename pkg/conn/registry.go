package conn

import (
	"fmt"
	"sync"

	"github.com/epochdb/epoch/pkg/log"
	"github.com/epochdb/epoch/pkg/metrics"
)

var (
	registryMu sync.Mutex
	registry   = map[string]*Connection{}
)

// Open returns the process-global connection named name, creating it —
// with a single empty snapshot at curr-time 0 — if it does not already
// exist. Calling Open twice with the same name returns the same
// *Connection both times.
func Open(name string) *Connection {
	registryMu.Lock()
	defer registryMu.Unlock()

	if c, ok := registry[name]; ok {
		return c
	}
	c := newConnection(name)
	registry[name] = c
	metrics.OpenConnections.Inc()
	log.WithConnection(name).Info().Msg("connection opened")
	return c
}

// Close releases the registry's handle to name. The connection's history
// is not inspected or torn down beyond the Go garbage collector reclaiming
// it once nothing else retains a reference; Close is idempotent in the
// sense that closing an already-closed name is simply a no-op error.
func Close(name string) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; !ok {
		return fmt.Errorf("close %s: %w", name, ErrUnknownConnection)
	}
	delete(registry, name)
	metrics.OpenConnections.Dec()
	log.WithConnection(name).Info().Msg("connection closed")
	return nil
}

// Drop removes name from the registry, the same as Close; it exists as a
// distinct, explicitly-named operation so callers can express "discard
// this connection's data" even though, for an in-memory database, the two
// have identical effect once no caller still holds a *Connection value.
func Drop(name string) error {
	return Close(name)
}
