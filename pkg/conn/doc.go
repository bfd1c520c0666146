/*
Package conn implements the Connection: the process-global, named handle
that owns a database's ordered history of Snapshots and the single
atomically-swapped pointer that makes committing a new one safe without
locks.

Open returns the same *Connection for a given name every time, creating
an empty one — a single Snapshot at curr-time 0 — the first time it is
asked for. Close and Drop remove a name from the registry; they do not
otherwise touch the Connection's history, which the Go garbage collector
reclaims once nothing else holds a reference to it.

Connection.Transact is the only way to advance a Connection's history.
It composes one or more pkg/txn Ops into a single commit: load the
present snapshot, compute what pkg/txn says the next one would be, and
attempt a compare-and-set against the atomic history pointer. Losing the
race to a concurrent writer means looping and recomputing against
whatever is present now — exactly the retry behavior the storage model's
concurrency section calls for. Multiple readers calling Snapshot proceed
in parallel without ever blocking on a writer.

# See also

  - pkg/txn for the Ops a Transact call composes
  - pkg/storage for the Snapshot values a History chains
  - pkg/query and pkg/graph, which both operate on a Snapshot obtained
    from a Connection
*/
package conn
