/*
Package graph provides the two read-only utilities layered over a
storage.Snapshot that don't belong in the query engine: attribute history
and reference-graph traversal.

EvolutionOf reconstructs every version of one entity's attribute across a
connection's history by walking PrevTS pointers backwards from a given
snapshot time until reaching NoTimestamp, returning the versions oldest
first.

TraverseDB walks the graph formed by reference-typed attribute values,
starting from a root entity, in breadth-first or depth-first order,
following either outgoing references (the entity's own ref-typed
attributes) or incoming references (looked up via the VEAT index, which
places values — including references — at its first level). Each entity
is visited at most once; a reference to a nonexistent entity is skipped
rather than treated as an error.

# See also

  - pkg/storage for Snapshot and Index
  - pkg/conn for the History a caller walks EvolutionOf against
*/
package graph
