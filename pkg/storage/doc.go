/*
Package storage provides the in-memory, immutable state a Connection's
history is built from: an entity map and the three permutation indices
over every fact it carries, bundled into a single Snapshot value.

Unlike a durable store, nothing here ever touches disk and nothing here is
ever mutated once built. Every operation is persistent in the functional
sense: it returns a new value that shares whatever substructure it did not
touch with the value it started from, so that an older Snapshot remains
valid, complete, and unaffected by any later one.

# Architecture

	┌───────────────────────── SNAPSHOT ─────────────────────────────┐
	│                                                                  │
	│  EntityStore          EAVTIdx          AVETIdx        VEATIdx   │
	│  id -> *Entity        e->a->{v}        a->v->{e}      v->e->{a} │
	│  (iradix.Tree)        (Index)          (Index)        (Index)   │
	│                                                                  │
	│  CurrTime int64                                                  │
	└──────────────────────────────────────────────────────────────┘

EntityStore (store.go) is a thin wrapper around a
github.com/hashicorp/go-immutable-radix Tree keyed by entity id, holding
the present-state *types.Entity for each live entity. It is what a
Transactor consults to read an entity's current attributes before
building the next version.

Index (index.go) is one of the three fixed fact orderings described by a
Permutation: EAVT, AVET, VEAT. Internally each Index nests three iradix
trees — level-1 key to level-1 node, level-1 node's level-2 tree to
level-2 node, level-2 node's leaf tree holding the level-3 values — so
that Insert and Remove only rebuild the path from root to the changed
leaf, exactly as the underlying radix tree already guarantees. Insert and
Remove are the only mutators; both return a new *Index.

Snapshot (snapshot.go) bundles an EntityStore with all three Index values
and a logical CurrTime. A Connection never edits a Snapshot: every
Transactor operation builds the next Snapshot from the current one via
WithFact / WithoutFact / WithEntities / AtTime and hands it to the
Connection to commit.

# Why go-immutable-radix

The index needs structural sharing across snapshots without copying
entire trees on every write — exactly the property a persistent radix
tree provides, and it was already present in this module's dependency
graph. Building a bespoke HAMT would duplicate what the library already
does well; using it for entity storage too keeps the nesting pattern in
index.go and the top-level map in store.go consistent.

# See also

  - pkg/types for the Value/Entity/Attribute model these structures hold
  - pkg/txn for the Transactor that builds each next Snapshot
  - pkg/conn for the Connection that orders and commits Snapshots
  - pkg/query for the executor that walks indices to answer a Query
*/
package storage
