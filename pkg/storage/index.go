package storage

import (
	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/epochdb/epoch/pkg/types"
)

// Permutation describes one of the three fixed orderings a fact can be
// indexed under: EAVT keyed entity-first, AVET attribute-first, VEAT
// value-first. FromEAV reorders a raw (entity, attribute, value) fact
// into this permutation's (level1, level2, level3) key order; ToEAV is its
// inverse, used to recover the original fact when walking the index.
type Permutation struct {
	Name    string
	FromEAV func(e, a, v types.Value) (l1, l2, l3 types.Value)
	ToEAV   func(l1, l2, l3 types.Value) (e, a, v types.Value)
}

// EAVT orders facts entity, then attribute, then value: the index a
// Transactor consults to list everything known about one entity.
var EAVT = Permutation{
	Name: "EAVT",
	FromEAV: func(e, a, v types.Value) (types.Value, types.Value, types.Value) {
		return e, a, v
	},
	ToEAV: func(l1, l2, l3 types.Value) (types.Value, types.Value, types.Value) {
		return l1, l2, l3
	},
}

// AVET orders facts attribute, then value, then entity: the index a query
// consults to find every entity holding a given attribute value.
var AVET = Permutation{
	Name: "AVET",
	FromEAV: func(e, a, v types.Value) (types.Value, types.Value, types.Value) {
		return a, v, e
	},
	ToEAV: func(l1, l2, l3 types.Value) (types.Value, types.Value, types.Value) {
		return l3, l1, l2
	},
}

// VEAT orders facts value, then entity, then attribute: the index a query
// consults to find every attribute through which a value is reachable,
// including following Ref values backward.
var VEAT = Permutation{
	Name: "VEAT",
	FromEAV: func(e, a, v types.Value) (types.Value, types.Value, types.Value) {
		return v, e, a
	},
	ToEAV: func(l1, l2, l3 types.Value) (types.Value, types.Value, types.Value) {
		return l2, l3, l1
	},
}

// level2Node is the level-2 entry stored in a level-1 tree: the level-2 key
// value alongside the persistent set of level-3 leaves under it.
type level2Node struct {
	key    types.Value
	leafs  *iradix.Tree // level3 HashKey() -> types.Value
}

// level1Node is the entry stored in the index's top-level tree: the
// level-1 key value alongside its nested level-2 tree.
type level1Node struct {
	key  types.Value
	tree *iradix.Tree // level2 HashKey() -> *level2Node
}

// Index is one persistent permutation of the fact set. Every mutating
// method returns a new Index sharing untouched substructure with the
// receiver, in the style of EntityStore.
type Index struct {
	Perm Permutation
	tree *iradix.Tree // level1 HashKey() -> *level1Node
}

// NewIndex returns an empty index for the given permutation.
func NewIndex(p Permutation) *Index {
	return &Index{Perm: p, tree: iradix.New()}
}

// Insert returns a new Index with the fact (e, a, v) present.
func (ix *Index) Insert(e, a, v types.Value) *Index {
	l1, l2, l3 := ix.Perm.FromEAV(e, a, v)
	l1k, l2k, l3k := []byte(l1.HashKey()), []byte(l2.HashKey()), l3.HashKey()

	var l2tree *iradix.Tree
	raw, ok := ix.tree.Get(l1k)
	if ok {
		l2tree = raw.(*level1Node).tree
	} else {
		l2tree = iradix.New()
	}

	var leafs *iradix.Tree
	raw2, ok := l2tree.Get(l2k)
	if ok {
		leafs = raw2.(*level2Node).leafs
	} else {
		leafs = iradix.New()
	}

	leafs, _, _ = leafs.Insert([]byte(l3k), l3)
	l2tree, _, _ = l2tree.Insert(l2k, &level2Node{key: l2, leafs: leafs})
	tree, _, _ := ix.tree.Insert(l1k, &level1Node{key: l1, tree: l2tree})
	return &Index{Perm: ix.Perm, tree: tree}
}

// Remove returns a new Index with the fact (e, a, v) absent, cleaning up
// any level-2 or level-1 entry left empty by the removal.
func (ix *Index) Remove(e, a, v types.Value) *Index {
	l1, l2, l3 := ix.Perm.FromEAV(e, a, v)
	l1k, l2k, l3k := []byte(l1.HashKey()), []byte(l2.HashKey()), l3.HashKey()

	raw, ok := ix.tree.Get(l1k)
	if !ok {
		return ix
	}
	l1n := raw.(*level1Node)

	raw2, ok := l1n.tree.Get(l2k)
	if !ok {
		return ix
	}
	l2n := raw2.(*level2Node)

	leafs, _, ok := l2n.leafs.Delete([]byte(l3k))
	if !ok {
		return ix
	}

	var l2tree *iradix.Tree
	if leafs.Len() == 0 {
		l2tree, _, _ = l1n.tree.Delete(l2k)
	} else {
		l2tree, _, _ = l1n.tree.Insert(l2k, &level2Node{key: l2, leafs: leafs})
	}

	var tree *iradix.Tree
	if l2tree.Len() == 0 {
		tree, _, _ = ix.tree.Delete(l1k)
	} else {
		tree, _, _ = ix.tree.Insert(l1k, &level1Node{key: l1, tree: l2tree})
	}
	return &Index{Perm: ix.Perm, tree: tree}
}

// Level1 calls fn with every level-1 key present, in HashKey order,
// stopping early if fn returns false.
func (ix *Index) Level1(fn func(types.Value) bool) {
	it := ix.tree.Root().Iterator()
	for {
		_, raw, ok := it.Next()
		if !ok {
			return
		}
		if !fn(raw.(*level1Node).key) {
			return
		}
	}
}

// Level2 calls fn with every level-2 key present under l1, in HashKey
// order, stopping early if fn returns false. It is a no-op if l1 is absent.
func (ix *Index) Level2(l1 types.Value, fn func(types.Value) bool) {
	raw, ok := ix.tree.Get([]byte(l1.HashKey()))
	if !ok {
		return
	}
	it := raw.(*level1Node).tree.Root().Iterator()
	for {
		_, raw2, ok := it.Next()
		if !ok {
			return
		}
		if !fn(raw2.(*level2Node).key) {
			return
		}
	}
}

// Leaves calls fn with every raw level-3 value under (l1, l2), in HashKey
// order, stopping early if fn returns false. Unlike Facts, the values are
// not reordered back to (e, a, v) — this is what the query executor walks
// so it can apply a clause's own, already-permuted predicates directly.
// It is a no-op if the (l1, l2) path is absent.
func (ix *Index) Leaves(l1, l2 types.Value, fn func(l3 types.Value) bool) {
	raw, ok := ix.tree.Get([]byte(l1.HashKey()))
	if !ok {
		return
	}
	raw2, ok := raw.(*level1Node).tree.Get([]byte(l2.HashKey()))
	if !ok {
		return
	}
	it := raw2.(*level2Node).leafs.Root().Iterator()
	for {
		_, l3raw, ok := it.Next()
		if !ok {
			return
		}
		if !fn(l3raw.(types.Value)) {
			return
		}
	}
}

// Facts calls fn with every fact (e, a, v), reconstructed via ToEAV, for
// every leaf under (l1, l2), stopping early if fn returns false. It is a
// no-op if the (l1, l2) path is absent.
func (ix *Index) Facts(l1, l2 types.Value, fn func(e, a, v types.Value) bool) {
	raw, ok := ix.tree.Get([]byte(l1.HashKey()))
	if !ok {
		return
	}
	raw2, ok := raw.(*level1Node).tree.Get([]byte(l2.HashKey()))
	if !ok {
		return
	}
	it := raw2.(*level2Node).leafs.Root().Iterator()
	for {
		_, l3raw, ok := it.Next()
		if !ok {
			return
		}
		l3 := l3raw.(types.Value)
		e, a, v := ix.Perm.ToEAV(l1, l2, l3)
		if !fn(e, a, v) {
			return
		}
	}
}

// All calls fn with every fact held by the index, in level1/level2/level3
// order, stopping early if fn returns false.
func (ix *Index) All(fn func(e, a, v types.Value) bool) {
	done := false
	ix.Level1(func(l1 types.Value) bool {
		ix.Level2(l1, func(l2 types.Value) bool {
			ix.Facts(l1, l2, func(e, a, v types.Value) bool {
				if !fn(e, a, v) {
					done = true
				}
				return !done
			})
			return !done
		})
		return !done
	})
}
