package storage

import (
	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/epochdb/epoch/pkg/types"
)

// EntityStore is the present-state entity-id -> Entity mapping carried by a
// Snapshot (spec's "Storage"). It is an immutable, persistent structure:
// every mutating method returns a new EntityStore sharing untouched
// substructure with the receiver.
type EntityStore struct {
	tree *iradix.Tree
}

// NewEntityStore returns an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{tree: iradix.New()}
}

// Get returns the entity for id, or (nil, false) if it is not present.
func (s *EntityStore) Get(id string) (*types.Entity, bool) {
	v, ok := s.tree.Get([]byte(id))
	if !ok {
		return nil, false
	}
	return v.(*types.Entity), true
}

// Put returns a new store with id mapped to e, replacing any prior entity.
func (s *EntityStore) Put(e *types.Entity) *EntityStore {
	tree, _, _ := s.tree.Insert([]byte(e.ID), e)
	return &EntityStore{tree: tree}
}

// Delete returns a new store with id absent.
func (s *EntityStore) Delete(id string) *EntityStore {
	tree, _, ok := s.tree.Delete([]byte(id))
	if !ok {
		return s
	}
	return &EntityStore{tree: tree}
}

// Len returns the number of live entities.
func (s *EntityStore) Len() int {
	return s.tree.Len()
}

// Each calls fn for every entity in key order, stopping early if fn
// returns false.
func (s *EntityStore) Each(fn func(*types.Entity) bool) {
	it := s.tree.Root().Iterator()
	for {
		_, v, ok := it.Next()
		if !ok {
			return
		}
		if !fn(v.(*types.Entity)) {
			return
		}
	}
}
