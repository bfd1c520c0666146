package storage

import "github.com/epochdb/epoch/pkg/types"

// Snapshot is a single immutable point-in-time view of the database (spec
// §3): the present set of entities plus the three permutation indices over
// every fact they carry, stamped with the logical time at which it was
// produced. A Connection's history is an ordered sequence of Snapshots; a
// Transactor never mutates one, it builds the next.
type Snapshot struct {
	Entities *EntityStore
	EAVTIdx  *Index
	AVETIdx  *Index
	VEATIdx  *Index
	CurrTime int64
}

// Empty returns the Snapshot a freshly opened Connection starts from: no
// entities, empty indices, time zero.
func Empty() *Snapshot {
	return &Snapshot{
		Entities: NewEntityStore(),
		EAVTIdx:  NewIndex(EAVT),
		AVETIdx:  NewIndex(AVET),
		VEATIdx:  NewIndex(VEAT),
		CurrTime: 0,
	}
}

// WithFact returns a new Snapshot with (e, a, v) present in all three
// indices. It does not touch Entities or CurrTime; callers compose this
// with EntityStore.Put and the timestamp bump they need.
func (s *Snapshot) WithFact(e, a, v types.Value) *Snapshot {
	return &Snapshot{
		Entities: s.Entities,
		EAVTIdx:  s.EAVTIdx.Insert(e, a, v),
		AVETIdx:  s.AVETIdx.Insert(e, a, v),
		VEATIdx:  s.VEATIdx.Insert(e, a, v),
		CurrTime: s.CurrTime,
	}
}

// WithoutFact returns a new Snapshot with (e, a, v) absent from all three
// indices.
func (s *Snapshot) WithoutFact(e, a, v types.Value) *Snapshot {
	return &Snapshot{
		Entities: s.Entities,
		EAVTIdx:  s.EAVTIdx.Remove(e, a, v),
		AVETIdx:  s.AVETIdx.Remove(e, a, v),
		VEATIdx:  s.VEATIdx.Remove(e, a, v),
		CurrTime: s.CurrTime,
	}
}

// WithEntities returns a new Snapshot with Entities replaced, all else
// held constant.
func (s *Snapshot) WithEntities(es *EntityStore) *Snapshot {
	return &Snapshot{
		Entities: es,
		EAVTIdx:  s.EAVTIdx,
		AVETIdx:  s.AVETIdx,
		VEATIdx:  s.VEATIdx,
		CurrTime: s.CurrTime,
	}
}

// AtTime returns a new Snapshot identical to s but stamped with t. The
// Transactor calls this once per committed Transact, never more than
// monotonically.
func (s *Snapshot) AtTime(t int64) *Snapshot {
	return &Snapshot{
		Entities: s.Entities,
		EAVTIdx:  s.EAVTIdx,
		AVETIdx:  s.AVETIdx,
		VEATIdx:  s.VEATIdx,
		CurrTime: t,
	}
}

// EntityAttr returns the named attribute of entity id as it stands in this
// snapshot, or false if either the entity or the attribute is absent.
func (s *Snapshot) EntityAttr(id, attrName string) (*types.Attribute, bool) {
	e, ok := s.Entities.Get(id)
	if !ok {
		return nil, false
	}
	attr, ok := e.Attrs[attrName]
	return attr, ok
}

// Facts calls fn with every (entity, attribute, value) fact held by the
// snapshot's entity map rather than the indices, so non-indexed attributes
// are included. It is a convenience used by tests; query execution always
// goes through the indices.
func (s *Snapshot) Facts(fn func(e, a, v types.Value) bool) {
	done := false
	s.Entities.Each(func(e *types.Entity) bool {
		for name, attr := range e.Attrs {
			for _, v := range attr.Value.Members() {
				if !fn(types.Ref(e.ID), types.Text(name), v) {
					done = true
					return false
				}
			}
		}
		return !done
	})
}
