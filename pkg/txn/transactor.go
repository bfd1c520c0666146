// Package txn implements the transactor: the compound operations that turn
// one Snapshot into the next. Every operation here is a pure function of
// its input Snapshot — none of them touch a Connection or a clock; the next
// snapshot's time is the input's CurrTime plus one. The conn package
// supplies the atomic compare-and-set retry loop around Transact.
package txn

import (
	"fmt"

	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/types"
)

// OpKind names the three ways Update can combine a new value with an
// attribute's existing one.
type OpKind string

const (
	OpAdd    OpKind = "add"
	OpRemove OpKind = "remove"
	OpReset  OpKind = "reset-to"
)

// Op is one staged edit, curried over everything except the snapshot it
// applies to and the logical time the enclosing Transact has committed
// to. Build one with Add, Update or Remove and pass it to Transact.
type Op func(s *storage.Snapshot, newTime int64) (*storage.Snapshot, error)

// Add stages the addition of a brand new entity. It fails with
// ErrDuplicateEntity if e.ID is already present in the snapshot.
func Add(e *types.Entity) Op {
	return func(s *storage.Snapshot, newTime int64) (*storage.Snapshot, error) {
		if _, ok := s.Entities.Get(e.ID); ok {
			return nil, fmt.Errorf("add %s: %w", e.ID, ErrDuplicateEntity)
		}

		stamped := e.Clone()
		for name, attr := range e.Attrs {
			a := attr.Clone()
			a.PrevTS = types.NoTimestamp
			a.CurrTS = newTime
			stamped.Attrs[name] = a
		}

		next := s.WithEntities(s.Entities.Put(stamped))
		for name, attr := range stamped.Attrs {
			if !attr.Indexed {
				continue
			}
			for _, v := range attr.Value.Members() {
				next = next.WithFact(types.Ref(e.ID), types.Text(name), v)
			}
		}
		return next, nil
	}
}

// AddEntities stages the addition of several new entities as one unit: if
// any of them duplicates an existing id, none of them are added.
func AddEntities(entities ...*types.Entity) Op {
	return func(s *storage.Snapshot, newTime int64) (*storage.Snapshot, error) {
		cur := s
		for _, e := range entities {
			next, err := Add(e)(cur, newTime)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		return cur, nil
	}
}

// Update stages an edit to one attribute of an existing entity, combining
// value with the attribute's current value according to kind. It fails
// with ErrUnknownEntity, ErrUnknownAttribute or ErrTypeMismatch.
func Update(id, attrName string, kind OpKind, value types.Value) Op {
	return func(s *storage.Snapshot, newTime int64) (*storage.Snapshot, error) {
		e, ok := s.Entities.Get(id)
		if !ok {
			return nil, fmt.Errorf("update %s/%s: %w", id, attrName, ErrUnknownEntity)
		}
		attr, ok := e.Attrs[attrName]
		if !ok {
			return nil, fmt.Errorf("update %s/%s: %w", id, attrName, ErrUnknownAttribute)
		}
		if !typeMatches(attr.Type, value) {
			return nil, fmt.Errorf("update %s/%s: value %q: %w", id, attrName, value, ErrTypeMismatch)
		}

		oldValue := attr.Value
		newValue := combine(attr, kind, value)

		newEntity := e.Clone()
		next := attr.Clone()
		next.PrevTS = attr.CurrTS
		next.CurrTS = newTime
		next.Value = newValue
		newEntity.Attrs[attrName] = next

		out := s.WithEntities(s.Entities.Put(newEntity))
		if !attr.Indexed {
			return out, nil
		}

		eid := types.Ref(id)
		a := types.Text(attrName)
		for _, v := range oldValue.Members() {
			out = out.WithoutFact(eid, a, v)
		}
		for _, v := range newValue.Members() {
			out = out.WithFact(eid, a, v)
		}
		return out, nil
	}
}

// combine applies kind to the attribute's current value and the supplied
// value, honoring cardinality: single-cardinality collapses add and
// reset-to to plain replacement, and treats remove as reset to the type's
// zero value (see the design notes on this open question).
func combine(attr *types.Attribute, kind OpKind, value types.Value) types.Value {
	if attr.Cardinality == types.CardinalityOne {
		switch kind {
		case OpRemove:
			return types.Zero(attr.Type)
		default: // OpAdd, OpReset
			return value
		}
	}

	switch kind {
	case OpAdd:
		return attr.Value.Union(value)
	case OpRemove:
		return attr.Value.Subtract(value)
	default: // OpReset
		if value.Kind == types.KindSet {
			return value
		}
		return types.NewSet(value)
	}
}

// typeMatches reports whether every member of v is representable as t.
func typeMatches(t types.AttrType, v types.Value) bool {
	for _, m := range v.Members() {
		switch t {
		case types.TypeString:
			if m.Kind != types.KindText {
				return false
			}
		case types.TypeNumber:
			if m.Kind != types.KindInt && m.Kind != types.KindReal {
				return false
			}
		case types.TypeBoolean:
			if m.Kind != types.KindBool {
				return false
			}
		case types.TypeRef:
			if m.Kind != types.KindRef {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Remove stages the deletion of an entity: it disappears from storage and
// every path it contributed is removed from all three indices. References
// other entities hold to id are left dangling, per the storage model's
// invariants.
func Remove(id string) Op {
	return func(s *storage.Snapshot, newTime int64) (*storage.Snapshot, error) {
		e, ok := s.Entities.Get(id)
		if !ok {
			return nil, fmt.Errorf("remove %s: %w", id, ErrUnknownEntity)
		}

		out := s.WithEntities(s.Entities.Delete(id))
		eid := types.Ref(id)
		for name, attr := range e.Attrs {
			if !attr.Indexed {
				continue
			}
			a := types.Text(name)
			for _, v := range attr.Value.Members() {
				out = out.WithoutFact(eid, a, v)
			}
		}
		return out, nil
	}
}

// Transact applies ops in order against s, as if they were a single
// operation: if any op fails, s is returned unchanged and the error names
// the first failure. On success the result is stamped with the next
// logical time (s.CurrTime + 1) exactly once, regardless of how many ops
// ran.
func Transact(s *storage.Snapshot, ops ...Op) (*storage.Snapshot, error) {
	newTime := s.CurrTime + 1
	cur := s
	for _, op := range ops {
		next, err := op(cur, newTime)
		if err != nil {
			return s, err
		}
		cur = next
	}
	return cur.AtTime(newTime), nil
}
