package storage

import "github.com/epochdb/epoch/pkg/types"

// EntityAt returns the entity id as it stands in snapshot s.
func EntityAt(s *Snapshot, id string) (*types.Entity, bool) {
	return s.Entities.Get(id)
}

// AttrAt returns attribute attrName of entity id as it stands in s.
func AttrAt(s *Snapshot, id, attrName string) (*types.Attribute, bool) {
	return s.EntityAttr(id, attrName)
}

// ValueOfAt returns the value of attribute attrName of entity id in s.
func ValueOfAt(s *Snapshot, id, attrName string) (types.Value, bool) {
	attr, ok := s.EntityAttr(id, attrName)
	if !ok {
		return types.Value{}, false
	}
	return attr.Value, true
}
