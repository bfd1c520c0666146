package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epochdb/epoch/pkg/types"
)

func TestEmptySnapshot(t *testing.T) {
	s := Empty()
	assert.Equal(t, 0, s.Entities.Len())
	assert.EqualValues(t, 0, s.CurrTime)
}

func TestSnapshotWithFactIsIsolatedFromPredecessor(t *testing.T) {
	s0 := Empty()
	s1 := s0.WithFact(types.Ref("e1"), types.Text("name"), types.Text("ada"))

	var s0Count, s1Count int
	s0.EAVTIdx.All(func(types.Value, types.Value, types.Value) bool { s0Count++; return true })
	s1.EAVTIdx.All(func(types.Value, types.Value, types.Value) bool { s1Count++; return true })

	assert.Equal(t, 0, s0Count, "the predecessor snapshot must be unaffected by a later WithFact")
	assert.Equal(t, 1, s1Count)
}

func TestSnapshotWithoutFactRemovesFromAllThreeIndices(t *testing.T) {
	s := Empty().WithFact(types.Ref("e1"), types.Text("name"), types.Text("ada"))
	s = s.WithoutFact(types.Ref("e1"), types.Text("name"), types.Text("ada"))

	var eavt, avet, veat int
	s.EAVTIdx.All(func(types.Value, types.Value, types.Value) bool { eavt++; return true })
	s.AVETIdx.All(func(types.Value, types.Value, types.Value) bool { avet++; return true })
	s.VEATIdx.All(func(types.Value, types.Value, types.Value) bool { veat++; return true })

	assert.Zero(t, eavt)
	assert.Zero(t, avet)
	assert.Zero(t, veat)
}

func TestSnapshotAtTimeOnlyChangesCurrTime(t *testing.T) {
	s0 := Empty().WithFact(types.Ref("e1"), types.Text("name"), types.Text("ada"))
	s1 := s0.AtTime(7)

	assert.EqualValues(t, 0, s0.CurrTime)
	assert.EqualValues(t, 7, s1.CurrTime)
	assert.Same(t, s0.Entities, s1.Entities)
	assert.Same(t, s0.EAVTIdx, s1.EAVTIdx)
}

func TestSnapshotWithEntitiesReplacesOnlyEntities(t *testing.T) {
	s0 := Empty()
	es := NewEntityStore().Put(types.MakeEntity("e1"))
	s1 := s0.WithEntities(es)

	assert.Equal(t, 1, s1.Entities.Len())
	assert.Same(t, s0.EAVTIdx, s1.EAVTIdx)
}

func TestSnapshotFactsWalksEntityAttributes(t *testing.T) {
	e := types.MakeEntity("e1")
	e.Attrs["name"] = types.MakeAttr("name", types.Text("ada"), types.TypeString, types.AttrOptions{})
	e.Attrs["tags"] = types.MakeAttr("tags", types.NewSet(types.Text("a"), types.Text("b")), types.TypeString, types.AttrOptions{Cardinality: types.CardinalityMany})

	s := Empty().WithEntities(NewEntityStore().Put(e))

	var values []string
	s.Facts(func(ent, attr, v types.Value) bool {
		values = append(values, attr.String()+"="+v.String())
		return true
	})
	assert.ElementsMatch(t, []string{"name=ada", "tags=a", "tags=b"}, values)
}
