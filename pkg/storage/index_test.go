package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epochdb/epoch/pkg/types"
)

func TestIndexInsertAndFacts(t *testing.T) {
	ix := NewIndex(EAVT)
	ix = ix.Insert(types.Ref("e1"), types.Text("name"), types.Text("ada"))
	ix = ix.Insert(types.Ref("e1"), types.Text("age"), types.Int(36))
	ix = ix.Insert(types.Ref("e2"), types.Text("name"), types.Text("grace"))

	var got []string
	ix.All(func(e, a, v types.Value) bool {
		got = append(got, e.String()+"/"+a.String()+"/"+v.String())
		return true
	})
	assert.ElementsMatch(t, []string{"e1/name/ada", "e1/age/36", "e2/name/grace"}, got)
}

func TestIndexInsertImmutable(t *testing.T) {
	before := NewIndex(AVET)
	after := before.Insert(types.Ref("e1"), types.Text("name"), types.Text("ada"))

	var beforeFacts, afterFacts int
	before.All(func(e, a, v types.Value) bool { beforeFacts++; return true })
	after.All(func(e, a, v types.Value) bool { afterFacts++; return true })

	assert.Equal(t, 0, beforeFacts, "inserting into a derived index must not mutate the original")
	assert.Equal(t, 1, afterFacts)
}

func TestIndexRemove(t *testing.T) {
	ix := NewIndex(EAVT)
	ix = ix.Insert(types.Ref("e1"), types.Text("name"), types.Text("ada"))
	ix = ix.Insert(types.Ref("e1"), types.Text("age"), types.Int(36))

	removed := ix.Remove(types.Ref("e1"), types.Text("name"), types.Text("ada"))

	var got []string
	removed.All(func(e, a, v types.Value) bool {
		got = append(got, a.String())
		return true
	})
	assert.Equal(t, []string{"age"}, got)
}

func TestIndexRemoveCleansUpEmptyLevels(t *testing.T) {
	ix := NewIndex(AVET)
	ix = ix.Insert(types.Ref("e1"), types.Text("name"), types.Text("ada"))
	ix = ix.Remove(types.Ref("e1"), types.Text("name"), types.Text("ada"))

	var l1count int
	ix.Level1(func(types.Value) bool { l1count++; return true })
	assert.Equal(t, 0, l1count, "removing the last fact under a key must not leave an empty entry behind")
}

func TestIndexRemoveMissingIsNoop(t *testing.T) {
	ix := NewIndex(EAVT)
	ix = ix.Insert(types.Ref("e1"), types.Text("name"), types.Text("ada"))
	same := ix.Remove(types.Ref("e9"), types.Text("missing"), types.Text("x"))

	var count int
	same.All(func(types.Value, types.Value, types.Value) bool { count++; return true })
	assert.Equal(t, 1, count)
}

func TestAVETPermutationGroupsByAttributeThenValue(t *testing.T) {
	ix := NewIndex(AVET)
	ix = ix.Insert(types.Ref("e1"), types.Text("status"), types.Text("active"))
	ix = ix.Insert(types.Ref("e2"), types.Text("status"), types.Text("active"))
	ix = ix.Insert(types.Ref("e3"), types.Text("status"), types.Text("retired"))

	var entities []string
	ix.Facts(types.Text("status"), types.Text("active"), func(e, a, v types.Value) bool {
		entities = append(entities, e.Ref)
		return true
	})
	assert.ElementsMatch(t, []string{"e1", "e2"}, entities)
}

func TestVEATPermutationFindsReferencingEntities(t *testing.T) {
	ix := NewIndex(VEAT)
	ix = ix.Insert(types.Ref("order-1"), types.Text("customer"), types.Ref("cust-1"))
	ix = ix.Insert(types.Ref("order-2"), types.Text("customer"), types.Ref("cust-1"))

	var orders []string
	ix.Facts(types.Ref("cust-1"), types.Ref("order-1"), func(e, a, v types.Value) bool {
		orders = append(orders, e.Ref)
		return true
	})
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0])
}
