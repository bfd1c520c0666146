package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/txn"
	"github.com/epochdb/epoch/pkg/types"
)

func buildReferenceGraph(t *testing.T) *storage.Snapshot {
	t.Helper()
	s := storage.Empty()

	pat2 := types.MakeEntity("pat2")
	t3 := types.MakeEntity("t3-pat2")
	t3.Attrs["test/patient"] = types.MakeAttr("test/patient", types.Ref("pat2"), types.TypeRef, types.AttrOptions{Indexed: true})
	t4 := types.MakeEntity("t4-pat2")
	t4.Attrs["test/patient"] = types.MakeAttr("test/patient", types.Ref("pat2"), types.TypeRef, types.AttrOptions{Indexed: true})

	s, err := txn.Transact(s, txn.Add(pat2), txn.Add(t3), txn.Add(t4))
	require.NoError(t, err)
	return s
}

func TestTraverseDBIncomingBFSVisitsRootThenReferencers(t *testing.T) {
	s := buildReferenceGraph(t)

	order, err := TraverseDB(context.Background(), s, "pat2", BFS, Incoming)
	require.NoError(t, err)
	require.Len(t, order, 3)
	assert.Equal(t, "pat2", order[0].ID)

	ids := map[string]bool{}
	for _, e := range order[1:] {
		ids[e.ID] = true
	}
	assert.True(t, ids["t3-pat2"])
	assert.True(t, ids["t4-pat2"])
}

func TestTraverseDBOutgoingFollowsReferences(t *testing.T) {
	s := buildReferenceGraph(t)

	order, err := TraverseDB(context.Background(), s, "t3-pat2", DFS, Outgoing)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, "t3-pat2", order[0].ID)
	assert.Equal(t, "pat2", order[1].ID)
}

func TestTraverseDBSkipsDanglingReference(t *testing.T) {
	s := storage.Empty()
	e := types.MakeEntity("orphan")
	e.Attrs["ref"] = types.MakeAttr("ref", types.Ref("nonexistent"), types.TypeRef, types.AttrOptions{Indexed: true})
	s, err := txn.Transact(s, txn.Add(e))
	require.NoError(t, err)

	order, err := TraverseDB(context.Background(), s, "orphan", BFS, Outgoing)
	require.NoError(t, err)
	assert.Len(t, order, 1)
}

func TestTraverseDBRejectsUnknownStrategyAndDirection(t *testing.T) {
	s := buildReferenceGraph(t)

	_, err := TraverseDB(context.Background(), s, "pat2", "sideways", Incoming)
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = TraverseDB(context.Background(), s, "pat2", BFS, "diagonal")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestTraverseDBIsRestartable(t *testing.T) {
	s := buildReferenceGraph(t)

	first, err := TraverseDB(context.Background(), s, "pat2", BFS, Incoming)
	require.NoError(t, err)
	second, err := TraverseDB(context.Background(), s, "pat2", BFS, Incoming)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}
