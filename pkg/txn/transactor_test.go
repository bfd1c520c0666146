package txn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/types"
)

func newPatient(id, city string, symptoms ...string) *types.Entity {
	e := types.MakeEntity(id)
	e.Attrs["patient/city"] = types.MakeAttr("patient/city", types.Text(city), types.TypeString, types.AttrOptions{Indexed: true})
	ss := make([]types.Value, len(symptoms))
	for i, s := range symptoms {
		ss[i] = types.Text(s)
	}
	e.Attrs["patient/symptoms"] = types.MakeAttr("patient/symptoms", types.NewSet(ss...), types.TypeString, types.AttrOptions{Indexed: true, Cardinality: types.CardinalityMany})
	return e
}

func TestAddEntity(t *testing.T) {
	s0 := storage.Empty()
	s1, err := Transact(s0, Add(newPatient("pat1", "London", "fever", "cough")))
	require.NoError(t, err)

	e, ok := s1.Entities.Get("pat1")
	require.True(t, ok)
	assert.Equal(t, "London", e.Attrs["patient/city"].Value.Text)
	assert.EqualValues(t, 1, e.Attrs["patient/city"].CurrTS)
	assert.EqualValues(t, types.NoTimestamp, e.Attrs["patient/city"].PrevTS)
	assert.EqualValues(t, 1, s1.CurrTime)

	var seen int
	s1.AVETIdx.Facts(types.Text("patient/city"), types.Text("London"), func(e, a, v types.Value) bool {
		seen++
		return true
	})
	assert.Equal(t, 1, seen)
}

func TestAddEntityDuplicateFails(t *testing.T) {
	s0 := storage.Empty()
	s1, err := Transact(s0, Add(newPatient("pat1", "London")))
	require.NoError(t, err)

	s2, err := Transact(s1, Add(newPatient("pat1", "Paris")))
	assert.ErrorIs(t, err, ErrDuplicateEntity)
	assert.Same(t, s1, s2, "a failed transact must return the original snapshot unchanged")
}

func TestUpdateResetToReplacesMultiSet(t *testing.T) {
	s0 := storage.Empty()
	s1, _ := Transact(s0, Add(newPatient("pat1", "London", "fever", "cough")))

	s2, err := Transact(s1, Update("pat1", "patient/symptoms", OpReset, types.NewSet(types.Text("cold-sweat"), types.Text("sneeze"))))
	require.NoError(t, err)

	e, _ := s2.Entities.Get("pat1")
	assert.ElementsMatch(t, []string{"cold-sweat", "sneeze"}, valueStrings(e.Attrs["patient/symptoms"].Value))
	assert.EqualValues(t, 1, e.Attrs["patient/symptoms"].PrevTS)
	assert.EqualValues(t, 2, e.Attrs["patient/symptoms"].CurrTS)
}

func TestUpdateAddUnionsIntoMultiSet(t *testing.T) {
	s0 := storage.Empty()
	s1, _ := Transact(s0, Add(newPatient("pat1", "London", "fever")))

	s2, err := Transact(s1, Update("pat1", "patient/symptoms", OpAdd, types.Text("cough")))
	require.NoError(t, err)

	e, _ := s2.Entities.Get("pat1")
	assert.ElementsMatch(t, []string{"fever", "cough"}, valueStrings(e.Attrs["patient/symptoms"].Value))
}

func TestUpdateRemoveOnSingleCardinalityResetsToZero(t *testing.T) {
	s0 := storage.Empty()
	s1, _ := Transact(s0, Add(newPatient("pat1", "London")))

	s2, err := Transact(s1, Update("pat1", "patient/city", OpRemove, types.Text("London")))
	require.NoError(t, err)

	e, _ := s2.Entities.Get("pat1")
	assert.Equal(t, types.Zero(types.TypeString), e.Attrs["patient/city"].Value)
}

func TestUpdateRemoveAbsentMemberIsNoop(t *testing.T) {
	s0 := storage.Empty()
	s1, _ := Transact(s0, Add(newPatient("pat1", "London", "fever")))

	s2, err := Transact(s1, Update("pat1", "patient/symptoms", OpRemove, types.Text("nonexistent")))
	require.NoError(t, err)

	e, _ := s2.Entities.Get("pat1")
	assert.ElementsMatch(t, []string{"fever"}, valueStrings(e.Attrs["patient/symptoms"].Value))
}

func TestUpdateUnknownEntity(t *testing.T) {
	s0 := storage.Empty()
	_, err := Transact(s0, Update("ghost", "x", OpReset, types.Int(1)))
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestUpdateUnknownAttribute(t *testing.T) {
	s0 := storage.Empty()
	s1, _ := Transact(s0, Add(newPatient("pat1", "London")))
	_, err := Transact(s1, Update("pat1", "nope", OpReset, types.Int(1)))
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestUpdateTypeMismatch(t *testing.T) {
	s0 := storage.Empty()
	s1, _ := Transact(s0, Add(newPatient("pat1", "London")))
	_, err := Transact(s1, Update("pat1", "patient/city", OpReset, types.Int(42)))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestRemoveEntityRestoresEmptyIndices(t *testing.T) {
	s0 := storage.Empty()
	s1, _ := Transact(s0, Add(newPatient("pat1", "London", "fever", "cough")))
	s2, err := Transact(s1, Remove("pat1"))
	require.NoError(t, err)

	_, ok := s2.Entities.Get("pat1")
	assert.False(t, ok)

	var facts int
	s2.EAVTIdx.All(func(types.Value, types.Value, types.Value) bool { facts++; return true })
	assert.Zero(t, facts)
}

func TestRemoveUnknownEntityFails(t *testing.T) {
	s0 := storage.Empty()
	_, err := Transact(s0, Remove("ghost"))
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestTransactAtomicAcrossMultipleOps(t *testing.T) {
	s0 := storage.Empty()
	s1, err := Transact(s0,
		Add(newPatient("pat1", "London", "fever")),
		Add(newPatient("pat1", "Paris")), // duplicate: must abort the whole transact
	)
	assert.ErrorIs(t, err, ErrDuplicateEntity)
	_, ok := s1.Entities.Get("pat1")
	assert.False(t, ok, "no entity from the aborted transact should be visible")
}

func TestTransactBumpsTimeOnceRegardlessOfOpCount(t *testing.T) {
	s0 := storage.Empty()
	s1, err := Transact(s0,
		Add(newPatient("pat1", "London")),
		Add(newPatient("pat2", "Paris")),
	)
	require.NoError(t, err)
	assert.EqualValues(t, 1, s1.CurrTime)
}

func valueStrings(v types.Value) []string {
	members := v.Members()
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.String()
	}
	return out
}
