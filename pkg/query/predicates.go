package query

import "github.com/epochdb/epoch/pkg/types"

// GT builds a binary predicate term "(> var lit)" or "(> lit var)" via
// side, true when the left operand is strictly greater than the right one.
func GT(v string, side types.Side, lit types.Value) types.Term {
	return types.BinaryTerm(v, types.BinaryPred{
		Name: "gt",
		Side: side,
		Lit:  lit,
		Fn: func(bound, l types.Value) bool {
			if side == types.SideRight {
				bound, l = l, bound
			}
			return compareNumeric(bound, l) > 0
		},
	})
}

// LT builds a binary predicate term "(< var lit)" or "(< lit var)" via
// side, true when the left operand is strictly less than the right one.
func LT(v string, side types.Side, lit types.Value) types.Term {
	return types.BinaryTerm(v, types.BinaryPred{
		Name: "lt",
		Side: side,
		Lit:  lit,
		Fn: func(bound, l types.Value) bool {
			if side == types.SideRight {
				bound, l = l, bound
			}
			return compareNumeric(bound, l) < 0
		},
	})
}

// EQ builds a binary predicate term, true when the bound operand equals
// lit. Equivalent to a literal term when the literal side is known at
// clause-construction time, but usable when the caller wants an explicit
// predicate name for logging or introspection.
func EQ(v string, side types.Side, lit types.Value) types.Term {
	return types.BinaryTerm(v, types.BinaryPred{
		Name: "eq",
		Side: side,
		Lit:  lit,
		Fn: func(bound, l types.Value) bool {
			return bound.Equal(l)
		},
	})
}

// compareNumeric orders two scalar values, promoting Int to Real when the
// kinds differ. Comparing incompatible kinds (e.g. Text to Int) returns 0,
// which a strict predicate like GT or LT always treats as false.
func compareNumeric(a, b types.Value) int {
	af, aok := numeric(a)
	bf, bok := numeric(b)
	if !aok || !bok {
		return 0
	}
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

func numeric(v types.Value) (float64, bool) {
	switch v.Kind {
	case types.KindInt:
		return float64(v.Int), true
	case types.KindReal:
		return v.Real, true
	default:
		return 0, false
	}
}
