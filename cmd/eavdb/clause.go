package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/epochdb/epoch/pkg/query"
	"github.com/epochdb/epoch/pkg/types"
)

// parseFindVar strips an optional leading '?' so --find accepts the same
// "?id"-style names the query language documents, as well as bare ones.
func parseFindVar(s string) string {
	return strings.TrimPrefix(s, "?")
}

// parseClause parses one --where flag value into a types.Clause. The
// expected shape is three whitespace-separated fields in entity/attribute/
// value order:
//
//	?id patient/city London         bind ?id where attribute patient/city = "London"
//	?id test/bp-systolic ?s         bind ?id and ?s
//	?id test/bp-systolic ?b>200     bind ?b where bp-systolic > 200 (var on left: (> ?b 200))
//	?id test/bp-systolic 200<?b     same reading as (< 200 ?b): 200 is less than ?b
//
// "_" anywhere means wildcard. A bare field with no leading '?' is a
// literal, typed according to its column (entity and attribute literals are
// always refs/text; value literals are sniffed as number, bool or text).
func parseClause(s string) (types.Clause, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return types.Clause{}, fmt.Errorf("clause %q: expected 3 fields (entity attribute value), got %d", s, len(fields))
	}
	e, err := parseTerm(0, fields[0])
	if err != nil {
		return types.Clause{}, fmt.Errorf("clause %q: %w", s, err)
	}
	a, err := parseTerm(1, fields[1])
	if err != nil {
		return types.Clause{}, fmt.Errorf("clause %q: %w", s, err)
	}
	v, err := parseTerm(2, fields[2])
	if err != nil {
		return types.Clause{}, fmt.Errorf("clause %q: %w", s, err)
	}
	return types.Clause{E: e, A: a, V: v}, nil
}

func parseTerm(col int, field string) (types.Term, error) {
	if field == types.Wildcard {
		return types.VarTerm(types.Wildcard), nil
	}
	if op, left, right, ok := splitOperator(field); ok {
		return buildBinaryTerm(col, op, left, right)
	}
	if strings.HasPrefix(field, "?") {
		return types.VarTerm(field[1:]), nil
	}
	lit, err := literalForColumn(col, field)
	if err != nil {
		return types.Term{}, err
	}
	return types.LitTerm(lit), nil
}

// splitOperator looks for a top-level >, < or = splitting the field into a
// left and right operand, exactly one of which must be a "?var".
func splitOperator(field string) (op string, left, right string, ok bool) {
	for _, candidate := range []string{">", "<", "="} {
		if i := strings.Index(field, candidate); i > 0 {
			return candidate, field[:i], field[i+1:], true
		}
	}
	return "", "", "", false
}

func buildBinaryTerm(col int, op, left, right string) (types.Term, error) {
	leftVar := strings.HasPrefix(left, "?")
	rightVar := strings.HasPrefix(right, "?")
	if leftVar == rightVar {
		return types.Term{}, fmt.Errorf("binary predicate %q%s%q: exactly one side must be a ?var", left, op, right)
	}

	var varName, litText string
	var side types.Side
	if leftVar {
		varName, litText, side = left[1:], right, types.SideLeft
	} else {
		varName, litText, side = right[1:], left, types.SideRight
	}

	lit, err := literalForColumn(col, litText)
	if err != nil {
		return types.Term{}, err
	}

	switch op {
	case ">":
		return query.GT(varName, side, lit), nil
	case "<":
		return query.LT(varName, side, lit), nil
	default:
		return query.EQ(varName, side, lit), nil
	}
}

// literalForColumn types a bare literal token according to its clause
// position: entity and attribute literals are always refs and names, value
// literals are sniffed as a number, a bool, an "@ref", or else text.
func literalForColumn(col int, s string) (types.Value, error) {
	switch col {
	case 0:
		return types.Ref(s), nil
	case 1:
		return types.Text(s), nil
	default:
		return sniffValue(s), nil
	}
}

func sniffValue(s string) types.Value {
	if strings.HasPrefix(s, "@") {
		return types.Ref(strings.TrimPrefix(s, "@"))
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return types.Bool(b)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return types.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return types.Real(f)
	}
	return types.Text(s)
}
