package query

import (
	"fmt"

	"github.com/epochdb/epoch/pkg/types"
)

// Predicate tests a single bound value during index filtering. A
// predicate that panics is treated as returning false, never as a query
// failure — compileTerm wraps every user-supplied function so a type
// error on one leaf never aborts the whole query.
type Predicate func(types.Value) bool

// compiledClause is a clause's three predicates in (E, A, V) order
// alongside the variable name each position captures, or "" if the
// position is a wildcard or literal.
type compiledClause struct {
	Preds [3]Predicate
	Vars  [3]string
}

func alwaysTrue(types.Value) bool { return true }

// compileClause turns a raw types.Clause into its three predicates and
// their captured variable names, in (E, A, V) order.
func compileClause(c types.Clause) (compiledClause, error) {
	terms := [3]types.Term{c.E, c.A, c.V}
	var cc compiledClause
	for i, t := range terms {
		p, name, err := compileTerm(t)
		if err != nil {
			return compiledClause{}, fmt.Errorf("clause position %d: %w", i, err)
		}
		cc.Preds[i] = p
		cc.Vars[i] = name
	}
	return cc, nil
}

func compileTerm(t types.Term) (Predicate, string, error) {
	switch t.Kind {
	case types.TermVar:
		if t.Var == "" || t.Var == types.Wildcard {
			return nil, "", fmt.Errorf("variable term with no name: %w", ErrMalformedClause)
		}
		return alwaysTrue, t.Var, nil

	case types.TermWild:
		return alwaysTrue, "", nil

	case types.TermLit:
		lit := t.Lit
		return func(v types.Value) bool { return v.Equal(lit) }, "", nil

	case types.TermUnary:
		if t.Unary == nil || t.Unary.Fn == nil {
			return nil, "", fmt.Errorf("unary predicate with no function: %w", ErrMalformedClause)
		}
		fn := t.Unary.Fn
		return safeUnary(fn), t.VarName(), nil

	case types.TermBinary:
		if t.Binary == nil || t.Binary.Fn == nil {
			return nil, "", fmt.Errorf("binary predicate with no function: %w", ErrMalformedClause)
		}
		fn, lit := t.Binary.Fn, t.Binary.Lit
		return safeBinary(fn, lit), t.VarName(), nil

	default:
		return nil, "", fmt.Errorf("unrecognized term kind %q: %w", t.Kind, ErrMalformedClause)
	}
}

// safeUnary and safeBinary guard against a predicate panicking on a value
// of the wrong shape (e.g. a numeric comparison applied to a Text value):
// a panic is swallowed and the leaf is simply excluded, matching the
// executor's "predicate errors are treated as false" policy.
func safeUnary(fn func(types.Value) bool) Predicate {
	return func(v types.Value) (ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		return fn(v)
	}
}

func safeBinary(fn func(bound, lit types.Value) bool, lit types.Value) Predicate {
	return func(v types.Value) (ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		return fn(v, lit)
	}
}

// selectJoinColumn picks the one EAV column (0=E, 1=A, 2=V) that every
// clause binds to the same variable name, so the executor can walk each
// clause's index and join on that column's value. It is the first column,
// in E/A/V order, on which all clauses agree; a clause with no variables
// at all can never agree with anything and makes the query unsupported.
func selectJoinColumn(clauses []compiledClause) (col int, varName string, err error) {
	for c := 0; c < 3; c++ {
		name := clauses[0].Vars[c]
		if name == "" {
			continue
		}
		agree := true
		for _, cc := range clauses[1:] {
			if cc.Vars[c] != name {
				agree = false
				break
			}
		}
		if agree {
			return c, name, nil
		}
	}
	return 0, "", fmt.Errorf("no shared variable across all clauses: %w", ErrUnsupportedQuery)
}
