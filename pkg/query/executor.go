package query

import (
	"fmt"

	"github.com/epochdb/epoch/pkg/log"
	"github.com/epochdb/epoch/pkg/metrics"
	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/types"
)

// Row is one joined, bound result: variable name to the value it captured.
type Row map[string]types.Value

// columnPermutation returns the index a clause should be walked through to
// filter on column col (0=E, 1=A, 2=V): the permutation that places that
// column at its level-3 (leaf) position, so every leaf under a (l1, l2)
// path carries exactly the join candidates for one l1/l2 pair.
func columnPermutation(col int) storage.Permutation {
	switch col {
	case 0:
		return storage.AVET
	case 1:
		return storage.VEAT
	default:
		return storage.EAVT
	}
}

func indexFor(s *storage.Snapshot, perm storage.Permutation) *storage.Index {
	switch perm.Name {
	case storage.AVET.Name:
		return s.AVETIdx
	case storage.VEAT.Name:
		return s.VEATIdx
	default:
		return s.EAVTIdx
	}
}

// permutePreds reorders a clause's (E, A, V)-order predicates into the
// (level1, level2, level3) order the named permutation stores them in, so
// they can be applied directly while walking that index.
func permutePreds(permName string, p [3]Predicate) [3]Predicate {
	switch permName {
	case storage.AVET.Name:
		return [3]Predicate{p[1], p[2], p[0]}
	case storage.VEAT.Name:
		return [3]Predicate{p[2], p[0], p[1]}
	default:
		return p
	}
}

// Q executes a query against a snapshot: every clause is
// compiled to predicates over (E, A, V), one shared variable column is
// chosen to join on, each clause is filtered through the index that column
// is a leaf of, and the surviving per-clause bindings are joined on that
// column's value before being projected down to the requested Find list.
func Q(s *storage.Snapshot, query types.Query) ([]Row, error) {
	timer := metrics.NewTimer()
	rows, err := execute(s, query)
	timer.ObserveDuration(metrics.QueryDuration)
	if err == nil {
		metrics.QueryRowsReturned.Observe(float64(len(rows)))
	}
	return rows, err
}

func execute(s *storage.Snapshot, query types.Query) ([]Row, error) {
	if len(query.Where) == 0 {
		return nil, fmt.Errorf("query has no clauses: %w", ErrUnsupportedQuery)
	}

	logger := log.WithQuery(len(query.Where))

	compiled := make([]compiledClause, len(query.Where))
	for i, c := range query.Where {
		cc, err := compileClause(c)
		if err != nil {
			return nil, err
		}
		compiled[i] = cc
	}

	col, joinVar, err := selectJoinColumn(compiled)
	if err != nil {
		return nil, err
	}

	perm := columnPermutation(col)
	idx := indexFor(s, perm)

	perClause := make([]map[string][]Row, len(compiled))
	for i, cc := range compiled {
		filterTimer := metrics.NewTimer()
		m := filterClause(idx, perm, cc, col)
		filterTimer.ObserveDurationVec(metrics.QueryClauseFilterDuration, perm.Name)
		perClause[i] = m
	}

	keys := intersectKeys(perClause)

	var rows []Row
	for _, k := range keys {
		rows = append(rows, combine(perClause, k)...)
	}

	logger.Debug().Int("rows", len(rows)).Str("join_column", perm.Name).Msg("query joined")

	return project(rows, query.Find), nil
}

// filterClause walks idx through every (l1, l2) pair and every leaf under
// it, applying cc's predicates (reordered into the index's own level
// order), and returns a map from the joined value's HashKey to every
// partial row that survived, bound in the clause's original (E, A, V)
// variable names.
func filterClause(idx *storage.Index, perm storage.Permutation, cc compiledClause, joinCol int) map[string][]Row {
	preds := permutePreds(perm.Name, cc.Preds)
	out := make(map[string][]Row)

	idx.Level1(func(l1 types.Value) bool {
		if !preds[0](l1) {
			return true
		}
		idx.Level2(l1, func(l2 types.Value) bool {
			if !preds[1](l2) {
				return true
			}
			idx.Leaves(l1, l2, func(l3 types.Value) bool {
				if !preds[2](l3) {
					return true
				}
				e, a, v := perm.ToEAV(l1, l2, l3)
				row := bindRow(cc.Vars, e, a, v)
				key := [3]types.Value{e, a, v}[joinCol].HashKey()
				out[key] = append(out[key], row)
				return true
			})
			return true
		})
		return true
	})
	return out
}

func bindRow(vars [3]string, e, a, v types.Value) Row {
	vals := [3]types.Value{e, a, v}
	row := make(Row)
	for i, name := range vars {
		if name == "" {
			continue
		}
		row[name] = vals[i]
	}
	return row
}

// intersectKeys returns the hash keys present in every clause's map. The
// keys come from ranging over the first clause's map, so their order is
// not defined.
func intersectKeys(perClause []map[string][]Row) []string {
	if len(perClause) == 0 {
		return nil
	}
	var keys []string
	for k := range perClause[0] {
		inAll := true
		for _, m := range perClause[1:] {
			if _, ok := m[k]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			keys = append(keys, k)
		}
	}
	return keys
}

// combine returns the Cartesian product of one clause's partial rows per
// surviving key, across all clauses, merged into single rows.
func combine(perClause []map[string][]Row, key string) []Row {
	acc := []Row{{}}
	for _, m := range perClause {
		partials := m[key]
		var next []Row
		for _, base := range acc {
			for _, p := range partials {
				next = append(next, mergeRow(base, p))
			}
		}
		acc = next
	}
	return acc
}

// mergeRow combines two partial bindings. A variable bound identically by
// both (as the join variable always is) is kept once; the caller never
// produces conflicting bindings for the same name since all clauses were
// filtered against the same join key.
func mergeRow(a, b Row) Row {
	out := make(Row, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// project keeps only the variables named in find (a Row is a map, so it
// carries no order of its own), dropping
// any row missing one (which should not happen for a well-formed query
// where every Find variable appears in some clause). The wildcard name is
// never bound, so it is silently skipped rather than treated as missing.
func project(rows []Row, find []string) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		projected := make(Row, len(find))
		complete := true
		for _, name := range find {
			if name == types.Wildcard {
				continue
			}
			v, ok := r[name]
			if !ok {
				complete = false
				break
			}
			projected[name] = v
		}
		if complete {
			out = append(out, projected)
		}
	}
	return out
}
