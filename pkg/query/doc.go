/*
Package query implements the datalog-style read path over a storage
Snapshot: a Query is an ordered Find list of variables and an ordered
Where list of Clauses, each clause a (entity, attribute, value) triple of
Terms.

# Compilation

compileClause turns a Clause's three Terms into three Predicates plus the
variable name (if any) each position captures. A Term is one of a bare
variable, the wildcard "_", a literal, a unary predicate, or a binary
predicate with the variable on either side.

# Join selection

selectJoinColumn finds the single EAV column — entity, attribute, or
value — that every clause in the query binds to the same variable name.
That column decides which of the three permutation indices (EAVT, AVET,
VEAT) each clause is walked through, since each permutation places a
different column at its leaf (level-3) position. A query whose clauses
share no common column is rejected as ErrUnsupportedQuery rather than
falling back to a slower unindexed scan.

# Execution

Q walks each clause's chosen index, applying the clause's predicates
(reordered to the index's own level order by permutePreds) as it
descends, and reconstructs (entity, attribute, value) via the
permutation's ToEAV for every leaf that survives. Surviving bindings are
grouped per clause by the join column's HashKey, intersected across
clauses, and combined by Cartesian product per surviving key. The result
is projected down to the Find list.

Errors raised by a caller-supplied predicate function are swallowed and
treated as "does not match" rather than aborting the query.

# See also

  - pkg/storage for the Index/Permutation types this package walks
  - pkg/types for Value, Term, Clause and Query
*/
package query
