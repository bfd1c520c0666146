/*
Package types defines the core data model shared by every other package in
the module: the tagged Value union, the Attribute and Entity records, and
the Term/Clause syntax tree accepted by the query package.

# Architecture

The types package is the foundation everything else builds on. It defines:

  - Value: a tagged scalar (int, real, text, bool), a reference to another
    entity, or a set of values for multi-cardinality attributes
  - Attribute: a named, typed, optionally indexed property of an entity,
    carrying the prev/curr snapshot timestamps used to reconstruct history
  - Entity: an opaquely identified record mapping attribute name to
    Attribute
  - Term/Clause/Query: the uncompiled syntax tree a caller builds to submit
    a query, later turned into predicate clauses by pkg/query

# Values

Values are immutable once constructed; every mutating-looking method
(Union, Subtract, NewSet) returns a new Value rather than editing in place.
Equality and ordering are defined via a canonical string encoding
(HashKey), which also backs set deduplication, so two Values representing
the same logical data are always Equal regardless of how they were built:

	a := types.NewSet(types.Text("fever"), types.Text("cough"))
	b := types.NewSet(types.Text("cough"), types.Text("fever"))
	a.Equal(b) // true

# Attributes and Entities

Attribute.PrevTS/CurrTS track which snapshot introduced each version; a
fresh Attribute built with MakeAttr carries NoTimestamp until the
transactor commits it into a snapshot. Entity.Clone performs the
shallow, copy-on-write copy the transactor needs before mutating a single
attribute — the Attrs map is copied, individual *Attribute values are
replaced one at a time, and unrelated attributes keep pointing at their
original, untouched Attribute.

# Queries

A Query pairs an ordered Find list of variable names with an ordered
Where list of Clauses. Each Clause is an (E, A, V) triple of Terms; a Term
is one of a bare variable, the wildcard "_", a literal, a unary predicate
application, or a binary predicate application with the variable on
either side. This package only defines the shape; pkg/query compiles it
and pkg/conn/pkg/txn consume the resulting data.

# See also

  - pkg/storage for the Snapshot, Index and Entity-map it builds on
    these types
  - pkg/query for clause compilation and execution
  - pkg/graph for history and reference-graph traversal over Entities
*/
package types
