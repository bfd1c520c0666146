package query

import "errors"

// ErrMalformedClause is returned when a clause term does not match one of
// the shapes the compiler recognizes: bare variable, wildcard, literal,
// unary predicate, or binary predicate.
var ErrMalformedClause = errors.New("malformed clause")

// ErrUnsupportedQuery is returned when no single EAV column carries the
// same variable name across every clause in the query's where list.
var ErrUnsupportedQuery = errors.New("unsupported query")
