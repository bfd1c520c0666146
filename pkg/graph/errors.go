package graph

import "errors"

// ErrUnknownStrategy is returned when TraverseDB is asked for a walk
// strategy other than BFS or DFS.
var ErrUnknownStrategy = errors.New("unknown traversal strategy")

// ErrUnknownDirection is returned when TraverseDB is asked to follow a
// direction other than outgoing or incoming.
var ErrUnknownDirection = errors.New("unknown traversal direction")
