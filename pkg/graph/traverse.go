package graph

import (
	"context"
	"fmt"

	"github.com/epochdb/epoch/pkg/log"
	"github.com/epochdb/epoch/pkg/metrics"
	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/types"
)

// Strategy selects how TraverseDB orders its walk.
type Strategy string

const (
	BFS Strategy = "bfs"
	DFS Strategy = "dfs"
)

// Direction selects which edges TraverseDB follows.
type Direction string

const (
	Outgoing Direction = "outgoing"
	Incoming Direction = "incoming"
)

// TraverseDB walks the reference graph reachable from rootID in snap,
// following outgoing reference-typed attribute values or incoming VEAT
// index entries depending on direction, in BFS or DFS order depending on
// strategy. Each entity is visited at most once; dangling references (an
// id with no live entity) are skipped rather than failing. The walk is
// restartable: every call builds a fresh visited set and frontier.
func TraverseDB(ctx context.Context, s *storage.Snapshot, rootID string, strategy Strategy, direction Direction) ([]*types.Entity, error) {
	if strategy != BFS && strategy != DFS {
		return nil, fmt.Errorf("%q: %w", strategy, ErrUnknownStrategy)
	}
	if direction != Outgoing && direction != Incoming {
		return nil, fmt.Errorf("%q: %w", direction, ErrUnknownDirection)
	}

	logger := log.WithEntity(rootID)
	visited := map[string]struct{}{}
	var order []*types.Entity
	frontier := []string{rootID}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var id string
		if strategy == BFS {
			id, frontier = frontier[0], frontier[1:]
		} else {
			id, frontier = frontier[len(frontier)-1], frontier[:len(frontier)-1]
		}

		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}

		e, ok := s.Entities.Get(id)
		if !ok {
			continue // dangling reference
		}
		order = append(order, e)

		next := neighbors(s, e, direction)
		if strategy == BFS {
			frontier = append(frontier, next...)
		} else {
			frontier = append(frontier, next...)
		}
	}

	metrics.TraversalVisited.Observe(float64(len(order)))
	logger.Debug().Str("strategy", string(strategy)).Str("direction", string(direction)).Int("visited", len(order)).Msg("traversal complete")

	return order, nil
}

func neighbors(s *storage.Snapshot, e *types.Entity, direction Direction) []string {
	if direction == Outgoing {
		return outgoingNeighbors(e)
	}
	return incomingNeighbors(s, e)
}

func outgoingNeighbors(e *types.Entity) []string {
	var out []string
	for _, attr := range e.Attrs {
		if !attr.Value.IsRef() {
			continue
		}
		for _, v := range attr.Value.Members() {
			out = append(out, v.Ref)
		}
	}
	return out
}

func incomingNeighbors(s *storage.Snapshot, e *types.Entity) []string {
	var out []string
	s.VEATIdx.Level2(types.Ref(e.ID), func(referencer types.Value) bool {
		out = append(out, referencer.Ref)
		return true
	})
	return out
}
