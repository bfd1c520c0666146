package main

import (
	"context"
	"fmt"

	"github.com/epochdb/epoch/pkg/conn"
	"github.com/epochdb/epoch/pkg/graph"
	"github.com/spf13/cobra"
)

var traverseCmd = &cobra.Command{
	Use:   "traverse",
	Short: "Walk the reference graph from a root entity",
	Long: `Traverse walks the reference graph reachable from --root in the
connection's present snapshot, following reference-typed attribute values
(outgoing) or the entities that reference --root (incoming), in breadth- or
depth-first order.

Example:
  eavdb traverse --conn clinic --root pat1 --strategy bfs --direction incoming`,
	RunE: runTraverse,
}

func init() {
	traverseCmd.Flags().String("conn", "", "Connection name (required)")
	traverseCmd.Flags().String("root", "", "Root entity id (required)")
	traverseCmd.Flags().String("strategy", "bfs", "Traversal order: bfs or dfs")
	traverseCmd.Flags().String("direction", "outgoing", "Edge direction: outgoing or incoming")
	_ = traverseCmd.MarkFlagRequired("conn")
	_ = traverseCmd.MarkFlagRequired("root")
}

func runTraverse(cmd *cobra.Command, args []string) error {
	connName, _ := cmd.Flags().GetString("conn")
	root, _ := cmd.Flags().GetString("root")
	strategy, _ := cmd.Flags().GetString("strategy")
	direction, _ := cmd.Flags().GetString("direction")

	c := conn.Open(connName)
	entities, err := graph.TraverseDB(context.Background(), c.Snapshot(), root,
		graph.Strategy(strategy), graph.Direction(direction))
	if err != nil {
		return fmt.Errorf("traverse: %w", err)
	}

	for _, e := range entities {
		fmt.Println(e.ID)
	}
	fmt.Printf("(%d entities visited)\n", len(entities))
	return nil
}
