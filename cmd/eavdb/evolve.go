package main

import (
	"fmt"

	"github.com/epochdb/epoch/pkg/conn"
	"github.com/epochdb/epoch/pkg/graph"
	"github.com/spf13/cobra"
)

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Print every version an attribute has passed through",
	Long: `Evolve walks an attribute's history backwards from the
connection's present snapshot and prints every version it passed through,
oldest first.

Example:
  eavdb evolve --conn clinic --id pat1 --attr patient/city`,
	RunE: runEvolve,
}

func init() {
	evolveCmd.Flags().String("conn", "", "Connection name (required)")
	evolveCmd.Flags().String("id", "", "Entity id (required)")
	evolveCmd.Flags().String("attr", "", "Attribute name (required)")
	_ = evolveCmd.MarkFlagRequired("conn")
	_ = evolveCmd.MarkFlagRequired("id")
	_ = evolveCmd.MarkFlagRequired("attr")
}

func runEvolve(cmd *cobra.Command, args []string) error {
	connName, _ := cmd.Flags().GetString("conn")
	id, _ := cmd.Flags().GetString("id")
	attrName, _ := cmd.Flags().GetString("attr")

	c := conn.Open(connName)
	history := c.History()
	at := c.Snapshot().CurrTime

	versions := graph.EvolutionOf(history, at, id, attrName)
	if len(versions) == 0 {
		fmt.Printf("%s/%s has no recorded versions as of time %d\n", id, attrName, at)
		return nil
	}

	for _, v := range versions {
		fmt.Printf("t=%d: %s = %s\n", v.Time, attrName, v.Attr.Value.String())
	}
	fmt.Printf("(%d version(s))\n", graph.Count(versions))
	return nil
}
