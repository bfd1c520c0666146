package main

import (
	"fmt"

	"github.com/epochdb/epoch/pkg/conn"
	"github.com/epochdb/epoch/pkg/dbio"
	"github.com/epochdb/epoch/pkg/txn"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a dataset file to a connection",
	Long: `Apply loads a YAML dataset of entities and transacts them all into
one named connection as a single commit.

Examples:
  # Load the demo patients/machines/tests dataset into "clinic"
  eavdb apply -f testdata/clinic.yaml --conn clinic`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "Dataset YAML file to apply (required)")
	applyCmd.Flags().String("conn", "", "Connection name (required)")
	_ = applyCmd.MarkFlagRequired("file")
	_ = applyCmd.MarkFlagRequired("conn")
}

func runApply(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	connName, _ := cmd.Flags().GetString("conn")

	ds, err := dbio.LoadFile(filename)
	if err != nil {
		return err
	}

	entities, err := ds.ToEntities()
	if err != nil {
		return fmt.Errorf("resolve dataset %s: %w", filename, err)
	}

	c := conn.Open(connName)
	snap, err := c.Transact(txn.AddEntities(entities...))
	if err != nil {
		return fmt.Errorf("apply %s: %w", filename, err)
	}

	fmt.Printf("applied %d entities to %q, now at time %d\n", len(entities), connName, snap.CurrTime)
	return nil
}
