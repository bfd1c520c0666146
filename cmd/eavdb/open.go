package main

import (
	"fmt"

	"github.com/epochdb/epoch/pkg/conn"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Open (or create) a named connection",
	Long: `Open registers name in this process's connection registry,
creating a fresh connection at logical time zero if it does not already
exist.

A connection only lives as long as the process that opened it: eavdb is an
in-memory demo driver, not a server, so each invocation that wants to build
on a previous one's data must do so within a single pipeline of commands
run by the same process (see "eavdb apply", which opens its own
connection).`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	name := args[0]
	c := conn.Open(name)
	snap := c.Snapshot()
	fmt.Printf("connection %q open at time %d\n", c.Name, snap.CurrTime)
	return nil
}
