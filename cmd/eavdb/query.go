package main

import (
	"fmt"
	"strings"

	"github.com/epochdb/epoch/pkg/conn"
	"github.com/epochdb/epoch/pkg/query"
	"github.com/epochdb/epoch/pkg/types"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a datalog-style query against a connection's present snapshot",
	Long: `Query translates --find and --where flags into a types.Query and
runs it through pkg/query.Q against the connection's current snapshot.

Examples:
  eavdb query --conn clinic --find ?id --find ?city \
    --where '?id patient/city ?city'

  eavdb query --conn clinic --find ?id --find ?k --find ?b \
    --where '?id test/bp-systolic ?b>200' \
    --where '?id test/bp-diastolic ?k'`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("conn", "", "Connection name (required)")
	queryCmd.Flags().StringArray("find", nil, "Variable to project, repeatable (required)")
	queryCmd.Flags().StringArray("where", nil, "Clause 'entity attribute value', repeatable (required)")
	_ = queryCmd.MarkFlagRequired("conn")
	_ = queryCmd.MarkFlagRequired("find")
	_ = queryCmd.MarkFlagRequired("where")
}

func runQuery(cmd *cobra.Command, args []string) error {
	connName, _ := cmd.Flags().GetString("conn")
	findFlags, _ := cmd.Flags().GetStringArray("find")
	whereFlags, _ := cmd.Flags().GetStringArray("where")

	find := make([]string, len(findFlags))
	for i, f := range findFlags {
		find[i] = parseFindVar(f)
	}

	where := make([]types.Clause, len(whereFlags))
	for i, w := range whereFlags {
		c, err := parseClause(w)
		if err != nil {
			return err
		}
		where[i] = c
	}

	c := conn.Open(connName)
	rows, err := query.Q(c.Snapshot(), types.Query{Find: find, Where: where})
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	fmt.Printf("%d row(s)\n", len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(find))
		for _, name := range find {
			if v, ok := row[name]; ok {
				parts = append(parts, fmt.Sprintf("%s=%s", name, v.String()))
			}
		}
		fmt.Println(strings.Join(parts, " "))
	}
	return nil
}
