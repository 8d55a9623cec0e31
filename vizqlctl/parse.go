package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/georgestagg/ggsql/parser"
)

// newParseCmd runs the splitter and grammar parser only, with no
// executor, for inspecting how a query is split and parsed.
func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <query-text|@file>",
		Short: "Split and parse a VizQL query without executing any SQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryText, err := resolveQueryArg(args[0])
			if err != nil {
				return err
			}

			sqlText, vizText, err := parser.Split(queryText)
			if err != nil {
				return reportCoreError(err)
			}
			specs, err := parser.ParseVizSuffix(vizText)
			if err != nil {
				return reportCoreError(err)
			}

			out := map[string]any{
				"sql":   sqlText,
				"viz":   vizText,
				"specs": specs,
			}
			body, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("vizqlctl: marshal parse result: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(body))
			return nil
		},
	}
}
