// Command vizqlctl runs VizQL queries from the command line: it wires
// the core's orchestrator (package ggsql) to a concrete database/sql
// reader and a Vega-Lite/SVG writer behind a cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vizqlctl: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log = logger.Sugar()

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		log.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	root := &cobra.Command{
		Use:   "vizqlctl",
		Short: "Run VizQL queries against a SQL engine and emit a chart spec",
	}

	root.AddCommand(newQueryCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newVersionCmd())
	return root
}
