package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/georgestagg/ggsql"
	"github.com/georgestagg/ggsql/ast"
	"github.com/georgestagg/ggsql/reader"
	"github.com/georgestagg/ggsql/render"
	"github.com/georgestagg/ggsql/writer"
)

func newQueryCmd() *cobra.Command {
	var (
		dsn    string
		engine string
		out    string
		format string
		sample bool
	)

	cmd := &cobra.Command{
		Use:   "query <query-text|@file>",
		Short: "Run one VizQL query end to end and write its resolved chart spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryText, err := resolveQueryArg(args[0])
			if err != nil {
				return err
			}

			exec, closeFn, err := buildExecutor(engine, dsn, sample)
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer closeFn()
			}

			log.Infow("running query", "engine", engine, "dsn", reader.RedactDSN(dsn), "sample", sample)
			prepared, err := ggsql.PrepareDataWithExecutor(queryText, exec)
			if err != nil {
				return reportCoreError(err)
			}

			return writeOutput(prepared, format, out)
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name for --engine")
	cmd.Flags().StringVar(&engine, "engine", "sqlite", "SQL engine: sqlite, mysql, or postgres")
	cmd.Flags().StringVar(&out, "out", "", "output file path (default: stdout for vegalite, required for svg)")
	cmd.Flags().StringVar(&format, "format", "vegalite", "output format: vegalite or svg")
	cmd.Flags().BoolVar(&sample, "sample", false, "use the bundled sample dataset instead of --dsn")
	return cmd
}

func buildExecutor(engine, dsn string, sample bool) (ggsql.Executor, func(), error) {
	if sample {
		return reader.SampleExecutor(), nil, nil
	}
	db, err := reader.Open(engine, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("vizqlctl: %w", err)
	}
	return db.Executor(), func() { _ = db.Close() }, nil
}

func writeOutput(prepared *ggsql.PreparedData, format, out string) error {
	switch format {
	case "vegalite":
		var docs []map[string]any
		w := writer.VegaLiteWriter{}
		for _, spec := range prepared.Specs {
			doc, err := w.Write(spec, prepared.Data)
			if err != nil {
				return reportCoreError(err)
			}
			docs = append(docs, doc)
		}
		var payload any = docs
		if len(docs) == 1 {
			payload = docs[0]
		}
		body, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("vizqlctl: marshal vega-lite document: %w", err)
		}
		return writeBytes(out, body)
	case "svg":
		if out == "" {
			return fmt.Errorf("vizqlctl: --out is required for --format svg")
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("vizqlctl: create %s: %w", out, err)
		}
		defer f.Close()
		return render.SVG(f, prepared.Specs[0], prepared.Data, render.DefaultOptions)
	default:
		return fmt.Errorf("vizqlctl: unknown --format %q (want vegalite or svg)", format)
	}
}

func writeBytes(path string, body []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(body, '\n'))
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

// resolveQueryArg treats an argument starting with "@" as a path to
// read the query text from, otherwise as the query text itself.
func resolveQueryArg(arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	body, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
	if err != nil {
		return "", fmt.Errorf("vizqlctl: read query file: %w", err)
	}
	return string(body), nil
}

// reportCoreError surfaces an ast.Error's kind directly rather than
// wrapping it, so downstream tooling can still key off the stable
// taxonomy names.
func reportCoreError(err error) error {
	if ast.IsKind(err, ast.ParseErrorKind) ||
		ast.IsKind(err, ast.ValidationErrorKind) ||
		ast.IsKind(err, ast.ReaderErrorKind) ||
		ast.IsKind(err, ast.InternalErrorKind) {
		return err
	}
	return fmt.Errorf("vizqlctl: %w", err)
}
