// Package ggsql sequences the VISQL pipeline end to end: split the
// query, execute its SQL and layer-source halves against a caller
// supplied executor, parse and resolve the visualization suffix, and
// hand back a fully bound PreparedData.
package ggsql

import (
	"fmt"
	"strings"

	"github.com/georgestagg/ggsql/ast"
	"github.com/georgestagg/ggsql/parser"
	"github.com/georgestagg/ggsql/resolver"
)

// Executor is the core's only external collaborator: it runs opaque
// SQL text and returns the resulting table. The core never opens a
// connection or parses a driver DSN itself.
type Executor func(sql string) (*ast.Table, error)

// PreparedData is the orchestrator's output: the data map keyed
// "__global__"/"__layer_i__", and every spec found in the query's
// VISUALISE suffix, fully resolved.
type PreparedData struct {
	Data  map[string]*ast.Table
	Specs []*ast.VizSpec
}

// PrepareDataWithExecutor splits, parses, resolves, and executes a
// VizQL query end to end, returning every resolved chart spec with its
// bound data.
func PrepareDataWithExecutor(query string, execute Executor) (*PreparedData, error) {
	sqlText, vizText, err := parser.Split(query)
	if err != nil {
		return nil, err
	}

	specs, err := parser.ParseVizSuffix(vizText)
	if err != nil {
		return nil, err
	}

	if len(specs) == 0 {
		return nil, ast.ValidationError("No visualization specifications found")
	}
	if strings.TrimSpace(vizText) == "" {
		return nil, ast.ValidationError("The visualization portion is empty")
	}

	data := make(map[string]*ast.Table)

	if strings.TrimSpace(sqlText) != "" {
		table, err := execute(sqlText)
		if err != nil {
			return nil, err
		}
		data["__global__"] = table
	}

	firstSpec := specs[0]
	for idx, layer := range firstSpec.Layers {
		if layer.Source == nil {
			continue
		}
		table, err := execute(layer.Source.SelectStatement())
		if err != nil {
			return nil, ast.ReaderError(err, "Failed to fetch data for layer %d (source: %s)",
				idx+1, layer.Source.AsStr())
		}
		data[fmt.Sprintf("__layer_%d__", idx)] = table
	}

	if len(data) == 0 {
		return nil, ast.ValidationError(
			"No data sources found. Either provide a SQL query or use MAPPING FROM in layers.")
	}

	hasLayerWithoutSource := false
	for _, layer := range firstSpec.Layers {
		if layer.Source == nil {
			hasLayerWithoutSource = true
			break
		}
	}
	if hasLayerWithoutSource {
		if _, ok := data["__global__"]; !ok {
			return nil, ast.ValidationError("Some layers use global data but no SQL query was provided.")
		}
	}

	for _, spec := range specs {
		if err := resolver.Resolve(spec, data); err != nil {
			return nil, err
		}
	}

	return &PreparedData{Data: data, Specs: specs}, nil
}
