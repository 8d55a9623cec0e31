// Package writer serializes a resolved ggsql.PreparedData into
// renderer-neutral chart documents, independent of any particular
// plotting library.
package writer

import (
	"encoding/json"
	"fmt"

	"github.com/georgestagg/ggsql/ast"
)

// vegaMarkNames maps a Geom to the Vega-Lite mark name it corresponds
// to most directly.
var vegaMarkNames = map[ast.Geom]string{
	ast.GeomPoint:   "point",
	ast.GeomLine:    "line",
	ast.GeomBar:     "bar",
	ast.GeomArea:    "area",
	ast.GeomText:    "text",
	ast.GeomRect:    "rect",
	ast.GeomRule:    "rule",
	ast.GeomTick:    "tick",
	ast.GeomBoxplot: "boxplot",
}

// VegaLiteWriter serializes one resolved VizSpec, plus the data map it
// was resolved against, into a Vega-Lite v5-shaped document.
type VegaLiteWriter struct{}

// Write renders spec as a Vega-Lite document. A spec with more than one
// layer becomes a top-level "layer" array; a single-layer spec is
// flattened to a plain unit spec, matching how hand-written Vega-Lite
// documents are usually shaped.
func (VegaLiteWriter) Write(spec *ast.VizSpec, data map[string]*ast.Table) (map[string]any, error) {
	if len(spec.Layers) == 0 {
		return nil, ast.InternalError("cannot serialize a spec with no layers")
	}

	doc := map[string]any{
		"$schema": "https://vega.github.io/schema/vega-lite/v5.json",
	}
	if spec.Labels.Title != "" {
		doc["title"] = spec.Labels.Title
	}
	if spec.Facets != nil {
		doc["facet"] = facetSpec(spec.Facets)
	}

	if len(spec.Layers) == 1 {
		layerDoc, err := layerSpec(spec, spec.Layers[0], 0, data)
		if err != nil {
			return nil, err
		}
		for k, v := range layerDoc {
			doc[k] = v
		}
		return doc, nil
	}

	layers := make([]map[string]any, len(spec.Layers))
	for i, layer := range spec.Layers {
		layerDoc, err := layerSpec(spec, layer, i, data)
		if err != nil {
			return nil, err
		}
		layers[i] = layerDoc
	}
	doc["layer"] = layers
	return doc, nil
}

// WriteJSON is Write followed by json.MarshalIndent, the shape callers
// actually want to hand to an HTTP response body or a file.
func (w VegaLiteWriter) WriteJSON(spec *ast.VizSpec, data map[string]*ast.Table) ([]byte, error) {
	doc, err := w.Write(spec, data)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

func layerSpec(spec *ast.VizSpec, layer *ast.Layer, idx int, data map[string]*ast.Table) (map[string]any, error) {
	key := "__global__"
	if layer.Source != nil {
		key = keyForLayer(idx)
	}
	tbl, ok := data[key]
	if !ok {
		return nil, ast.InternalError("no bound table %q for layer %d", key, idx)
	}

	markName, ok := vegaMarkNames[layer.Geom]
	if !ok {
		markName = "point"
	}

	encoding := make(map[string]any, layer.Mappings.Len())
	for _, aesthetic := range layer.Mappings.Keys() {
		expr, _ := layer.Mappings.Get(aesthetic)
		enc, ok := encodingFor(spec, aesthetic, expr, tbl)
		if !ok {
			continue
		}
		encoding[aesthetic] = enc
	}

	return map[string]any{
		"data":     map[string]any{"values": tableRows(tbl)},
		"mark":     markName,
		"encoding": encoding,
	}, nil
}

func encodingFor(spec *ast.VizSpec, aesthetic string, expr ast.MappingExpr, tbl *ast.Table) (map[string]any, bool) {
	switch expr.Kind {
	case ast.MappingColumn:
		enc := map[string]any{"field": expr.Column}
		if col, ok := tbl.Column(expr.Column); ok {
			enc["type"] = vegaType(col.DType)
		}
		if sc, ok := spec.Scales[aesthetic]; ok {
			enc["scale"] = scaleSpec(sc)
		}
		if g, ok := spec.Guides[aesthetic]; ok {
			enc["legend"] = guideSpec(g)
		}
		if label, ok := spec.Labels.Axis[aesthetic]; ok {
			enc["axis"] = map[string]any{"title": label}
		}
		return enc, true
	case ast.MappingLiteral:
		return map[string]any{"value": elementValue(expr.Literal)}, true
	default:
		return nil, false
	}
}

func scaleSpec(sc *ast.Scale) map[string]any {
	m := map[string]any{}
	if len(sc.InputRange) > 0 {
		m["domain"] = elementValues(sc.InputRange)
	}
	if sc.OutputRange != nil && sc.OutputRange.Kind == ast.OutputArray {
		m["range"] = elementValues(sc.OutputRange.Array)
	}
	return m
}

func guideSpec(g *ast.Guide) map[string]any {
	m := map[string]any{}
	for k, v := range g.Properties {
		m[k] = elementValue(v)
	}
	return m
}

func facetSpec(fs *ast.FacetSpec) map[string]any {
	m := map[string]any{"field": fs.Rows, "type": "nominal"}
	if fs.Kind == ast.FacetGrid && fs.Cols != "" {
		return map[string]any{
			"row":    map[string]any{"field": fs.Rows, "type": "nominal"},
			"column": map[string]any{"field": fs.Cols, "type": "nominal"},
		}
	}
	return m
}

func vegaType(dt ast.DType) string {
	switch {
	case dt.IsNumeric():
		return "quantitative"
	case dt.IsTemporal():
		return "temporal"
	case dt == ast.Bool:
		return "nominal"
	default:
		return "nominal"
	}
}

func elementValue(e ast.ArrayElement) any {
	switch e.Kind {
	case ast.ElementNumber:
		return e.Num
	case ast.ElementBool:
		return e.Bool
	case ast.ElementNull:
		return nil
	default:
		return e.Str
	}
}

func elementValues(es []ast.ArrayElement) []any {
	out := make([]any, len(es))
	for i, e := range es {
		out[i] = elementValue(e)
	}
	return out
}

// tableRows transposes a column-major ast.Table into Vega-Lite's
// expected row-major "values" array.
func tableRows(t *ast.Table) []map[string]any {
	rows := make([]map[string]any, t.Len())
	for r := range rows {
		row := make(map[string]any, len(t.Columns))
		for _, col := range t.Columns {
			if r < len(col.Raw) {
				row[col.Name] = col.Raw[r]
			}
		}
		rows[r] = row
	}
	return rows
}

func keyForLayer(i int) string {
	return fmt.Sprintf("__layer_%d__", i)
}
