// Package render turns a resolved ggsql.PreparedData into pixels using
// go-gg, generalized from a fixed benchmark-trend layout to an
// arbitrary VizSpec's layers and aesthetic mappings.
package render

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/georgestagg/ggsql/ast"
)

// Options controls the rendered canvas size.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions is a reasonable default canvas size for SVG output.
var DefaultOptions = Options{Width: 1200, Height: 600}

// SVG renders the first layer of spec against its bound table and
// writes an SVG document to w. Faceting and multi-layer overlays are
// left for a future pass.
func SVG(w io.Writer, spec *ast.VizSpec, data map[string]*ast.Table, opt Options) error {
	if len(spec.Layers) == 0 {
		return ast.InternalError("cannot render a spec with no layers")
	}
	layer := spec.Layers[0]

	src := "__global__"
	if layer.Source != nil {
		src = "__layer_0__"
	}
	tbl, ok := data[src]
	if !ok {
		return ast.InternalError("no bound table %q for render layer", src)
	}

	grouping, err := toGrouping(tbl)
	if err != nil {
		return err
	}

	plot := gg.NewPlot(grouping)

	xCol, _ := columnFor(layer, "x")
	yCol, _ := columnFor(layer, "y")
	colorCol, _ := columnFor(layer, "color")

	switch layer.Geom {
	case ast.GeomLine:
		plot.Add(gg.LayerLines{X: xCol, Y: yCol, Color: colorCol})
	case ast.GeomArea:
		plot.Add(gg.LayerArea{X: xCol, Upper: yCol, Lower: yCol})
	default:
		// point, bar, text, rect, rule, tick, boxplot: fall back to
		// a point layer until each gets its own go-gg mark.
		plot.Add(gg.LayerPoints{X: xCol, Y: yCol, Color: colorCol})
	}

	if spec.Labels.Title != "" {
		plot.Add(gg.Title(spec.Labels.Title))
	}
	if label, ok := spec.Labels.Axis["x"]; ok {
		plot.Add(gg.AxisLabel("x", label))
	}
	if label, ok := spec.Labels.Axis["y"]; ok {
		plot.Add(gg.AxisLabel("y", label))
	}

	return plot.WriteSVG(w, opt.Width, opt.Height)
}

func columnFor(layer *ast.Layer, aesthetic string) (string, bool) {
	expr, ok := layer.Mappings.Get(aesthetic)
	if !ok || expr.Kind != ast.MappingColumn {
		return "", false
	}
	return expr.Column, true
}

// toGrouping copies an ast.Table's columns into a go-gg table.Table,
// converting each column to the concrete slice type table.Builder
// expects: []float64 for numeric dtypes, []string otherwise.
func toGrouping(t *ast.Table) (table.Grouping, error) {
	b := new(table.Builder)
	for _, col := range t.Columns {
		switch {
		case col.DType.IsNumeric():
			seq := make([]float64, len(col.Raw))
			for i, v := range col.Raw {
				f, ok := v.(float64)
				if !ok {
					return nil, ast.InternalError("column %q: expected float64 raw value, got %T", col.Name, v)
				}
				seq[i] = f
			}
			b.Add(col.Name, seq)
		default:
			seq := make([]string, len(col.Raw))
			for i, v := range col.Raw {
				seq[i] = fmt.Sprint(v)
			}
			b.Add(col.Name, seq)
		}
	}
	return b.Done(), nil
}
