// Package resolver implements wildcard expansion, mapping inheritance,
// and scale completion against the tables an executor actually
// returned. It is the only package permitted to mutate an ast.VizSpec
// after the parser has built it.
package resolver

import (
	"fmt"

	"github.com/georgestagg/ggsql/ast"
	"github.com/georgestagg/ggsql/palette"
	"github.com/georgestagg/ggsql/scale"
)

// Resolve mutates spec in place: wildcard mappings are bound to
// concrete columns, layer mappings inherit unset aesthetics from the
// spec's global mappings, and every aesthetic in play ends up with a
// fully determined Scale.
func Resolve(spec *ast.VizSpec, data map[string]*ast.Table) error {
	columnNames := resolveColumnNames(spec, data)

	if err := expandWildcards(spec.GlobalMappings, columnNames); err != nil {
		return err
	}
	for _, layer := range spec.Layers {
		if err := expandWildcards(layer.Mappings, columnNames); err != nil {
			return err
		}
	}

	inheritMappings(spec)

	return completeScales(spec, data)
}

// resolveColumnNames prefers the global table; if it's absent, the
// caller must have supplied layer sources only, so the first layer's
// bound table stands in.
func resolveColumnNames(spec *ast.VizSpec, data map[string]*ast.Table) []string {
	if t, ok := data["__global__"]; ok {
		return t.ColumnNames()
	}
	if len(spec.Layers) == 0 {
		return nil
	}
	if t := tableForLayer(data, 0, spec.Layers[0]); t != nil {
		return t.ColumnNames()
	}
	return nil
}

// expandWildcards binds the i-th wildcard (in parse order) to the i-th
// column name. Excess wildcards beyond the column count are an error.
func expandWildcards(mappings *ast.OrderedMap[ast.MappingExpr], columnNames []string) error {
	idx := 0
	for _, key := range mappings.Keys() {
		v, _ := mappings.Get(key)
		if v.Kind != ast.MappingWildcard {
			continue
		}
		if idx >= len(columnNames) {
			return ast.ValidationError(
				"wildcard mapping %q has no matching column: only %d columns available", key, len(columnNames))
		}
		mappings.Set(key, ast.ColumnRef(columnNames[idx]))
		idx++
	}
	return nil
}

// inheritMappings fills in every layer aesthetic that wasn't set
// explicitly with the spec's global mapping for that aesthetic, if
// one exists.
func inheritMappings(spec *ast.VizSpec) {
	for _, layer := range spec.Layers {
		for _, key := range spec.GlobalMappings.Keys() {
			if layer.Mappings.Has(key) {
				continue
			}
			v, _ := spec.GlobalMappings.Get(key)
			layer.Mappings.Set(key, v)
		}
	}
}

// completeScales determines scale_type, input_range, and output_range
// for every (aesthetic, scale) pair already in spec.Scales, plus
// synthetically for every aesthetic any layer uses but neither the
// spec nor that layer scoped an explicit scale to.
func completeScales(spec *ast.VizSpec, data map[string]*ast.Table) error {
	needed := make(map[string]bool)
	for k := range spec.Scales {
		needed[k] = true
	}
	for _, layer := range spec.Layers {
		for _, k := range layer.Mappings.Keys() {
			if _, ok := spec.Scales[k]; ok {
				continue
			}
			if _, ok := layer.Scales[k]; ok {
				continue
			}
			needed[k] = true
		}
	}

	for aesthetic := range needed {
		sc, ok := spec.Scales[aesthetic]
		if !ok {
			sc = ast.NewScale(aesthetic)
			spec.Scales[aesthetic] = sc
		}

		columns, dtype, dtypeKnown := backingColumns(spec, data, aesthetic)

		var tag ast.ScaleTypeTag
		if sc.ScaleType != nil {
			tag = *sc.ScaleType
		} else {
			tag = scale.ForDType(dtype)
			sc.ScaleType = &tag
		}

		st := scale.ForTag(tag)
		if dtypeKnown && !st.AllowsDataType(dtype) {
			return ast.ValidationError(
				"aesthetic %q: scale_type %q does not admit column dtype %q", aesthetic, st.Name(), dtype)
		}
		if inputRange, ok := st.ResolveInputRange(sc.InputRange, columns); ok {
			sc.InputRange = inputRange
		}

		if err := resolveOutputRange(sc, tag, st); err != nil {
			return err
		}
	}
	return nil
}

func resolveOutputRange(sc *ast.Scale, tag ast.ScaleTypeTag, st scale.Type) error {
	if sc.OutputRange == nil {
		out, ok := st.DefaultOutputRange(sc.Aesthetic, sc.InputRange)
		if ok {
			sc.OutputRange = &ast.OutputRange{Kind: ast.OutputArray, Array: out}
		}
		return nil
	}
	if sc.OutputRange.Kind != ast.OutputPalette {
		return nil
	}
	pal, ok := palette.Lookup(sc.OutputRange.Palette)
	if !ok {
		return ast.ValidationError("unknown palette %q for aesthetic %q", sc.OutputRange.Palette, sc.Aesthetic)
	}
	n := paletteSampleCount(tag, len(sc.InputRange), pal)
	sc.OutputRange = &ast.OutputRange{Kind: ast.OutputArray, Array: elementsFromStrings(palette.Expand(pal, n))}
	return nil
}

// paletteSampleCount decides how many colors to draw from a palette: a
// discrete family gets exactly one swatch per category, a continuous
// family samples the palette's own native length.
func paletteSampleCount(tag ast.ScaleTypeTag, inputLen int, pal palette.Palette) int {
	switch tag {
	case ast.ScaleDiscrete, ast.ScaleOrdinal, ast.ScaleCategorical, ast.ScaleBinned:
		return inputLen
	default:
		return len(pal.Values)
	}
}

// backingColumns gathers, for the given aesthetic, every column any
// layer maps it to (in layer order), and reports the dtype of the
// first one found plus whether a dtype was found at all — used both to
// pick a default scale type when none was stated explicitly, and to
// check an explicit scale_type's admissibility against the data.
func backingColumns(spec *ast.VizSpec, data map[string]*ast.Table, aesthetic string) ([]*ast.Column, ast.DType, bool) {
	var cols []*ast.Column
	dtype := ast.String
	dtypeSet := false
	for i, layer := range spec.Layers {
		v, ok := layer.Mappings.Get(aesthetic)
		if !ok || v.Kind != ast.MappingColumn {
			continue
		}
		table := tableForLayer(data, i, layer)
		if table == nil {
			continue
		}
		col, ok := table.Column(v.Column)
		if !ok {
			continue
		}
		cols = append(cols, col)
		if !dtypeSet {
			dtype = col.DType
			dtypeSet = true
		}
	}
	return cols, dtype, dtypeSet
}

func tableForLayer(data map[string]*ast.Table, i int, layer *ast.Layer) *ast.Table {
	key := "__global__"
	if layer.Source != nil {
		key = fmt.Sprintf("__layer_%d__", i)
	}
	t, ok := data[key]
	if !ok {
		return nil
	}
	return t
}

func elementsFromStrings(ss []string) []ast.ArrayElement {
	out := make([]ast.ArrayElement, len(ss))
	for i, s := range ss {
		out[i] = ast.Str(s)
	}
	return out
}
