package parser

import (
	"testing"

	"github.com/georgestagg/ggsql/ast"
)

func TestParseSimpleSpec(t *testing.T) {
	specs, err := ParseVizSuffix("VISUALISE AS PLOT WITH point USING x = x, y = y")
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 1 {
		t.Fatalf("len(specs) = %d, want 1", len(specs))
	}
	spec := specs[0]
	if spec.VizType != "PLOT" {
		t.Fatalf("VizType = %q", spec.VizType)
	}
	if len(spec.Layers) != 1 || spec.Layers[0].Geom != ast.GeomPoint {
		t.Fatalf("Layers = %v", spec.Layers)
	}
	xExpr, ok := spec.Layers[0].Mappings.Get("x")
	if !ok || xExpr.Kind != ast.MappingColumn || xExpr.Column != "x" {
		t.Fatalf("mapping x = %v, %v", xExpr, ok)
	}
}

func TestParseMultiLayer(t *testing.T) {
	query := `VISUALISE AS PLOT
		WITH line USING x = x, y = y
		WITH point USING x = x, y = z, color = 'red'`
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 1 || len(specs[0].Layers) != 2 {
		t.Fatalf("specs = %v", specs)
	}
	if specs[0].Layers[0].Geom != ast.GeomLine || specs[0].Layers[1].Geom != ast.GeomPoint {
		t.Fatalf("layer geoms wrong: %v", specs[0].Layers)
	}
	colorExpr, ok := specs[0].Layers[1].Mappings.Get("color")
	if !ok || colorExpr.Kind != ast.MappingLiteral || colorExpr.Literal.Str != "red" {
		t.Fatalf("color mapping = %v, %v", colorExpr, ok)
	}
}

func TestParseWildcardMapping(t *testing.T) {
	specs, err := ParseVizSuffix("VISUALISE AS PLOT WITH point USING x = *, y = *")
	if err != nil {
		t.Fatal(err)
	}
	xExpr, _ := specs[0].Layers[0].Mappings.Get("x")
	if xExpr.Kind != ast.MappingWildcard {
		t.Fatalf("x mapping kind = %v, want wildcard", xExpr.Kind)
	}
}

func TestParseScaleClause(t *testing.T) {
	query := `VISUALISE AS PLOT WITH point USING x = x, y = y
		SCALE log x FROM [1, NULL] TO [0, 100] VIA natural SETTING base: 10`
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	sc, ok := specs[0].Scales["x"]
	if !ok {
		t.Fatal("no x scale")
	}
	if sc.ScaleType == nil || *sc.ScaleType != ast.ScaleLog {
		t.Fatalf("ScaleType = %v", sc.ScaleType)
	}
	if len(sc.InputRange) != 2 || sc.InputRange[0].Num != 1 || !sc.InputRange[1].IsNull() {
		t.Fatalf("InputRange = %v", sc.InputRange)
	}
	if sc.OutputRange == nil || sc.OutputRange.Kind != ast.OutputArray || len(sc.OutputRange.Array) != 2 {
		t.Fatalf("OutputRange = %v", sc.OutputRange)
	}
	if sc.TransformMethod == nil || *sc.TransformMethod != "natural" {
		t.Fatalf("TransformMethod = %v", sc.TransformMethod)
	}
	base, ok := sc.Properties["base"]
	if !ok || base.Num != 10 {
		t.Fatalf("Properties[base] = %v, %v", base, ok)
	}
}

func TestParseScaleWithPaletteOutput(t *testing.T) {
	query := "VISUALISE AS PLOT WITH point USING x = x, y = y, color = region SCALE color TO viridis"
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	sc := specs[0].Scales["color"]
	if sc.OutputRange == nil || sc.OutputRange.Kind != ast.OutputPalette || sc.OutputRange.Palette != "viridis" {
		t.Fatalf("OutputRange = %v", sc.OutputRange)
	}
}

func TestParseGuideClause(t *testing.T) {
	query := "VISUALISE AS PLOT WITH point USING x = x, y = y, color = region GUIDE color legend SETTING title: 'Region'"
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := specs[0].Guides["color"]
	if !ok {
		t.Fatal("no color guide")
	}
	if g.GuideType == nil || *g.GuideType != ast.GuideLegend {
		t.Fatalf("GuideType = %v", g.GuideType)
	}
	if v, ok := g.Properties["title"]; !ok || v.Str != "Region" {
		t.Fatalf("Properties[title] = %v, %v", v, ok)
	}
}

func TestParseLabelClause(t *testing.T) {
	query := "VISUALISE AS PLOT WITH point USING x = x, y = y LABEL title = 'My Plot', x = 'X Axis'"
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	labels := specs[0].Labels
	if labels.Title != "My Plot" {
		t.Fatalf("Title = %q", labels.Title)
	}
	if labels.Axis["x"] != "X Axis" {
		t.Fatalf("Axis[x] = %q", labels.Axis["x"])
	}
}

func TestParseFacetClause(t *testing.T) {
	query := "VISUALISE AS PLOT WITH point USING x = x, y = y FACET WRAP region"
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	fs := specs[0].Facets
	if fs == nil || fs.Kind != ast.FacetWrap || fs.Rows != "region" {
		t.Fatalf("Facets = %v", fs)
	}
}

func TestParseGlobalMappingClause(t *testing.T) {
	query := "VISUALISE AS PLOT WITH point USING y = value MAPPING x = time"
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := specs[0].GlobalMappings.Get("x")
	if !ok || v.Column != "time" {
		t.Fatalf("GlobalMappings[x] = %v, %v", v, ok)
	}
}

func TestParseLayerWithOwnSource(t *testing.T) {
	query := "VISUALISE AS PLOT WITH point FROM 'extra.csv' USING x = a, y = b"
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	src := specs[0].Layers[0].Source
	if src == nil || src.Kind != ast.SourceFilePath || src.Value != "'extra.csv'" {
		t.Fatalf("Source = %v", src)
	}
}

func TestParseNoWithClauseErrors(t *testing.T) {
	_, err := ParseVizSuffix("VISUALISE AS PLOT LABEL title = 'oops'")
	if err == nil {
		t.Fatal("expected error for missing WITH clause")
	}
	if !ast.IsKind(err, ast.ParseErrorKind) {
		t.Fatalf("err kind = %v", err)
	}
}

func TestParseMultipleVisualiseStatements(t *testing.T) {
	query := "VISUALISE AS PLOT WITH point USING x = a, y = b VISUALISE AS PLOT WITH bar USING x = c, y = d"
	specs, err := ParseVizSuffix(query)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 2 {
		t.Fatalf("len(specs) = %d, want 2", len(specs))
	}
}
