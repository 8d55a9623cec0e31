package render

import (
	"testing"

	"github.com/georgestagg/ggsql/ast"
)

func sampleTable() *ast.Table {
	return &ast.Table{
		Name: "t",
		Columns: []*ast.Column{
			{Name: "x", DType: ast.Float64, Raw: []any{float64(1), float64(2), float64(3)}},
			{Name: "region", DType: ast.String, Raw: []any{"east", "west", "east"}},
		},
	}
}

func TestColumnForReturnsMappedColumnName(t *testing.T) {
	layer := ast.NewLayer(ast.GeomPoint)
	layer.Mappings.Set("x", ast.ColumnRef("x"))

	name, ok := columnFor(layer, "x")
	if !ok || name != "x" {
		t.Fatalf("columnFor(x) = %q, %v", name, ok)
	}
}

func TestColumnForIgnoresNonColumnMappings(t *testing.T) {
	layer := ast.NewLayer(ast.GeomPoint)
	layer.Mappings.Set("color", ast.LiteralExpr(ast.Str("steelblue")))

	if _, ok := columnFor(layer, "color"); ok {
		t.Fatal("columnFor should not resolve a literal mapping")
	}
}

func TestColumnForMissingAestheticIsAbsent(t *testing.T) {
	layer := ast.NewLayer(ast.GeomPoint)
	if _, ok := columnFor(layer, "y"); ok {
		t.Fatal("columnFor should report absent for an unset aesthetic")
	}
}

func TestToGroupingConvertsNumericAndStringColumns(t *testing.T) {
	grouping, err := toGrouping(sampleTable())
	if err != nil {
		t.Fatal(err)
	}
	if grouping == nil {
		t.Fatal("expected a non-nil table.Grouping")
	}
}

func TestToGroupingRejectsWrongRawType(t *testing.T) {
	tbl := &ast.Table{
		Name: "bad",
		Columns: []*ast.Column{
			{Name: "x", DType: ast.Float64, Raw: []any{"not-a-float"}},
		},
	}
	_, err := toGrouping(tbl)
	if err == nil {
		t.Fatal("expected error for non-float64 raw value in a numeric column")
	}
	if !ast.IsKind(err, ast.InternalErrorKind) {
		t.Fatalf("err kind = %v, want InternalErrorKind", err)
	}
}

func TestSVGNoLayersIsInternalError(t *testing.T) {
	spec := ast.NewVizSpec()
	var discard discardWriter
	err := SVG(discard, spec, map[string]*ast.Table{}, DefaultOptions)
	if !ast.IsKind(err, ast.InternalErrorKind) {
		t.Fatalf("err kind = %v, want InternalErrorKind", err)
	}
}

func TestSVGMissingBoundTableIsInternalError(t *testing.T) {
	spec := ast.NewVizSpec()
	spec.Layers = append(spec.Layers, ast.NewLayer(ast.GeomPoint))

	var discard discardWriter
	err := SVG(discard, spec, map[string]*ast.Table{}, DefaultOptions)
	if !ast.IsKind(err, ast.InternalErrorKind) {
		t.Fatalf("err kind = %v, want InternalErrorKind", err)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
