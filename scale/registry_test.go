package scale

import (
	"testing"

	"github.com/georgestagg/ggsql/ast"
)

func TestContinuousInfersGlobalMinMax(t *testing.T) {
	cols := []*ast.Column{
		{Name: "x", DType: ast.Float64, Raw: []any{float64(3), float64(1)}},
		{Name: "y", DType: ast.Float64, Raw: []any{float64(10), float64(-2)}},
	}
	ct := ForTag(ast.ScaleContinuous)
	got, ok := ct.ResolveInputRange(nil, cols)
	if !ok {
		t.Fatal("ResolveInputRange ok = false")
	}
	if got[0].Num != -2 || got[1].Num != 10 {
		t.Fatalf("ResolveInputRange = %v", got)
	}
}

func TestContinuousAllowsNumericOnly(t *testing.T) {
	ct := ForTag(ast.ScaleContinuous)
	if !ct.AllowsDataType(ast.Int32) || !ct.AllowsDataType(ast.Float64) {
		t.Fatal("Continuous should allow numeric dtypes")
	}
	if ct.AllowsDataType(ast.String) {
		t.Fatal("Continuous should not allow string")
	}
}

func TestDiscreteDistinctValuesFirstSeenOrder(t *testing.T) {
	cols := []*ast.Column{
		{Name: "g", DType: ast.String, Raw: []any{"b", "a", "b", "c"}},
	}
	dt := ForTag(ast.ScaleDiscrete)
	got, ok := dt.ResolveInputRange(nil, cols)
	if !ok {
		t.Fatal("ResolveInputRange ok = false")
	}
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("ResolveInputRange = %v", got)
	}
	for i, w := range want {
		if got[i].Str != w {
			t.Fatalf("ResolveInputRange[%d] = %q, want %q", i, got[i].Str, w)
		}
	}
}

func TestNoInferenceRequiresUserRange(t *testing.T) {
	nt := ForTag(ast.ScaleIdentity)
	if _, ok := nt.ResolveInputRange(nil, nil); ok {
		t.Fatal("Identity scale type should not infer a range")
	}
	user := []ast.ArrayElement{ast.Number(0), ast.Number(1)}
	got, ok := nt.ResolveInputRange(user, nil)
	if !ok || len(got) != 2 {
		t.Fatalf("ResolveInputRange(user) = %v, %v", got, ok)
	}
}

func TestDiscreteDefaultOutputRangeMatchesInputLength(t *testing.T) {
	dt := ForTag(ast.ScaleDiscrete)
	input := []ast.ArrayElement{ast.Str("a"), ast.Str("b"), ast.Str("c")}
	out, ok := dt.DefaultOutputRange("color", input)
	if !ok || len(out) != 3 {
		t.Fatalf("DefaultOutputRange = %v, %v", out, ok)
	}
}

func TestTransformForTagLog10(t *testing.T) {
	tr := TransformForTag(ast.ScaleLog10)
	if tr.Kind() != Log {
		t.Fatalf("TransformForTag(ScaleLog10).Kind() = %v", tr.Kind())
	}
}
