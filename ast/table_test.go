package ast

import (
	"testing"
	"time"
)

func TestColumnFloats(t *testing.T) {
	c := &Column{Name: "x", DType: Int64, Raw: []any{float64(1), float64(2), float64(3)}}
	got, ok := c.Floats()
	if !ok {
		t.Fatal("Floats() ok = false, want true")
	}
	if len(got) != 3 || got[1] != 2 {
		t.Fatalf("Floats() = %v", got)
	}
}

func TestColumnFloatsRejectsNonNumeric(t *testing.T) {
	c := &Column{Name: "x", DType: String, Raw: []any{"a", "b"}}
	if _, ok := c.Floats(); ok {
		t.Fatal("Floats() ok = true for string column")
	}
}

func TestColumnTimes(t *testing.T) {
	now := time.Now()
	c := &Column{Name: "d", DType: Date, Raw: []any{now}}
	got, ok := c.Times()
	if !ok || len(got) != 1 || !got[0].Equal(now) {
		t.Fatalf("Times() = %v, %v", got, ok)
	}
}

func TestTableColumnLookup(t *testing.T) {
	tbl := &Table{Name: "t", Columns: []*Column{
		{Name: "a", DType: Float64, Raw: []any{float64(1)}},
		{Name: "b", DType: String, Raw: []any{"x"}},
	}}
	if got := tbl.ColumnNames(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("ColumnNames() = %v", got)
	}
	if _, ok := tbl.Column("missing"); ok {
		t.Fatal("Column(missing) ok = true")
	}
	if c, ok := tbl.Column("b"); !ok || c.DType != String {
		t.Fatalf("Column(b) = %v, %v", c, ok)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
}

func TestMergeWithInferred(t *testing.T) {
	user := []ArrayElement{Null(), Number(100)}
	inferred := []ArrayElement{Number(0), Number(50)}
	got := MergeWithInferred(user, inferred)
	if got[0].Num != 0 || got[1].Num != 100 {
		t.Fatalf("MergeWithInferred() = %v", got)
	}
}
