package parser

import (
	"strings"
	"testing"
)

func TestSplitSimple(t *testing.T) {
	sql, viz, err := Split("SELECT * FROM data VISUALISE AS PLOT WITH point USING x = x, y = y")
	if err != nil {
		t.Fatal(err)
	}
	if sql != "SELECT * FROM data" {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, "VISUALISE AS PLOT") || !strings.Contains(viz, "WITH point") {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitCaseInsensitive(t *testing.T) {
	sql, viz, err := Split("SELECT * FROM data visualise as plot WITH point USING x = x, y = y")
	if err != nil {
		t.Fatal(err)
	}
	if sql != "SELECT * FROM data" {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, "visualise as plot") {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitNoVisualise(t *testing.T) {
	query := "SELECT * FROM data WHERE x > 5"
	sql, viz, err := Split(query)
	if err != nil {
		t.Fatal(err)
	}
	if sql != query || viz != "" {
		t.Fatalf("sql = %q, viz = %q", sql, viz)
	}
}

func TestSplitVisualiseFromNoSQL(t *testing.T) {
	sql, viz, err := Split("VISUALISE FROM mtcars AS PLOT WITH point USING x = mpg, y = hp")
	if err != nil {
		t.Fatal(err)
	}
	if sql != "SELECT * FROM mtcars" {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, "VISUALISE FROM mtcars") {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitVisualiseFromWithCTE(t *testing.T) {
	sql, viz, err := Split("WITH cte AS (SELECT * FROM x) VISUALISE FROM cte AS PLOT WITH point USING x = a, y = b")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sql, "WITH cte AS (SELECT * FROM x)") || !strings.Contains(sql, "SELECT * FROM cte") {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, "VISUALISE FROM cte") {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitVisualiseFromAfterNonWithErrors(t *testing.T) {
	_, _, err := Split("SELECT 1 VISUALISE FROM cte AS PLOT")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "VISUALISE FROM can only be used standalone or after WITH") {
		t.Fatalf("err = %v", err)
	}
}

func TestSplitVisualiseAsNoInjection(t *testing.T) {
	sql, _, err := Split("SELECT * FROM x VISUALISE AS PLOT WITH point USING x = a, y = b")
	if err != nil {
		t.Fatal(err)
	}
	if sql != "SELECT * FROM x" {
		t.Fatalf("sql = %q", sql)
	}
	if strings.Contains(sql, "SELECT * FROM SELECT") {
		t.Fatal("double-injected")
	}
}

func TestSplitVisualiseFromFilePathSingleQuotes(t *testing.T) {
	sql, viz, err := Split("VISUALISE FROM 'mtcars.csv' AS PLOT WITH point USING x = mpg, y = hp")
	if err != nil {
		t.Fatal(err)
	}
	if sql != "SELECT * FROM 'mtcars.csv'" {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, "VISUALISE FROM 'mtcars.csv'") {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitVisualiseFromFilePathDoubleQuotes(t *testing.T) {
	sql, viz, err := Split(`VISUALISE FROM "data/sales.parquet" AS PLOT WITH bar USING x = region, y = total`)
	if err != nil {
		t.Fatal(err)
	}
	if sql != `SELECT * FROM "data/sales.parquet"` {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, `VISUALISE FROM "data/sales.parquet"`) {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitHandlesMultiByteStringBeforeVisualise(t *testing.T) {
	sql, viz, err := Split("SELECT * FROM data WHERE city = 'München' VISUALISE AS PLOT WITH point USING x = x, y = y")
	if err != nil {
		t.Fatal(err)
	}
	if sql != "SELECT * FROM data WHERE city = 'München'" {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, "VISUALISE AS PLOT") {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitHandlesMultiByteCommentBeforeVisualise(t *testing.T) {
	sql, viz, err := Split("SELECT * FROM data -- café\nVISUALISE AS PLOT WITH point USING x = x, y = y")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sql, "-- café") {
		t.Fatalf("sql = %q", sql)
	}
	if !strings.HasPrefix(viz, "VISUALISE AS PLOT") {
		t.Fatalf("viz = %q", viz)
	}
}

func TestSplitVisualiseFromFilePathWithCTE(t *testing.T) {
	sql, _, err := Split("WITH prep AS (SELECT * FROM 'raw.csv' WHERE year = 2024) VISUALISE FROM prep AS PLOT WITH line USING x = date, y = value")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sql, "WITH prep AS") || !strings.Contains(sql, "SELECT * FROM prep") || !strings.Contains(sql, "'raw.csv'") {
		t.Fatalf("sql = %q", sql)
	}
}
