package reader

import (
	"bufio"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/georgestagg/ggsql/ast"
)

// sampleCSV is a small bundled penguins dataset so the CLI and tests
// have something to query without a live database.
//
//go:embed testdata/penguins_sample.csv
var sampleCSV string

// SampleExecutor returns an Executor that ignores its sql argument
// entirely and always serves the bundled "penguins" sample table.
func SampleExecutor() func(sqlText string) (*ast.Table, error) {
	return func(string) (*ast.Table, error) {
		return parseSampleCSV(sampleCSV)
	}
}

func parseSampleCSV(csv string) (*ast.Table, error) {
	scanner := bufio.NewScanner(strings.NewReader(csv))
	if !scanner.Scan() {
		return nil, fmt.Errorf("reader: empty sample dataset")
	}
	header := strings.Split(scanner.Text(), ",")

	raws := make([][]any, len(header))
	dtypes := make([]ast.DType, len(header))
	for i := range dtypes {
		dtypes[i] = ast.String
	}

	var rows [][]string
	for scanner.Scan() {
		rows = append(rows, strings.Split(scanner.Text(), ","))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reader: scan sample dataset: %w", err)
	}

	for col := range header {
		dtypes[col] = inferColumnDType(rows, col)
	}

	for _, row := range rows {
		for col := range header {
			if col >= len(row) {
				continue
			}
			raws[col] = append(raws[col], cellValue(row[col], dtypes[col]))
		}
	}

	columns := make([]*ast.Column, len(header))
	for i, name := range header {
		columns[i] = &ast.Column{Name: strings.TrimSpace(name), DType: dtypes[i], Raw: raws[i]}
	}
	return &ast.Table{Name: "penguins", Columns: columns}, nil
}

func inferColumnDType(rows [][]string, col int) ast.DType {
	allNumeric := len(rows) > 0
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		return ast.Float64
	}
	return ast.String
}

func cellValue(s string, dtype ast.DType) any {
	if dtype.IsNumeric() {
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	return s
}
