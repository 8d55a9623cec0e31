// Package reader provides concrete ggsql.Executor implementations over
// database/sql, one per supported engine.
package reader

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/georgestagg/ggsql/ast"
)

// driverName maps a VizQL-facing engine name to the database/sql driver
// it was registered under by each driver package's own init().
var driverName = map[string]string{
	"sqlite":   "sqlite",
	"mysql":    "mysql",
	"postgres": "pgx",
}

// DB wraps a single *sql.DB connection and exposes it as a
// ggsql.Executor: the core never sees the connection itself, only the
// fn(sql) -> (*ast.Table, error) capability.
type DB struct {
	conn   *sql.DB
	engine string
}

// Open connects to engine at dsn and pings it so connection failures
// surface immediately rather than on the first query.
func Open(engine, dsn string) (*DB, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, fmt.Errorf("reader: no driver registered for engine %q", engine)
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("reader: open %s: %w", engine, err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("reader: ping %s: %w", engine, err)
	}
	return &DB{conn: conn, engine: engine}, nil
}

// Close releases the underlying connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Executor returns the ggsql.Executor backed by this connection. Its
// signature matches ggsql.Executor exactly but reader does not import
// the root package, to keep the dependency edge pointing one way
// (ggsql wires reader, not the reverse).
func (d *DB) Executor() func(sqlText string) (*ast.Table, error) {
	return func(sqlText string) (*ast.Table, error) {
		rows, err := d.conn.Query(sqlText)
		if err != nil {
			return nil, fmt.Errorf("reader: query: %w", err)
		}
		defer rows.Close()
		return scanTable(rows)
	}
}

// scanTable materializes *sql.Rows into an *ast.Table, inferring each
// column's DType from the driver-reported column type.
func scanTable(rows *sql.Rows) (*ast.Table, error) {
	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("reader: column types: %w", err)
	}

	dtypes := make([]ast.DType, len(cols))
	for i, c := range cols {
		dtypes[i] = dtypeFor(c)
	}

	raws := make([][]any, len(cols))
	for rows.Next() {
		scanDest := make([]any, len(cols))
		for i := range scanDest {
			scanDest[i] = new(any)
		}
		if err := rows.Scan(scanDest...); err != nil {
			return nil, fmt.Errorf("reader: scan: %w", err)
		}
		for i, dest := range scanDest {
			v := *(dest.(*any))
			raws[i] = append(raws[i], normalize(v, dtypes[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reader: rows: %w", err)
	}

	columns := make([]*ast.Column, len(cols))
	for i, c := range cols {
		columns[i] = &ast.Column{Name: c.Name(), DType: dtypes[i], Raw: raws[i]}
	}
	return &ast.Table{Name: "query_result", Columns: columns}, nil
}

// dtypeFor maps a driver's reported column type to ast's closed DType
// set. Drivers vary widely in DatabaseTypeName casing and vocabulary,
// so this is a best-effort classification, not an exhaustive mapping.
func dtypeFor(c *sql.ColumnType) ast.DType {
	switch c.DatabaseTypeName() {
	case "INT", "INTEGER", "TINYINT", "SMALLINT", "MEDIUMINT", "INT4", "INT2":
		return ast.Int64
	case "BIGINT", "INT8":
		return ast.Int64
	case "FLOAT", "REAL", "FLOAT4":
		return ast.Float32
	case "DOUBLE", "DOUBLE PRECISION", "NUMERIC", "DECIMAL", "FLOAT8":
		return ast.Float64
	case "DATE":
		return ast.Date
	case "DATETIME", "TIMESTAMP", "TIMESTAMPTZ":
		return ast.DateTime
	case "TIME":
		return ast.Time
	case "BOOL", "BOOLEAN":
		return ast.Bool
	default:
		return ast.String
	}
}

// normalize converts a driver-returned value into the representation
// ast.Column.Raw promises for its DType: float64 for numeric, string
// for everything else that isn't already time.Time/bool.
func normalize(v any, dtype ast.DType) any {
	if v == nil {
		if dtype.IsNumeric() {
			return float64(0)
		}
		if dtype.IsTemporal() {
			return time.Time{}
		}
		return ""
	}
	switch x := v.(type) {
	case []byte:
		if dtype.IsNumeric() {
			var f float64
			fmt.Sscanf(string(x), "%g", &f)
			return f
		}
		return string(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case bool:
		return x
	case string:
		return x
	case time.Time:
		return x
	default:
		return fmt.Sprint(x)
	}
}
