package ast

import "time"

// Column is a narrow, read-only view of one named, typed sequence of
// values. Implementations expose just enough to drive scale inference:
// a name, a dtype tag, and numeric/temporal materialization. Nothing in
// this package exposes a full dataframe runtime.
type Column struct {
	Name  string
	DType DType

	// Raw holds the column's values in whatever representation the
	// executor produced them in. Its element type must agree with
	// DType: float64 for Int*/Uint*/Float*, time.Time for
	// Date/DateTime/Time, string for String, bool for Bool.
	Raw []any
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	return len(c.Raw)
}

// Floats materializes the column as float64s. It succeeds for any
// numeric dtype; non-numeric columns return ok=false.
func (c *Column) Floats() (out []float64, ok bool) {
	if !c.DType.IsNumeric() {
		return nil, false
	}
	out = make([]float64, len(c.Raw))
	for i, v := range c.Raw {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// Times materializes the column as time.Time values. It succeeds for
// any temporal dtype.
func (c *Column) Times() (out []time.Time, ok bool) {
	if !c.DType.IsTemporal() {
		return nil, false
	}
	out = make([]time.Time, len(c.Raw))
	for i, v := range c.Raw {
		t, ok := v.(time.Time)
		if !ok {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}

// Strings materializes the column as strings. Booleans and string
// columns both support this; everything else returns ok=false.
func (c *Column) Strings() (out []string, ok bool) {
	out = make([]string, len(c.Raw))
	for i, v := range c.Raw {
		switch x := v.(type) {
		case string:
			out[i] = x
		case bool:
			if x {
				out[i] = "true"
			} else {
				out[i] = "false"
			}
		default:
			return nil, false
		}
	}
	return out, true
}

// Table is a named, ordered set of columns. The core only ever reads
// tables: it never mutates one it is handed by the executor.
type Table struct {
	Name    string
	Columns []*Column
}

// ColumnNames returns the table's column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Len returns the row count, taken from the first column (0 if the
// table has no columns).
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}
