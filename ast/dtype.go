package ast

// DType tags the physical type of a Column. The set is closed: every
// scale type's admissibility check (see package scale) switches over
// these values rather than any open type system.
type DType int

const (
	Int8 DType = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Date
	DateTime
	Time
	String
	Bool
)

func (d DType) String() string {
	switch d {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case Time:
		return "time"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsInteger reports whether d is one of the signed or unsigned integer
// widths.
func (d DType) IsInteger() bool {
	switch d {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsFloat reports whether d is float32 or float64.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

// IsNumeric reports whether d can be cast to float64 for a continuous
// scale.
func (d DType) IsNumeric() bool {
	return d.IsInteger() || d.IsFloat()
}

// IsTemporal reports whether d is one of Date, DateTime, or Time.
func (d DType) IsTemporal() bool {
	return d == Date || d == DateTime || d == Time
}
