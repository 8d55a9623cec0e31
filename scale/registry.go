package scale

import (
	"time"

	"github.com/georgestagg/ggsql/ast"
	"github.com/georgestagg/ggsql/palette"
)

// Type is the scale-type registry's capability set: admissibility
// against a column's dtype, input-range inference, and default
// output-range resolution. The set of variants is closed, so this is
// implemented as a handful of concrete types behind the interface
// rather than an open hierarchy.
type Type interface {
	Kind() ast.ScaleTypeTag
	Name() string
	AllowsDataType(dt ast.DType) bool
	ResolveInputRange(userRange []ast.ArrayElement, columns []*ast.Column) ([]ast.ArrayElement, bool)
	DefaultOutputRange(aesthetic string, inputRange []ast.ArrayElement) ([]ast.ArrayElement, bool)
}

// ForTag returns the registered Type for a scale-type tag.
func ForTag(tag ast.ScaleTypeTag) Type {
	switch tag {
	case ast.ScaleContinuous:
		return continuousType{}
	case ast.ScaleDiscrete:
		return discreteType{kind: ast.ScaleDiscrete}
	case ast.ScaleOrdinal:
		return discreteType{kind: ast.ScaleOrdinal}
	case ast.ScaleCategorical:
		return discreteType{kind: ast.ScaleCategorical}
	case ast.ScaleBinned:
		return binnedType{}
	case ast.ScaleDate:
		return temporalType{kind: ast.ScaleDate}
	case ast.ScaleDateTime:
		return temporalType{kind: ast.ScaleDateTime}
	case ast.ScaleTime:
		return temporalType{kind: ast.ScaleTime}
	case ast.ScaleIdentity:
		return noInferenceType{kind: ast.ScaleIdentity}
	case ast.ScaleManual:
		return noInferenceType{kind: ast.ScaleManual}
	case ast.ScaleLinear, ast.ScaleLog, ast.ScaleLog10, ast.ScaleLog2, ast.ScaleSqrt, ast.ScaleReverse:
		// These tags name a transform, not a distinct scale type; the
		// backing scale is continuous and the transform is applied on
		// top of it (see TransformForTag).
		return continuousType{}
	default:
		return continuousType{}
	}
}

// TransformForTag maps a scale-type tag naming a transform shorthand
// (linear/log/log10/log2/sqrt/reverse) to its Transform. Tags that
// name a scale type rather than a transform return Identity.
func TransformForTag(tag ast.ScaleTypeTag) Transform {
	switch tag {
	case ast.ScaleLinear:
		return NewLinear()
	case ast.ScaleLog:
		return NewLog(10)
	case ast.ScaleLog10:
		return LogBase10()
	case ast.ScaleLog2:
		return LogBase2()
	case ast.ScaleSqrt:
		return NewSqrt()
	case ast.ScaleReverse:
		return NewReverse()
	default:
		return NewIdentity()
	}
}

// ForDType picks the default scale type for a column dtype, used when
// a spec leaves the scale_type unstated.
func ForDType(dt ast.DType) ast.ScaleTypeTag {
	switch {
	case dt.IsTemporal():
		switch dt {
		case ast.Date:
			return ast.ScaleDate
		case ast.Time:
			return ast.ScaleTime
		default:
			return ast.ScaleDateTime
		}
	case dt.IsNumeric():
		return ast.ScaleContinuous
	default:
		return ast.ScaleDiscrete
	}
}

// continuousType admits all integer and floating dtypes; inference
// casts every backing column to float64 and takes the global min/max.
type continuousType struct{}

func (continuousType) Kind() ast.ScaleTypeTag { return ast.ScaleContinuous }
func (continuousType) Name() string           { return "continuous" }
func (continuousType) AllowsDataType(dt ast.DType) bool {
	return dt.IsNumeric()
}

func (continuousType) ResolveInputRange(userRange []ast.ArrayElement, columns []*ast.Column) ([]ast.ArrayElement, bool) {
	inferred, ok := computeNumericRange(columns)
	if !ok {
		if userRange != nil {
			return userRange, true
		}
		return nil, false
	}
	if userRange == nil {
		return inferred, true
	}
	return ast.MergeWithInferred(userRange, inferred), true
}

func computeNumericRange(columns []*ast.Column) ([]ast.ArrayElement, bool) {
	have := false
	min, max := 0.0, 0.0
	for _, col := range columns {
		vals, ok := col.Floats()
		if !ok {
			continue
		}
		for _, v := range vals {
			if !have {
				min, max, have = v, v, true
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if !have {
		return nil, false
	}
	return []ast.ArrayElement{ast.Number(min), ast.Number(max)}, true
}

func (continuousType) DefaultOutputRange(aesthetic string, inputRange []ast.ArrayElement) ([]ast.ArrayElement, bool) {
	pal := defaultPaletteFor(aesthetic)
	values := palette.Expand(pal, len(pal.Values))
	return stringsToElements(values), true
}

// discreteType backs Discrete, Ordinal, and Categorical; all three
// admit string and bool columns and share the first-seen
// distinct-value inference rule. Categorical additionally admits
// integer columns; Discrete and Ordinal do not.
type discreteType struct{ kind ast.ScaleTypeTag }

func (d discreteType) Kind() ast.ScaleTypeTag { return d.kind }
func (d discreteType) Name() string {
	switch d.kind {
	case ast.ScaleOrdinal:
		return "ordinal"
	case ast.ScaleCategorical:
		return "categorical"
	default:
		return "discrete"
	}
}

func (d discreteType) AllowsDataType(dt ast.DType) bool {
	if dt == ast.String || dt == ast.Bool {
		return true
	}
	if d.kind == ast.ScaleCategorical && dt.IsInteger() {
		return true
	}
	return false
}

func (discreteType) ResolveInputRange(userRange []ast.ArrayElement, columns []*ast.Column) ([]ast.ArrayElement, bool) {
	inferred, ok := distinctValuesInOrder(columns)
	if !ok {
		if userRange != nil {
			return userRange, true
		}
		return nil, false
	}
	if userRange == nil {
		return inferred, true
	}
	return ast.MergeWithInferred(userRange, inferred), true
}

func distinctValuesInOrder(columns []*ast.Column) ([]ast.ArrayElement, bool) {
	seen := map[string]bool{}
	var out []ast.ArrayElement
	have := false
	for _, col := range columns {
		for _, raw := range col.Raw {
			var el ast.ArrayElement
			switch v := raw.(type) {
			case string:
				el = ast.Str(v)
			case bool:
				el = ast.BoolElement(v)
			case float64:
				el = ast.Number(v)
			default:
				continue
			}
			have = true
			key := el.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, el)
		}
	}
	return out, have
}

func (discreteType) DefaultOutputRange(aesthetic string, inputRange []ast.ArrayElement) ([]ast.ArrayElement, bool) {
	pal := defaultPaletteFor(aesthetic)
	values := palette.Expand(pal, len(inputRange))
	return stringsToElements(values), true
}

// binnedType admits numeric dtypes; inference produces the binning
// boundary sequence by splitting the observed min..max range across
// all columns into 4 equal-width bins (5 boundaries). The bin count is
// fixed; SETTING properties do not change it.
type binnedType struct{}

func (binnedType) Kind() ast.ScaleTypeTag { return ast.ScaleBinned }
func (binnedType) Name() string          { return "binned" }
func (binnedType) AllowsDataType(dt ast.DType) bool {
	return dt.IsNumeric()
}

func (binnedType) ResolveInputRange(userRange []ast.ArrayElement, columns []*ast.Column) ([]ast.ArrayElement, bool) {
	inferred, ok := computeNumericRange(columns)
	if !ok {
		if userRange != nil {
			return userRange, true
		}
		return nil, false
	}
	boundaries := binBoundaries(inferred[0].Num, inferred[1].Num, 4)
	if userRange == nil {
		return boundaries, true
	}
	return ast.MergeWithInferred(userRange, boundaries), true
}

func binBoundaries(min, max float64, n int) []ast.ArrayElement {
	if n <= 0 {
		n = 1
	}
	step := (max - min) / float64(n)
	out := make([]ast.ArrayElement, n+1)
	for i := 0; i <= n; i++ {
		out[i] = ast.Number(min + step*float64(i))
	}
	return out
}

func (binnedType) DefaultOutputRange(aesthetic string, inputRange []ast.ArrayElement) ([]ast.ArrayElement, bool) {
	n := len(inputRange)
	if n > 0 {
		n--
	}
	pal := defaultPaletteFor(aesthetic)
	values := palette.Expand(pal, n)
	return stringsToElements(values), true
}

// temporalType backs Date, DateTime, and Time. Inference reads the
// column's time.Time values, computes global min/max, and formats per
// the variant's layout.
type temporalType struct{ kind ast.ScaleTypeTag }

func (t temporalType) Kind() ast.ScaleTypeTag { return t.kind }
func (t temporalType) Name() string {
	switch t.kind {
	case ast.ScaleDate:
		return "date"
	case ast.ScaleTime:
		return "time"
	default:
		return "datetime"
	}
}

func (t temporalType) AllowsDataType(dt ast.DType) bool {
	switch t.kind {
	case ast.ScaleDate:
		return dt == ast.Date
	case ast.ScaleTime:
		return dt == ast.Time
	default:
		return dt == ast.DateTime
	}
}

func (t temporalType) layout() string {
	switch t.kind {
	case ast.ScaleDate:
		return "2006-01-02"
	case ast.ScaleTime:
		return "15:04:05"
	default:
		return "2006-01-02T15:04:05Z07:00"
	}
}

func (t temporalType) ResolveInputRange(userRange []ast.ArrayElement, columns []*ast.Column) ([]ast.ArrayElement, bool) {
	have := false
	var min, max time.Time
	for _, col := range columns {
		ts, ok := col.Times()
		if !ok {
			continue
		}
		for _, v := range ts {
			if !have {
				min, max, have = v, v, true
				continue
			}
			if v.Before(min) {
				min = v
			}
			if v.After(max) {
				max = v
			}
		}
	}
	if !have {
		if userRange != nil {
			return userRange, true
		}
		return nil, false
	}
	inferred := []ast.ArrayElement{
		ast.Str(min.Format(t.layout())),
		ast.Str(max.Format(t.layout())),
	}
	if userRange == nil {
		return inferred, true
	}
	return ast.MergeWithInferred(userRange, inferred), true
}

func (temporalType) DefaultOutputRange(aesthetic string, inputRange []ast.ArrayElement) ([]ast.ArrayElement, bool) {
	pal := palette.Viridis
	values := palette.Expand(pal, len(pal.Values))
	return stringsToElements(values), true
}

// noInferenceType backs Identity and Manual: both disable inference,
// so input and output ranges must already be present on the Scale.
type noInferenceType struct{ kind ast.ScaleTypeTag }

func (n noInferenceType) Kind() ast.ScaleTypeTag { return n.kind }
func (n noInferenceType) Name() string {
	if n.kind == ast.ScaleIdentity {
		return "identity"
	}
	return "manual"
}
func (noInferenceType) AllowsDataType(dt ast.DType) bool { return true }

func (noInferenceType) ResolveInputRange(userRange []ast.ArrayElement, columns []*ast.Column) ([]ast.ArrayElement, bool) {
	if userRange == nil {
		return nil, false
	}
	return userRange, true
}

func (noInferenceType) DefaultOutputRange(aesthetic string, inputRange []ast.ArrayElement) ([]ast.ArrayElement, bool) {
	return nil, false
}

func defaultPaletteFor(aesthetic string) palette.Palette {
	if aesthetic == "shape" {
		return palette.DefaultShape
	}
	return palette.DefaultColor
}

func stringsToElements(ss []string) []ast.ArrayElement {
	out := make([]ast.ArrayElement, len(ss))
	for i, s := range ss {
		out[i] = ast.Str(s)
	}
	return out
}
