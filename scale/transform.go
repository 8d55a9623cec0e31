// Package scale implements the transform family and scale-type
// registry: the pure-math layer that sits between a resolved input
// range and the rendered domain/breaks a renderer-neutral chart spec
// exposes.
package scale

import (
	"math"

	moremath "github.com/aclements/go-moremath/scale"
)

// TransformKind tags which variant of Transform a value is. The set is
// closed; new transforms are added here, not by an open interface
// hierarchy.
type TransformKind int

const (
	Identity TransformKind = iota
	Linear
	Log
	Sqrt
	Reverse
)

func (k TransformKind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Linear:
		return "linear"
	case Log:
		return "log"
	case Sqrt:
		return "sqrt"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Transform is a monotone forward/inverse function pair over a scale's
// input axis, plus break generation for axis ticks.
type Transform interface {
	Kind() TransformKind
	Name() string
	AllowedDomain() (min, max float64)
	InDomain(v float64) bool
	Forward(v float64) float64
	Inverse(v float64) float64
	Breaks(min, max float64, nHint int, pretty bool) []float64
	MinorBreaks(majors []float64, nHint int, extent *[2]float64) []float64
	DefaultMinorBreakCount() int
}

type identityTransform struct{}

// NewIdentity returns the identity transform: forward and inverse are
// both the identity function.
func NewIdentity() Transform { return identityTransform{} }

func (identityTransform) Kind() TransformKind                  { return Identity }
func (identityTransform) Name() string                         { return "identity" }
func (identityTransform) AllowedDomain() (float64, float64)     { return math.Inf(-1), math.Inf(1) }
func (identityTransform) InDomain(v float64) bool               { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func (identityTransform) Forward(v float64) float64             { return v }
func (identityTransform) Inverse(v float64) float64             { return v }
func (identityTransform) DefaultMinorBreakCount() int           { return 8 }
func (t identityTransform) Breaks(min, max float64, nHint int, pretty bool) []float64 {
	return linearBreaks(min, max, nHint, pretty)
}
func (t identityTransform) MinorBreaks(majors []float64, nHint int, extent *[2]float64) []float64 {
	return linearMinorBreaks(majors, nHint)
}

type linearTransform struct{}

// NewLinear returns the linear transform. It behaves identically to
// Identity at the value level; the distinction is the tag exposed to
// callers that branch on TransformKind.
func NewLinear() Transform { return linearTransform{} }

func (linearTransform) Kind() TransformKind                  { return Linear }
func (linearTransform) Name() string                         { return "linear" }
func (linearTransform) AllowedDomain() (float64, float64)     { return math.Inf(-1), math.Inf(1) }
func (linearTransform) InDomain(v float64) bool               { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func (linearTransform) Forward(v float64) float64             { return v }
func (linearTransform) Inverse(v float64) float64             { return v }
func (linearTransform) DefaultMinorBreakCount() int           { return 8 }
func (t linearTransform) Breaks(min, max float64, nHint int, pretty bool) []float64 {
	return linearBreaks(min, max, nHint, pretty)
}
func (t linearTransform) MinorBreaks(majors []float64, nHint int, extent *[2]float64) []float64 {
	return linearMinorBreaks(majors, nHint)
}

type sqrtTransform struct{}

// NewSqrt returns the square-root transform, defined on [0, +inf).
func NewSqrt() Transform { return sqrtTransform{} }

func (sqrtTransform) Kind() TransformKind              { return Sqrt }
func (sqrtTransform) Name() string                     { return "sqrt" }
func (sqrtTransform) AllowedDomain() (float64, float64) { return 0, math.Inf(1) }
func (sqrtTransform) InDomain(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && !math.IsInf(v, 1)
}
func (sqrtTransform) Forward(v float64) float64   { return math.Sqrt(v) }
func (sqrtTransform) Inverse(v float64) float64   { return v * v }
func (sqrtTransform) DefaultMinorBreakCount() int { return 8 }
func (t sqrtTransform) Breaks(min, max float64, nHint int, pretty bool) []float64 {
	return linearBreaks(min, max, nHint, pretty)
}
func (t sqrtTransform) MinorBreaks(majors []float64, nHint int, extent *[2]float64) []float64 {
	return linearMinorBreaks(majors, nHint)
}

type reverseTransform struct{}

// NewReverse returns the reverse transform: fwd(x) = inv(x) = -x.
func NewReverse() Transform { return reverseTransform{} }

func (reverseTransform) Kind() TransformKind              { return Reverse }
func (reverseTransform) Name() string                     { return "reverse" }
func (reverseTransform) AllowedDomain() (float64, float64) { return math.Inf(-1), math.Inf(1) }
func (reverseTransform) InDomain(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
func (reverseTransform) Forward(v float64) float64   { return -v }
func (reverseTransform) Inverse(v float64) float64   { return -v }
func (reverseTransform) DefaultMinorBreakCount() int { return 8 }
func (t reverseTransform) Breaks(min, max float64, nHint int, pretty bool) []float64 {
	return linearBreaks(min, max, nHint, pretty)
}
func (t reverseTransform) MinorBreaks(majors []float64, nHint int, extent *[2]float64) []float64 {
	return linearMinorBreaks(majors, nHint)
}

// logTransform is the generic Log(base b) transform. Every constructor
// (NewLog, LogBase10, LogBase2, LogNatural) sets kind to Log; the base
// is told apart only by name ("log", "log10", "log2", "ln"). There are
// no separate kind tags per base.
type logTransform struct {
	base float64
	kind TransformKind
	name string
}

// NewLog constructs a Log(base b) transform. base <= 0 or base == 1 is
// a programmer error, so callers that cannot guarantee a valid base
// should validate before calling this.
func NewLog(base float64) Transform {
	if base <= 0 || base == 1 {
		panic("scale: Log base must be > 0 and != 1")
	}
	return logTransform{base: base, kind: Log, name: "log"}
}

// LogBase10 returns the Log transform with base 10.
func LogBase10() Transform { return logTransform{base: 10, kind: Log, name: "log10"} }

// LogBase2 returns the Log transform with base 2.
func LogBase2() Transform { return logTransform{base: 2, kind: Log, name: "log2"} }

// LogNatural returns the Log transform with base e.
func LogNatural() Transform { return logTransform{base: math.E, kind: Log, name: "ln"} }

func (t logTransform) Kind() TransformKind              { return t.kind }
func (t logTransform) Name() string                     { return t.name }
func (logTransform) AllowedDomain() (float64, float64)  { return 0, math.Inf(1) }
func (logTransform) InDomain(v float64) bool {
	return !math.IsNaN(v) && v > 0 && !math.IsInf(v, 1)
}
func (t logTransform) Forward(v float64) float64 { return math.Log(v) / math.Log(t.base) }
func (t logTransform) Inverse(v float64) float64 { return math.Pow(t.base, v) }
func (t logTransform) DefaultMinorBreakCount() int { return 8 }

// Breaks places majors at integer powers of the base spanning
// [min, max]; if pretty is set and n_hint is at least the number of
// decades, 1-2-5 intra-decade breaks are interleaved. Only base 10
// gets intra-decade breaks; other bases keep just the powers.
func (t logTransform) Breaks(min, max float64, nHint int, pretty bool) []float64 {
	if min <= 0 || max <= 0 || min > max {
		return nil
	}
	loExp := int(math.Floor(t.Forward(min)))
	hiExp := int(math.Ceil(t.Forward(max)))
	decades := hiExp - loExp
	var out []float64
	for e := loExp; e <= hiExp; e++ {
		out = append(out, math.Pow(t.base, float64(e)))
	}
	if nHint >= decades && pretty {
		out = interleaveIntraDecade(out, t.base)
	}
	return out
}

// MinorBreaks computes geometric means between consecutive majors. If
// n == 1 a single midpoint per gap is produced; otherwise n points are
// spaced evenly in log space across each gap. When extent is supplied
// the minors are extended one decade below and above the major range.
func (t logTransform) MinorBreaks(majors []float64, nHint int, extent *[2]float64) []float64 {
	if nHint <= 0 {
		nHint = t.DefaultMinorBreakCount()
	}
	ms := majors
	if extent != nil && len(ms) > 0 {
		below := ms[0] / t.base
		above := ms[len(ms)-1] * t.base
		ms = append([]float64{below}, ms...)
		ms = append(ms, above)
	}
	var minors []float64
	for i := 0; i+1 < len(ms); i++ {
		lo, hi := t.Forward(ms[i]), t.Forward(ms[i+1])
		if nHint == 1 {
			minors = append(minors, t.Inverse((lo+hi)/2))
			continue
		}
		step := (hi - lo) / float64(nHint+1)
		for j := 1; j <= nHint; j++ {
			minors = append(minors, t.Inverse(lo+step*float64(j)))
		}
	}
	return minors
}

func interleaveIntraDecade(majors []float64, base float64) []float64 {
	if base != 10 {
		return majors
	}
	mult := []float64{1, 2, 5}
	var out []float64
	for i, m := range majors {
		out = append(out, m)
		if i+1 < len(majors) {
			for _, mm := range mult[1:] {
				out = append(out, m*mm)
			}
		}
	}
	return out
}

// linearBreaks implements the pretty 1-2-5 break algorithm shared by
// Identity, Linear, Sqrt, and Reverse. The search for the coarsest step
// that keeps the tick count within nHint is delegated to
// go-moremath/scale's TickOptions.FindLevel.
func linearBreaks(min, max float64, nHint int, pretty bool) []float64 {
	if nHint <= 0 {
		nHint = 5
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		return []float64{min}
	}
	if !pretty {
		step := (max - min) / float64(nHint)
		return ticksAtStep(min, max, step)
	}

	rawStep := (max - min) / float64(nHint)
	guess := level125(rawStep)

	opts := moremath.TickOptions{Max: nHint + 1}
	level, ok := opts.FindLevel(
		func(l int) int { return len(ticksAtStep(min, max, step125(l))) },
		func(l int) []float64 { return ticksAtStep(min, max, step125(l)) },
		guess,
	)
	if !ok {
		level = guess
	}
	return ticksAtStep(min, max, step125(level))
}

// step125 maps a tick "level" to a step size following the 1-2-5-10
// pretty-number cadence: level 0 is step 1, level 1 is step 2, level 2
// is step 5, level 3 is step 10, and so on (negative levels shrink by
// the same cadence below 1).
func step125(level int) float64 {
	decade := math.Floor(float64(level) / 3)
	switch ((level % 3) + 3) % 3 {
	case 0:
		return 1 * math.Pow(10, decade)
	case 1:
		return 2 * math.Pow(10, decade)
	default:
		return 5 * math.Pow(10, decade)
	}
}

// level125 returns a starting level guess for step125 closest to raw.
func level125(raw float64) int {
	if raw <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(raw))
	frac := raw / math.Pow(10, exp)
	sub := 0
	switch {
	case frac <= 1:
		sub = 0
	case frac <= 2:
		sub = 1
	default:
		sub = 2
	}
	return int(exp)*3 + sub
}

func ticksAtStep(min, max, step float64) []float64 {
	if step <= 0 {
		return []float64{min}
	}
	start := math.Floor(min/step) * step
	var out []float64
	for v := start; v <= max+step/2; v += step {
		if v >= min-step/2 {
			out = append(out, roundNear(v, step))
		}
	}
	return out
}

func roundNear(v, step float64) float64 {
	if step == 0 {
		return v
	}
	return math.Round(v/step) * step
}

func linearMinorBreaks(majors []float64, nHint int) []float64 {
	if len(majors) < 2 {
		return nil
	}
	if nHint <= 0 {
		nHint = 8
	}
	var out []float64
	for i := 0; i+1 < len(majors); i++ {
		lo, hi := majors[i], majors[i+1]
		step := (hi - lo) / float64(nHint+1)
		for j := 1; j <= nHint; j++ {
			out = append(out, lo+step*float64(j))
		}
	}
	return out
}
