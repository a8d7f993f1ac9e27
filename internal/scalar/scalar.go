package scalar

import "math"

// Value is the capability a scalar type must offer so the mixture formulas
// can be written once for plain and differentiable evaluation. All methods
// are value-semantics: they return a new scalar and leave the receiver
// untouched.
type Value[T any] interface {
	// FromFloat lifts a plain float64 into T. It is a constructor hook:
	// call it on the zero value of T (see Const).
	FromFloat(v float64) T

	// Float reports the plain numeric value, discarding derivative slots.
	Float() float64

	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T

	Sqrt() T
	Exp() T
	Log() T

	// Pow raises the scalar to a fixed float64 exponent.
	Pow(e float64) T
}

// Const lifts a float64 constant into the scalar type S.
func Const[S Value[S]](v float64) S {
	var zero S
	return zero.FromFloat(v)
}

// Max returns the larger of a and b by plain value. For differentiable
// scalars the derivative slots of the winning branch are kept, which is the
// standard subgradient convention for max.
func Max[S Value[S]](a, b S) S {
	if a.Float() >= b.Float() {
		return a
	}
	return b
}

// MaxFloat floors x at the constant lo. Used for the epsilon guards on
// mole-fraction sums.
func MaxFloat[S Value[S]](lo float64, x S) S {
	return Max(Const[S](lo), x)
}

// Sqrt is the free-function form of Value.Sqrt, for call sites that read
// better without method chaining.
func Sqrt[S Value[S]](x S) S { return x.Sqrt() }

// Pow is the free-function form of Value.Pow.
func Pow[S Value[S]](x S, e float64) S { return x.Pow(e) }

// Float is the plain evaluation scalar.
type Float float64

func (Float) FromFloat(v float64) Float { return Float(v) }

func (f Float) Float() float64 { return float64(f) }

func (f Float) Add(o Float) Float { return f + o }
func (f Float) Sub(o Float) Float { return f - o }
func (f Float) Mul(o Float) Float { return f * o }
func (f Float) Div(o Float) Float { return f / o }

func (f Float) Sqrt() Float { return Float(math.Sqrt(float64(f))) }
func (f Float) Exp() Float  { return Float(math.Exp(float64(f))) }
func (f Float) Log() Float  { return Float(math.Log(float64(f))) }

func (f Float) Pow(e float64) Float { return Float(math.Pow(float64(f), e)) }
