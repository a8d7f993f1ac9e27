package scalar

import "math"

// Dual is a forward-mode automatic-differentiation scalar: a value plus a
// vector of partial derivatives with respect to the seeded variables.
//
// A Dual produced by Const (or the zero value) has no derivative slots and
// behaves as a constant; mixing constants and seeded values in one
// expression is fine, missing slots read as zero.
type Dual struct {
	V float64
	D []float64
}

// Seed creates a Dual for variable idx out of n, with value v and a unit
// derivative in its own slot.
func Seed(v float64, idx, n int) Dual {
	d := make([]float64, n)
	d[idx] = 1
	return Dual{V: v, D: d}
}

// Deriv reports the partial derivative in slot idx, treating missing slots
// as zero.
func (d Dual) Deriv(idx int) float64 {
	if idx < 0 || idx >= len(d.D) {
		return 0
	}
	return d.D[idx]
}

func (Dual) FromFloat(v float64) Dual { return Dual{V: v} }

func (d Dual) Float() float64 { return d.V }

func slot(d []float64, i int) float64 {
	if i < len(d) {
		return d[i]
	}
	return 0
}

func combine(a, b Dual, v float64, df func(da, db float64) float64) Dual {
	n := len(a.D)
	if len(b.D) > n {
		n = len(b.D)
	}
	if n == 0 {
		return Dual{V: v}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = df(slot(a.D, i), slot(b.D, i))
	}
	return Dual{V: v, D: out}
}

func (d Dual) Add(o Dual) Dual {
	return combine(d, o, d.V+o.V, func(da, db float64) float64 { return da + db })
}

func (d Dual) Sub(o Dual) Dual {
	return combine(d, o, d.V-o.V, func(da, db float64) float64 { return da - db })
}

func (d Dual) Mul(o Dual) Dual {
	return combine(d, o, d.V*o.V, func(da, db float64) float64 {
		return da*o.V + db*d.V
	})
}

func (d Dual) Div(o Dual) Dual {
	return combine(d, o, d.V/o.V, func(da, db float64) float64 {
		return (da*o.V - db*d.V) / (o.V * o.V)
	})
}

func (d Dual) unary(v, dv float64) Dual {
	if len(d.D) == 0 {
		return Dual{V: v}
	}
	out := make([]float64, len(d.D))
	for i, di := range d.D {
		out[i] = dv * di
	}
	return Dual{V: v, D: out}
}

func (d Dual) Sqrt() Dual {
	s := math.Sqrt(d.V)
	return d.unary(s, 1/(2*s))
}

func (d Dual) Exp() Dual {
	e := math.Exp(d.V)
	return d.unary(e, e)
}

func (d Dual) Log() Dual {
	return d.unary(math.Log(d.V), 1/d.V)
}

func (d Dual) Pow(e float64) Dual {
	return d.unary(math.Pow(d.V, e), e*math.Pow(d.V, e-1))
}
