package scalar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatOps(t *testing.T) {
	a := Float(9)
	b := Float(4)

	assert.Equal(t, Float(13), a.Add(b))
	assert.Equal(t, Float(5), a.Sub(b))
	assert.Equal(t, Float(36), a.Mul(b))
	assert.Equal(t, Float(2.25), a.Div(b))
	assert.Equal(t, Float(3), a.Sqrt())
	assert.InDelta(t, 2.0, float64(b.Pow(0.5)), 1e-15)
}

func TestConst(t *testing.T) {
	f := Const[Float](2.5)
	assert.Equal(t, 2.5, f.Float())

	d := Const[Dual](2.5)
	assert.Equal(t, 2.5, d.Float())
	assert.Empty(t, d.D)
}

func TestMax(t *testing.T) {
	assert.Equal(t, Float(3), Max(Float(3), Float(2)))
	assert.Equal(t, Float(3), Max(Float(2), Float(3)))
	assert.Equal(t, 1e-5, MaxFloat(1e-5, Float(1e-8)).Float())
	assert.Equal(t, 0.5, MaxFloat(1e-5, Float(0.5)).Float())
}

func TestMaxKeepsWinningDerivatives(t *testing.T) {
	x := Seed(2.0, 0, 1)
	m := MaxFloat(1e-5, x)
	assert.Equal(t, 1.0, m.Deriv(0))

	// floored branch is a constant
	m = MaxFloat(1e-5, Seed(1e-9, 0, 1))
	assert.Equal(t, 0.0, m.Deriv(0))
}

func TestDualArithmetic(t *testing.T) {
	// f(x, y) = x*y + x/y at (6, 2)
	x := Seed(6, 0, 2)
	y := Seed(2, 1, 2)

	f := x.Mul(y).Add(x.Div(y))
	require.InDelta(t, 15.0, f.V, 1e-15)
	// df/dx = y + 1/y
	assert.InDelta(t, 2.5, f.Deriv(0), 1e-15)
	// df/dy = x - x/y^2
	assert.InDelta(t, 4.5, f.Deriv(1), 1e-15)
}

func TestDualSqrt(t *testing.T) {
	x := Seed(4, 0, 1)
	s := x.Sqrt()
	assert.InDelta(t, 2.0, s.V, 1e-15)
	assert.InDelta(t, 0.25, s.Deriv(0), 1e-15) // 1/(2*sqrt(4))
}

func TestDualExpLogPow(t *testing.T) {
	x := Seed(3, 0, 1)

	e := x.Exp()
	assert.InDelta(t, math.Exp(3), e.V, 1e-12)
	assert.InDelta(t, math.Exp(3), e.Deriv(0), 1e-12)

	l := x.Log()
	assert.InDelta(t, math.Log(3), l.V, 1e-15)
	assert.InDelta(t, 1.0/3.0, l.Deriv(0), 1e-15)

	p := x.Pow(1.75)
	assert.InDelta(t, math.Pow(3, 1.75), p.V, 1e-12)
	assert.InDelta(t, 1.75*math.Pow(3, 0.75), p.Deriv(0), 1e-12)
}

func TestDualConstantMix(t *testing.T) {
	// constants have no slots; arithmetic against seeded values must
	// treat the missing slots as zero
	x := Seed(5, 0, 1)
	c := Const[Dual](2)

	f := x.Mul(c).Add(c)
	assert.InDelta(t, 12.0, f.V, 1e-15)
	assert.InDelta(t, 2.0, f.Deriv(0), 1e-15)
}

func TestDualMatchesFiniteDifference(t *testing.T) {
	// spot-check the chain rules against a numeric derivative of
	// g(x) = sqrt(x) * exp(-x/3) + x^0.25
	g := func(x Dual) Dual {
		third := Const[Dual](-1.0 / 3.0)
		return x.Sqrt().Mul(x.Mul(third).Exp()).Add(x.Pow(0.25))
	}
	gf := func(x float64) float64 { return g(Const[Dual](x)).V }

	at := 2.7
	got := g(Seed(at, 0, 1)).Deriv(0)

	h := 1e-6
	want := (gf(at+h) - gf(at-h)) / (2 * h)
	assert.InDelta(t, want, got, 1e-6)
}
