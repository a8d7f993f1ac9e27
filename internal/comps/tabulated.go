package comps

import (
	"errors"
	"fmt"

	"github.com/pmsim/porefluid/internal/scalar"
)

// ErrTableBounds indicates an invalid tabulation grid specification.
var ErrTableBounds = errors.New("comps: invalid tabulation bounds")

// TableBuilder is implemented by components that cache their correlations
// in a precomputed grid. The fluid system checks for it during Init.
type TableBuilder interface {
	// InitTable (re)builds the grid over the given rectangular domain.
	// Calling it again with different bounds discards the old grid and
	// builds a fresh one. It must not run concurrently with property
	// evaluations.
	InitTable(tempMin, tempMax float64, nTemp int, pressMin, pressMax float64, nPress int) error

	// Tabulated reports whether a grid has been built.
	Tabulated() bool
}

// Tabulated caches a component's correlations on a 2-D (temperature,
// pressure) grid and answers property queries by bilinear interpolation.
// Queries outside the grid domain (or before InitTable ran) are answered
// by the wrapped component directly, never by clamping to the boundary.
//
// Static properties and capability flags pass through to the wrapped
// component. Derivative-carrying scalars flow through the interpolation
// weights, so a tabulated correlation stays differentiable.
type Tabulated[S scalar.Value[S]] struct {
	inner Component[S]

	tMin, tMax float64
	nT         int
	pMin, pMax float64
	nP         int

	liquidDensity      []float64
	gasDensity         []float64
	liquidViscosity    []float64
	gasViscosity       []float64
	liquidEnthalpy     []float64
	gasEnthalpy        []float64
	liquidHeatCapacity []float64
	gasHeatCapacity    []float64
	liquidConductivity []float64
	gasConductivity    []float64
	vaporPressure      []float64 // 1-D over temperature

	ready bool
}

// NewTabulated wraps inner without building a grid; every query falls
// through to inner until InitTable is called.
func NewTabulated[S scalar.Value[S]](inner Component[S]) *Tabulated[S] {
	return &Tabulated[S]{inner: inner}
}

func (c *Tabulated[S]) Tabulated() bool { return c.ready }

// InitTable precomputes all correlations on an nTemp x nPress grid.
func (c *Tabulated[S]) InitTable(tempMin, tempMax float64, nTemp int, pressMin, pressMax float64, nPress int) error {
	if nTemp < 2 || nPress < 2 {
		return fmt.Errorf("%w: need at least 2 ticks per axis, got %dx%d", ErrTableBounds, nTemp, nPress)
	}
	if tempMax <= tempMin || pressMax <= pressMin {
		return fmt.Errorf("%w: empty domain [%g,%g]x[%g,%g]", ErrTableBounds, tempMin, tempMax, pressMin, pressMax)
	}

	c.tMin, c.tMax, c.nT = tempMin, tempMax, nTemp
	c.pMin, c.pMax, c.nP = pressMin, pressMax, nPress

	c.liquidDensity = c.fill2(c.inner.LiquidDensity)
	c.gasDensity = c.fill2(c.inner.GasDensity)
	c.liquidViscosity = c.fill2(c.inner.LiquidViscosity)
	c.gasViscosity = c.fill2(c.inner.GasViscosity)
	c.liquidEnthalpy = c.fill2(c.inner.LiquidEnthalpy)
	c.gasEnthalpy = c.fill2(c.inner.GasEnthalpy)
	c.liquidHeatCapacity = c.fill2(c.inner.LiquidHeatCapacity)
	c.gasHeatCapacity = c.fill2(c.inner.GasHeatCapacity)
	c.liquidConductivity = c.fill2(c.inner.LiquidThermalConductivity)
	c.gasConductivity = c.fill2(c.inner.GasThermalConductivity)

	c.vaporPressure = make([]float64, nTemp)
	for i := range c.vaporPressure {
		t := c.tempAt(i)
		c.vaporPressure[i] = c.inner.VaporPressure(scalar.Const[S](t)).Float()
	}

	c.ready = true
	return nil
}

func (c *Tabulated[S]) tempAt(i int) float64 {
	return c.tMin + (c.tMax-c.tMin)*float64(i)/float64(c.nT-1)
}

func (c *Tabulated[S]) pressAt(j int) float64 {
	return c.pMin + (c.pMax-c.pMin)*float64(j)/float64(c.nP-1)
}

func (c *Tabulated[S]) fill2(f func(temp, p S) S) []float64 {
	tab := make([]float64, c.nT*c.nP)
	for i := 0; i < c.nT; i++ {
		t := scalar.Const[S](c.tempAt(i))
		for j := 0; j < c.nP; j++ {
			tab[i*c.nP+j] = f(t, scalar.Const[S](c.pressAt(j))).Float()
		}
	}
	return tab
}

// interp2 bilinearly interpolates tab at (temp, p). The second return is
// false when the point lies outside the grid domain, in which case the
// caller must evaluate the exact correlation instead.
func (c *Tabulated[S]) interp2(tab []float64, temp, p S) (S, bool) {
	var zero S
	t, pv := temp.Float(), p.Float()
	if !c.ready || t < c.tMin || t > c.tMax || pv < c.pMin || pv > c.pMax {
		return zero, false
	}

	dT := (c.tMax - c.tMin) / float64(c.nT-1)
	dP := (c.pMax - c.pMin) / float64(c.nP-1)
	i := int((t - c.tMin) / dT)
	if i > c.nT-2 {
		i = c.nT - 2
	}
	j := int((pv - c.pMin) / dP)
	if j > c.nP-2 {
		j = c.nP - 2
	}

	ft := temp.Sub(scalar.Const[S](c.tMin + float64(i)*dT)).Mul(scalar.Const[S](1 / dT))
	fp := p.Sub(scalar.Const[S](c.pMin + float64(j)*dP)).Mul(scalar.Const[S](1 / dP))
	one := scalar.Const[S](1)

	v00 := scalar.Const[S](tab[i*c.nP+j])
	v10 := scalar.Const[S](tab[(i+1)*c.nP+j])
	v01 := scalar.Const[S](tab[i*c.nP+j+1])
	v11 := scalar.Const[S](tab[(i+1)*c.nP+j+1])

	low := v00.Mul(one.Sub(ft)).Add(v10.Mul(ft))
	high := v01.Mul(one.Sub(ft)).Add(v11.Mul(ft))
	return low.Mul(one.Sub(fp)).Add(high.Mul(fp)), true
}

func (c *Tabulated[S]) interp1(tab []float64, temp S) (S, bool) {
	var zero S
	t := temp.Float()
	if !c.ready || t < c.tMin || t > c.tMax {
		return zero, false
	}

	dT := (c.tMax - c.tMin) / float64(c.nT-1)
	i := int((t - c.tMin) / dT)
	if i > c.nT-2 {
		i = c.nT - 2
	}

	ft := temp.Sub(scalar.Const[S](c.tMin + float64(i)*dT)).Mul(scalar.Const[S](1 / dT))
	one := scalar.Const[S](1)
	return scalar.Const[S](tab[i]).Mul(one.Sub(ft)).
		Add(scalar.Const[S](tab[i+1]).Mul(ft)), true
}

func (c *Tabulated[S]) Name() string { return c.inner.Name() }

func (c *Tabulated[S]) MolarMass() float64 { return c.inner.MolarMass() }

func (c *Tabulated[S]) CriticalTemperature() float64 { return c.inner.CriticalTemperature() }

func (c *Tabulated[S]) CriticalPressure() float64 { return c.inner.CriticalPressure() }

func (c *Tabulated[S]) TripleTemperature() float64 { return c.inner.TripleTemperature() }

func (c *Tabulated[S]) AcentricFactor() float64 { return c.inner.AcentricFactor() }

func (c *Tabulated[S]) GasIsIdeal() bool { return c.inner.GasIsIdeal() }

func (c *Tabulated[S]) LiquidIsCompressible() bool { return c.inner.LiquidIsCompressible() }

func (c *Tabulated[S]) LiquidDensity(temp, p S) S {
	if v, ok := c.interp2(c.liquidDensity, temp, p); ok {
		return v
	}
	return c.inner.LiquidDensity(temp, p)
}

func (c *Tabulated[S]) GasDensity(temp, p S) S {
	if v, ok := c.interp2(c.gasDensity, temp, p); ok {
		return v
	}
	return c.inner.GasDensity(temp, p)
}

func (c *Tabulated[S]) LiquidViscosity(temp, p S) S {
	if v, ok := c.interp2(c.liquidViscosity, temp, p); ok {
		return v
	}
	return c.inner.LiquidViscosity(temp, p)
}

func (c *Tabulated[S]) GasViscosity(temp, p S) S {
	if v, ok := c.interp2(c.gasViscosity, temp, p); ok {
		return v
	}
	return c.inner.GasViscosity(temp, p)
}

func (c *Tabulated[S]) LiquidEnthalpy(temp, p S) S {
	if v, ok := c.interp2(c.liquidEnthalpy, temp, p); ok {
		return v
	}
	return c.inner.LiquidEnthalpy(temp, p)
}

func (c *Tabulated[S]) GasEnthalpy(temp, p S) S {
	if v, ok := c.interp2(c.gasEnthalpy, temp, p); ok {
		return v
	}
	return c.inner.GasEnthalpy(temp, p)
}

func (c *Tabulated[S]) LiquidHeatCapacity(temp, p S) S {
	if v, ok := c.interp2(c.liquidHeatCapacity, temp, p); ok {
		return v
	}
	return c.inner.LiquidHeatCapacity(temp, p)
}

func (c *Tabulated[S]) GasHeatCapacity(temp, p S) S {
	if v, ok := c.interp2(c.gasHeatCapacity, temp, p); ok {
		return v
	}
	return c.inner.GasHeatCapacity(temp, p)
}

func (c *Tabulated[S]) LiquidThermalConductivity(temp, p S) S {
	if v, ok := c.interp2(c.liquidConductivity, temp, p); ok {
		return v
	}
	return c.inner.LiquidThermalConductivity(temp, p)
}

func (c *Tabulated[S]) GasThermalConductivity(temp, p S) S {
	if v, ok := c.interp2(c.gasConductivity, temp, p); ok {
		return v
	}
	return c.inner.GasThermalConductivity(temp, p)
}

func (c *Tabulated[S]) VaporPressure(temp S) S {
	if v, ok := c.interp1(c.vaporPressure, temp); ok {
		return v
	}
	return c.inner.VaporPressure(temp)
}
