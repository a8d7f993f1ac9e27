package comps

import "github.com/pmsim/porefluid/internal/scalar"

// N2 models molecular nitrogen: ideal gas with a Sutherland viscosity,
// Shomate caloric properties and a modified-Eucken thermal conductivity.
// Liquid-phase correlations are not implemented; nitrogen only ever
// appears as a dissolved trace in the liquid phase and its bulk liquid
// properties are never needed there.
type N2[S scalar.Value[S]] struct{}

func (N2[S]) Name() string { return "N2" }

func (N2[S]) MolarMass() float64 { return 28.0134e-3 }

func (N2[S]) CriticalTemperature() float64 { return 126.192 }

func (N2[S]) CriticalPressure() float64 { return 3.3958e6 }

func (N2[S]) TripleTemperature() float64 { return 63.151 }

func (N2[S]) AcentricFactor() float64 { return 0.0372 }

func (N2[S]) GasIsIdeal() bool { return true }

func (N2[S]) LiquidIsCompressible() bool { return false }

// VaporPressure uses the Wagner 2.5-5 equation with the coefficients of
// Span et al. Only meaningful below the critical temperature.
func (n N2[S]) VaporPressure(temp S) S {
	tc := n.CriticalTemperature()
	tau := scalar.Const[S](1).Sub(temp.Mul(scalar.Const[S](1 / tc)))

	sum := tau.Mul(scalar.Const[S](-6.12445284)).
		Add(tau.Pow(1.5).Mul(scalar.Const[S](1.26327220))).
		Add(tau.Pow(2.5).Mul(scalar.Const[S](-0.765910082))).
		Add(tau.Pow(5).Mul(scalar.Const[S](-1.77570564)))

	ln := sum.Mul(scalar.Const[S](tc)).Div(temp)
	return ln.Exp().Mul(scalar.Const[S](n.CriticalPressure()))
}

func (n N2[S]) GasDensity(temp, p S) S {
	return IdealGasDensity[S](n.MolarMass(), temp, p)
}

// GasViscosity is Sutherland's law fitted to nitrogen
// (mu0 = 1.663e-5 Pa s at 273.15 K, C = 107 K).
func (N2[S]) GasViscosity(temp, p S) S {
	const mu0, t0, c = 1.663e-5, 273.15, 107.0
	ratio := temp.Mul(scalar.Const[S](1 / t0)).Pow(1.5)
	return ratio.Mul(scalar.Const[S](mu0 * (t0 + c))).Div(temp.Add(scalar.Const[S](c)))
}

// shomateN2 are the NIST Shomate coefficients for N2 (valid 100-500 K),
// molar units (J/(mol K), kJ/mol).
var shomateN2 = [6]float64{28.98641, 1.853978, -9.647459, 16.63537, 0.000117, -8.671914}

// GasHeatCapacity evaluates the Shomate polynomial, converted to specific
// units [J/(kg K)].
func (n N2[S]) GasHeatCapacity(temp, p S) S {
	t := temp.Mul(scalar.Const[S](1e-3))
	t2 := t.Mul(t)
	cpMolar := scalar.Const[S](shomateN2[0]).
		Add(t.Mul(scalar.Const[S](shomateN2[1]))).
		Add(t2.Mul(scalar.Const[S](shomateN2[2]))).
		Add(t2.Mul(t).Mul(scalar.Const[S](shomateN2[3]))).
		Add(scalar.Const[S](shomateN2[4]).Div(t2))
	return cpMolar.Mul(scalar.Const[S](1 / n.MolarMass()))
}

// GasEnthalpy integrates the Shomate polynomial; the reference state is
// h = 0 at 298.15 K, as in the NIST tables.
func (n N2[S]) GasEnthalpy(temp, p S) S {
	t := temp.Mul(scalar.Const[S](1e-3))
	t2 := t.Mul(t)
	hMolar := t.Mul(scalar.Const[S](shomateN2[0])).
		Add(t2.Mul(scalar.Const[S](shomateN2[1] / 2))).
		Add(t2.Mul(t).Mul(scalar.Const[S](shomateN2[2] / 3))).
		Add(t2.Mul(t2).Mul(scalar.Const[S](shomateN2[3] / 4))).
		Sub(scalar.Const[S](shomateN2[4]).Div(t)).
		Add(scalar.Const[S](shomateN2[5]))
	// kJ/mol -> J/kg
	return hMolar.Mul(scalar.Const[S](1e3 / n.MolarMass()))
}

// GasThermalConductivity applies the modified Eucken correlation to the
// Sutherland viscosity and Shomate heat capacity.
func (n N2[S]) GasThermalConductivity(temp, p S) S {
	mu := n.GasViscosity(temp, p)
	rSpec := GasConstant / n.MolarMass()
	cv := n.GasHeatCapacity(temp, p).Sub(scalar.Const[S](rSpec))
	factor := scalar.Const[S](1.32).Add(
		scalar.Const[S](1.77 * rSpec).Div(cv))
	return mu.Mul(cv).Mul(factor)
}

func (N2[S]) LiquidDensity(temp, p S) S {
	panic("comps: liquid density not implemented for N2")
}

func (N2[S]) LiquidViscosity(temp, p S) S {
	panic("comps: liquid viscosity not implemented for N2")
}

func (N2[S]) LiquidEnthalpy(temp, p S) S {
	panic("comps: liquid enthalpy not implemented for N2")
}

func (N2[S]) LiquidHeatCapacity(temp, p S) S {
	panic("comps: liquid heat capacity not implemented for N2")
}

func (N2[S]) LiquidThermalConductivity(temp, p S) S {
	panic("comps: liquid thermal conductivity not implemented for N2")
}
