package comps

import "github.com/pmsim/porefluid/internal/scalar"

// SimpleH2O is the basic water model: incompressible liquid with constant
// transport properties, ideal-gas steam, and the IAPWS-IF97 region 4
// saturation curve for vapor pressure. It is cheap enough to use directly;
// wrap it in [Tabulated] only when a higher-fidelity (and more expensive)
// water model is substituted.
type SimpleH2O[S scalar.Value[S]] struct{}

func (SimpleH2O[S]) Name() string { return "H2O" }

func (SimpleH2O[S]) MolarMass() float64 { return 18.01518e-3 }

func (SimpleH2O[S]) CriticalTemperature() float64 { return 647.096 }

func (SimpleH2O[S]) CriticalPressure() float64 { return 22.064e6 }

func (SimpleH2O[S]) TripleTemperature() float64 { return 273.16 }

func (SimpleH2O[S]) AcentricFactor() float64 { return 0.344 }

func (SimpleH2O[S]) GasIsIdeal() bool { return true }

func (SimpleH2O[S]) LiquidIsCompressible() bool { return false }

// if97n are the coefficients of the IAPWS-IF97 region 4 saturation
// pressure equation.
var if97n = [10]float64{
	0.11670521452767e4, -0.72421316703206e6, -0.17073846940092e2,
	0.12020824702470e5, -0.32325550322333e7, 0.14915108613530e2,
	-0.48232657361591e4, 0.40511340542057e6, -0.23855557567849,
	0.65017534844798e3,
}

// VaporPressure evaluates the IAPWS-IF97 region 4 saturation curve.
// Valid between the triple point and the critical point.
func (SimpleH2O[S]) VaporPressure(temp S) S {
	sigma := temp.Add(scalar.Const[S](if97n[8]).Div(temp.Sub(scalar.Const[S](if97n[9]))))
	sigma2 := sigma.Mul(sigma)

	a := sigma2.Add(sigma.Mul(scalar.Const[S](if97n[0]))).Add(scalar.Const[S](if97n[1]))
	b := sigma2.Mul(scalar.Const[S](if97n[2])).
		Add(sigma.Mul(scalar.Const[S](if97n[3]))).
		Add(scalar.Const[S](if97n[4]))
	c := sigma2.Mul(scalar.Const[S](if97n[5])).
		Add(sigma.Mul(scalar.Const[S](if97n[6]))).
		Add(scalar.Const[S](if97n[7]))

	disc := b.Mul(b).Sub(a.Mul(c).Mul(scalar.Const[S](4))).Sqrt()
	tmp := c.Mul(scalar.Const[S](2)).Div(disc.Sub(b))
	tmp = tmp.Mul(tmp)
	tmp = tmp.Mul(tmp)
	return tmp.Mul(scalar.Const[S](1e6))
}

func (SimpleH2O[S]) LiquidDensity(temp, p S) S {
	return scalar.Const[S](1000)
}

func (w SimpleH2O[S]) GasDensity(temp, p S) S {
	return IdealGasDensity[S](w.MolarMass(), temp, p)
}

func (SimpleH2O[S]) LiquidViscosity(temp, p S) S {
	return scalar.Const[S](1e-3)
}

func (SimpleH2O[S]) GasViscosity(temp, p S) S {
	return scalar.Const[S](1e-5)
}

// LiquidEnthalpy assumes a constant heat capacity, with h = 0 at the
// triple point of water.
func (SimpleH2O[S]) LiquidEnthalpy(temp, p S) S {
	return temp.Sub(scalar.Const[S](273.16)).Mul(scalar.Const[S](4180))
}

// GasEnthalpy adds the heat of vaporization on top of a constant steam
// heat capacity.
func (SimpleH2O[S]) GasEnthalpy(temp, p S) S {
	return temp.Sub(scalar.Const[S](293.15)).Mul(scalar.Const[S](1976)).
		Add(scalar.Const[S](2.45e6))
}

func (SimpleH2O[S]) LiquidHeatCapacity(temp, p S) S {
	return scalar.Const[S](4180)
}

func (SimpleH2O[S]) GasHeatCapacity(temp, p S) S {
	return scalar.Const[S](1976)
}

func (SimpleH2O[S]) LiquidThermalConductivity(temp, p S) S {
	return scalar.Const[S](0.608)
}

func (SimpleH2O[S]) GasThermalConductivity(temp, p S) S {
	return scalar.Const[S](0.0248)
}
