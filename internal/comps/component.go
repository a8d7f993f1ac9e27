package comps

import "github.com/pmsim/porefluid/internal/scalar"

// GasConstant is the universal gas constant [J/(mol K)].
const GasConstant = 8.314472

// Component is the capability a pure chemical species must provide to take
// part in a fluid system. Temperatures are in K, pressures in Pa; all
// returned properties are SI (kg/m3, Pa s, J/kg, J/(kg K), W/(m K)).
//
// Correlations a species genuinely has no model for (e.g. liquid nitrogen
// under reservoir conditions) panic; the fluid system never routes calls
// to them.
type Component[S scalar.Value[S]] interface {
	Name() string

	MolarMass() float64           // [kg/mol]
	CriticalTemperature() float64 // [K]
	CriticalPressure() float64    // [Pa]
	TripleTemperature() float64   // [K]
	AcentricFactor() float64

	GasIsIdeal() bool
	LiquidIsCompressible() bool

	LiquidDensity(temp, p S) S
	GasDensity(temp, p S) S
	LiquidViscosity(temp, p S) S
	GasViscosity(temp, p S) S
	LiquidEnthalpy(temp, p S) S
	GasEnthalpy(temp, p S) S
	LiquidHeatCapacity(temp, p S) S
	GasHeatCapacity(temp, p S) S
	LiquidThermalConductivity(temp, p S) S
	GasThermalConductivity(temp, p S) S
	VaporPressure(temp S) S
}

// IdealGasDensity is the ideal-gas law rho = p M / (R T), shared by every
// component whose gas phase is modelled as ideal.
func IdealGasDensity[S scalar.Value[S]](molarMass float64, temp, p S) S {
	return p.Mul(scalar.Const[S](molarMass / GasConstant)).Div(temp)
}

// IdealGasMolarDensity is p / (R T) [mol/m3].
func IdealGasMolarDensity[S scalar.Value[S]](temp, p S) S {
	return p.Div(temp.Mul(scalar.Const[S](GasConstant)))
}
