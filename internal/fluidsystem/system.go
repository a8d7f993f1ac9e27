package fluidsystem

import (
	"fmt"
	"math"

	"github.com/pmsim/porefluid/internal/binarycoeff"
	"github.com/pmsim/porefluid/internal/comps"
	"github.com/pmsim/porefluid/internal/scalar"
)

// Phase and component indices. Counts and classification are fixed at
// compile time; there is no dynamic phase or component management.
const (
	NumPhases      = 2
	LiquidPhaseIdx = 0
	GasPhaseIdx    = 1

	NumComponents = 2
	H2OIdx        = 0
	N2Idx         = 1
)

// Default tabulation ranges, tuned for typical reservoir conditions.
const (
	DefaultTempMin  = 273.15 // [K]
	DefaultTempMax  = 623.15 // [K]
	DefaultNumTemp  = 100
	DefaultPressMin = 0.0  // [Pa]
	DefaultPressMax = 20e6 // [Pa]
	DefaultNumPress = 200
)

// RelationSet selects between the cheap and the physically-motivated
// mixture relations.
type RelationSet int

const (
	// SimpleRelations treats each phase as its dominant pure component.
	SimpleRelations RelationSet = iota
	// ComplexRelations applies the full mixing rules.
	ComplexRelations
)

func (r RelationSet) String() string {
	if r == SimpleRelations {
		return "simple"
	}
	return "complex"
}

// IndexMode controls how static component lookups (MolarMass,
// CriticalTemperature, ...) react to an unrecognized component index.
type IndexMode int

const (
	// StrictIndexes panics on an out-of-range component index.
	StrictIndexes IndexMode = iota
	// SentinelIndexes returns OutOfRangeSentinel instead of failing, for
	// callers that probe component slots speculatively.
	SentinelIndexes
)

// OutOfRangeSentinel is the clearly unphysical value returned by static
// component lookups in SentinelIndexes mode.
const OutOfRangeSentinel = 1e100

// System is the fluid-system evaluator. The zero value is not usable;
// construct with New. Configuration is fixed at construction and the
// system is immutable afterwards (except for Init, see the package docs).
type System[S scalar.Value[S]] struct {
	water     comps.Component[S]
	nitrogen  comps.Component[S]
	relations RelationSet
	indexMode IndexMode
}

// Option configures a System at construction time.
type Option[S scalar.Value[S]] func(*System[S])

// WithWater substitutes the water component: the basic model, a
// high-fidelity model, or a tabulated wrapper around either.
func WithWater[S scalar.Value[S]](w comps.Component[S]) Option[S] {
	return func(s *System[S]) { s.water = w }
}

// WithNitrogen substitutes the nitrogen component.
func WithNitrogen[S scalar.Value[S]](n comps.Component[S]) Option[S] {
	return func(s *System[S]) { s.nitrogen = n }
}

// WithRelations selects the relation set.
func WithRelations[S scalar.Value[S]](r RelationSet) Option[S] {
	return func(s *System[S]) { s.relations = r }
}

// WithIndexMode selects strict or sentinel handling of unrecognized
// component indices in static lookups.
func WithIndexMode[S scalar.Value[S]](m IndexMode) Option[S] {
	return func(s *System[S]) { s.indexMode = m }
}

// New builds a fluid system. Defaults: tabulated basic water, nitrogen,
// complex relations, strict index handling.
func New[S scalar.Value[S]](opts ...Option[S]) *System[S] {
	s := &System[S]{
		water:     comps.NewTabulated[S](comps.SimpleH2O[S]{}),
		nitrogen:  comps.N2[S]{},
		relations: ComplexRelations,
		indexMode: StrictIndexes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Relations reports the configured relation set.
func (s *System[S]) Relations() RelationSet { return s.relations }

// Water exposes the configured water component.
func (s *System[S]) Water() comps.Component[S] { return s.water }

// Nitrogen exposes the configured nitrogen component.
func (s *System[S]) Nitrogen() comps.Component[S] { return s.nitrogen }

// Init builds the water tabulation grid over the default ranges. It is a
// no-op when the configured water component is not tabulated. Must
// complete before the first property evaluation; see the package docs for
// the synchronization contract.
func (s *System[S]) Init() error {
	return s.InitRange(DefaultTempMin, DefaultTempMax, DefaultNumTemp,
		DefaultPressMin, DefaultPressMax, DefaultNumPress)
}

// InitRange builds the water tabulation grid over problem-specific
// temperature and pressure ranges. Calling it again with different bounds
// rebuilds the grid.
func (s *System[S]) InitRange(tempMin, tempMax float64, nTemp int, pressMin, pressMax float64, nPress int) error {
	if tb, ok := s.water.(comps.TableBuilder); ok {
		return tb.InitTable(tempMin, tempMax, nTemp, pressMin, pressMax, nPress)
	}
	return nil
}

func (s *System[S]) checkPhase(phaseIdx int) {
	if phaseIdx < 0 || phaseIdx >= NumPhases {
		panic(fmt.Sprintf("fluidsystem: phase index %d out of range [0,%d)", phaseIdx, NumPhases))
	}
}

func (s *System[S]) checkComponent(compIdx int) {
	if compIdx < 0 || compIdx >= NumComponents {
		panic(fmt.Sprintf("fluidsystem: component index %d out of range [0,%d)", compIdx, NumComponents))
	}
}

// PhaseName returns the display name of a phase.
func (s *System[S]) PhaseName(phaseIdx int) string {
	s.checkPhase(phaseIdx)
	if phaseIdx == LiquidPhaseIdx {
		return "liquid"
	}
	return "gas"
}

// IsLiquid reports whether a phase is a liquid.
func (s *System[S]) IsLiquid(phaseIdx int) bool {
	s.checkPhase(phaseIdx)
	return phaseIdx != GasPhaseIdx
}

// IsCompressible reports whether a phase's density depends on pressure.
// Gases always are; for the liquid phase the water component decides.
func (s *System[S]) IsCompressible(phaseIdx int) bool {
	s.checkPhase(phaseIdx)
	if phaseIdx == GasPhaseIdx {
		return true
	}
	return s.water.LiquidIsCompressible()
}

// IsIdealGas reports whether a phase is modelled as an ideal gas; the
// components decide jointly.
func (s *System[S]) IsIdealGas(phaseIdx int) bool {
	s.checkPhase(phaseIdx)
	if phaseIdx != GasPhaseIdx {
		return false
	}
	return s.water.GasIsIdeal() && s.nitrogen.GasIsIdeal()
}

// IsIdealMixture reports whether components mix without interaction in a
// phase. Raoult's and Henry's laws for the liquid and non-interacting gas
// molecules make every phase an ideal mixture here.
func (s *System[S]) IsIdealMixture(phaseIdx int) bool {
	s.checkPhase(phaseIdx)
	return true
}

func (s *System[S]) component(compIdx int) comps.Component[S] {
	switch compIdx {
	case H2OIdx:
		return s.water
	case N2Idx:
		return s.nitrogen
	}
	return nil
}

// ComponentName returns the display name of a component.
func (s *System[S]) ComponentName(compIdx int) string {
	s.checkComponent(compIdx)
	return s.component(compIdx).Name()
}

func (s *System[S]) staticLookup(compIdx int, f func(comps.Component[S]) float64) float64 {
	if c := s.component(compIdx); c != nil {
		return f(c)
	}
	if s.indexMode == SentinelIndexes {
		return OutOfRangeSentinel
	}
	s.checkComponent(compIdx)
	return math.NaN() // unreachable
}

// MolarMass returns a component's molar mass [kg/mol].
func (s *System[S]) MolarMass(compIdx int) float64 {
	return s.staticLookup(compIdx, comps.Component[S].MolarMass)
}

// CriticalTemperature returns a component's critical temperature [K].
func (s *System[S]) CriticalTemperature(compIdx int) float64 {
	return s.staticLookup(compIdx, comps.Component[S].CriticalTemperature)
}

// CriticalPressure returns a component's critical pressure [Pa].
func (s *System[S]) CriticalPressure(compIdx int) float64 {
	return s.staticLookup(compIdx, comps.Component[S].CriticalPressure)
}

// AcentricFactor returns a component's acentric factor.
func (s *System[S]) AcentricFactor(compIdx int) float64 {
	return s.staticLookup(compIdx, comps.Component[S].AcentricFactor)
}

// MolarMasses returns the molar masses of all components, indexed by
// component index.
func (s *System[S]) MolarMasses() [NumComponents]float64 {
	return [NumComponents]float64{s.water.MolarMass(), s.nitrogen.MolarMass()}
}

func (s *System[S]) sumMoleFractions(state FluidState[S], phaseIdx int) S {
	sum := state.MoleFraction(phaseIdx, H2OIdx)
	return sum.Add(state.MoleFraction(phaseIdx, N2Idx))
}

// Density returns the mass density [kg/m3] of a phase.
//
// Complex relations use molar-volume additivity for the liquid (each
// dissolved nitrogen molecule displaces exactly one water molecule) and a
// partial-pressure ideal-mixture sum for the gas. Simple relations fall
// back to pure water resp. the ideal-gas law with the phase's average
// molar mass.
func (s *System[S]) Density(state FluidState[S], paramCache *ParameterCache, phaseIdx int) S {
	s.checkPhase(phaseIdx)

	temp := state.Temperature(phaseIdx)
	p := state.Pressure(phaseIdx)
	sumMoleFrac := s.sumMoleFractions(state, phaseIdx)

	if phaseIdx == LiquidPhaseIdx {
		if s.relations == SimpleRelations {
			// assume pure water
			return s.water.LiquidDensity(temp, p)
		}
		rhoWater := s.water.LiquidDensity(temp, p)
		cWater := rhoWater.Mul(scalar.Const[S](1 / s.water.MolarMass()))
		mix := state.MoleFraction(LiquidPhaseIdx, H2OIdx).Mul(scalar.Const[S](s.water.MolarMass())).
			Add(state.MoleFraction(LiquidPhaseIdx, N2Idx).Mul(scalar.Const[S](s.nitrogen.MolarMass())))
		return cWater.Mul(mix).Div(scalar.MaxFloat(1e-5, sumMoleFrac))
	}

	if s.relations == SimpleRelations {
		return comps.IdealGasMolarDensity(temp, p).
			Mul(state.AverageMolarMass(GasPhaseIdx)).
			Div(scalar.MaxFloat(1e-5, sumMoleFrac))
	}

	// ideal mixture: steam and nitrogen don't "see" each other, each
	// contributes its pure density at its own partial pressure
	rhoH2O := s.water.GasDensity(temp, p.Mul(state.MoleFraction(GasPhaseIdx, H2OIdx)))
	rhoN2 := s.nitrogen.GasDensity(temp, p.Mul(state.MoleFraction(GasPhaseIdx, N2Idx)))
	return rhoH2O.Add(rhoN2).Div(scalar.MaxFloat(1e-5, sumMoleFrac))
}

// Viscosity returns the dynamic viscosity [Pa s] of a phase.
//
// The liquid is always pure water. The gas uses pure nitrogen with simple
// relations and the Wilke mixing rule with complex ones. The water term of
// the Wilke rule is evaluated at water's own vapor pressure rather than
// the mixture pressure; steam only exists up to its saturation partial
// pressure, and this asymmetry is intentional.
func (s *System[S]) Viscosity(state FluidState[S], paramCache *ParameterCache, phaseIdx int) S {
	s.checkPhase(phaseIdx)

	temp := state.Temperature(phaseIdx)
	p := state.Pressure(phaseIdx)

	if phaseIdx == LiquidPhaseIdx {
		return s.water.LiquidViscosity(temp, p)
	}

	if s.relations == SimpleRelations {
		return s.nitrogen.GasViscosity(temp, p)
	}

	// Wilke method. See Reid et al.: The Properties of Gases and
	// Liquids, 4th edition, McGraw-Hill, 1987, pp 407-410.
	mu := [NumComponents]S{
		s.water.GasViscosity(temp, s.water.VaporPressure(temp)),
		s.nitrogen.GasViscosity(temp, p),
	}
	molarMass := s.MolarMasses()

	sumx := scalar.MaxFloat(1e-10, s.sumMoleFractions(state, phaseIdx))

	result := scalar.Const[S](0)
	for i := 0; i < NumComponents; i++ {
		divisor := scalar.Const[S](0)
		for j := 0; j < NumComponents; j++ {
			phi := scalar.Const[S](1).Add(
				mu[i].Div(mu[j]).Sqrt().
					Mul(scalar.Const[S](math.Pow(molarMass[j]/molarMass[i], 0.25))))
			phi = phi.Mul(phi)
			phi = phi.Mul(scalar.Const[S](1 / math.Sqrt(8*(1+molarMass[i]/molarMass[j]))))
			divisor = divisor.Add(state.MoleFraction(phaseIdx, j).Div(sumx).Mul(phi))
		}
		result = result.Add(state.MoleFraction(phaseIdx, i).Div(sumx).Mul(mu[i]).Div(divisor))
	}
	return result
}

// FugacityCoefficient relates a component's fugacity in a phase to its
// partial pressure. Liquid water follows Raoult's law, dissolved nitrogen
// Henry's law; in the gas phase fugacity equals partial pressure, so the
// coefficient is exactly one.
func (s *System[S]) FugacityCoefficient(state FluidState[S], paramCache *ParameterCache, phaseIdx, compIdx int) S {
	s.checkPhase(phaseIdx)
	s.checkComponent(compIdx)

	temp := state.Temperature(phaseIdx)
	p := state.Pressure(phaseIdx)

	if phaseIdx == LiquidPhaseIdx {
		if compIdx == H2OIdx {
			return s.water.VaporPressure(temp).Div(p)
		}
		return binarycoeff.HenryN2[S](temp).Div(p)
	}

	return scalar.Const[S](1)
}

// DiffusionCoefficient returns the binary diffusion coefficient [m2/s] of
// a component in a phase.
//
// With two components there is a single cross-diffusion pair, so compIdx
// is validated but does not select anything. A third component requires a
// pairwise diffusion matrix here, not a silent extension.
func (s *System[S]) DiffusionCoefficient(state FluidState[S], paramCache *ParameterCache, phaseIdx, compIdx int) S {
	s.checkPhase(phaseIdx)
	s.checkComponent(compIdx)

	temp := state.Temperature(phaseIdx)
	p := state.Pressure(phaseIdx)

	if phaseIdx == LiquidPhaseIdx {
		return binarycoeff.LiquidDiffCoeff(temp, p)
	}
	return binarycoeff.GasDiffCoeff(temp, p)
}

// Enthalpy returns the specific enthalpy [J/kg] of a phase.
//
// The liquid is pure water; the dissolved-nitrogen contribution is not
// corrected for, which is part of the physical model, not an oversight.
// The gas is an ideal mixture: the mass-fraction-weighted sum of the pure
// partial specific enthalpies, with no enthalpy of mixing.
func (s *System[S]) Enthalpy(state FluidState[S], paramCache *ParameterCache, phaseIdx int) S {
	s.checkPhase(phaseIdx)

	temp := state.Temperature(phaseIdx)
	p := state.Pressure(phaseIdx)

	if phaseIdx == LiquidPhaseIdx {
		return s.water.LiquidEnthalpy(temp, p)
	}

	hH2O := state.MassFraction(GasPhaseIdx, H2OIdx).Mul(s.water.GasEnthalpy(temp, p))
	hN2 := state.MassFraction(GasPhaseIdx, N2Idx).Mul(s.nitrogen.GasEnthalpy(temp, p))
	return hH2O.Add(hN2)
}

// ThermalConductivity returns the thermal conductivity [W/(m K)] of a
// phase. The liquid is pure water. With complex relations the gas is the
// sum of the pure conductivities at the components' partial pressures
// (Raoult, Dalton, ideal gas); with simple relations it is dry nitrogen at
// the full mixture pressure.
func (s *System[S]) ThermalConductivity(state FluidState[S], paramCache *ParameterCache, phaseIdx int) S {
	s.checkPhase(phaseIdx)

	temp := state.Temperature(phaseIdx)
	p := state.Pressure(phaseIdx)

	if phaseIdx == LiquidPhaseIdx {
		return s.water.LiquidThermalConductivity(temp, p)
	}

	if s.relations == SimpleRelations {
		return s.nitrogen.GasThermalConductivity(temp, p)
	}

	lambdaH2O := s.water.GasThermalConductivity(temp, p.Mul(state.MoleFraction(GasPhaseIdx, H2OIdx)))
	lambdaN2 := s.nitrogen.GasThermalConductivity(temp, p.Mul(state.MoleFraction(GasPhaseIdx, N2Idx)))
	return lambdaH2O.Add(lambdaN2)
}

// HeatCapacity returns the specific isobaric heat capacity [J/(kg K)] of
// a phase. The liquid is pure water. For the gas each component
// contributes on its own: with complex relations the pure correlation at
// the component's partial pressure, with simple relations closed-form
// ideal diatomic (N2) and triatomic (H2O) molar heat capacities. The
// mixture value is the mass-fraction-weighted sum with no cross
// interaction.
func (s *System[S]) HeatCapacity(state FluidState[S], paramCache *ParameterCache, phaseIdx int) S {
	s.checkPhase(phaseIdx)

	temp := state.Temperature(phaseIdx)
	p := state.Pressure(phaseIdx)

	if phaseIdx == LiquidPhaseIdx {
		return s.water.LiquidHeatCapacity(temp, p)
	}

	var cpH2O, cpN2 S
	if s.relations == ComplexRelations {
		cpH2O = s.water.GasHeatCapacity(temp, p.Mul(state.MoleFraction(GasPhaseIdx, H2OIdx)))
		cpN2 = s.nitrogen.GasHeatCapacity(temp, p.Mul(state.MoleFraction(GasPhaseIdx, N2Idx)))
	} else {
		// ideal diatomic / triatomic gases: c_v = const * R, c_p = R + c_v
		cvN2Molar := comps.GasConstant * 2.39
		cvH2OMolar := comps.GasConstant * 3.37
		cpN2 = scalar.Const[S]((comps.GasConstant + cvN2Molar) / s.nitrogen.MolarMass())
		cpH2O = scalar.Const[S]((comps.GasConstant + cvH2OMolar) / s.water.MolarMass())
	}

	return state.MassFraction(GasPhaseIdx, H2OIdx).Mul(cpH2O).
		Add(state.MassFraction(GasPhaseIdx, N2Idx).Mul(cpN2))
}
