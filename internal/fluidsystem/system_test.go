package fluidsystem

import (
	"math"
	"testing"

	"github.com/pmsim/porefluid/internal/binarycoeff"
	"github.com/pmsim/porefluid/internal/comps"
	"github.com/pmsim/porefluid/internal/scalar"
)

// newSystem builds a system with direct (untabulated) water so tests can
// compare against the exact correlations.
func newSystem(rel RelationSet, opts ...Option[scalar.Float]) *System[scalar.Float] {
	opts = append([]Option[scalar.Float]{
		WithWater[scalar.Float](comps.SimpleH2O[scalar.Float]{}),
		WithRelations[scalar.Float](rel),
	}, opts...)
	return New(opts...)
}

// newState fills a state with the same T and p in both phases and the
// given mole fractions (liquid H2O/N2 first, then gas H2O/N2).
func newState(sys *System[scalar.Float], temp, p, xlH2O, xlN2, xgH2O, xgN2 float64) *CompositionalState[scalar.Float] {
	st := &CompositionalState[scalar.Float]{}
	st.SetAllTemperatures(scalar.Float(temp))
	st.SetPressure(LiquidPhaseIdx, scalar.Float(p))
	st.SetPressure(GasPhaseIdx, scalar.Float(p))
	st.SetMoleFraction(LiquidPhaseIdx, H2OIdx, scalar.Float(xlH2O))
	st.SetMoleFraction(LiquidPhaseIdx, N2Idx, scalar.Float(xlN2))
	st.SetMoleFraction(GasPhaseIdx, H2OIdx, scalar.Float(xgH2O))
	st.SetMoleFraction(GasPhaseIdx, N2Idx, scalar.Float(xgN2))
	st.UpdateAverages(sys.MolarMasses())
	return st
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestRegistryNames(t *testing.T) {
	sys := newSystem(ComplexRelations)

	if got := sys.PhaseName(LiquidPhaseIdx); got != "liquid" {
		t.Errorf("PhaseName(liquid) = %q", got)
	}
	if got := sys.PhaseName(GasPhaseIdx); got != "gas" {
		t.Errorf("PhaseName(gas) = %q", got)
	}
	if got := sys.ComponentName(H2OIdx); got != "H2O" {
		t.Errorf("ComponentName(H2O) = %q", got)
	}
	if got := sys.ComponentName(N2Idx); got != "N2" {
		t.Errorf("ComponentName(N2) = %q", got)
	}
}

func TestRegistryBoundsPanic(t *testing.T) {
	sys := newSystem(ComplexRelations)

	mustPanic(t, "PhaseName(NumPhases)", func() { sys.PhaseName(NumPhases) })
	mustPanic(t, "PhaseName(-1)", func() { sys.PhaseName(-1) })
	mustPanic(t, "ComponentName(NumComponents)", func() { sys.ComponentName(NumComponents) })
	mustPanic(t, "ComponentName(-1)", func() { sys.ComponentName(-1) })
	mustPanic(t, "IsLiquid(2)", func() { sys.IsLiquid(2) })
	mustPanic(t, "MolarMass(2) strict", func() { sys.MolarMass(2) })
}

func TestRegistrySentinelMode(t *testing.T) {
	sys := newSystem(ComplexRelations, WithIndexMode[scalar.Float](SentinelIndexes))

	if got := sys.MolarMass(7); got != OutOfRangeSentinel {
		t.Errorf("MolarMass(7) = %g, want sentinel", got)
	}
	if got := sys.CriticalTemperature(-1); got != OutOfRangeSentinel {
		t.Errorf("CriticalTemperature(-1) = %g, want sentinel", got)
	}
	if got := sys.CriticalPressure(2); got != OutOfRangeSentinel {
		t.Errorf("CriticalPressure(2) = %g, want sentinel", got)
	}
	if got := sys.AcentricFactor(2); got != OutOfRangeSentinel {
		t.Errorf("AcentricFactor(2) = %g, want sentinel", got)
	}

	// valid indices still resolve normally
	if got := sys.MolarMass(N2Idx); got != 28.0134e-3 {
		t.Errorf("MolarMass(N2) = %g", got)
	}
}

func TestPhaseFlags(t *testing.T) {
	sys := newSystem(ComplexRelations)

	if !sys.IsLiquid(LiquidPhaseIdx) || sys.IsLiquid(GasPhaseIdx) {
		t.Error("liquid classification wrong")
	}
	if !sys.IsCompressible(GasPhaseIdx) {
		t.Error("gas must be compressible")
	}
	if sys.IsCompressible(LiquidPhaseIdx) {
		t.Error("basic water is incompressible")
	}
	if sys.IsIdealGas(LiquidPhaseIdx) {
		t.Error("a liquid is not an ideal gas")
	}
	if !sys.IsIdealGas(GasPhaseIdx) {
		t.Error("both components report ideal gas")
	}
	if !sys.IsIdealMixture(LiquidPhaseIdx) || !sys.IsIdealMixture(GasPhaseIdx) {
		t.Error("all phases are ideal mixtures")
	}
}

func TestLiquidDensityPureWaterDegenerates(t *testing.T) {
	// at x_N2 = 0 the molar-volume rule collapses to pure water exactly
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	got := sys.Density(st, &pc, LiquidPhaseIdx).Float()
	want := sys.Water().LiquidDensity(scalar.Float(300), scalar.Float(1e5)).Float()
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("liquid density = %.12g, want %.12g", got, want)
	}
}

func TestLiquidDensityDissolvedGasLowersDensity(t *testing.T) {
	// nitrogen is lighter than water per molecule, so displacing water
	// molecules must reduce the mixture density
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 0.95, 0.05, 0.5, 0.5)
	var pc ParameterCache

	mixed := sys.Density(st, &pc, LiquidPhaseIdx).Float()
	pure := sys.Water().LiquidDensity(scalar.Float(300), scalar.Float(1e5)).Float()
	if mixed >= pure {
		t.Errorf("density with dissolved N2 = %g, want < %g", mixed, pure)
	}
}

func TestGasDensitySimpleIdealGas(t *testing.T) {
	sys := newSystem(SimpleRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	got := sys.Density(st, &pc, GasPhaseIdx).Float()
	avgM := st.AverageMolarMass(GasPhaseIdx).Float()
	want := 1e5 / (comps.GasConstant * 300) * avgM
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("gas density = %g, want %g", got, want)
	}
}

func TestGasComplexDegeneratesToPureN2(t *testing.T) {
	// with x_N2 = 1 the partial-pressure formulas collapse to the pure
	// nitrogen correlations at the full mixture pressure
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0, 1)
	var pc ParameterCache

	var n2 comps.N2[scalar.Float]
	temp, p := scalar.Float(300), scalar.Float(1e5)

	rho := sys.Density(st, &pc, GasPhaseIdx).Float()
	if want := n2.GasDensity(temp, p).Float(); math.Abs(rho-want)/want > 1e-12 {
		t.Errorf("density = %g, want pure N2 %g", rho, want)
	}

	mu := sys.Viscosity(st, &pc, GasPhaseIdx).Float()
	if want := n2.GasViscosity(temp, p).Float(); math.Abs(mu-want)/want > 1e-12 {
		t.Errorf("viscosity = %g, want pure N2 %g", mu, want)
	}

	cp := sys.HeatCapacity(st, &pc, GasPhaseIdx).Float()
	if want := n2.GasHeatCapacity(temp, p).Float(); math.Abs(cp-want)/want > 1e-12 {
		t.Errorf("heat capacity = %g, want pure N2 %g", cp, want)
	}
}

func TestGasDensityEmptyPhaseStaysFinite(t *testing.T) {
	// sweep the mole-fraction sum toward zero; the epsilon floor must
	// keep the quotient defined and bounded
	for _, rel := range []RelationSet{SimpleRelations, ComplexRelations} {
		sys := newSystem(rel)
		var pc ParameterCache
		for sum := 1e-8; sum > 1e-300; sum /= 1e4 {
			st := newState(sys, 300, 1e5, 1, 0, sum/2, sum/2)
			rho := sys.Density(st, &pc, GasPhaseIdx).Float()
			if math.IsNaN(rho) || math.IsInf(rho, 0) {
				t.Fatalf("relations %v, sum %g: density = %g", rel, sum, rho)
			}
			if math.Abs(rho) > 1e6 {
				t.Fatalf("relations %v, sum %g: density unbounded: %g", rel, sum, rho)
			}
		}
	}
}

func TestViscosityNearEmptyPhaseStaysFinite(t *testing.T) {
	sys := newSystem(ComplexRelations)
	var pc ParameterCache

	for sum := 1e-8; sum > 1e-60; sum /= 1e4 {
		st := newState(sys, 300, 1e5, 1, 0, sum/2, sum/2)
		mu := sys.Viscosity(st, &pc, GasPhaseIdx).Float()
		if math.IsNaN(mu) || math.IsInf(mu, 0) || mu < 0 {
			t.Fatalf("sum %g: viscosity = %g", sum, mu)
		}
	}
}

func TestGasFugacityCoefficientIsOne(t *testing.T) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	for comp := 0; comp < NumComponents; comp++ {
		phi := sys.FugacityCoefficient(st, &pc, GasPhaseIdx, comp).Float()
		if phi != 1.0 {
			t.Errorf("gas fugacity coefficient of %s = %g, want exactly 1", sys.ComponentName(comp), phi)
		}
	}
}

func TestLiquidFugacityCoefficients(t *testing.T) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	// Raoult: pv(T)/p
	phiH2O := sys.FugacityCoefficient(st, &pc, LiquidPhaseIdx, H2OIdx).Float()
	wantH2O := sys.Water().VaporPressure(scalar.Float(300)).Float() / 1e5
	if math.Abs(phiH2O-wantH2O)/wantH2O > 1e-12 {
		t.Errorf("liquid water fugacity coefficient = %g, want %g", phiH2O, wantH2O)
	}

	// Henry: H(T)/p; nitrogen barely dissolves, so the coefficient is huge
	phiN2 := sys.FugacityCoefficient(st, &pc, LiquidPhaseIdx, N2Idx).Float()
	wantN2 := binarycoeff.HenryN2(scalar.Float(300)).Float() / 1e5
	if math.Abs(phiN2-wantN2)/wantN2 > 1e-12 {
		t.Errorf("liquid N2 fugacity coefficient = %g, want %g", phiN2, wantN2)
	}
	if phiN2 < 1e3 {
		t.Errorf("Henry coefficient ratio suspiciously small: %g", phiN2)
	}
}

func TestHeatCapacitySimpleModeClosedForm(t *testing.T) {
	// pure nitrogen gas in simple mode: c_p = R*(2.39+1)/M, independent
	// of temperature and pressure
	sys := newSystem(SimpleRelations)
	var pc ParameterCache
	want := comps.GasConstant * (2.39 + 1) / sys.MolarMass(N2Idx)

	for _, tp := range []struct{ temp, p float64 }{
		{290, 1e5}, {450, 5e6}, {600, 15e6},
	} {
		st := newState(sys, tp.temp, tp.p, 1, 0, 0, 1)
		got := sys.HeatCapacity(st, &pc, GasPhaseIdx).Float()
		if math.Abs(got-want)/want > 1e-12 {
			t.Errorf("cp(T=%g, p=%g) = %g, want %g", tp.temp, tp.p, got, want)
		}
	}
}

func TestEnthalpyGasMassWeighted(t *testing.T) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 350, 2e5, 1, 0, 0.3, 0.7)
	var pc ParameterCache

	temp, p := scalar.Float(350), scalar.Float(2e5)
	want := st.MassFraction(GasPhaseIdx, H2OIdx).Float()*sys.Water().GasEnthalpy(temp, p).Float() +
		st.MassFraction(GasPhaseIdx, N2Idx).Float()*sys.Nitrogen().GasEnthalpy(temp, p).Float()

	got := sys.Enthalpy(st, &pc, GasPhaseIdx).Float()
	if math.Abs(got-want) > math.Abs(want)*1e-12 {
		t.Errorf("gas enthalpy = %g, want %g", got, want)
	}
}

func TestEnthalpyLiquidIsPureWater(t *testing.T) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 350, 2e5, 0.98, 0.02, 0.3, 0.7)
	var pc ParameterCache

	got := sys.Enthalpy(st, &pc, LiquidPhaseIdx).Float()
	want := sys.Water().LiquidEnthalpy(scalar.Float(350), scalar.Float(2e5)).Float()
	if got != want {
		t.Errorf("liquid enthalpy = %g, want pure water %g", got, want)
	}
}

func TestThermalConductivityModes(t *testing.T) {
	st := func(sys *System[scalar.Float]) *CompositionalState[scalar.Float] {
		return newState(sys, 300, 1e5, 1, 0, 0.4, 0.6)
	}
	var pc ParameterCache

	simple := newSystem(SimpleRelations)
	gotSimple := simple.ThermalConductivity(st(simple), &pc, GasPhaseIdx).Float()
	wantSimple := simple.Nitrogen().GasThermalConductivity(scalar.Float(300), scalar.Float(1e5)).Float()
	if gotSimple != wantSimple {
		t.Errorf("simple mode = %g, want dry N2 %g", gotSimple, wantSimple)
	}

	complexSys := newSystem(ComplexRelations)
	gotComplex := complexSys.ThermalConductivity(st(complexSys), &pc, GasPhaseIdx).Float()
	wantComplex := complexSys.Water().GasThermalConductivity(scalar.Float(300), scalar.Float(1e5*0.4)).Float() +
		complexSys.Nitrogen().GasThermalConductivity(scalar.Float(300), scalar.Float(1e5*0.6)).Float()
	if math.Abs(gotComplex-wantComplex) > wantComplex*1e-12 {
		t.Errorf("complex mode = %g, want partial-pressure sum %g", gotComplex, wantComplex)
	}
}

func TestDiffusionCoefficient(t *testing.T) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 320, 3e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	temp, p := scalar.Float(320), scalar.Float(3e5)
	wantLiquid := binarycoeff.LiquidDiffCoeff(temp, p).Float()
	wantGas := binarycoeff.GasDiffCoeff(temp, p).Float()

	// a single binary pair: the component index must not change the result
	for comp := 0; comp < NumComponents; comp++ {
		if got := sys.DiffusionCoefficient(st, &pc, LiquidPhaseIdx, comp).Float(); got != wantLiquid {
			t.Errorf("liquid diffusion (comp %d) = %g, want %g", comp, got, wantLiquid)
		}
		if got := sys.DiffusionCoefficient(st, &pc, GasPhaseIdx, comp).Float(); got != wantGas {
			t.Errorf("gas diffusion (comp %d) = %g, want %g", comp, got, wantGas)
		}
	}

	mustPanic(t, "DiffusionCoefficient bad comp", func() {
		sys.DiffusionCoefficient(st, &pc, GasPhaseIdx, NumComponents)
	})
}

func TestPropertyCallBoundsPanic(t *testing.T) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	mustPanic(t, "Density(2)", func() { sys.Density(st, &pc, 2) })
	mustPanic(t, "Viscosity(-1)", func() { sys.Viscosity(st, &pc, -1) })
	mustPanic(t, "Enthalpy(2)", func() { sys.Enthalpy(st, &pc, 2) })
	mustPanic(t, "FugacityCoefficient bad comp", func() {
		sys.FugacityCoefficient(st, &pc, GasPhaseIdx, 5)
	})
}

func TestInitTabulatedWater(t *testing.T) {
	sys := New[scalar.Float]() // default: tabulated water, complex
	if err := sys.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	// tabulated water must track the exact correlation closely
	exact := newSystem(ComplexRelations)
	got := sys.Density(st, &pc, LiquidPhaseIdx).Float()
	want := exact.Density(st, &pc, LiquidPhaseIdx).Float()
	if math.Abs(got-want)/want > 1e-3 {
		t.Errorf("tabulated liquid density = %g, exact %g", got, want)
	}
}

func TestInitIdempotent(t *testing.T) {
	sys := New[scalar.Float]()
	if err := sys.Init(); err != nil {
		t.Fatalf("first Init: %v", err)
	}

	var pc ParameterCache
	probes := []struct{ temp, p float64 }{
		{273.15, 0},          // grid corner
		{623.15, 20e6},       // opposite corner
		{300, 1e5},           // interior
		{623.149999, 19.9e6}, // near the boundary
	}

	before := make([]float64, len(probes))
	for i, pr := range probes {
		st := newState(sys, pr.temp, pr.p, 1, 0, 0.5, 0.5)
		before[i] = sys.Enthalpy(st, &pc, LiquidPhaseIdx).Float()
	}

	if err := sys.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	for i, pr := range probes {
		st := newState(sys, pr.temp, pr.p, 1, 0, 0.5, 0.5)
		after := sys.Enthalpy(st, &pc, LiquidPhaseIdx).Float()
		if math.Abs(after-before[i]) > math.Abs(before[i])*1e-12+1e-9 {
			t.Errorf("probe %d: %g != %g after identical re-init", i, after, before[i])
		}
	}
}

func TestUnknownWaterModelInitNoop(t *testing.T) {
	// a direct (untabulated) water component makes Init a no-op
	sys := newSystem(ComplexRelations)
	if err := sys.Init(); err != nil {
		t.Fatalf("Init on direct water: %v", err)
	}
}

func TestDensityDerivatives(t *testing.T) {
	// the same formulas, instantiated with dual numbers, must agree with
	// a finite-difference derivative of the plain instantiation
	sysF := newSystem(SimpleRelations)
	sysD := New(
		WithWater[scalar.Dual](comps.SimpleH2O[scalar.Dual]{}),
		WithRelations[scalar.Dual](SimpleRelations),
	)

	rhoAt := func(p float64) float64 {
		st := newState(sysF, 300, p, 1, 0, 0.5, 0.5)
		var pc ParameterCache
		return sysF.Density(st, &pc, GasPhaseIdx).Float()
	}

	st := &CompositionalState[scalar.Dual]{}
	st.SetAllTemperatures(scalar.Const[scalar.Dual](300))
	st.SetPressure(LiquidPhaseIdx, scalar.Const[scalar.Dual](1e5))
	st.SetPressure(GasPhaseIdx, scalar.Seed(1e5, 0, 1))
	st.SetMoleFraction(LiquidPhaseIdx, H2OIdx, scalar.Const[scalar.Dual](1))
	st.SetMoleFraction(LiquidPhaseIdx, N2Idx, scalar.Const[scalar.Dual](0))
	st.SetMoleFraction(GasPhaseIdx, H2OIdx, scalar.Const[scalar.Dual](0.5))
	st.SetMoleFraction(GasPhaseIdx, N2Idx, scalar.Const[scalar.Dual](0.5))
	st.UpdateAverages(sysD.MolarMasses())

	var pc ParameterCache
	got := sysD.Density(st, &pc, GasPhaseIdx).Deriv(0)

	h := 1.0 // Pa
	want := (rhoAt(1e5+h) - rhoAt(1e5-h)) / (2 * h)
	if math.Abs(got-want) > math.Abs(want)*1e-6 {
		t.Errorf("drho/dp = %g, finite difference %g", got, want)
	}
}

func BenchmarkGasDensityComplex(b *testing.B) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sys.Density(st, &pc, GasPhaseIdx)
	}
}

func BenchmarkViscosityWilke(b *testing.B) {
	sys := newSystem(ComplexRelations)
	st := newState(sys, 300, 1e5, 1, 0, 0.5, 0.5)
	var pc ParameterCache

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sys.Viscosity(st, &pc, GasPhaseIdx)
	}
}
