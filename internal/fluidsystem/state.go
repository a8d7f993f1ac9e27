package fluidsystem

import "github.com/pmsim/porefluid/internal/scalar"

// FluidState supplies the thermodynamic state the evaluator reads:
// temperature, pressure and composition per phase. Implementations are
// read-only from the evaluator's perspective.
//
// Mole and mass fractions are treated as caller-supplied truth; the
// evaluator never renormalizes them, it only guards sum-of-fractions
// denominators against zero.
type FluidState[S scalar.Value[S]] interface {
	Temperature(phaseIdx int) S
	Pressure(phaseIdx int) S
	MoleFraction(phaseIdx, compIdx int) S
	MassFraction(phaseIdx, compIdx int) S
	AverageMolarMass(phaseIdx int) S
}

// CompositionalState is the plain array-backed FluidState used by the CLI
// and the tests. Mass fractions and average molar masses are derived from
// the mole fractions with UpdateAverages.
type CompositionalState[S scalar.Value[S]] struct {
	temp         [NumPhases]S
	press        [NumPhases]S
	moleFrac     [NumPhases][NumComponents]S
	massFrac     [NumPhases][NumComponents]S
	avgMolarMass [NumPhases]S
}

func (st *CompositionalState[S]) Temperature(phaseIdx int) S { return st.temp[phaseIdx] }

func (st *CompositionalState[S]) Pressure(phaseIdx int) S { return st.press[phaseIdx] }

func (st *CompositionalState[S]) MoleFraction(phaseIdx, compIdx int) S {
	return st.moleFrac[phaseIdx][compIdx]
}

func (st *CompositionalState[S]) MassFraction(phaseIdx, compIdx int) S {
	return st.massFrac[phaseIdx][compIdx]
}

func (st *CompositionalState[S]) AverageMolarMass(phaseIdx int) S {
	return st.avgMolarMass[phaseIdx]
}

func (st *CompositionalState[S]) SetTemperature(phaseIdx int, v S) { st.temp[phaseIdx] = v }

func (st *CompositionalState[S]) SetPressure(phaseIdx int, v S) { st.press[phaseIdx] = v }

func (st *CompositionalState[S]) SetMoleFraction(phaseIdx, compIdx int, v S) {
	st.moleFrac[phaseIdx][compIdx] = v
}

// SetAllTemperatures sets the same temperature in every phase (local
// thermal equilibrium).
func (st *CompositionalState[S]) SetAllTemperatures(v S) {
	for i := range st.temp {
		st.temp[i] = v
	}
}

// UpdateAverages derives mass fractions and the average molar mass of each
// phase from the current mole fractions. The mean-molar-mass denominator
// is floored to keep empty phases finite.
func (st *CompositionalState[S]) UpdateAverages(molarMass [NumComponents]float64) {
	for phase := 0; phase < NumPhases; phase++ {
		sumX := scalar.Const[S](0)
		meanM := scalar.Const[S](0)
		for comp := 0; comp < NumComponents; comp++ {
			sumX = sumX.Add(st.moleFrac[phase][comp])
			meanM = meanM.Add(st.moleFrac[phase][comp].Mul(scalar.Const[S](molarMass[comp])))
		}
		st.avgMolarMass[phase] = meanM.Div(scalar.MaxFloat(1e-10, sumX))
		denom := scalar.MaxFloat(1e-30, meanM)
		for comp := 0; comp < NumComponents; comp++ {
			st.massFrac[phase][comp] = st.moleFrac[phase][comp].
				Mul(scalar.Const[S](molarMass[comp])).Div(denom)
		}
	}
}
