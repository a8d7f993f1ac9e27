package fluidsystem

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pmsim/porefluid/internal/comps"
	"github.com/pmsim/porefluid/internal/scalar"
)

func TestFluidSystemSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FluidSystem Suite")
}

var _ = Describe("H2O/N2 mixture properties", func() {
	var (
		sys *System[scalar.Float]
		pc  ParameterCache
	)

	state := func(temp, p, xgH2O, xgN2 float64) *CompositionalState[scalar.Float] {
		return newState(sys, temp, p, 1, 0, xgH2O, xgN2)
	}

	BeforeEach(func() {
		sys = New(
			WithWater[scalar.Float](comps.SimpleH2O[scalar.Float]{}),
			WithRelations[scalar.Float](ComplexRelations),
		)
	})

	Describe("gas density", func() {
		It("interpolates between the pure-component densities", func() {
			temp, p := scalar.Float(350), scalar.Float(1e5)
			pureH2O := sys.Water().GasDensity(temp, p).Float()
			pureN2 := sys.Nitrogen().GasDensity(temp, p).Float()

			mixed := sys.Density(state(350, 1e5, 0.5, 0.5), &pc, GasPhaseIdx).Float()
			Expect(mixed).To(BeNumerically(">", min(pureH2O, pureN2)))
			Expect(mixed).To(BeNumerically("<", max(pureH2O, pureN2)))
		})

		It("increases with pressure", func() {
			low := sys.Density(state(350, 1e5, 0.5, 0.5), &pc, GasPhaseIdx).Float()
			high := sys.Density(state(350, 5e5, 0.5, 0.5), &pc, GasPhaseIdx).Float()
			Expect(high).To(BeNumerically(">", low))
		})
	})

	Describe("Wilke gas viscosity", func() {
		It("stays between the pure-component viscosities", func() {
			temp := scalar.Float(350)
			muH2O := sys.Water().GasViscosity(temp, sys.Water().VaporPressure(temp)).Float()
			muN2 := sys.Nitrogen().GasViscosity(temp, scalar.Float(1e5)).Float()

			mixed := sys.Viscosity(state(350, 1e5, 0.5, 0.5), &pc, GasPhaseIdx).Float()
			Expect(mixed).To(BeNumerically(">=", min(muH2O, muN2)))
			Expect(mixed).To(BeNumerically("<=", max(muH2O, muN2)))
		})

		It("approaches pure nitrogen as water vanishes", func() {
			muN2 := sys.Nitrogen().GasViscosity(scalar.Float(350), scalar.Float(1e5)).Float()
			mixed := sys.Viscosity(state(350, 1e5, 1e-9, 1), &pc, GasPhaseIdx).Float()
			Expect(mixed).To(BeNumerically("~", muN2, muN2*1e-6))
		})
	})

	Describe("relation sets", func() {
		It("reports its configured relation set", func() {
			Expect(sys.Relations()).To(Equal(ComplexRelations))
			Expect(sys.Relations().String()).To(Equal("complex"))
		})

		It("produces comparable densities for a dilute gas mixture", func() {
			// almost pure nitrogen: the two relation sets must agree to
			// well under a percent
			complexRho := sys.Density(state(320, 1e5, 0.01, 0.99), &pc, GasPhaseIdx).Float()

			simple := New(
				WithWater[scalar.Float](comps.SimpleH2O[scalar.Float]{}),
				WithRelations[scalar.Float](SimpleRelations),
			)
			simpleRho := simple.Density(newState(simple, 320, 1e5, 1, 0, 0.01, 0.99), &pc, GasPhaseIdx).Float()

			Expect(complexRho).To(BeNumerically("~", simpleRho, simpleRho*0.01))
		})
	})

	Describe("tabulated water", func() {
		It("matches direct evaluation after Init", func() {
			tab := New[scalar.Float]() // tabulated by default
			Expect(tab.Init()).To(Succeed())

			st := newState(tab, 340, 2e6, 1, 0, 0.5, 0.5)
			direct := sys.Enthalpy(st, &pc, LiquidPhaseIdx).Float()
			interp := tab.Enthalpy(st, &pc, LiquidPhaseIdx).Float()
			Expect(interp).To(BeNumerically("~", direct, max(1.0, direct*1e-3)))
		})

		It("rejects degenerate tabulation bounds", func() {
			tab := New[scalar.Float]()
			Expect(tab.InitRange(400, 300, 10, 0, 1e6, 10)).To(MatchError(comps.ErrTableBounds))
		})
	})
})
