// Package fluidsystem implements a two-phase (liquid, gas), two-component
// (water, nitrogen) fluid system: a registry of phase and component
// properties plus the mixing rules that combine pure-substance
// correlations into phase-level mixture properties.
//
// The package is the property plug-in of a porous-media flow simulator.
// Every property method is a pure function of the supplied [FluidState]
// and phase/component indices:
//
//	sys := fluidsystem.New[scalar.Float]()
//	if err := sys.Init(); err != nil { ... }
//	rho := sys.Density(state, &cache, fluidsystem.GasPhaseIdx)
//
// Instantiating the system with [scalar.Dual] makes every property carry
// partial derivatives with respect to the seeded state variables, which is
// what the simulator's Newton solver consumes.
//
// # Relation sets
//
// Each property offers two fidelity levels, selected at construction with
// [WithRelations]: [SimpleRelations] treats each phase as its dominant
// pure component, [ComplexRelations] applies the documented mixing rules
// (molar-volume additivity, partial-pressure sums, the Wilke viscosity
// rule).
//
// # Thread safety
//
// Init writes the water tabulation grid and must complete, from a single
// goroutine, before any property evaluation. After that the system is
// immutable and safe for unlimited concurrent reads. No internal locking
// is performed.
package fluidsystem
