// Package scalar provides the numeric toolbox the mixture formulas are
// written against.
//
// Every property formula in this module is generic over a scalar type
// satisfying [Value]. Two implementations are provided:
//
//   - [Float]: a plain float64, for ordinary evaluation
//   - [Dual]: a forward-mode automatic-differentiation number carrying
//     derivative slots, for use by Newton-type solvers
//
// Writing the formulas once against [Value] means the exact same mixture
// code produces both plain values and value-plus-derivative pairs.
//
// # Construction
//
// Generic code cannot call a constructor function directly, so the
// constraint exposes a FromFloat hook on the zero value:
//
//	eps := scalar.Const[S](1e-5)
//
// lifts a float64 constant into whatever scalar type S is in play. For a
// [Dual] this yields a constant (all derivative slots zero); seeds with a
// unit derivative are created with [Seed].
package scalar
