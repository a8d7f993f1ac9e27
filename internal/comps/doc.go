// Package comps implements pure-substance property providers: static
// constants (molar mass, critical point) and phase-specific correlations
// (density, viscosity, enthalpy, heat capacity, thermal conductivity,
// vapor pressure) as pure functions of temperature and pressure.
//
// Providers are generic over the scalar type so correlations propagate
// derivative information when evaluated with [scalar.Dual].
//
// The [Tabulated] wrapper trades memory for speed: it precomputes a
// provider's correlations on a rectangular (T, p) grid and answers queries
// by bilinear interpolation, falling back to the exact correlation outside
// the grid.
package comps
