// Package binarycoeff provides binary interaction coefficients for the
// water/nitrogen pair: Henry's-law coefficient and mutual diffusion
// coefficients in the liquid and gas phases.
package binarycoeff

import (
	"math"

	"github.com/pmsim/porefluid/internal/comps"
	"github.com/pmsim/porefluid/internal/scalar"
)

// IAPWS (2004) Henry's-law constants for N2 dissolved in liquid water.
const (
	henryA = -9.67578
	henryB = 4.72162
	henryC = 11.70585
)

// HenryN2 returns the Henry coefficient [Pa] for molecular nitrogen in
// liquid water, following the IAPWS correlation
//
//	ln(kH/psat) = A/Tr + B (1-Tr)^0.355 / Tr + C Tr^-0.41 exp(1-Tr)
//
// with Tr = T/647.096 K.
func HenryN2[S scalar.Value[S]](temp S) S {
	const tCrit = 647.096

	tr := temp.Mul(scalar.Const[S](1 / tCrit))
	tauPow := scalar.Const[S](1).Sub(tr).Pow(0.355)

	ln := scalar.Const[S](henryA).Div(tr).
		Add(tauPow.Mul(scalar.Const[S](henryB)).Div(tr)).
		Add(tr.Pow(-0.41).Mul(scalar.Const[S](1).Sub(tr).Exp()).Mul(scalar.Const[S](henryC)))

	var water comps.SimpleH2O[S]
	return ln.Exp().Mul(water.VaporPressure(temp))
}

// Fuller diffusion volumes [cm3/mol] and molar masses [g/mol] for the pair.
const (
	fullerVH2O = 13.1
	fullerVN2  = 18.5
	fullerMH2O = 18.01518
	fullerMN2  = 28.0134
)

// GasDiffCoeff returns the binary diffusion coefficient [m2/s] of water
// vapor and nitrogen using the Fuller method.
func GasDiffCoeff[S scalar.Value[S]](temp, p S) S {
	sumCbrt := math.Cbrt(fullerVH2O) + math.Cbrt(fullerVN2)
	k := 1.013e-2 * math.Sqrt(1/fullerMH2O+1/fullerMN2) / (sumCbrt * sumCbrt)
	return temp.Pow(1.75).Mul(scalar.Const[S](k)).Div(p)
}

// LiquidDiffCoeff returns the diffusion coefficient [m2/s] of dissolved
// nitrogen in liquid water: the measured value at 25 C scaled linearly
// with absolute temperature.
func LiquidDiffCoeff[S scalar.Value[S]](temp, p S) S {
	const (
		tExp = 273.15 + 25 // [K]
		dExp = 2.01e-9     // [m2/s]
	)
	return temp.Mul(scalar.Const[S](dExp / tExp))
}
