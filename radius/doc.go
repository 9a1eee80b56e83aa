// SPDX-License-Identifier: MIT

// Package radius estimates an effective nuclear radius from a measured
// Coulomb energy.
//
// For a pair of mirror nuclei the Coulomb energy difference of a uniformly
// charged sphere is
//
//	E_c = 3·e²·(2Z+1) / (20·π·ε₀·R)
//
// so a measured E_c (MeV) and the atomic number Z give
//
//	R = 3·e²·(2Z+1) / (20·π·ε₀·E_c[J])      (metres)
//
// Because R ∝ 1/E_c, first-order propagation keeps the relative uncertainty:
// σ_R/R = σ_E/E. For split-normal inputs the lower and upper sides swap.
//
// Constants follow the values used by the original analysis (CODATA e, the
// 1986 ε₀ and a rounded MeV→J factor), so published tables reproduce exactly.
package radius
