// SPDX-License-Identifier: MIT

// Package factorize: result types and numeric-policy options.
package factorize

import "github.com/katalvlaran/lowrank/matrix"

// SVD holds the full singular value decomposition of an m×n matrix A:
//
//	A = U · diag(Σ) · Vᵗ
//
// with UᵗU = I (m×m), VᵗV = I (n×n), and Σ the min(m,n) non-negative
// singular values in descending order. The invariants hold up to
// floating-point tolerance and are covered by tests, not re-checked on
// every construction.
//
// Ordering of singular vectors for equal (or nearly equal) singular values
// is inherited from the underlying primitive; it is stable for a given
// input but not canonical.
type SVD struct {
	// U is the m×m left orthogonal factor; column i is the left singular
	// vector paired with Sigma[i] (for i < min(m,n)).
	U *matrix.Dense

	// Sigma holds the min(m,n) singular values, non-negative, descending.
	Sigma []float64

	// V is the n×n right orthogonal factor (NOT transposed); column i is
	// the right singular vector paired with Sigma[i].
	V *matrix.Dense
}

// RankRApproximation is a rank-r truncation of an SVD:
//
//	Left (m×r)  = U[:, :r] · diag(Σ[:r])
//	Right (r×n) = V[:, :r]ᵗ
//
// Left·Right ≈ A when r ≥ rank(A); for smaller r it is the Frobenius-optimal
// rank-r approximation (Eckart–Young).
type RankRApproximation struct {
	// Left is the m×r column factor, singular values folded in.
	Left *matrix.Dense

	// Right is the r×n row factor (orthonormal rows).
	Right *matrix.Dense

	// Rank is the truncation rank r used to derive the factors.
	Rank int
}

// AutoRankTolerance selects the standard numerical-rank convention inside
// EffectiveRank: tolerance = max(m,n) · eps · σmax, with eps the float64
// machine epsilon.
const AutoRankTolerance = 0.0

// Options carries the numeric policy for rank estimation.
//
// Fields:
//   - RankTolerance — singular values strictly greater than this count
//     toward the effective rank. AutoRankTolerance (zero) selects the
//     max(m,n)·eps·σmax convention; any explicit positive value is used
//     as given. Negative, NaN or Inf tolerances are rejected.
type Options struct {
	RankTolerance float64
}

// DefaultOptions returns the canonical options: automatic tolerance.
func DefaultOptions() Options {
	return Options{RankTolerance: AutoRankTolerance}
}
