// SPDX-License-Identifier: MIT

// Package factorize computes singular value decompositions and rank-r
// approximations of dense matrices.
//
// 🚀 What does it do?
//
//	Three pure operations, each a one-shot function with no shared state:
//	  • Decompose     — full SVD: A (m×n) → U (m×m), Σ (min(m,n)), V (n×n)
//	  • Truncate      — keep the top r singular directions:
//	                    Left (m×r) = U[:, :r]·diag(Σ[:r]), Right (r×n) = V[:, :r]ᵗ
//	  • EffectiveRank — count singular values above a numerical-rank tolerance
//
// The truncation carries the Eckart–Young guarantee: for r below the true
// rank, Left·Right is the best possible rank-r approximation of A under the
// Frobenius norm; for r at or above the true rank it reconstructs A within
// floating-point tolerance.
//
// The SVD primitive itself is consumed from gonum.org/v1/gonum/mat
// (mat.SVD with mat.SVDFull) and is assumed correct and numerically stable;
// this package validates inputs, converts through the matrix bridge, and
// surfaces a non-converging factorization as ErrSVDFailed — never a silent
// fallback.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lowrank/factorize"
//
//	dec, err := factorize.Decompose(a)        // full SVD
//	ap, err  := factorize.Truncate(dec, 2)    // best rank-2 approximation
//	ar, err  := factorize.Reconstruct(ap)     // Left·Right, ≈ a when rank(a) ≤ 2
//	rk, err  := factorize.EffectiveRank(a, factorize.DefaultOptions())
//
// Determinism: ordering of equal (or nearly equal) singular values is
// inherited from the underlying primitive; it is stable for a given input
// but no canonical tie-break is imposed, so cross-implementation comparison
// must be numerical, not bit-exact.
package factorize
