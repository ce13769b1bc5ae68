// SPDX-License-Identifier: MIT

package factorize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lowrank/matrix"
)

// machineEps is the float64 machine epsilon (2^-52), used by the automatic
// numerical-rank tolerance.
const machineEps = 0x1p-52

// Operation name constants for unified error wrapping (no magic strings).
const (
	opDecompose     = "Decompose"
	opTruncate      = "Truncate"
	opEffectiveRank = "EffectiveRank"
	opReconstruct   = "Reconstruct"
)

// factorizeErrorf wraps err with an operation tag, preserving the original
// error via %w so errors.Is/As still match. Call only with err != nil.
func factorizeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Decompose computes the full SVD of m: U (m×m), Σ (min(m,n), descending),
// V (n×n) with m = U·diag(Σ)·Vᵗ.
//
// Implementation:
//   - Stage 1: Validate non-nil, positive shape, all-finite entries.
//   - Stage 2: Convert through the gonum bridge, run mat.SVD with
//     mat.SVDFull, and copy U, Σ, V back into matrix.Dense values.
//
// Behavior highlights:
//   - Pure: the input matrix is never mutated; all factors are fresh.
//   - A non-converging factorization surfaces as ErrSVDFailed, never a
//     silent fallback.
//
// Inputs:
//   - m: finite-valued matrix with Rows ≥ 1 and Cols ≥ 1.
//
// Returns:
//   - *SVD: the full decomposition (see types.go for invariants).
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrInvalidDimensions, matrix.ErrNaNInf
//     (validation); ErrSVDFailed (primitive did not converge).
//
// Determinism:
//   - Stable for a given input; tie ordering inherited from the primitive.
//
// Complexity:
//   - Time O(min(m,n)·m·n) for the factorization, Space O(m² + n²).
func Decompose(m matrix.Matrix) (*SVD, error) {
	// Validate structure: non-nil and positive shape.
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, factorizeErrorf(opDecompose, err)
	}
	if m.Rows() < 1 || m.Cols() < 1 {
		return nil, factorizeErrorf(opDecompose, matrix.ErrInvalidDimensions)
	}
	// Validate numeric policy: every entry finite.
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, factorizeErrorf(opDecompose, err)
	}

	// Convert through the bridge; the copy keeps m untouched by gonum.
	gd, err := matrix.ToGonum(m)
	if err != nil {
		return nil, factorizeErrorf(opDecompose, err)
	}

	// Run the external primitive. A false ok means no convergence.
	var svd mat.SVD
	if ok := svd.Factorize(gd, mat.SVDFull); !ok {
		return nil, factorizeErrorf(opDecompose, ErrSVDFailed)
	}

	// Extract factors into gonum containers.
	var gu, gv mat.Dense
	svd.UTo(&gu)
	svd.VTo(&gv)
	sigma := svd.Values(nil) // min(m,n) values, descending

	// Copy back into matrix.Dense values.
	u, err := matrix.FromGonum(&gu)
	if err != nil {
		return nil, factorizeErrorf(opDecompose, err)
	}
	v, err := matrix.FromGonum(&gv)
	if err != nil {
		return nil, factorizeErrorf(opDecompose, err)
	}

	return &SVD{U: u, Sigma: sigma, V: v}, nil
}

// Truncate derives the rank-r approximation from a decomposition:
//
//	Left (m×r)  = U[:, :r] · diag(Σ[:r])
//	Right (r×n) = V[:, :r]ᵗ
//
// Implementation:
//   - Stage 1: Validate dec is structurally complete and 1 ≤ r ≤ min(m,n).
//   - Stage 2: Copy the leading r columns of U scaled by Σ, and the leading
//     r columns of V transposed, in fixed loop order.
//
// Behavior highlights:
//   - Singular values are consumed in the stored descending order; ties
//     keep whatever stable order the primitive produced.
//   - dec is read-only; both factors are freshly allocated.
//
// Inputs:
//   - dec: a decomposition produced by Decompose (or equivalent).
//   - r: target rank, 1 ≤ r ≤ min(m,n).
//
// Returns:
//   - *RankRApproximation: Left, Right and the rank used.
//
// Errors:
//   - ErrNilDecomposition (nil dec or missing U/Σ/V), ErrInvalidRank
//     (r outside [1, min(m,n)]).
//
// Determinism:
//   - Fixed i→j copy loops; stable output for a stable decomposition.
//
// Complexity:
//   - Time O((m+n)·r), Space O((m+n)·r).
func Truncate(dec *SVD, r int) (*RankRApproximation, error) {
	// Validate the decomposition is structurally usable.
	if dec == nil || dec.U == nil || dec.V == nil || len(dec.Sigma) == 0 {
		return nil, factorizeErrorf(opTruncate, ErrNilDecomposition)
	}
	// min(m,n) equals the stored singular value count by construction.
	minDim := len(dec.Sigma)
	if r < 1 || r > minDim {
		return nil, factorizeErrorf(opTruncate, ErrInvalidRank)
	}

	rows := dec.U.Rows() // m
	cols := dec.V.Rows() // n (V is n×n, not transposed)

	// Left = U[:, :r] · diag(Σ[:r]): copy column j of U scaled by Σ[j].
	left, err := matrix.NewDense(rows, r)
	if err != nil {
		return nil, factorizeErrorf(opTruncate, err)
	}
	var i, j int
	var uv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < r; j++ {
			if uv, err = dec.U.At(i, j); err != nil {
				return nil, factorizeErrorf(opTruncate, err)
			}
			// Set is bounds-safe here; shape was just allocated.
			_ = left.Set(i, j, uv*dec.Sigma[j])
		}
	}

	// Right = V[:, :r]ᵗ: row j of Right is column j of V.
	right, err := matrix.NewDense(r, cols)
	if err != nil {
		return nil, factorizeErrorf(opTruncate, err)
	}
	var vv float64
	for j = 0; j < r; j++ {
		for i = 0; i < cols; i++ {
			if vv, err = dec.V.At(i, j); err != nil {
				return nil, factorizeErrorf(opTruncate, err)
			}
			_ = right.Set(j, i, vv)
		}
	}

	return &RankRApproximation{Left: left, Right: right, Rank: r}, nil
}

// Reconstruct materializes Left·Right — the rank-r image of the original
// matrix. Equals the input of Decompose within tolerance when
// ap.Rank ≥ rank(A); otherwise the Frobenius-optimal rank-r approximation.
//
// Errors: ErrNilApproximation; matrix kernel sentinels on shape damage.
// Complexity: Time O(m·r·n), Space O(m·n).
func Reconstruct(ap *RankRApproximation) (*matrix.Dense, error) {
	// Validate the approximation is structurally usable.
	if ap == nil || ap.Left == nil || ap.Right == nil {
		return nil, factorizeErrorf(opReconstruct, ErrNilApproximation)
	}

	// Delegate to the canonical multiplication kernel.
	res, err := matrix.Mul(ap.Left, ap.Right)
	if err != nil {
		return nil, factorizeErrorf(opReconstruct, err)
	}

	return res, nil
}

// EffectiveRank counts singular values strictly greater than the configured
// tolerance — the numerical rank of m. Intended for validating synthetic
// rank-deficient inputs; production rank selection is normally a caller
// hyperparameter.
//
// Implementation:
//   - Stage 1: Validate opts (finite, non-negative tolerance), then run a
//     full Decompose (validation included).
//   - Stage 2: Resolve AutoRankTolerance to max(m,n)·eps·σmax and count
//     values above it in one descending pass.
//
// Inputs:
//   - m: finite-valued matrix, Rows ≥ 1 and Cols ≥ 1.
//   - opts: numeric policy; DefaultOptions() for the standard convention.
//
// Returns:
//   - int: number of singular values strictly above the tolerance.
//
// Errors:
//   - matrix.ErrNaNInf (invalid tolerance or non-finite input),
//     matrix.ErrNilMatrix / matrix.ErrInvalidDimensions (structure),
//     ErrSVDFailed (primitive).
//
// Determinism:
//   - Σ is descending, so the count is the index of the first value at or
//     below the tolerance; fully stable.
//
// Complexity:
//   - Dominated by Decompose: Time O(min(m,n)·m·n).
func EffectiveRank(m matrix.Matrix, opts Options) (int, error) {
	// Validate tolerance policy before paying for the decomposition.
	if math.IsNaN(opts.RankTolerance) || math.IsInf(opts.RankTolerance, 0) || opts.RankTolerance < 0 {
		return 0, factorizeErrorf(opEffectiveRank, matrix.ErrNaNInf)
	}

	// Full decomposition; validation of m happens inside.
	dec, err := Decompose(m)
	if err != nil {
		return 0, factorizeErrorf(opEffectiveRank, err)
	}

	// Resolve the automatic tolerance: max(m,n)·eps·σmax.
	tol := opts.RankTolerance
	if tol == AutoRankTolerance {
		maxDim := m.Rows()
		if m.Cols() > maxDim {
			maxDim = m.Cols()
		}
		sigmaMax := 0.0
		if len(dec.Sigma) > 0 {
			sigmaMax = dec.Sigma[0] // descending order ⇒ first is largest
		}
		tol = float64(maxDim) * machineEps * sigmaMax
	}

	// Count values strictly above the tolerance (descending pass).
	rank := 0
	for _, s := range dec.Sigma {
		if s > tol {
			rank++
		} else {
			break // descending ⇒ nothing larger follows
		}
	}

	return rank, nil
}
