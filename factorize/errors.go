// SPDX-License-Identifier: MIT
// Package factorize: sentinel error set.
// Input-shape and finiteness violations surface as the matrix package
// sentinels (matrix.ErrNilMatrix, matrix.ErrInvalidDimensions,
// matrix.ErrNaNInf) wrapped with this package's operation tags; the
// sentinels below cover conditions that originate here.

package factorize

import "errors"

var (
	// ErrSVDFailed indicates the underlying SVD primitive did not converge.
	// It is propagated, never masked: a malformed factorization would corrupt
	// every downstream evaluation without warning.
	ErrSVDFailed = errors.New("factorize: SVD did not converge")

	// ErrInvalidRank is returned by Truncate when the requested rank r is
	// outside [1, min(m,n)].
	ErrInvalidRank = errors.New("factorize: rank out of range")

	// ErrNilDecomposition indicates a nil or structurally incomplete SVD
	// value (missing U, Σ or V) was passed to Truncate.
	ErrNilDecomposition = errors.New("factorize: nil or incomplete decomposition")

	// ErrNilApproximation indicates a nil or structurally incomplete
	// RankRApproximation was passed to Reconstruct.
	ErrNilApproximation = errors.New("factorize: nil or incomplete approximation")
)
