// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common constructions.
//   - Avoid logic duplication — each facade delegates to the canonical
//     implementation in dense.go / kernels.go.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - Use NewIdentity/ZerosLike to build matrices with explicit shape and
//     neutral elements.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
// Complexity: O(r*c) zero-init by the runtime.
func NewZeros(rows, cols int) (*Dense, error) {
	// Delegate directly to the strict constructor (single allocation).
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	// Allocate an n×n zero matrix via the constructor.
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err // propagate constructor error unchanged
	}
	// Set the diagonal deterministically in a single loop.
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Complexity: O(1) alloc + O(r*c) zeroing. Handy for staging buffers.
func ZerosLike(m Matrix) (*Dense, error) {
	// Guard nil before reading shape.
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	// Read shape once and call NewDense with the same dimensions.
	return NewDense(m.Rows(), m.Cols())
}

// Equal reports whether a and b have identical shapes and bit-identical
// elements (== comparison, no tolerance). Use it for frozen-state checks;
// for numerical closeness compare MaxAbsDiff against a tolerance instead.
//
// Errors:
//   - ErrNilMatrix when either operand is nil.
//
// Determinism:
//   - Fixed i→j scan; first difference short-circuits.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func Equal(a, b Matrix) (bool, error) {
	// Validate operands are non-nil.
	if err := ValidateNotNil(a); err != nil {
		return false, err
	}
	if err := ValidateNotNil(b); err != nil {
		return false, err
	}
	// Shape difference means "not equal", not an error.
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false, nil
	}

	// Fast-path: both *Dense → compare flat slices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if da.data[idx] != db.data[idx] {
					return false, nil
				}
			}

			return true, nil
		}
	}

	// Fallback: bounds-safe At comparison in fixed order.
	rows, cols := a.Rows(), a.Cols()
	var av, bv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, err
			}
			if bv, err = b.At(i, j); err != nil {
				return false, err
			}
			if av != bv {
				return false, nil
			}
		}
	}

	return true, nil
}
