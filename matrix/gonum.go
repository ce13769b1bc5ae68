// SPDX-License-Identifier: MIT
// Package matrix: bridge between Dense and gonum.org/v1/gonum/mat.
// The factorize package delegates its SVD to gonum through this seam so the
// external library's types never leak into the rest of lowrank.

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const opGonum = "Gonum"

// ToGonum converts m into a freshly allocated *mat.Dense (deep copy).
// The result shares no storage with m.
//
// Errors: ErrNilMatrix. Complexity: Time O(r*c), Space O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	// Validate input non-nil.
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opGonum, err)
	}

	rows, cols := m.Rows(), m.Cols()
	// Fast-path: *Dense backing slice is already row-major → one copy.
	if d, ok := m.(*Dense); ok {
		data := make([]float64, len(d.data))
		copy(data, d.data)

		return mat.NewDense(rows, cols, data), nil
	}

	// Fallback: element-wise copy in fixed i→j order.
	gd := mat.NewDense(rows, cols, nil)
	var v float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opGonum, err)
			}
			gd.Set(i, j, v)
		}
	}

	return gd, nil
}

// FromGonum converts a *mat.Dense into a freshly allocated *Dense (deep copy).
//
// Errors: ErrNilMatrix (nil input), ErrInvalidDimensions (empty input).
// Complexity: Time O(r*c), Space O(r*c).
func FromGonum(gd *mat.Dense) (*Dense, error) {
	if gd == nil {
		return nil, matrixErrorf(opGonum, ErrNilMatrix)
	}
	rows, cols := gd.Dims()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opGonum, err)
	}

	// RawMatrix exposes gonum's row-major storage; honor its stride.
	raw := gd.RawMatrix()
	for i := 0; i < rows; i++ {
		copy(res.data[i*cols:(i+1)*cols], raw.Data[i*raw.Stride:i*raw.Stride+cols])
	}

	return res, nil
}

// FromGonumCols copies the first k columns of gd into a rows×k Dense.
// Used by truncation to slice U[:, :r] and V[:, :r] without materializing
// the whole factor first.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions (k<=0), ErrDimensionMismatch
// (k exceeds gd's column count).
// Complexity: Time O(rows*k), Space O(rows*k).
func FromGonumCols(gd *mat.Dense, k int) (*Dense, error) {
	if gd == nil {
		return nil, matrixErrorf(opGonum, ErrNilMatrix)
	}
	rows, cols := gd.Dims()
	if k <= 0 {
		return nil, matrixErrorf(opGonum, ErrInvalidDimensions)
	}
	if k > cols {
		return nil, matrixErrorf(opGonum, ErrDimensionMismatch)
	}

	res, err := NewDense(rows, k)
	if err != nil {
		return nil, matrixErrorf(opGonum, err)
	}
	raw := gd.RawMatrix()
	for i := 0; i < rows; i++ {
		copy(res.data[i*k:(i+1)*k], raw.Data[i*raw.Stride:i*raw.Stride+k])
	}

	return res, nil
}
