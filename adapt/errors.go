// SPDX-License-Identifier: MIT
// Package adapt: sentinel error set.
// Shape and numeric violations reuse the matrix package sentinels through
// intention-revealing aliases, so errors.Is matches either name; the
// sentinels declared here cover conditions that originate in this package.

package adapt

import (
	"errors"

	"github.com/katalvlaran/lowrank/matrix"
)

// ErrNilRand indicates a nil random source was passed to
// NewTrainingFactors; the package never falls back to global randomness.
var ErrNilRand = errors.New("adapt: nil random source")

// ErrShapeMismatch aliases matrix.ErrDimensionMismatch: incompatible
// base/factor/bias/input shapes at construction or evaluation.
var ErrShapeMismatch = matrix.ErrDimensionMismatch

// ErrNilOperand aliases matrix.ErrNilMatrix: a nil matrix or vector where
// a value is required.
var ErrNilOperand = matrix.ErrNilMatrix

// ErrNotFinite aliases matrix.ErrNaNInf: NaN or ±Inf where the numeric
// policy requires finite values.
var ErrNotFinite = matrix.ErrNaNInf
