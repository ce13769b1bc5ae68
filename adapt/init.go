// SPDX-License-Identifier: MIT

// Package adapt: trainable-factor initialization.
// The convention is the standard LoRA one: B starts at zero and A at small
// Gaussian noise, so B·A = 0 and the adapted map behaves exactly like the
// frozen base until the first external training step.
package adapt

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/lowrank/matrix"
)

const opTrainingFactors = "NewTrainingFactors"

// NewTrainingFactors allocates a factor pair for training a LinearMap over
// an m×n base at rank r: factorB (m×r) all zeros, factorA (r×n) drawn from
// N(0, sigma²) using the supplied source.
//
// Behavior highlights:
//   - B zero ⇒ the initial correction B·A is exactly zero; pass both
//     factors to NewLinearMap and Evaluate reproduces base·x (+bias)
//     until an optimizer mutates them.
//   - No global randomness: a nil rng is rejected rather than silently
//     seeded, keeping runs reproducible by construction.
//
// Inputs:
//   - m, n: base shape; r: factor rank. All must be ≥ 1.
//   - sigma: Gaussian standard deviation for A; use DefaultInitSigma when
//     in doubt. Must be finite and > 0.
//   - rng: deterministic source, e.g. rand.New(rand.NewSource(seed)).
//
// Returns:
//   - factorB (m×r, zero), factorA (r×n, Gaussian).
//
// Errors:
//   - matrix.ErrInvalidDimensions (non-positive m, n or r),
//     ErrNotFinite (sigma NaN/Inf or ≤ 0), ErrNilRand (nil rng).
//
// Determinism:
//   - Fully determined by rng state; A is filled in fixed flat order.
//
// Complexity:
//   - Time O(r·(m+n)), Space O(r·(m+n)).
func NewTrainingFactors(m, n, r int, sigma float64, rng *rand.Rand) (factorB, factorA *matrix.Dense, err error) {
	// Validate shape parameters.
	if m < 1 || n < 1 || r < 1 {
		return nil, nil, adaptErrorf(opTrainingFactors, matrix.ErrInvalidDimensions)
	}
	// Validate the noise scale.
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
		return nil, nil, adaptErrorf(opTrainingFactors, fmt.Errorf("sigma %v: %w", sigma, ErrNotFinite))
	}
	// Validate the random source; no fallback to global state.
	if rng == nil {
		return nil, nil, adaptErrorf(opTrainingFactors, ErrNilRand)
	}

	// B: zero-initialized m×r (NewDense zero-fills).
	factorB, err = matrix.NewDense(m, r)
	if err != nil {
		return nil, nil, adaptErrorf(opTrainingFactors, err)
	}

	// A: r×n Gaussian N(0, sigma²), filled in fixed flat order.
	factorA, err = matrix.NewDense(r, n)
	if err != nil {
		return nil, nil, adaptErrorf(opTrainingFactors, err)
	}
	data := factorA.RawData()
	for idx := range data {
		data[idx] = rng.NormFloat64() * sigma
	}

	return factorB, factorA, nil
}
