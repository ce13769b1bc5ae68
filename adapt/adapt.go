// SPDX-License-Identifier: MIT

package adapt

import (
	"fmt"

	"github.com/katalvlaran/lowrank/matrix"
)

// Operation name constants for unified error wrapping (no magic strings).
const (
	opNew             = "NewLinearMap"
	opEvaluate        = "Evaluate"
	opEffectiveWeight = "EffectiveWeight"
)

// adaptErrorf wraps err with an operation tag, preserving the original
// error via %w so errors.Is/As still match. Call only with err != nil.
func adaptErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// LinearMap is a frozen base matrix with a trainable low-rank correction:
//
//	effective_weight = base + scale·factorB·factorA
//
// base is deep-copied at construction and never mutated by any method;
// factorB and factorA are the live trainable state, reachable through
// FactorB/FactorA for an external optimizer. scale is α/r when WithAlpha
// was supplied, exactly 1 otherwise.
type LinearMap struct {
	base    *matrix.Dense // frozen m×n weight, private deep copy
	factorB *matrix.Dense // trainable m×r factor (live)
	factorA *matrix.Dense // trainable r×n factor (live)
	bias    []float64     // optional length-m bias, private deep copy
	scale   float64       // α/r, or 1 when no α configured
}

// NewLinearMap constructs an adapted map from a frozen base and two
// trainable low-rank factors.
//
// Implementation:
//   - Stage 1: Validate non-nil operands, finite entries, and shape
//     compatibility — base (m×n), factorB (m×r), factorA (r×n) with
//     factorB.Cols == factorA.Rows; optional bias of length m.
//   - Stage 2: Deep-copy base (and bias); adopt the factor handles live;
//     resolve the α/r scale.
//
// Behavior highlights:
//   - factorB/factorA are adopted, NOT copied: the caller-visible matrices
//     are the trainable state, which is the documented mutation seam.
//   - base and bias are copied, so no caller alias can mutate the frozen
//     part afterwards.
//
// Inputs:
//   - base: the frozen m×n weight matrix.
//   - factorB: m×r up-projection factor.
//   - factorA: r×n down-projection factor.
//   - opts: WithBias (length-m vector), WithAlpha (α > 0; scale α/r).
//
// Returns:
//   - *LinearMap: ready for Evaluate; factors trainable from outside.
//
// Errors:
//   - ErrNilOperand (nil matrix/vector), ErrShapeMismatch (any dimension
//     incompatibility, including bias length), ErrNotFinite (NaN/±Inf in
//     base, factors or bias).
//
// Complexity:
//   - Time O(m·n) for the defensive copy and finite scans, Space O(m·n).
func NewLinearMap(base, factorB, factorA matrix.Matrix, opts ...Option) (*LinearMap, error) {
	// Gather options first; Option constructors have already rejected
	// nonsensical constants by panic.
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Validate operands: non-nil and finite.
	for _, operand := range []struct {
		name string
		m    matrix.Matrix
	}{{"base", base}, {"factorB", factorB}, {"factorA", factorA}} {
		if err := matrix.ValidateNotNil(operand.m); err != nil {
			return nil, adaptErrorf(opNew, fmt.Errorf("%s: %w", operand.name, err))
		}
		if err := matrix.ValidateFinite(operand.m); err != nil {
			return nil, adaptErrorf(opNew, fmt.Errorf("%s: %w", operand.name, err))
		}
	}

	// Validate shape compatibility: base m×n, factorB m×r, factorA r×n.
	m, n := base.Rows(), base.Cols()
	if factorB.Rows() != m {
		return nil, adaptErrorf(opNew, fmt.Errorf("factorB rows %d != base rows %d: %w", factorB.Rows(), m, ErrShapeMismatch))
	}
	if factorA.Cols() != n {
		return nil, adaptErrorf(opNew, fmt.Errorf("factorA cols %d != base cols %d: %w", factorA.Cols(), n, ErrShapeMismatch))
	}
	if factorB.Cols() != factorA.Rows() {
		return nil, adaptErrorf(opNew, fmt.Errorf("factorB cols %d != factorA rows %d: %w", factorB.Cols(), factorA.Rows(), ErrShapeMismatch))
	}
	r := factorB.Cols() // rank implied by the factor shapes; ≥ 1 by Dense construction

	// Validate optional bias: length m, finite.
	var bias []float64
	if o.bias != nil {
		if err := matrix.ValidateVecLen(o.bias, m); err != nil {
			return nil, adaptErrorf(opNew, fmt.Errorf("bias: %w", err))
		}
		if err := matrix.ValidateFiniteVec(o.bias); err != nil {
			return nil, adaptErrorf(opNew, fmt.Errorf("bias: %w", err))
		}
		bias = make([]float64, m)
		copy(bias, o.bias) // private copy: bias belongs to the frozen part
	}

	// Freeze the base with a private deep copy; adopt the factors live.
	frozen := copyDense(base)
	bm := adoptDense(factorB)
	am := adoptDense(factorA)

	// Resolve the output scale: α/r when configured, exactly 1 otherwise.
	scale := 1.0
	if o.alpha != alphaUnset {
		scale = o.alpha / float64(r)
	}

	return &LinearMap{base: frozen, factorB: bm, factorA: am, bias: bias, scale: scale}, nil
}

// adoptDense normalizes m to *Dense WITHOUT copying when it already is
// one: the caller-visible handle stays the trainable state. Any other
// Matrix implementation is materialized element-wise into a fresh Dense
// (its original handle is then no longer the mutation seam).
func adoptDense(m matrix.Matrix) *matrix.Dense {
	if d, ok := m.(*matrix.Dense); ok {
		return d
	}

	return copyDense(m)
}

// copyDense always produces a private deep copy — the freezing policy for
// base, so no caller alias can mutate the frozen part afterwards.
func copyDense(m matrix.Matrix) *matrix.Dense {
	if d, ok := m.(*matrix.Dense); ok {
		return d.CloneDense()
	}
	rows, cols := m.Rows(), m.Cols()
	d, _ := matrix.NewDense(rows, cols) // shape already validated upstream
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, _ := m.At(i, j) // bounds-safe after shape validation
			_ = d.Set(i, j, v)
		}
	}

	return d
}

// Evaluate computes y = base·x + scale·(factorB·(factorA·x)) + bias.
//
// The factored form is computed deliberately: base + B·A is never
// materialized, so evaluation costs O(m·n + r·(m+n)) instead of
// O(m·n·r + m·n). The result is mathematically equivalent to
// (base + scale·B·A)·x + bias; the two forms differ only by
// floating-point rounding within standard tolerance (a tested property,
// not a bit-exact identity).
//
// Inputs:
//   - x: input vector of length n (the base column count).
//
// Returns:
//   - []float64: output vector of length m.
//
// Errors:
//   - ErrNilOperand (nil x), ErrShapeMismatch (len(x) != n).
//
// Determinism:
//   - Three fixed-order MatVec passes plus one fused accumulation loop.
//
// Complexity:
//   - Time O(m·n + r·(m+n)), Space O(m + r).
func (lm *LinearMap) Evaluate(x []float64) ([]float64, error) {
	// Validate the input length against the base column count.
	if err := matrix.ValidateVecLen(x, lm.base.Cols()); err != nil {
		return nil, adaptErrorf(opEvaluate, err)
	}

	// y = base·x — the frozen contribution.
	y, err := matrix.MatVec(lm.base, x)
	if err != nil {
		return nil, adaptErrorf(opEvaluate, err)
	}

	// t = factorA·x (length r), then u = factorB·t (length m).
	t, err := matrix.MatVec(lm.factorA, x)
	if err != nil {
		return nil, adaptErrorf(opEvaluate, err)
	}
	u, err := matrix.MatVec(lm.factorB, t)
	if err != nil {
		return nil, adaptErrorf(opEvaluate, err)
	}

	// Fuse the correction and the (optional) bias in one fixed-order pass.
	for i := range y {
		y[i] += lm.scale * u[i]
		if lm.bias != nil {
			y[i] += lm.bias[i]
		}
	}

	return y, nil
}

// EffectiveWeight materializes base + scale·factorB·factorA as a fresh
// Dense. Useful for merge-style workflows and for verifying Evaluate
// against the unfactored form; Evaluate itself never calls this.
//
// Errors: matrix kernel sentinels (not expected after construction).
// Complexity: Time O(m·r·n), Space O(m·n).
func (lm *LinearMap) EffectiveWeight() (*matrix.Dense, error) {
	// correction = factorB·factorA, scaled.
	ba, err := matrix.Mul(lm.factorB, lm.factorA)
	if err != nil {
		return nil, adaptErrorf(opEffectiveWeight, err)
	}
	scaled, err := matrix.Scale(ba, lm.scale)
	if err != nil {
		return nil, adaptErrorf(opEffectiveWeight, err)
	}

	// base + correction into a fresh result; base stays untouched.
	sum, err := matrix.Add(lm.base, scaled)
	if err != nil {
		return nil, adaptErrorf(opEffectiveWeight, err)
	}

	return sum, nil
}

// ParameterCount reports the cost of dense training versus adapted
// training: dense = m·n, adapted = m·r + r·n, each +m when a bias is
// attached (the bias is trained in both scenarios).
//
// Pure shape arithmetic; no error conditions.
// Complexity: O(1).
func (lm *LinearMap) ParameterCount() (dense, adapted int) {
	m, n := lm.base.Rows(), lm.base.Cols()
	r := lm.factorB.Cols()

	dense = m * n
	adapted = m*r + r*n
	if lm.bias != nil {
		dense += m
		adapted += m
	}

	return dense, adapted
}

// CompressionRatio returns dense/adapted parameter counts as a float —
// how many times cheaper adapted training is. Complexity: O(1).
func (lm *LinearMap) CompressionRatio() float64 {
	dense, adapted := lm.ParameterCount()

	return float64(dense) / float64(adapted)
}

// Stats assembles the reporting summary: shapes, parameter counts,
// compression ratio and factor Frobenius norms.
// Complexity: O(m·r + r·n) for the norms.
func (lm *LinearMap) Stats() Stats {
	dense, adapted := lm.ParameterCount()
	// FrobeniusNorm errors only on nil input; both factors are non-nil by
	// construction.
	normB, _ := matrix.FrobeniusNorm(lm.factorB)
	normA, _ := matrix.FrobeniusNorm(lm.factorA)

	return Stats{
		Rows:             lm.base.Rows(),
		Cols:             lm.base.Cols(),
		Rank:             lm.factorB.Cols(),
		DenseParams:      dense,
		AdaptedParams:    adapted,
		CompressionRatio: float64(dense) / float64(adapted),
		NormB:            normB,
		NormA:            normA,
	}
}

// FactorB returns the live m×r trainable factor. Mutating it is the
// intended way for an external optimizer to train the map; the frozen base
// is unaffected. Complexity: O(1).
func (lm *LinearMap) FactorB() *matrix.Dense { return lm.factorB }

// FactorA returns the live r×n trainable factor (see FactorB).
// Complexity: O(1).
func (lm *LinearMap) FactorA() *matrix.Dense { return lm.factorA }

// Base returns a deep copy of the frozen base matrix. The internal base is
// never reachable mutably. Complexity: O(m·n).
func (lm *LinearMap) Base() *matrix.Dense { return lm.base.CloneDense() }

// Bias returns a copy of the bias vector, or nil when none is attached.
// Complexity: O(m).
func (lm *LinearMap) Bias() []float64 {
	if lm.bias == nil {
		return nil
	}
	cp := make([]float64, len(lm.bias))
	copy(cp, lm.bias)

	return cp
}

// Rank returns the factor rank r. Complexity: O(1).
func (lm *LinearMap) Rank() int { return lm.factorB.Cols() }

// Dims returns the base shape (m rows, n cols). Complexity: O(1).
func (lm *LinearMap) Dims() (rows, cols int) { return lm.base.Rows(), lm.base.Cols() }
