package adapt_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lowrank/adapt"
	"github.com/katalvlaran/lowrank/factorize"
	"github.com/katalvlaran/lowrank/matrix"
)

// evalTol bounds the rounding gap between the factored evaluation and the
// materialized (base + B·A)·x form.
const evalTol = 1e-9

// randDense fills a rows×cols Dense with uniform values in [-1, 1).
func randDense(t *testing.T, rng *rand.Rand, rows, cols int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(rows, cols)
	require.NoError(t, err)
	data := d.RawData()
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}

	return d
}

// randVec returns a length-n vector with uniform values in [-1, 1).
func randVec(rng *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
	}

	return x
}

// newTestMap builds a (m×n, rank r) LinearMap from seeded random parts.
func newTestMap(t *testing.T, rng *rand.Rand, m, n, r int, opts ...adapt.Option) *adapt.LinearMap {
	t.Helper()
	lm, err := adapt.NewLinearMap(
		randDense(t, rng, m, n),
		randDense(t, rng, m, r),
		randDense(t, rng, r, n),
		opts...,
	)
	require.NoError(t, err)

	return lm
}

// TestNewLinearMap_ShapeValidation verifies every dimension-compatibility
// rule surfaces ErrShapeMismatch.
func TestNewLinearMap_ShapeValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := randDense(t, rng, 4, 3)

	// factorB rows must match base rows.
	_, err := adapt.NewLinearMap(base, randDense(t, rng, 5, 2), randDense(t, rng, 2, 3))
	assert.ErrorIs(t, err, adapt.ErrShapeMismatch, "factorB row mismatch")

	// factorA cols must match base cols.
	_, err = adapt.NewLinearMap(base, randDense(t, rng, 4, 2), randDense(t, rng, 2, 4))
	assert.ErrorIs(t, err, adapt.ErrShapeMismatch, "factorA col mismatch")

	// Inner rank dimension must agree.
	_, err = adapt.NewLinearMap(base, randDense(t, rng, 4, 2), randDense(t, rng, 3, 3))
	assert.ErrorIs(t, err, adapt.ErrShapeMismatch, "factorB.Cols != factorA.Rows")

	// Bias length must equal base rows.
	_, err = adapt.NewLinearMap(base, randDense(t, rng, 4, 2), randDense(t, rng, 2, 3),
		adapt.WithBias([]float64{1, 2}))
	assert.ErrorIs(t, err, adapt.ErrShapeMismatch, "bias length mismatch")
}

// TestNewLinearMap_NilAndNonFinite verifies operand guards.
func TestNewLinearMap_NilAndNonFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	base := randDense(t, rng, 3, 3)
	fb := randDense(t, rng, 3, 1)
	fa := randDense(t, rng, 1, 3)

	_, err := adapt.NewLinearMap(nil, fb, fa)
	assert.ErrorIs(t, err, adapt.ErrNilOperand, "nil base")

	bad := randDense(t, rng, 3, 1)
	require.NoError(t, bad.Set(2, 0, math.NaN()))
	_, err = adapt.NewLinearMap(base, bad, fa)
	assert.ErrorIs(t, err, adapt.ErrNotFinite, "NaN factor")

	_, err = adapt.NewLinearMap(base, fb, fa, adapt.WithBias([]float64{0, math.Inf(1), 0}))
	assert.ErrorIs(t, err, adapt.ErrNotFinite, "non-finite bias")
}

// TestParameterCount_WorkedExample verifies the canonical 10×10, r=2
// accounting: 100 dense parameters versus 40 adapted.
func TestParameterCount_WorkedExample(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	lm := newTestMap(t, rng, 10, 10, 2)

	dense, adapted := lm.ParameterCount()
	assert.Equal(t, 100, dense)
	assert.Equal(t, 40, adapted)
	assert.InDelta(t, 2.5, lm.CompressionRatio(), 1e-15)

	// With a bias both sides gain m parameters.
	withBias := newTestMap(t, rng, 10, 10, 2, adapt.WithBias(make([]float64, 10)))
	dense, adapted = withBias.ParameterCount()
	assert.Equal(t, 110, dense)
	assert.Equal(t, 50, adapted)
}

// TestEvaluate_MatchesMaterializedForm verifies the factored evaluation
// equals (base + B·A)·x + bias within floating-point tolerance.
func TestEvaluate_MatchesMaterializedForm(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	const m, n, r = 7, 5, 2
	bias := randVec(rng, m)
	lm := newTestMap(t, rng, m, n, r, adapt.WithBias(bias))
	x := randVec(rng, n)

	got, err := lm.Evaluate(x)
	require.NoError(t, err)

	// Materialize the effective weight and apply it the unfactored way.
	w, err := lm.EffectiveWeight()
	require.NoError(t, err)
	want, err := matrix.MatVec(w, x)
	require.NoError(t, err)
	for i := range want {
		want[i] += bias[i]
	}

	assert.InDeltaSlice(t, want, got, evalTol, "factored and materialized forms must agree")
}

// TestEvaluate_BiasDefaultsToZero verifies a map without bias evaluates
// the pure linear form.
func TestEvaluate_BiasDefaultsToZero(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const m, n, r = 4, 6, 3
	lm := newTestMap(t, rng, m, n, r)
	x := randVec(rng, n)

	got, err := lm.Evaluate(x)
	require.NoError(t, err)

	w, err := lm.EffectiveWeight()
	require.NoError(t, err)
	want, err := matrix.MatVec(w, x)
	require.NoError(t, err)

	assert.InDeltaSlice(t, want, got, evalTol)
	assert.Nil(t, lm.Bias(), "no bias attached ⇒ nil accessor")
}

// TestEvaluate_InputValidation verifies vector length and nil guards.
func TestEvaluate_InputValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	lm := newTestMap(t, rng, 3, 4, 1)

	_, err := lm.Evaluate([]float64{1, 2, 3})
	assert.ErrorIs(t, err, adapt.ErrShapeMismatch, "length 3 against n=4 must error")

	_, err = lm.Evaluate(nil)
	assert.ErrorIs(t, err, adapt.ErrNilOperand, "nil input must error")
}

// TestFrozenBase_SurvivesFactorTraining verifies the core mutation
// contract: arbitrary external updates to factorB/factorA never change the
// frozen base, and the caller's original base handle is not adopted.
func TestFrozenBase_SurvivesFactorTraining(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const m, n, r = 5, 5, 2
	callerBase := randDense(t, rng, m, n)

	lm, err := adapt.NewLinearMap(callerBase, randDense(t, rng, m, r), randDense(t, rng, r, n))
	require.NoError(t, err)
	snapshot := lm.Base()

	// Simulate a few optimizer epochs mutating the live factors.
	for epoch := 0; epoch < 10; epoch++ {
		for _, factor := range []*matrix.Dense{lm.FactorB(), lm.FactorA()} {
			data := factor.RawData()
			for i := range data {
				data[i] += rng.NormFloat64() * 0.1
			}
		}
		_, err = lm.Evaluate(randVec(rng, n))
		require.NoError(t, err)
	}

	// The caller damaging its own base handle must not reach the map.
	require.NoError(t, callerBase.Set(0, 0, 1e9))

	eq, err := matrix.Equal(lm.Base(), snapshot)
	require.NoError(t, err)
	assert.True(t, eq, "base must stay bit-identical to its construction-time value")
}

// TestFactorMutation_ChangesEvaluation verifies the factor handles are the
// live trainable state (mutations are visible to Evaluate).
func TestFactorMutation_ChangesEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	const m, n, r = 4, 4, 1
	lm := newTestMap(t, rng, m, n, r)
	x := randVec(rng, n)

	before, err := lm.Evaluate(x)
	require.NoError(t, err)

	data := lm.FactorB().RawData()
	for i := range data {
		data[i] += 1.0
	}

	after, err := lm.Evaluate(x)
	require.NoError(t, err)
	assert.NotEqual(t, before, after, "factor updates must flow into evaluation")
}

// TestWithAlpha_ScalesCorrection verifies the α/r output scaling:
// α = 2r makes the correction exactly twice the unscaled one.
func TestWithAlpha_ScalesCorrection(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const m, n, r = 6, 4, 2
	base := randDense(t, rng, m, n)
	fb := randDense(t, rng, m, r)
	fa := randDense(t, rng, r, n)
	x := randVec(rng, n)

	plain, err := adapt.NewLinearMap(base, fb, fa)
	require.NoError(t, err)
	scaled, err := adapt.NewLinearMap(base, fb, fa, adapt.WithAlpha(2*r))
	require.NoError(t, err)

	baseOnly, err := matrix.MatVec(base, x)
	require.NoError(t, err)
	yPlain, err := plain.Evaluate(x)
	require.NoError(t, err)
	yScaled, err := scaled.Evaluate(x)
	require.NoError(t, err)

	for i := range yPlain {
		correction := yPlain[i] - baseOnly[i]
		assert.InDelta(t, baseOnly[i]+2*correction, yScaled[i], evalTol,
			"α=2r must double the low-rank correction at row %d", i)
	}
}

// TestWithAlpha_PanicsOnInvalid verifies nonsensical α values are treated
// as programmer errors.
func TestWithAlpha_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { adapt.WithAlpha(0) })
	assert.Panics(t, func() { adapt.WithAlpha(-1) })
	assert.Panics(t, func() { adapt.WithAlpha(math.NaN()) })
}

// TestNewTrainingFactors_Contract verifies the LoRA initialization
// convention: B zero, A Gaussian, correction exactly zero at start, fully
// reproducible from the seed.
func TestNewTrainingFactors_Contract(t *testing.T) {
	const m, n, r = 6, 5, 2
	fb, fa, err := adapt.NewTrainingFactors(m, n, r, adapt.DefaultInitSigma, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	// B is all zeros.
	zeros, err := matrix.NewDense(m, r)
	require.NoError(t, err)
	eq, err := matrix.Equal(fb, zeros)
	require.NoError(t, err)
	assert.True(t, eq, "factorB must start at zero")

	// A is small but not all zeros.
	normA, err := matrix.FrobeniusNorm(fa)
	require.NoError(t, err)
	assert.Greater(t, normA, 0.0, "factorA must carry Gaussian noise")
	assert.Less(t, normA, 1.0, "sigma=0.01 keeps the noise small")

	// Same seed reproduces the same A.
	_, fa2, err := adapt.NewTrainingFactors(m, n, r, adapt.DefaultInitSigma, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	eq, err = matrix.Equal(fa, fa2)
	require.NoError(t, err)
	assert.True(t, eq, "identical seeds must reproduce factorA")

	// B·A = 0 ⇒ the fresh adapter reproduces the base map exactly.
	rng := rand.New(rand.NewSource(12))
	base := randDense(t, rng, m, n)
	lm, err := adapt.NewLinearMap(base, fb, fa)
	require.NoError(t, err)
	x := randVec(rng, n)

	got, err := lm.Evaluate(x)
	require.NoError(t, err)
	want, err := matrix.MatVec(base, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, evalTol, "zero correction ⇒ Evaluate == base·x")
}

// TestNewTrainingFactors_Validation verifies dimension, sigma and RNG guards.
func TestNewTrainingFactors_Validation(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	_, _, err := adapt.NewTrainingFactors(0, 3, 1, adapt.DefaultInitSigma, rng)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, _, err = adapt.NewTrainingFactors(3, 3, 0, adapt.DefaultInitSigma, rng)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, _, err = adapt.NewTrainingFactors(3, 3, 1, 0, rng)
	assert.ErrorIs(t, err, adapt.ErrNotFinite, "sigma=0 is rejected")
	_, _, err = adapt.NewTrainingFactors(3, 3, 1, math.Inf(1), rng)
	assert.ErrorIs(t, err, adapt.ErrNotFinite)

	_, _, err = adapt.NewTrainingFactors(3, 3, 1, adapt.DefaultInitSigma, nil)
	assert.ErrorIs(t, err, adapt.ErrNilRand)
}

// TestStats_Summary verifies the reporting aggregate.
func TestStats_Summary(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	lm := newTestMap(t, rng, 10, 10, 2)

	st := lm.Stats()
	assert.Equal(t, 10, st.Rows)
	assert.Equal(t, 10, st.Cols)
	assert.Equal(t, 2, st.Rank)
	assert.Equal(t, 100, st.DenseParams)
	assert.Equal(t, 40, st.AdaptedParams)
	assert.InDelta(t, 2.5, st.CompressionRatio, 1e-15)
	assert.Greater(t, st.NormB, 0.0)
	assert.Greater(t, st.NormA, 0.0)
}

// TestAdapter_SeededFromTruncatedSVD verifies the cross-package flow: a
// rank-k matrix decomposed, truncated at k, and mounted as the correction
// over a zero base reproduces the original map exactly.
func TestAdapter_SeededFromTruncatedSVD(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	const m, n, k = 8, 6, 2

	// Build a rank-k target as a product of random factors.
	p := randDense(t, rng, m, k)
	q := randDense(t, rng, k, n)
	target, err := matrix.Mul(p, q)
	require.NoError(t, err)

	// Factor it and mount the truncation as the adapter correction.
	dec, err := factorize.Decompose(target)
	require.NoError(t, err)
	ap, err := factorize.Truncate(dec, k)
	require.NoError(t, err)

	zeroBase, err := matrix.NewDense(m, n)
	require.NoError(t, err)
	lm, err := adapt.NewLinearMap(zeroBase, ap.Left, ap.Right)
	require.NoError(t, err)

	x := randVec(rng, n)
	got, err := lm.Evaluate(x)
	require.NoError(t, err)
	want, err := matrix.MatVec(target, x)
	require.NoError(t, err)

	assert.InDeltaSlice(t, want, got, evalTol, "truncated factors must reproduce the rank-k map")
}
