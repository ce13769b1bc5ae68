package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lowrank/matrix"
)

// TestNewDense_InvalidDimensions verifies that non-positive shapes are
// rejected with ErrInvalidDimensions.
func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "zero rows must error")

	_, err = matrix.NewDense(3, -1)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "negative cols must error")
}

// TestNewDense_ZeroInitialized verifies a fresh Dense contains only zeros.
func TestNewDense_ZeroInitialized(t *testing.T) {
	d, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			v, err := d.At(i, j)
			require.NoError(t, err)
			assert.Equal(t, 0.0, v, "fresh Dense must be zero-initialized")
		}
	}
}

// TestNewDenseFromRows_CopiesAndValidates verifies rectangular copy
// semantics and rejection of ragged or empty input.
func TestNewDenseFromRows_CopiesAndValidates(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4}}
	d, err := matrix.NewDenseFromRows(src)
	require.NoError(t, err)

	// Mutating the source after construction must not affect the matrix.
	src[0][0] = 99
	v, err := d.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "NewDenseFromRows must deep-copy the source")

	// Ragged input.
	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch, "ragged rows must error")

	// Empty input.
	_, err = matrix.NewDenseFromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "empty source must error")
	_, err = matrix.NewDenseFromRows([][]float64{{}})
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "empty first row must error")
}

// TestDense_AtSetBounds verifies bounds checking returns ErrOutOfRange
// (and its ErrIndexOutOfBounds alias) instead of panicking.
func TestDense_AtSetBounds(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = d.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange, "row overflow must error")
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds, "alias must match the same condition")

	_, err = d.At(0, -1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange, "negative column must error")

	err = d.Set(-1, 0, 1.0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange, "Set with invalid row must error")
}

// TestDense_CloneIndependence verifies Clone produces a deep copy.
func TestDense_CloneIndependence(t *testing.T) {
	d, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	cp := d.CloneDense()
	require.NoError(t, cp.Set(0, 0, 42))

	v, err := d.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "mutating the clone must not affect the original")
}

// TestDense_RawDataIsView verifies RawData exposes the live backing slice.
func TestDense_RawDataIsView(t *testing.T) {
	d, err := matrix.NewDense(1, 2)
	require.NoError(t, err)

	d.RawData()[1] = 7.5
	v, err := d.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v, "RawData must alias the matrix storage")
}

// TestNewIdentity_Shape verifies the identity construction.
func TestNewIdentity_Shape(t *testing.T) {
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, err := I.At(i, j)
			require.NoError(t, err)
			if i == j {
				assert.Equal(t, 1.0, v)
			} else {
				assert.Equal(t, 0.0, v)
			}
		}
	}

	_, err = matrix.NewIdentity(0)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "zero-size identity must error")
}

// TestEqual_ExactComparison verifies Equal distinguishes bit-identical
// content, differing content, and differing shapes.
func TestEqual_ExactComparison(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	eq, err := matrix.Equal(a, b)
	require.NoError(t, err)
	assert.True(t, eq, "identical content must compare equal")

	require.NoError(t, b.Set(1, 1, 4.0000001))
	eq, err = matrix.Equal(a, b)
	require.NoError(t, err)
	assert.False(t, eq, "Equal is exact, not tolerance-based")

	c, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	eq, err = matrix.Equal(a, c)
	require.NoError(t, err)
	assert.False(t, eq, "shape mismatch means not equal, not an error")

	_, err = matrix.Equal(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix, "nil operand must error")
}

// TestZerosLike_MatchesShape verifies ZerosLike mirrors the source shape.
func TestZerosLike_MatchesShape(t *testing.T) {
	a, err := matrix.NewDense(3, 5)
	require.NoError(t, err)

	z, err := matrix.ZerosLike(a)
	require.NoError(t, err)
	assert.Equal(t, 3, z.Rows())
	assert.Equal(t, 5, z.Cols())

	_, err = matrix.ZerosLike(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix, "nil source must error")
}
