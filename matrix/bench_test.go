package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lowrank/matrix"
)

// newFilledDense builds an n×n Dense with predictable values for benches.
func newFilledDense(b *testing.B, n int) *matrix.Dense {
	b.Helper()
	d, err := matrix.NewDense(n, n)
	if err != nil {
		b.Fatalf("NewDense failed: %v", err)
	}
	data := d.RawData()
	for i := range data {
		data[i] = float64(i%7) - 3 // small mixed-sign values
	}

	return d
}

// benchmarkMul runs the multiplication kernel on n×n operands.
func benchmarkMul(b *testing.B, n int) {
	x := newFilledDense(b, n)
	y := newFilledDense(b, n)

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, err := matrix.Mul(x, y); err != nil {
			b.Fatalf("Mul failed: %v", err)
		}
	}
}

// BenchmarkMul_Small benchmarks 16×16 dense multiplication.
func BenchmarkMul_Small(b *testing.B) { benchmarkMul(b, 16) }

// BenchmarkMul_Medium benchmarks 128×128 dense multiplication.
func BenchmarkMul_Medium(b *testing.B) { benchmarkMul(b, 128) }

// BenchmarkMatVec_Medium benchmarks a 256×256 matrix-vector product.
func BenchmarkMatVec_Medium(b *testing.B) {
	m := newFilledDense(b, 256)
	x := make([]float64, 256)
	for i := range x {
		x[i] = float64(i) / 256
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.MatVec(m, x); err != nil {
			b.Fatalf("MatVec failed: %v", err)
		}
	}
}
