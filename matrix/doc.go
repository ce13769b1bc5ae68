// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra primitives used across
// lowrank: a row-major float64 Dense type behind a small Matrix interface,
// plus the kernels (Add, Sub, Mul, Scale, Transpose, MatVec) and norms
// (FrobeniusNorm, MaxAbsDiff) that factorization and adaptation build on.
//
// The package follows three rules everywhere:
//
//   - Strict fail-fast validation through central validators; all failures
//     are sentinel errors matched via errors.Is, never panics.
//   - Kernels never mutate their operands; every result is freshly
//     allocated, and loop orders are fixed for deterministic output.
//   - *Dense operands unlock flat-slice fast-paths; any other Matrix
//     implementation falls back to bounds-checked At/Set loops.
//
// A thin bridge (ToGonum/FromGonum) converts between Dense and
// gonum.org/v1/gonum/mat.Dense, so spectral routines can be delegated to
// gonum without leaking its types into the rest of the library.
//
// Matrices here are best for small and moderate dense problems, which is
// exactly the regime of rank-r adaptation demos; no sparse storage is
// provided.
package matrix
