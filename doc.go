// Package lowrank is a compact numerical toolkit for truncated singular
// value decomposition and Low-Rank Adaptation (LoRA) of linear maps.
//
// 🚀 What is lowrank?
//
//	A small, deterministic library that demonstrates — and implements
//	rigorously — the one algorithmic idea behind LoRA fine-tuning:
//		• Factor a matrix A as U·diag(Σ)·Vᵗ (full SVD)
//		• Keep only the top r singular directions → best rank-r approximation
//		• Attach the rank-r factors as a trainable additive correction
//		  to a frozen base matrix, and count the parameters you saved
//
// ✨ Why choose lowrank?
//
//   - Minimal API, clear naming — three focused subpackages
//   - Rock-solid numeric contracts — sentinel errors, strict validation,
//     Eckart–Young guarantee covered by tests
//   - Deterministic — fixed loop orders, no global state, no hidden RNG
//
// Under the hood, everything is organized under three subpackages:
//
//	matrix/    — dense row-major float64 matrices, kernels & validators
//	factorize/ — Decompose (full SVD), Truncate (rank-r), EffectiveRank
//	adapt/     — frozen base + trainable low-rank factors (LoRA-style)
//
// Quick sketch:
//
//	A (m×n) ──Decompose──▶ U, Σ, Vᵗ ──Truncate(r)──▶ L (m×r), R (r×n)
//
//	W (frozen base) + L·R ──Evaluate(x)──▶ W·x + L·(R·x) + bias
//
// The SVD primitive itself is consumed from gonum.org/v1/gonum/mat and is
// not re-derived here.
//
//	go get github.com/katalvlaran/lowrank
package lowrank
