// SPDX-License-Identifier: MIT

// Package adapt implements low-rank adaptation (LoRA-style) of a frozen
// linear map.
//
// 🚀 What is a LinearMap?
//
//	A frozen base matrix W (m×n) paired with two trainable low-rank
//	factors B (m×r) and A (r×n), an optional bias (length m), and an
//	optional α/r output scaling:
//
//	  effective_weight = W + (α/r)·B·A
//	  Evaluate(x)      = W·x + (α/r)·B·(A·x) + bias
//
//	Only B and A are trainable: an external optimizer mutates the
//	matrices returned by FactorB/FactorA between evaluations, while W is
//	deep-copied at construction and never reachable mutably afterwards.
//
// ✨ Why adapt instead of retrain?
//
//   - Parameter accounting: training m·r + r·n values instead of m·n.
//     For a 10×10 base with r=2 that is 40 parameters instead of 100,
//     and the ratio only improves with scale.
//   - The rank-r factors can be seeded from a truncated SVD (package
//     factorize) or initialized for training with NewTrainingFactors
//     (B zero, A Gaussian — so the correction starts at exactly zero).
//
// Concurrency: evaluation is pure and safe to run from many goroutines on
// the same map as long as nothing mutates the factors concurrently; one
// map's factor pair must be exclusively owned by whichever process trains
// it. No optimizer, autodiff or gradient computation lives here.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lowrank/adapt"
//
//	lm, err := adapt.NewLinearMap(base, factorB, factorA,
//	    adapt.WithBias(bias), adapt.WithAlpha(16))
//	y, err := lm.Evaluate(x)
//	dense, adapted := lm.ParameterCount()
package adapt
