// SPDX-License-Identifier: MIT

// Package adapt: functional options and statistics types.
// Defaults are documented constants (single source of truth); Option
// constructors panic only on nonsensical values (programmer error), while
// user-data violations surface as errors at construction.
package adapt

import "math"

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultInitSigma is the standard deviation used by factor
	// initialization when the caller has no preference: small enough that
	// early training steps stay near the frozen base behavior.
	DefaultInitSigma = 0.01

	// alphaUnset marks "no α configured" inside options; the effective
	// scale is then exactly 1 (the correction is added as-is).
	alphaUnset = 0.0
)

// Internal panic messages (no magic strings).
const (
	panicAlphaInvalid = "adapt: WithAlpha: alpha must be finite and > 0"
)

// Option mutates construction options. Safe to apply repeatedly; the last
// write wins for each field.
type Option func(*options)

// options is the internal, unexported option state consumed by NewLinearMap.
type options struct {
	bias  []float64 // optional bias vector, validated at construction
	alpha float64   // LoRA α; alphaUnset ⇒ scale 1
}

// defaultOptions returns the zero-configuration state: no bias, scale 1.
func defaultOptions() options {
	return options{bias: nil, alpha: alphaUnset}
}

// WithBias attaches a bias vector of length m (the base row count).
// The slice is deep-copied at construction; later caller mutation does not
// affect the map. Length and finiteness are validated by NewLinearMap,
// not here (user data, not programmer error).
func WithBias(bias []float64) Option {
	return func(o *options) { o.bias = bias }
}

// WithAlpha sets the LoRA scaling numerator α; the applied output scale is
// α/r with r the factor rank. Panics on non-finite or non-positive α —
// a nonsensical constant is a programmer error, not runtime input.
func WithAlpha(alpha float64) Option {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 0 {
		panic(panicAlphaInvalid)
	}

	return func(o *options) { o.alpha = alpha }
}

// Stats summarizes a LinearMap for reporting: the parameter-count savings
// that justify low-rank adaptation, plus factor norms useful when watching
// a training run from outside.
type Stats struct {
	// Rows, Cols, Rank give the base shape (m×n) and factor rank r.
	Rows, Cols, Rank int

	// DenseParams is m·n (+m when a bias is attached) — the cost of
	// training the full matrix.
	DenseParams int

	// AdaptedParams is m·r + r·n (+m when a bias is attached) — the cost
	// of training only the low-rank factors.
	AdaptedParams int

	// CompressionRatio is DenseParams/AdaptedParams.
	CompressionRatio float64

	// NormB and NormA are the Frobenius norms of the trainable factors.
	NormB, NormA float64
}
