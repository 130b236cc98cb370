package spectral

import "errors"

// Error taxonomy shared by both pipeline stages. Every fatal condition
// wraps exactly one of these sentinels so callers can classify failures
// with errors.Is while the message carries the violated invariant and
// its actual values.
var (
	// ErrConfig covers invalid parameter values: non-positive block
	// sizes, out-of-range start offsets, unknown flag policies.
	ErrConfig = errors.New("invalid configuration")

	// ErrShapeMismatch covers disagreeing array dimensions:
	// polarization arrays, frequency axes, masks, or inconsistent
	// effective channel counts between polarizations.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInsufficientData covers inputs too short to form even a
	// single full block in time or frequency.
	ErrInsufficientData = errors.New("insufficient data")
)
