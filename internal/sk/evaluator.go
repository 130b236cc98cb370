package sk

// Evaluator is the strategy boundary for the spectral-kurtosis
// statistic. The flagger treats both methods as opaque: Evaluate maps
// one block's per-channel moment sums to an SK value per channel, and
// Thresholds maps the parameters to the (lower, upper) decision
// interval. Implementations must be deterministic and must not retain
// or mutate their inputs.
type Evaluator interface {
	Evaluate(s1, s2 []float64, p Params) []float64
	Thresholds(p Params) (lower, upper float64, err error)
}
