package types

// Confidence bounds for rule definitions.
// Confidence is static metadata of a rule; it is copied into the trace
// and never combined along a derivation chain.
const (
	ConfidenceMin = 0.0
	ConfidenceMax = 1.0
)

// Percent renders a confidence value on a 0-100 scale.
func Percent(confidence float64) float64 {
	return confidence * 100
}
