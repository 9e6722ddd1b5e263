package scoring

import "math/rand"

// RiskThreshold separates the two risk labels. A score strictly above the
// threshold is labelled high risk; the threshold itself is healthy.
const RiskThreshold = 0.5

const (
	LabelHighRisk = "High Risk"
	LabelHealthy  = "Healthy"
)

// RandomScorer is the placeholder classifier: a uniform random score in [0,1).
// A real model satisfies the same contract by implementing
// Score(imagePath) (float64, error).
type RandomScorer struct{}

// NewRandomScorer creates a new RandomScorer.
func NewRandomScorer() *RandomScorer {
	return &RandomScorer{}
}

// Score returns a uniform random risk score in [0,1). The stored image is not
// inspected. The top-level math/rand source is safe for concurrent requests.
func (s *RandomScorer) Score(imagePath string) (float64, error) {
	return rand.Float64(), nil
}

// Label maps a risk score to its human-readable label.
func Label(score float64) string {
	if score > RiskThreshold {
		return LabelHighRisk
	}
	return LabelHealthy
}
