package alerts

import "math"

// EquityScorer turns a distribution of weekly hours into a 0-100 fairness score
type EquityScorer interface {
	Score(hours []float64) float64
}

// CoefficientOfVariation scores equity as 100 minus the coefficient of variation
// (population standard deviation over mean) expressed as a percentage.
type CoefficientOfVariation struct{}

// Score returns 100 for an empty or all-zero distribution, and never less than 0.
func (CoefficientOfVariation) Score(hours []float64) float64 {
	if len(hours) == 0 {
		return 100.0
	}

	var sum float64
	for _, h := range hours {
		sum += h
	}
	mean := sum / float64(len(hours))
	if mean == 0 {
		return 100.0 // Everyone having 0 hours is perfectly fair
	}

	var varianceSum float64
	for _, h := range hours {
		diff := h - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(hours)))

	score := 100.0 - (stdDev/mean)*100.0
	if score < 0 {
		return 0.0
	}
	return score
}
