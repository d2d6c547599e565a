package analyze

import "math"

// Scores are the three weighted 0-10 GEO scores plus their mean, each rounded
// to one decimal.
type Scores struct {
	Overall        float64 `json:"overall"`
	Extractability float64 `json:"extractability"`
	Readability    float64 `json:"readability"`
	Citability     float64 `json:"citability"`
}

// extractabilityScore weights sentence shape, claim density, temporal
// context, predicted coverage and frontloading.
func extractabilityScore(m Metrics) float64 {
	sentence := math.Max(0, 10-math.Abs(m.SentenceLength.Average-float64(m.SentenceLength.Target))/2)
	claim := minF(10, m.ClaimDensity.Current/float64(m.ClaimDensity.Target)*10)
	date := minF(10, float64(m.DateMarkers.Found)/float64(m.DateMarkers.Recommended)*10)
	density := float64(m.InformationDensity.PredictedCoverage) / 10
	frontload := m.Frontloading.FrontloadingScore

	return sentence*0.20 + claim*0.25 + date*0.15 + density*0.20 + frontload*0.20
}

// readabilityScore averages a sentence-length score with a heading-count
// score. The sentence divisor here is 3, not the 2 used for extractability;
// the two formulas are calibrated independently.
func readabilityScore(m Metrics) float64 {
	sentence := math.Max(0, 10-math.Abs(m.SentenceLength.Average-20)/3)
	structure := minF(10, float64(m.Structure.HeadingCount)*2)
	return (sentence + structure) / 2
}

// citabilityScore is driven by the date-marker ratio alone; any entity signal
// from the semantic augmenter is blended in by the caller.
func citabilityScore(m Metrics) float64 {
	recommended := m.DateMarkers.Recommended
	if recommended < 1 {
		recommended = 1
	}
	return minF(10, float64(m.DateMarkers.Found)/float64(recommended)*10)
}

// computeScores derives all four scores from the metric set.
func computeScores(m Metrics) Scores {
	extractability := extractabilityScore(m)
	readability := readabilityScore(m)
	citability := citabilityScore(m)
	overall := (extractability + readability + citability) / 3
	return Scores{
		Overall:        round1(overall),
		Extractability: round1(extractability),
		Readability:    round1(readability),
		Citability:     round1(citability),
	}
}
