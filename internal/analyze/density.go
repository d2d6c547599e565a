package analyze

import "math"

// Coverage categories for predicted AI grounding coverage.
const (
	CoverageExcellent       = "excellent"
	CoverageGood            = "good"
	CoverageDiluted         = "diluted"
	CoverageSeverelyDiluted = "severely-diluted"
)

// Length recommendations.
const (
	RecommendExpand   = "expand"
	RecommendOptimal  = "optimal"
	RecommendCondense = "condense"
)

// WordRange is an inclusive word-count band.
type WordRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// RankBudget estimates how many words an answer engine would actually ground
// on for a page at a given search rank.
type RankBudget struct {
	Words      int `json:"words"`
	Percentage int `json:"percentage"`
}

// GroundingBudget holds per-rank grounding estimates.
type GroundingBudget struct {
	IfRank1 RankBudget `json:"ifRank1"`
	IfRank3 RankBudget `json:"ifRank3"`
	IfRank5 RankBudget `json:"ifRank5"`
}

// InformationDensityMetrics predicts how much of the page an answer engine
// will use, as a function of total length.
type InformationDensityMetrics struct {
	WordCount         int             `json:"wordCount"`
	OptimalRange      WordRange       `json:"optimalRange"`
	PredictedCoverage int             `json:"predictedCoverage"`
	CoverageCategory  string          `json:"coverageCategory"`
	GroundingBudget   GroundingBudget `json:"groundingBudget"`
	Recommendation    string          `json:"recommendation"`
}

// MeasureInformationDensity applies the empirical coverage curve: 61% below
// 1K words, interpolating 61→35 over 1-2K, 35→22 over 2-3K, then approaching
// a 13% floor beyond 3K.
func MeasureInformationDensity(wordCount int) InformationDensityMetrics {
	wc := float64(wordCount)
	var coverage float64
	var category string
	switch {
	case wordCount < 1000:
		coverage = 61
		category = CoverageExcellent
	case wordCount < 2000:
		coverage = 61 - (wc-1000)/1000*26
		category = CoverageGood
	case wordCount < 3000:
		coverage = 35 - (wc-2000)/1000*13
		category = CoverageDiluted
	default:
		coverage = math.Max(13, 22-(wc-3000)/2000*9)
		category = CoverageSeverelyDiluted
	}

	recommendation := RecommendCondense
	switch {
	case wordCount < 600:
		recommendation = RecommendExpand
	case wordCount <= 1500:
		recommendation = RecommendOptimal
	}

	return InformationDensityMetrics{
		WordCount:         wordCount,
		OptimalRange:      WordRange{Min: 800, Max: 1500},
		PredictedCoverage: int(math.Round(coverage)),
		CoverageCategory:  category,
		GroundingBudget: GroundingBudget{
			IfRank1: rankBudget(wordCount, 531, 0.28, 28),
			IfRank3: rankBudget(wordCount, 378, 0.20, 20),
			IfRank5: rankBudget(wordCount, 266, 0.13, 13),
		},
		Recommendation: recommendation,
	}
}

// rankBudget caps the per-rank base word budget by the page's own share and
// the base percentage by what the budget represents of the page.
func rankBudget(wordCount, baseWords int, baseFraction float64, basePct int) RankBudget {
	words := int(math.Round(float64(wordCount) * baseFraction))
	if words > baseWords {
		words = baseWords
	}
	pct := basePct
	if wordCount > 0 {
		if p := int(math.Round(float64(baseWords) / float64(wordCount) * 100)); p < pct {
			pct = p
		}
	}
	return RankBudget{Words: words, Percentage: pct}
}
