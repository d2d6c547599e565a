package analyze

import (
	"fmt"
	"strconv"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is one prioritized, human-readable suggestion.
type Recommendation struct {
	Method        string `json:"method"`
	Priority      string `json:"priority"`
	Location      string `json:"location"`
	CurrentText   string `json:"currentText"`
	SuggestedText string `json:"suggestedText"`
	Rationale     string `json:"rationale"`
}

// fnum renders a float the way the report expects: no trailing zeros.
func fnum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// GenerateRecommendations applies the rule chain in fixed order. Each rule
// appends at most one recommendation; the output order is part of the report
// contract.
func GenerateRecommendations(m Metrics) []Recommendation {
	recs := []Recommendation{}

	if m.InformationDensity.Recommendation == RecommendCondense {
		priority := PriorityMedium
		if m.InformationDensity.CoverageCategory == CoverageSeverelyDiluted {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Method:   "Content Condensation",
			Priority: priority,
			Location: "Entire document",
			CurrentText: fmt.Sprintf("%d words (%d%% predicted AI coverage)",
				m.InformationDensity.WordCount, m.InformationDensity.PredictedCoverage),
			SuggestedText: fmt.Sprintf("Reduce to 800-1,500 words for optimal AI extraction. Currently, AI systems would likely ignore %d%% of your content.",
				100-m.InformationDensity.PredictedCoverage),
			Rationale: "Research shows pages over 1,500 words see diminishing returns. A tight 800-word page gets 50%+ coverage; a 4,000-word page gets only 13%. Density beats length.",
		})
	}

	if m.InformationDensity.Recommendation == RecommendExpand {
		recs = append(recs, Recommendation{
			Method:        "Content Expansion",
			Priority:      PriorityMedium,
			Location:      "Entire document",
			CurrentText:   fmt.Sprintf("%d words", m.InformationDensity.WordCount),
			SuggestedText: "Expand to at least 800 words with additional claims, examples, and supporting data to provide sufficient context for AI extraction.",
			Rationale:     "Very short content may lack sufficient context for AI systems to extract meaningful information. Aim for 800-1,500 words with high claim density.",
		})
	}

	if m.Frontloading.FrontloadingScore < 5 {
		recs = append(recs, Recommendation{
			Method:   "Answer Frontloading",
			Priority: PriorityHigh,
			Location: "Opening paragraph",
			CurrentText: fmt.Sprintf("First claim appears at word %d; %d claims in first 100 words",
				m.Frontloading.FirstClaimPosition, m.Frontloading.First100Words.Claims),
			SuggestedText: "Lead with your key claim or answer in the first 1-2 sentences. AI systems have limited \"attention spans\" and prioritise content that provides answers immediately.",
			Rationale:     "Google extracts ~15.5 word chunks on average. Content that leads with the answer gets prioritised. Follow the inverted pyramid structure used in journalism.",
		})
	}

	if m.SentenceLength.Average > 25 {
		recs = append(recs, Recommendation{
			Method:        "Sentence Simplification",
			Priority:      PriorityHigh,
			Location:      "Throughout document",
			CurrentText:   fmt.Sprintf("Average sentence length: %s words", fnum(m.SentenceLength.Average)),
			SuggestedText: "Break long sentences into shorter ones (15-20 words) to improve AI parsing and fact extraction",
			Rationale:     "Google extracts chunks averaging 15.5 words. Shorter sentences align with natural chunk boundaries, making extraction cleaner and more accurate.",
		})
	}

	if m.ClaimDensity.Current < float64(m.ClaimDensity.Target) {
		recs = append(recs, Recommendation{
			Method:      "Claim Density Enhancement",
			Priority:    PriorityHigh,
			Location:    "Key sections",
			CurrentText: fmt.Sprintf("%s claims per 100 words", fnum(m.ClaimDensity.Current)),
			SuggestedText: fmt.Sprintf("Add specific statistics, numbers, and factual claims to increase claim density towards target of %d per 100 words",
				m.ClaimDensity.Target),
			Rationale: "Higher claim density provides more extractable facts for AI systems to cite. Since AI only uses a fraction of your content, pack more value into fewer words.",
		})
	}

	if m.DateMarkers.Found < m.DateMarkers.Recommended {
		recs = append(recs, Recommendation{
			Method:        "Temporal Markers",
			Priority:      PriorityMedium,
			Location:      "Claims and statistics",
			CurrentText:   fmt.Sprintf("%d temporal markers found", m.DateMarkers.Found),
			SuggestedText: "Add dates to claims (e.g., \"As of 2024...\", \"In Q2 2025...\") to establish temporal context",
			Rationale:     "Temporal markers improve claim verifiability and provide freshness signals to AI systems. Dated information helps LLMs assess relevance and recency.",
		})
	}

	if m.Structure.HeadingCount < 3 {
		recs = append(recs, Recommendation{
			Method:        "Structural Enhancement",
			Priority:      PriorityMedium,
			Location:      "Document structure",
			CurrentText:   fmt.Sprintf("%d headings found", m.Structure.HeadingCount),
			SuggestedText: "Add descriptive headings to break content into logical sections, improving both readability and AI parsing",
			Rationale:     "Clear headings help AI systems understand content hierarchy and identify relevant sections for specific queries. Structured content is easier to chunk and cite.",
		})
	}

	return recs
}
