// Package analyze implements the GEO pattern-analysis core: heuristic text
// metrics, weighted 0-10 scoring, chunk simulation, and rule-based
// recommendations. Every function here is a pure, deterministic computation
// over in-memory strings; network fetching and language-model augmentation
// live with the callers.
package analyze

// Metrics bundles every extracted metric record for one analysis.
type Metrics struct {
	SentenceLength     SentenceLengthMetrics     `json:"sentenceLength"`
	ClaimDensity       ClaimDensityMetrics       `json:"claimDensity"`
	DateMarkers        DateMarkerMetrics         `json:"dateMarkers"`
	Structure          StructureMetrics          `json:"structure"`
	InformationDensity InformationDensityMetrics `json:"informationDensity"`
	Frontloading       FrontloadingMetrics       `json:"frontloading"`
	SemanticTriples    SemanticTripleMetrics     `json:"semanticTriples"`
	Entities           EntityMetrics             `json:"entities"`
	QueryAlignment     QueryAlignmentMetrics     `json:"queryAlignment"`
}

// Result is the orchestrator's aggregate output.
type Result struct {
	Scores          Scores           `json:"scores"`
	Metrics         Metrics          `json:"metrics"`
	Chunking        Chunking         `json:"chunking"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Analyze runs every extractor over the content, scores the metrics,
// simulates chunking, and generates recommendations. The html argument is
// optional structural source; when empty, structure falls back to markdown
// heuristics over the text. The function is total over well-formed strings
// and holds no state between calls.
func Analyze(text, query, html string) Result {
	sentences := SplitSentences(text)
	words := SplitWords(text)

	structureSource := html
	isHTML := html != ""
	if !isHTML {
		structureSource = text
	}

	metrics := Metrics{
		SentenceLength:     MeasureSentenceLength(sentences),
		ClaimDensity:       MeasureClaimDensity(sentences, len(words)),
		DateMarkers:        MeasureDateMarkers(sentences),
		Structure:          MeasureStructure(structureSource, isHTML),
		InformationDensity: MeasureInformationDensity(len(words)),
		Frontloading:       MeasureFrontloading(words),
		SemanticTriples:    placeholderTriples(),
		Entities:           placeholderEntities(),
		QueryAlignment:     MeasureQueryAlignment(text, query),
	}

	return Result{
		Scores:          computeScores(metrics),
		Metrics:         metrics,
		Chunking:        SimulateChunking(text),
		Recommendations: GenerateRecommendations(metrics),
	}
}
