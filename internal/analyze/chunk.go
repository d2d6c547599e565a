package analyze

// ContentChunk is one fixed-size window of the content, sized to approximate
// how a retrieval system would segment the page.
type ContentChunk struct {
	Content           string  `json:"content"`
	SemanticCoherence float64 `json:"semanticCoherence"`
	SelfContained     bool    `json:"selfContained"`
	TokenCount        int     `json:"tokenCount"`
}

// Chunking aggregates the simulated chunk windows.
type Chunking struct {
	Chunks                []ContentChunk `json:"chunks"`
	AverageCoherence      float64        `json:"averageCoherence"`
	ProblematicBoundaries int            `json:"problematicBoundaries"`
}

const (
	chunkSize      = 500
	chunkCoherence = 0.8
	maxChunksShown = 3
	tokensPerWord  = 1.3
)

// SimulateChunking slices the content into consecutive 500-character windows
// and returns the first three. Coherence is a fixed placeholder; this is a
// display aid, not a real chunking algorithm.
func SimulateChunking(content string) Chunking {
	runes := []rune(content)
	chunks := []ContentChunk{}
	for i := 0; i < len(runes) && len(chunks) < maxChunksShown; i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		window := string(runes[i:end])
		chunks = append(chunks, ContentChunk{
			Content:           window,
			SemanticCoherence: chunkCoherence,
			SelfContained:     true,
			TokenCount:        int(float64(len(SplitWords(window))) * tokensPerWord),
		})
	}
	return Chunking{
		Chunks:                chunks,
		AverageCoherence:      chunkCoherence,
		ProblematicBoundaries: 0,
	}
}
