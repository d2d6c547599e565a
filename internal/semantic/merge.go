package semantic

import (
	"math"

	"github.com/houtini-ai/geo-analyzer/internal/analyze"
)

// Merge blends a successful augmentation into a pattern-analysis result,
// replacing the placeholder triple/entity metrics and re-weighting the
// extractability score. The input result is not mutated.
func Merge(res analyze.Result, aug Result, wordCount int) analyze.Result {
	wc := wordCount
	if wc < 1 {
		wc = 1
	}

	examples := []analyze.TripleExample{}
	for _, t := range aug.Triples {
		if len(examples) == 3 {
			break
		}
		examples = append(examples, analyze.TripleExample{
			Sentence:  t.Subject + " " + t.Predicate + " " + t.Object,
			Subject:   t.Subject,
			Predicate: t.Predicate,
			Object:    t.Object,
		})
	}

	quality := 0.0
	for _, t := range aug.Triples {
		quality += t.Confidence
	}
	if n := len(aug.Triples); n > 0 {
		quality /= float64(n)
	}

	res.Metrics.SemanticTriples = analyze.SemanticTripleMetrics{
		Available: true,
		Total:     len(aug.Triples),
		Density:   round2(float64(len(aug.Triples)) / float64(wc) * 100),
		Quality:   quality,
		Examples:  examples,
	}
	res.Metrics.Entities = analyze.EntityMetrics{
		Available: true,
		Total:     len(aug.Entities),
		Density:   round2(float64(len(aug.Entities)) / float64(wc) * 100),
		Diversity: aug.Diversity,
	}

	semanticScore := math.Min(10, float64(len(aug.Triples)))
	res.Scores.Extractability = round1((res.Scores.Extractability + semanticScore) / 2)
	res.Scores.Overall = round1((res.Scores.Extractability + res.Scores.Readability + res.Scores.Citability) / 3)
	return res
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func round2(x float64) float64 { return math.Round(x*100) / 100 }
