package analyze

import "strings"

// WindowStats counts claim and entity pattern matches inside a fixed prefix
// window. Density is claims per 100 words of the window size.
type WindowStats struct {
	Claims   int     `json:"claims"`
	Entities int     `json:"entities"`
	Density  float64 `json:"density"`
}

// FrontloadingMetrics measures how early key information appears. Answer
// engines have short effective attention windows, so claims buried deep in a
// page rarely get extracted.
type FrontloadingMetrics struct {
	First100Words      WindowStats `json:"first100Words"`
	First300Words      WindowStats `json:"first300Words"`
	FirstClaimPosition int         `json:"firstClaimPosition"`
	FrontloadingScore  float64     `json:"frontloadingScore"`
}

// MeasureFrontloading evaluates claim/entity density in the first 100 and 300
// words and locates the first claim. The score starts at 5 and moves with
// early claims and entities, with a penalty when the first claim lands past
// word 100 or a bonus when it lands before word 30.
func MeasureFrontloading(words []string) FrontloadingMetrics {
	first100 := joinPrefix(words, 100)
	first300 := joinPrefix(words, 300)

	c100 := countRuleMatches(FrontloadClaimRules, first100)
	e100 := countRuleMatches(EntityRules, first100)
	c300 := countRuleMatches(FrontloadClaimRules, first300)
	e300 := countRuleMatches(EntityRules, first300)

	firstClaim := firstClaimPosition(words)

	score := 5.0
	score += minF(2, float64(c100)*0.5)
	score += minF(1.5, float64(e100)*0.3)
	if firstClaim > 100 {
		score -= minF(2, float64(firstClaim-100)/50)
	} else if firstClaim < 30 {
		score++
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return FrontloadingMetrics{
		First100Words:      WindowStats{Claims: c100, Entities: e100, Density: round1(float64(c100) / 100 * 100)},
		First300Words:      WindowStats{Claims: c300, Entities: e300, Density: round1(float64(c300) / 300 * 100)},
		FirstClaimPosition: firstClaim,
		FrontloadingScore:  round1(score),
	}
}

// firstClaimPosition returns the 1-based word index at which the growing
// prefix first matches a claim rule, or the total word count when no claim
// appears anywhere.
func firstClaimPosition(words []string) int {
	var prefix strings.Builder
	for i, w := range words {
		if i > 0 {
			prefix.WriteByte(' ')
		}
		prefix.WriteString(w)
		if anyRuleMatches(FrontloadClaimRules, prefix.String()) {
			return i + 1
		}
	}
	return len(words)
}

func joinPrefix(words []string, n int) string {
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
