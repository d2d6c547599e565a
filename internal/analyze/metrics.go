package analyze

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SentenceLengthMetrics summarizes per-sentence word counts.
type SentenceLengthMetrics struct {
	Average     float64               `json:"average"`
	Target      int                   `json:"target"`
	Problematic []ProblematicSentence `json:"problematic"`
}

// ProblematicSentence is a sentence whose word count exceeds 30.
type ProblematicSentence struct {
	Sentence  string `json:"sentence"`
	WordCount int    `json:"wordCount"`
	Location  string `json:"location"`
}

// ClaimDensityMetrics expresses fact-pattern matches per 100 words.
type ClaimDensityMetrics struct {
	Current float64 `json:"current"`
	Target  int     `json:"target"`
}

// DateMarkerMetrics counts sentences carrying temporal context.
type DateMarkerMetrics struct {
	Found       int `json:"found"`
	Recommended int `json:"recommended"`
}

// StructureMetrics describes document markup shape.
type StructureMetrics struct {
	HeadingCount       int     `json:"headingCount"`
	ListCount          int     `json:"listCount"`
	AvgSectionLength   float64 `json:"avgSectionLength"`
	HasTableOfContents bool    `json:"hasTableOfContents"`
}

// TripleExample carries one extracted triple rendered as a sentence.
type TripleExample struct {
	Sentence  string `json:"sentence"`
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// SemanticTripleMetrics holds triple counts from the optional language-model
// augmenter. Available distinguishes "no data" from a measured zero: the
// pattern-only path never computes these and leaves Available false with
// zero values.
type SemanticTripleMetrics struct {
	Available bool            `json:"available"`
	Total     int             `json:"total"`
	Density   float64         `json:"density"`
	Quality   float64         `json:"quality"`
	Examples  []TripleExample `json:"examples"`
}

// EntityMetrics mirrors SemanticTripleMetrics for named entities; the local
// heuristic path supplies placeholders only.
type EntityMetrics struct {
	Available bool    `json:"available"`
	Total     int     `json:"total"`
	Density   float64 `json:"density"`
	Diversity float64 `json:"diversity"`
}

// IntentCoverage is one latent-intent bucket of query alignment.
type IntentCoverage struct {
	Intent   string   `json:"intent"`
	Type     string   `json:"type"`
	Coverage int      `json:"coverage"`
	Gaps     []string `json:"gaps"`
}

// QueryAlignmentMetrics reports how much of the target query the content
// covers. Only a single "Informational" bucket is produced and gap detection
// is not performed.
type QueryAlignmentMetrics struct {
	PrimaryQuery  string           `json:"primaryQuery"`
	LatentIntents []IntentCoverage `json:"latentIntents"`
}

// round1 rounds half away from zero at one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// MeasureSentenceLength computes the average sentence length and lists up to
// five sentences longer than 30 words, in document order.
func MeasureSentenceLength(sentences []string) SentenceLengthMetrics {
	m := SentenceLengthMetrics{Target: 20, Problematic: []ProblematicSentence{}}
	if len(sentences) == 0 {
		return m
	}
	total := 0
	for i, s := range sentences {
		n := len(SplitWords(s))
		total += n
		if n > 30 && len(m.Problematic) < 5 {
			m.Problematic = append(m.Problematic, ProblematicSentence{
				Sentence:  s,
				WordCount: n,
				Location:  fmt.Sprintf("Sentence %d", i+1),
			})
		}
	}
	m.Average = round1(float64(total) / float64(len(sentences)))
	return m
}

// MeasureClaimDensity counts fact-pattern firings per sentence, without
// deduplication, normalized per 100 words.
func MeasureClaimDensity(sentences []string, wordCount int) ClaimDensityMetrics {
	m := ClaimDensityMetrics{Target: 4}
	if wordCount == 0 {
		return m
	}
	claims := 0
	for _, s := range sentences {
		for _, r := range ClaimRules {
			if r.Match(s) {
				claims++
			}
		}
	}
	m.Current = round1(float64(claims) / float64(wordCount) * 100)
	return m
}

// MeasureDateMarkers counts sentences matching at least one temporal rule.
// The recommended count scales with document length, floored at five.
func MeasureDateMarkers(sentences []string) DateMarkerMetrics {
	found := 0
	for _, s := range sentences {
		if anyRuleMatches(DateRules, s) {
			found++
		}
	}
	recommended := len(sentences) / 10
	if recommended < 5 {
		recommended = 5
	}
	return DateMarkerMetrics{Found: found, Recommended: recommended}
}

var (
	mdHeadingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+.+$`)
	mdBulletRe     = regexp.MustCompile(`(?m)^[*+-]\s+.+$`)
	sectionSplitRe = regexp.MustCompile(`(?mi)<h[1-6][^>]*>.*?</h[1-6]>|^#{1,6}\s+.+$`)
)

// MeasureStructure counts headings and list items. When the input is HTML the
// tags are counted directly; otherwise markdown headings and bullets are
// matched line by line. Section lengths are measured between heading
// boundaries in either form, counting empty segments.
func MeasureStructure(content string, isHTML bool) StructureMetrics {
	var headings, lists int
	if isHTML {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
			headings = doc.Find("h1, h2, h3, h4, h5, h6").Length()
			lists = doc.Find("ul > li").Length() + doc.Find("ol > li").Length()
		}
	} else {
		headings = len(mdHeadingRe.FindAllString(content, -1))
		lists = len(mdBulletRe.FindAllString(content, -1))
	}

	segments := sectionSplitRe.Split(content, -1)
	total := 0
	for _, s := range segments {
		total += len(s)
	}
	n := len(segments)
	if n < 1 {
		n = 1
	}
	avg := math.Round(float64(total) / float64(n))

	return StructureMetrics{
		HeadingCount:       headings,
		ListCount:          lists,
		AvgSectionLength:   avg,
		HasTableOfContents: strings.Contains(strings.ToLower(content), "table of contents"),
	}
}

// MeasureQueryAlignment reports the fraction of distinct query words found as
// substrings of the lowercased content, scaled to 0..10. An empty query is
// vacuously covered.
func MeasureQueryAlignment(content, query string) QueryAlignmentMetrics {
	contentLower := strings.ToLower(content)
	seen := map[string]struct{}{}
	matched := 0
	for _, w := range SplitWords(strings.ToLower(query)) {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if strings.Contains(contentLower, w) {
			matched++
		}
	}
	coverage := 1.0
	if len(seen) > 0 {
		coverage = float64(matched) / float64(len(seen))
	}
	return QueryAlignmentMetrics{
		PrimaryQuery: query,
		LatentIntents: []IntentCoverage{{
			Intent:   "Informational",
			Type:     "informational",
			Coverage: int(math.Round(coverage * 10)),
			Gaps:     []string{},
		}},
	}
}

// placeholderTriples returns the unavailable-state triple metrics used until
// the semantic augmenter supplies real values.
func placeholderTriples() SemanticTripleMetrics {
	return SemanticTripleMetrics{Examples: []TripleExample{}}
}

// placeholderEntities returns the unavailable-state entity metrics.
func placeholderEntities() EntityMetrics {
	return EntityMetrics{}
}
