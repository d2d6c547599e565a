// Package report renders a finished analysis as a markdown document or a
// machine-readable JSON envelope.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/houtini-ai/geo-analyzer/internal/analyze"
)

// Version identifies the analyzer release recorded in every report.
const Version = "3.0.1"

// Analysis wraps one analysis result with its envelope metadata.
type Analysis struct {
	TargetQuery     string                   `json:"targetQuery"`
	AnalyzedAt      time.Time                `json:"analyzedAt"`
	Version         string                   `json:"version"`
	Source          string                   `json:"source,omitempty"`
	Title           string                   `json:"title,omitempty"`
	Language        string                   `json:"language,omitempty"`
	WordCount       int                      `json:"wordCount"`
	Scores          analyze.Scores           `json:"scores"`
	Metrics         analyze.Metrics          `json:"metrics"`
	Chunking        analyze.Chunking         `json:"chunking"`
	Recommendations []analyze.Recommendation `json:"recommendations"`
}

// New builds the report envelope around a result.
func New(res analyze.Result, query, source, title string, wordCount int, at time.Time) Analysis {
	return Analysis{
		TargetQuery:     query,
		AnalyzedAt:      at,
		Version:         Version,
		Source:          source,
		Title:           title,
		WordCount:       wordCount,
		Scores:          res.Scores,
		Metrics:         res.Metrics,
		Chunking:        res.Chunking,
		Recommendations: res.Recommendations,
	}
}

// JSON renders the envelope as indented JSON.
func JSON(a Analysis) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// Markdown renders the full report document.
func Markdown(a Analysis) string {
	sections := []string{
		"# GEO Analysis Report\n",
		"**Query:** " + a.TargetQuery,
		"**Analyzed:** " + a.AnalyzedAt.Format(time.RFC3339),
	}
	if a.Language != "" {
		sections = append(sections, "**Language:** "+a.Language)
		if a.Language != "en" {
			sections = append(sections, "_Pattern heuristics are tuned for English; scores for other languages are indicative only._")
		}
	}
	sections = append(sections,
		"**Version:** "+a.Version+"\n",
		"## Overall Scores\n",
		formatScores(a.Scores),
		"\n## Key Metrics\n",
		formatMetrics(a.Metrics),
		"\n## Detailed Analysis\n",
		formatDetailedAnalysis(a.Metrics),
		"\n## Content Chunking Analysis\n",
		formatChunking(a.Chunking),
		"\n## Recommendations\n",
		formatRecommendations(a.Recommendations),
	)
	return strings.Join(sections, "\n")
}

// scoreEmoji marks a 0-10 score as healthy, borderline, or failing.
func scoreEmoji(score float64) string {
	switch {
	case score >= 7:
		return "🟢"
	case score >= 5:
		return "🟡"
	default:
		return "🔴"
	}
}

// fnum renders a float without trailing zeros, so 10.0 prints as "10".
func fnum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func pct(f float64) int {
	return int(math.Round(f * 100))
}

func formatScores(s analyze.Scores) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s **Overall:** %s/10\n", scoreEmoji(s.Overall), fnum(s.Overall))
	fmt.Fprintf(&sb, "%s **Extractability:** %s/10\n", scoreEmoji(s.Extractability), fnum(s.Extractability))
	fmt.Fprintf(&sb, "%s **Readability:** %s/10\n", scoreEmoji(s.Readability), fnum(s.Readability))
	fmt.Fprintf(&sb, "%s **Citability:** %s/10", scoreEmoji(s.Citability), fnum(s.Citability))
	return sb.String()
}

func formatMetrics(m analyze.Metrics) string {
	var sb strings.Builder
	sb.WriteString("**Sentence Length**\n")
	fmt.Fprintf(&sb, "- Average: %s words\n", fnum(m.SentenceLength.Average))
	fmt.Fprintf(&sb, "- Target: %d words\n", m.SentenceLength.Target)
	fmt.Fprintf(&sb, "- Problematic: %d sentences\n\n", len(m.SentenceLength.Problematic))

	sb.WriteString("**Claim Density**\n")
	fmt.Fprintf(&sb, "- Current: %s per 100 words\n", fnum(m.ClaimDensity.Current))
	fmt.Fprintf(&sb, "- Target: %d per 100 words\n\n", m.ClaimDensity.Target)

	sb.WriteString("**Date Markers**\n")
	fmt.Fprintf(&sb, "- Found: %d\n", m.DateMarkers.Found)
	fmt.Fprintf(&sb, "- Recommended: %d\n\n", m.DateMarkers.Recommended)

	sb.WriteString("**Structure**\n")
	fmt.Fprintf(&sb, "- Headings: %d\n", m.Structure.HeadingCount)
	fmt.Fprintf(&sb, "- Lists: %d\n", m.Structure.ListCount)
	fmt.Fprintf(&sb, "- Has ToC: %s\n\n", yesNo(m.Structure.HasTableOfContents))

	sb.WriteString("**Information Density**\n")
	fmt.Fprintf(&sb, "- Word Count: %d\n", m.InformationDensity.WordCount)
	fmt.Fprintf(&sb, "- Predicted AI Coverage: %d%%\n\n", m.InformationDensity.PredictedCoverage)

	sb.WriteString("**Semantic Analysis**\n")
	if m.SemanticTriples.Available {
		fmt.Fprintf(&sb, "- Triples: %d\n", m.SemanticTriples.Total)
		fmt.Fprintf(&sb, "- Triple Density: %s/100 words\n", fnum(m.SemanticTriples.Density))
		fmt.Fprintf(&sb, "- Entity Diversity: %s", fnum(m.Entities.Diversity))
	} else {
		sb.WriteString("- Not run (language-model augmentation disabled)")
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatDetailedAnalysis(m analyze.Metrics) string {
	var sections []string

	if len(m.SentenceLength.Problematic) > 0 {
		sections = append(sections, "### Problematic Sentences (>30 words)\n")
		for i, item := range m.SentenceLength.Problematic {
			sections = append(sections, fmt.Sprintf("**%d. %s** (%d words)", i+1, item.Location, item.WordCount))
			sections = append(sections, "> "+item.Sentence+"\n")
		}
	}

	if len(m.SemanticTriples.Examples) > 0 {
		sections = append(sections, "\n### Semantic Triple Examples\n")
		for i, ex := range m.SemanticTriples.Examples {
			sections = append(sections, fmt.Sprintf("**%d. %s**", i+1, ex.Sentence))
			sections = append(sections, fmt.Sprintf("- Subject: %q", ex.Subject))
			sections = append(sections, fmt.Sprintf("- Predicate: %q", ex.Predicate))
			sections = append(sections, fmt.Sprintf("- Object: %q\n", ex.Object))
		}
	}

	return strings.Join(sections, "\n")
}

func formatChunking(c analyze.Chunking) string {
	var sections []string
	sections = append(sections, fmt.Sprintf("**Average Coherence:** %d%%", pct(c.AverageCoherence)))
	sections = append(sections, fmt.Sprintf("**Problematic Boundaries:** %d\n", c.ProblematicBoundaries))

	if len(c.Chunks) > 0 {
		sections = append(sections, "### Sample Chunks\n")
		for i, chunk := range c.Chunks {
			sections = append(sections, fmt.Sprintf("**Chunk %d**", i+1))
			sections = append(sections, fmt.Sprintf("- Token Count: %d", chunk.TokenCount))
			sections = append(sections, fmt.Sprintf("- Coherence: %d%%", pct(chunk.SemanticCoherence)))
			sections = append(sections, "- Self-contained: "+yesNo(chunk.SelfContained))
			sections = append(sections, "- Preview: "+preview(chunk.Content, 150)+"...\n")
		}
	}

	return strings.Join(sections, "\n")
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func formatRecommendations(recs []analyze.Recommendation) string {
	byPriority := func(p string) []analyze.Recommendation {
		var out []analyze.Recommendation
		for _, r := range recs {
			if r.Priority == p {
				out = append(out, r)
			}
		}
		return out
	}

	var sections []string

	if high := byPriority(analyze.PriorityHigh); len(high) > 0 {
		sections = append(sections, "### High Priority\n")
		for i, rec := range high {
			sections = append(sections, fmt.Sprintf("**%d. %s**", i+1, rec.Method))
			sections = append(sections, "**Location:** "+rec.Location)
			sections = append(sections, "**Current:** "+rec.CurrentText)
			sections = append(sections, "**Suggested:** "+rec.SuggestedText)
			sections = append(sections, "**Rationale:** "+rec.Rationale+"\n")
		}
	}

	if medium := byPriority(analyze.PriorityMedium); len(medium) > 0 {
		sections = append(sections, "### Medium Priority\n")
		for i, rec := range medium {
			sections = append(sections, fmt.Sprintf("**%d. %s**", i+1, rec.Method))
			sections = append(sections, "**Location:** "+rec.Location)
			sections = append(sections, "**Suggested:** "+rec.SuggestedText)
			sections = append(sections, "**Rationale:** "+rec.Rationale+"\n")
		}
	}

	if low := byPriority(analyze.PriorityLow); len(low) > 0 {
		sections = append(sections, "### Low Priority\n")
		for i, rec := range low {
			sections = append(sections, fmt.Sprintf("**%d. %s**", i+1, rec.Method))
			sections = append(sections, rec.Location+" - "+rec.SuggestedText+"\n")
		}
	}

	return strings.Join(sections, "\n")
}
