package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/houtini-ai/geo-analyzer/internal/analyze"
)

func sampleAnalysis() Analysis {
	res := analyze.Result{
		Scores: analyze.Scores{Overall: 8.2, Extractability: 4.9, Readability: 6, Citability: 10},
		Metrics: analyze.Metrics{
			SentenceLength: analyze.SentenceLengthMetrics{
				Average: 27.5,
				Target:  20,
				Problematic: []analyze.ProblematicSentence{
					{Sentence: "a very long sentence", WordCount: 34, Location: "Sentence 3"},
				},
			},
			ClaimDensity: analyze.ClaimDensityMetrics{Current: 1.5, Target: 4},
			DateMarkers:  analyze.DateMarkerMetrics{Found: 2, Recommended: 5},
			Structure:    analyze.StructureMetrics{HeadingCount: 4, ListCount: 2, HasTableOfContents: true},
			InformationDensity: analyze.InformationDensityMetrics{
				WordCount:         1200,
				PredictedCoverage: 56,
			},
		},
		Chunking: analyze.Chunking{
			Chunks: []analyze.ContentChunk{
				{Content: strings.Repeat("x", 200), SemanticCoherence: 0.8, SelfContained: true, TokenCount: 130},
			},
			AverageCoherence: 0.8,
		},
		Recommendations: []analyze.Recommendation{
			{Method: "Answer Frontloading", Priority: analyze.PriorityHigh, Location: "Opening", CurrentText: "buried", SuggestedText: "move up", Rationale: "answers first"},
			{Method: "Temporal Markers", Priority: analyze.PriorityMedium, Location: "Throughout", SuggestedText: "add dates", Rationale: "freshness"},
			{Method: "Structural Enhancement", Priority: analyze.PriorityLow, Location: "Document", SuggestedText: "add headings"},
		},
	}
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return New(res, "solid state batteries", "https://example.com/post", "Battery Report", 1200, at)
}

func TestMarkdownSectionsInOrder(t *testing.T) {
	md := Markdown(sampleAnalysis())
	order := []string{
		"# GEO Analysis Report",
		"**Query:** solid state batteries",
		"## Overall Scores",
		"## Key Metrics",
		"## Detailed Analysis",
		"## Content Chunking Analysis",
		"## Recommendations",
	}
	last := -1
	for _, want := range order {
		idx := strings.Index(md, want)
		if idx < 0 {
			t.Fatalf("missing section %q", want)
		}
		if idx <= last {
			t.Fatalf("section %q out of order", want)
		}
		last = idx
	}
}

func TestMarkdownScoreEmojis(t *testing.T) {
	md := Markdown(sampleAnalysis())
	for _, want := range []string{
		"🟢 **Overall:** 8.2/10",
		"🔴 **Extractability:** 4.9/10",
		"🟡 **Readability:** 6/10",
		"🟢 **Citability:** 10/10",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing score line %q", want)
		}
	}
}

func TestMarkdownKeyMetrics(t *testing.T) {
	md := Markdown(sampleAnalysis())
	for _, want := range []string{
		"- Average: 27.5 words",
		"- Current: 1.5 per 100 words",
		"- Found: 2",
		"- Headings: 4",
		"- Has ToC: Yes",
		"- Predicted AI Coverage: 56%",
		"- Not run (language-model augmentation disabled)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing metric line %q", want)
		}
	}
}

func TestMarkdownSemanticAvailable(t *testing.T) {
	a := sampleAnalysis()
	a.Metrics.SemanticTriples = analyze.SemanticTripleMetrics{
		Available: true,
		Total:     7,
		Density:   1.2,
		Examples: []analyze.TripleExample{
			{Sentence: "Acme ships 200 units", Subject: "Acme", Predicate: "ships", Object: "200 units"},
		},
	}
	a.Metrics.Entities = analyze.EntityMetrics{Available: true, Diversity: 0.5}

	md := Markdown(a)
	for _, want := range []string{
		"- Triples: 7",
		"- Triple Density: 1.2/100 words",
		"- Entity Diversity: 0.5",
		"### Semantic Triple Examples",
		`- Subject: "Acme"`,
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing semantic line %q", want)
		}
	}
	if strings.Contains(md, "Not run") {
		t.Fatal("disabled notice shown despite semantic data")
	}
}

func TestMarkdownProblematicSentences(t *testing.T) {
	md := Markdown(sampleAnalysis())
	if !strings.Contains(md, "### Problematic Sentences (>30 words)") {
		t.Fatal("missing problematic sentences section")
	}
	if !strings.Contains(md, "**1. Sentence 3** (34 words)") {
		t.Fatal("missing problematic sentence entry")
	}
	if !strings.Contains(md, "> a very long sentence") {
		t.Fatal("missing quoted sentence")
	}
}

func TestMarkdownChunking(t *testing.T) {
	md := Markdown(sampleAnalysis())
	if !strings.Contains(md, "**Average Coherence:** 80%") {
		t.Fatal("missing average coherence")
	}
	if !strings.Contains(md, "- Token Count: 130") {
		t.Fatal("missing token count")
	}
	preview := "- Preview: " + strings.Repeat("x", 150) + "..."
	if !strings.Contains(md, preview) {
		t.Fatal("preview not truncated to 150 characters")
	}
}

func TestMarkdownRecommendationTiers(t *testing.T) {
	md := Markdown(sampleAnalysis())
	high := strings.Index(md, "### High Priority")
	medium := strings.Index(md, "### Medium Priority")
	low := strings.Index(md, "### Low Priority")
	if high < 0 || medium < 0 || low < 0 {
		t.Fatalf("missing priority sections: %d %d %d", high, medium, low)
	}
	if !(high < medium && medium < low) {
		t.Fatal("priority sections out of order")
	}
	if !strings.Contains(md, "**Current:** buried") {
		t.Fatal("high priority entry missing current text")
	}
	// Medium entries omit the current text line.
	mediumBlock := md[medium:low]
	if strings.Contains(mediumBlock, "**Current:**") {
		t.Fatal("medium priority entry should not show current text")
	}
	if !strings.Contains(md, "Document - add headings") {
		t.Fatal("low priority entry missing one-line form")
	}
}

func TestMarkdownNoRecommendations(t *testing.T) {
	a := sampleAnalysis()
	a.Recommendations = nil
	md := Markdown(a)
	if strings.Contains(md, "### High Priority") || strings.Contains(md, "### Medium Priority") {
		t.Fatal("unexpected priority sections for empty recommendations")
	}
}

func TestMarkdownLanguageLine(t *testing.T) {
	a := sampleAnalysis()
	if md := Markdown(a); strings.Contains(md, "**Language:**") {
		t.Fatal("language line should be omitted when not detected")
	}
	a.Language = "en"
	md := Markdown(a)
	if !strings.Contains(md, "**Language:** en") {
		t.Fatal("missing language line")
	}
	if strings.Contains(md, "tuned for English") {
		t.Fatal("unexpected caveat for English content")
	}
	a.Language = "de"
	if md := Markdown(a); !strings.Contains(md, "tuned for English") {
		t.Fatal("missing non-English caveat")
	}
}

func TestJSONEnvelope(t *testing.T) {
	data, err := JSON(sampleAnalysis())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["version"] != Version {
		t.Fatalf("version = %v, want %s", decoded["version"], Version)
	}
	if decoded["targetQuery"] != "solid state batteries" {
		t.Fatalf("targetQuery = %v", decoded["targetQuery"])
	}
	if decoded["analyzedAt"] != "2026-08-30T12:00:00Z" {
		t.Fatalf("analyzedAt = %v", decoded["analyzedAt"])
	}
}
