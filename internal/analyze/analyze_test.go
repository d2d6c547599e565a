package analyze

import (
	"strings"
	"testing"
)

// Filler with no punctuation: tokenizes to a single sentence.
func TestAnalyzeUnpunctuatedFiller(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 25))
	wordCount := len(SplitWords(text))

	res := Analyze(text, "general content analysis", "")
	if got := res.Metrics.SentenceLength.Average; got != float64(wordCount) {
		t.Fatalf("average = %v, want the full word count %d", got, wordCount)
	}
	if res.Metrics.ClaimDensity.Current != 0 {
		t.Fatalf("claim density = %v, want 0", res.Metrics.ClaimDensity.Current)
	}
}

func TestAnalyzeClaimPatternsOverlap(t *testing.T) {
	// "increases by 15%" fires both the percentage and the change pattern;
	// "$1,200" fires the currency pattern. All in ~100 words.
	text := "Output increases by 15% every quarter. The upgrade costs $1,200 per seat. " +
		strings.TrimSpace(strings.Repeat("word ", 88))
	words := len(SplitWords(text))
	if words != 100 {
		t.Fatalf("fixture should be 100 words, got %d", words)
	}
	res := Analyze(text, "upgrade pricing", "")
	if res.Metrics.ClaimDensity.Current < 2 {
		t.Fatalf("claim density = %v, want >= 2", res.Metrics.ClaimDensity.Current)
	}
}

func TestAnalyzeOptimalLengthDocument(t *testing.T) {
	sentence := "The panel measures twelve units across and weighs very little overall today. "
	text := strings.TrimSpace(strings.Repeat(sentence, 125)) // 12 words * 125 = 1500
	if n := len(SplitWords(text)); n != 1500 {
		t.Fatalf("fixture should be 1500 words, got %d", n)
	}
	res := Analyze(text, "panel dimensions", "")
	d := res.Metrics.InformationDensity
	if d.Recommendation != RecommendOptimal {
		t.Fatalf("recommendation = %q, want optimal", d.Recommendation)
	}
	if d.PredictedCoverage != 48 {
		t.Fatalf("coverage = %d, want 48 at 1500 words", d.PredictedCoverage)
	}
	if d.CoverageCategory != CoverageGood {
		t.Fatalf("category = %q, want good", d.CoverageCategory)
	}
}

func TestAnalyzeHTMLStructureNoStructureRecommendation(t *testing.T) {
	html := "<html><body><h2>A</h2><h2>B</h2><h2>C</h2><h2>D</h2><p>body text</p></body></html>"
	res := Analyze("Some plain text body. More text here.", "q", html)
	if res.Metrics.Structure.HeadingCount != 4 {
		t.Fatalf("headingCount = %d, want 4", res.Metrics.Structure.HeadingCount)
	}
	if res.Metrics.Structure.ListCount != 0 {
		t.Fatalf("listCount = %d, want 0", res.Metrics.Structure.ListCount)
	}
	for _, r := range res.Recommendations {
		if r.Method == "Structural Enhancement" {
			t.Fatal("four headings must not trigger the structure recommendation")
		}
	}
}

func TestAnalyzeBuriedClaimTriggersFrontloading(t *testing.T) {
	words := make([]string, 0, 400)
	for len(words) < 249 {
		words = append(words, "narrative")
	}
	words = append(words, "47%")
	for len(words) < 400 {
		words = append(words, "narrative")
	}
	text := strings.Join(words, " ")

	res := Analyze(text, "q", "")
	f := res.Metrics.Frontloading
	if f.FirstClaimPosition != 250 {
		t.Fatalf("firstClaimPosition = %d, want 250", f.FirstClaimPosition)
	}
	if f.FrontloadingScore > 3 {
		t.Fatalf("score = %v, want <= 3 with the late-claim penalty applied", f.FrontloadingScore)
	}
	found := false
	for _, r := range res.Recommendations {
		if r.Method == "Answer Frontloading" {
			if r.Priority != PriorityHigh {
				t.Fatalf("frontloading priority = %q, want high", r.Priority)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected an Answer Frontloading recommendation")
	}
}

func TestAnalyzeChunking(t *testing.T) {
	text := strings.Repeat("0123456789", 130) // 1300 chars -> 3 windows
	res := Analyze(text, "q", "")
	ch := res.Chunking
	if len(ch.Chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(ch.Chunks))
	}
	if len(ch.Chunks[0].Content) != 500 || len(ch.Chunks[2].Content) != 300 {
		t.Fatalf("window sizes = %d/%d, want 500/300",
			len(ch.Chunks[0].Content), len(ch.Chunks[2].Content))
	}
	if ch.AverageCoherence != 0.8 || ch.ProblematicBoundaries != 0 {
		t.Fatalf("constant chunk stats wrong: %+v", ch)
	}
	// Single unbroken token: one word per window -> floor(1*1.3) = 1.
	if ch.Chunks[0].TokenCount != 1 {
		t.Fatalf("tokenCount = %d, want 1", ch.Chunks[0].TokenCount)
	}
}

func TestAnalyzeChunkingCapsAtThree(t *testing.T) {
	text := strings.Repeat("x", 5000)
	if got := len(Analyze(text, "q", "").Chunking.Chunks); got != 3 {
		t.Fatalf("chunks = %d, want cap of 3", got)
	}
}

func TestAnalyzeScoresWithinRange(t *testing.T) {
	samples := []string{
		strings.Repeat("抽出可能な文章です。", 100),
		strings.Repeat("Claims grew 45% in 2024. ", 200),
		"tiny",
		strings.Repeat("a ", 4000),
	}
	for _, text := range samples {
		s := Analyze(text, "query terms", "").Scores
		for _, v := range []float64{s.Overall, s.Extractability, s.Readability, s.Citability} {
			if v < 0 || v > 10 {
				t.Fatalf("score %v out of range for sample %q...", v, text[:10])
			}
		}
	}
}
