// Package extract turns raw HTML pages into clean article content ready
// for analysis: boilerplate stripped, main content selected, text
// normalized, word count and language attached.
package extract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// MinContentLength is the minimum number of characters of extracted text
// required for a meaningful analysis.
const MinContentLength = 500

// ErrTooShort is returned when a page yields less than MinContentLength
// characters of readable text even after the readability fallback.
var ErrTooShort = errors.New("content too short")

// noiseSelectors lists elements removed before the main content is picked.
// Chrome around the article (navigation, consent banners, share widgets,
// comments, ads) would otherwise pollute word counts and structure metrics.
var noiseSelectors = []string{
	"script",
	"style",
	"nav",
	"header",
	"footer",
	"aside",
	"iframe",
	"form",
	"button",
	"noscript",
	".cookie-banner",
	".cookie-consent",
	".gdpr",
	"[class*=\"cookie\"]",
	"[class*=\"consent\"]",
	"[id*=\"cookie\"]",
	"[role=\"navigation\"]",
	"[role=\"banner\"]",
	"[role=\"contentinfo\"]",
	".social-share",
	".share-buttons",
	"[class*=\"share\"]",
	".sidebar",
	".comments",
	"#comments",
	".advertisement",
	".ad-container",
	"[class*=\"newsletter\"]",
	"[class*=\"subscribe\"]",
	"[class*=\"shortcode\"]",
}

// articleSelectors is tried in order to find the main content root;
// the document body is the fallback.
var articleSelectors = []string{
	"article",
	"[role=\"main\"]",
	".post-content",
	".entry-content",
	".article-content",
	"main",
}

// ContentData is the cleaned result of extraction.
type ContentData struct {
	URL         string
	Title       string
	Text        string
	HTML        string
	Description string
	WordCount   int
	Language    string
}

// FromHTML extracts the main article content from a raw HTML page.
// pageURL is used by the readability fallback to resolve relative links;
// it may be empty for local input.
//
// Returns ErrTooShort when the page yields fewer than MinContentLength
// characters of readable text.
func FromHTML(rawHTML, pageURL string) (ContentData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ContentData{}, fmt.Errorf("parse html: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var article *goquery.Selection
	for _, sel := range articleSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			article = s
			break
		}
	}
	if article == nil {
		article = doc.Find("body")
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").Text())
	}
	if title == "" {
		title = "Untitled"
	}

	description, ok := doc.Find("meta[name=\"description\"]").Attr("content")
	if !ok {
		description, _ = doc.Find("meta[property=\"og:description\"]").Attr("content")
	}

	// Images carry no analyzable text and bloat the structure HTML.
	article.Find("img").Remove()

	cleanHTML, err := article.Html()
	if err != nil {
		return ContentData{}, fmt.Errorf("serialize article: %w", err)
	}

	text := normalizeText(textFromHTML(cleanHTML))

	// Sparse markup defeats selector heuristics on some pages; let
	// readability take a second pass over the original document.
	if len(text) < MinContentLength {
		if alt, altHTML, ok := readabilityFallback(rawHTML, pageURL); ok && len(alt) > len(text) {
			text = alt
			cleanHTML = altHTML
		}
	}

	if len(text) < MinContentLength {
		return ContentData{}, fmt.Errorf("%w: %d characters (minimum %d required)", ErrTooShort, len(text), MinContentLength)
	}

	return ContentData{
		URL:         pageURL,
		Title:       title,
		Text:        text,
		HTML:        cleanHTML,
		Description: strings.TrimSpace(description),
		WordCount:   len(strings.Fields(text)),
		Language:    detectLanguage(text),
	}, nil
}

func readabilityFallback(rawHTML, pageURL string) (text, html string, ok bool) {
	if pageURL == "" {
		pageURL = "https://localhost/"
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", "", false
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(rawHTML), u)
	if err != nil {
		return "", "", false
	}
	return normalizeText(article.TextContent), article.Content, true
}

// textFromHTML walks the cleaned article markup and collects readable
// text, inserting line breaks between block elements so headings and
// list items do not run together.
func textFromHTML(cleanHTML string) string {
	node, err := html.Parse(strings.NewReader(cleanHTML))
	if err != nil || node == nil {
		return ""
	}
	var b strings.Builder
	collectText(&b, node)
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "td", "th":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li":
			b.WriteString("\n")
		}
	}
}

// normalizeText applies NFC normalization and collapses whitespace runs so
// downstream word splitting sees one token per word.
func normalizeText(s string) string {
	s = norm.NFC.String(s)
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// detectLanguage returns the ISO 639-1 code of the most likely language,
// or empty when detection is inconclusive. The detector is built once;
// construction loads language models and is not cheap.
func detectLanguage(text string) string {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.German,
				lingua.French,
				lingua.Spanish,
				lingua.Portuguese,
				lingua.Italian,
				lingua.Dutch,
				lingua.Russian,
				lingua.Japanese,
				lingua.Chinese,
			).
			Build()
	})
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
