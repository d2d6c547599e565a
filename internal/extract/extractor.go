package extract

// Extractor defines a minimal interface for content extraction strategies.
// Implementations can swap readability tactics without changing callers.
type Extractor interface {
	// Extract converts a raw HTML page into cleaned content.
	// Implementations should be deterministic and avoid side effects.
	Extract(rawHTML, pageURL string) (ContentData, error)
}

// SelectorExtractor is the default strategy: noise-selector stripping with
// main-content selection and a readability fallback for sparse markup.
type SelectorExtractor struct{}

func (SelectorExtractor) Extract(rawHTML, pageURL string) (ContentData, error) {
	return FromHTML(rawHTML, pageURL)
}
