// Package semantic extracts semantic triples and named entities from content
// via an OpenAI-compatible chat model. It is an optional augmentation: when
// the backend is unreachable or returns garbage, callers treat the analysis
// as pattern-only and keep the placeholder metrics.
package semantic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/houtini-ai/geo-analyzer/internal/cache"
	"github.com/houtini-ai/geo-analyzer/internal/llm"
)

// ErrUnavailable signals that no semantic data could be produced. Callers
// must treat this as "no data", never as a measured zero.
var ErrUnavailable = errors.New("semantic augmentation unavailable")

// Triple is a (subject, predicate, object) factual relation.
type Triple struct {
	Subject    string  `json:"subject"`
	Predicate  string  `json:"predicate"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
}

// Entity is a typed named-entity mention.
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Result is a successful augmentation outcome.
type Result struct {
	Triples   []Triple `json:"triples"`
	Entities  []Entity `json:"entities"`
	Diversity float64  `json:"diversity"`
}

const (
	maxPromptChars  = 8000
	maxTriples      = 15
	maxEntities     = 30
	entityTypeCount = 6
)

var entityTypes = map[string]struct{}{
	"PERSON": {}, "ORG": {}, "PRODUCT": {}, "LOCATION": {}, "DATE": {}, "MEASUREMENT": {},
}

// Augmenter calls the chat model to extract triples and entities. Responses
// are cached by model+content digest so repeated analyses are deterministic
// and cheap.
type Augmenter struct {
	Client llm.Client
	Model  string
	Cache  *cache.LLMCache
}

// Analyze runs both extractions and derives entity-type diversity. Any
// transport or parse failure is reported as ErrUnavailable with the cause
// wrapped; partial results are never returned.
func (a *Augmenter) Analyze(ctx context.Context, content string) (Result, error) {
	if a == nil || a.Client == nil || strings.TrimSpace(a.Model) == "" {
		return Result{}, ErrUnavailable
	}
	if len(content) > maxPromptChars {
		content = content[:maxPromptChars]
	}

	if a.Cache != nil {
		key := cache.KeyFrom(a.Model, "semantic\n\n"+content)
		if raw, ok, _ := a.Cache.Get(ctx, key); ok {
			var res Result
			if err := json.Unmarshal(raw, &res); err == nil {
				return res, nil
			}
		}
	}

	triples, err := a.extractTriples(ctx, content)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	entities, err := a.extractEntities(ctx, content)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	res := Result{
		Triples:   triples,
		Entities:  entities,
		Diversity: diversity(entities),
	}
	if a.Cache != nil {
		if b, err := json.Marshal(res); err == nil {
			_ = a.Cache.Save(ctx, cache.KeyFrom(a.Model, "semantic\n\n"+content), b)
		}
	}
	return res, nil
}

func (a *Augmenter) chat(ctx context.Context, prompt string) (string, error) {
	resp, err := a.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.0,
		N:           1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (a *Augmenter) extractTriples(ctx context.Context, content string) ([]Triple, error) {
	prompt := "Extract semantic triples from the following content.\n\n" +
		"A semantic triple is a (subject, predicate, object) relationship that represents a factual claim.\n\n" +
		"Rules:\n" +
		"- Extract only factual statements (not opinions or questions)\n" +
		"- Use specific subjects (not \"it\", \"this\", \"that\")\n" +
		"- Keep predicates active and concise\n" +
		"- Include measurements/numbers in objects when present\n\n" +
		"Content:\n" + content + "\n\n" +
		"Return ONLY the triples in this exact format, one per line:\n" +
		"(subject|predicate|object)\n\n" +
		fmt.Sprintf("Maximum %d triples. No other text.", maxTriples)
	out, err := a.chat(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseTriples(out), nil
}

func (a *Augmenter) extractEntities(ctx context.Context, content string) ([]Entity, error) {
	prompt := "Identify all named entities in this content and categorise them.\n\n" +
		"Categories:\n" +
		"- PERSON: Names of people\n" +
		"- ORG: Companies, organizations, brands\n" +
		"- PRODUCT: Specific products or models\n" +
		"- LOCATION: Places, countries, cities\n" +
		"- DATE: Dates, years, time periods\n" +
		"- MEASUREMENT: Numbers with units (8Nm, 300mm, 5kg, etc.)\n\n" +
		"Content:\n" + content + "\n\n" +
		"Return JSON format only (no markdown, no code blocks):\n" +
		"[{\"text\": \"...\", \"type\": \"ORG\"}]\n\n" +
		fmt.Sprintf("Maximum %d entities.", maxEntities)
	out, err := a.chat(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseEntities(out), nil
}

var tripleLineRe = regexp.MustCompile(`\(([^|]+)\|([^|]+)\|([^)]+)\)`)

// ParseTriples reads "(subject|predicate|object)" lines, assigning a fixed
// confidence; malformed lines are skipped.
func ParseTriples(text string) []Triple {
	triples := []Triple{}
	for _, line := range strings.Split(text, "\n") {
		if len(triples) == maxTriples {
			break
		}
		m := tripleLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		triples = append(triples, Triple{
			Subject:    strings.TrimSpace(m[1]),
			Predicate:  strings.TrimSpace(m[2]),
			Object:     strings.TrimSpace(m[3]),
			Confidence: 0.9,
		})
	}
	return triples
}

// ParseEntities decodes the JSON entity list, tolerating markdown code
// fences, and drops entries with unknown types. A malformed payload yields an
// empty list rather than an error.
func ParseEntities(text string) []Entity {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var raw []Entity
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return []Entity{}
	}
	out := []Entity{}
	for _, e := range raw {
		if e.Text == "" {
			continue
		}
		if _, ok := entityTypes[e.Type]; !ok {
			continue
		}
		out = append(out, e)
		if len(out) == maxEntities {
			break
		}
	}
	return out
}

// diversity is the share of the six entity categories represented, rounded
// to two decimals.
func diversity(entities []Entity) float64 {
	seen := map[string]struct{}{}
	for _, e := range entities {
		seen[e.Type] = struct{}{}
	}
	return math.Round(float64(len(seen))/entityTypeCount*100) / 100
}
