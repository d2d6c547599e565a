// Package app wires fetching, extraction, analysis, optional semantic
// augmentation, and report output into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/houtini-ai/geo-analyzer/internal/analyze"
	"github.com/houtini-ai/geo-analyzer/internal/cache"
	"github.com/houtini-ai/geo-analyzer/internal/extract"
	"github.com/houtini-ai/geo-analyzer/internal/fetch"
	"github.com/houtini-ai/geo-analyzer/internal/history"
	"github.com/houtini-ai/geo-analyzer/internal/llm"
	"github.com/houtini-ai/geo-analyzer/internal/report"
	"github.com/houtini-ai/geo-analyzer/internal/semantic"
)

type App struct {
	cfg       Config
	ai        llm.Client
	extractor extract.Extractor
	pageCache *cache.PageCache
	runs      *history.Store
}

func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{cfg: cfg, extractor: extract.SelectorExtractor{}}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			// Purge by age; ignore errors to avoid failing startup
			_, _ = cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
		}
		a.pageCache = &cache.PageCache{Dir: cfg.CacheDir}
	}

	if cfg.SemanticEnable {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		transportCfg.HTTPClient = newHTTPClient()
		provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
		a.ai = provider

		// Connectivity preflight is best-effort: downstream calls surface
		// real failures, which the run treats as non-fatal anyway.
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if models, err := provider.ListModels(pctx); err != nil {
			log.Warn().Err(err).Msg("LLM model list failed; continuing")
		} else if len(models.Models) == 0 {
			log.Warn().Msg("LLM returned zero models")
		} else {
			log.Debug().Int("count", len(models.Models)).Msg("LLM models available")
		}
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.runs = store
	}

	return a, nil
}

func (a *App) Close() {
	if a.runs != nil {
		_ = a.runs.Close()
	}
}

// Run executes one analysis end to end and writes the report artifacts.
func (a *App) Run(ctx context.Context) error {
	content, source, err := a.acquire(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("source", source).Int("words", content.WordCount).Str("lang", content.Language).Msg("content ready")

	res := analyze.Analyze(content.Text, a.cfg.Query, content.HTML)

	if a.cfg.SemanticEnable {
		res = a.augment(ctx, res, content.Text)
	}

	envelope := report.New(res, a.cfg.Query, source, content.Title, content.WordCount, time.Now().UTC())
	envelope.Language = content.Language

	md := report.Markdown(envelope)
	if err := os.WriteFile(a.cfg.OutputPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")

	if data, err := report.JSON(envelope); err == nil {
		sidecar := deriveSidecarPath(a.cfg.OutputPath)
		if err := os.WriteFile(sidecar, data, 0o644); err != nil {
			log.Warn().Err(err).Str("path", sidecar).Msg("write json sidecar failed")
		}
	}

	if a.cfg.OutputPDFPath != "" {
		if err := writeSimplePDF(md, a.cfg.OutputPDFPath); err != nil {
			log.Warn().Err(err).Msg("write pdf failed")
		} else {
			log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote pdf")
		}
	}

	if a.runs != nil {
		_, err := a.runs.Insert(history.Run{
			CreatedAt:      envelope.AnalyzedAt,
			Source:         source,
			Query:          a.cfg.Query,
			WordCount:      content.WordCount,
			Overall:        res.Scores.Overall,
			Extractability: res.Scores.Extractability,
			Readability:    res.Scores.Readability,
			Citability:     res.Scores.Citability,
			ReportPath:     a.cfg.OutputPath,
		})
		if err != nil {
			log.Warn().Err(err).Msg("record history failed")
		}
	}

	return nil
}

// acquire obtains the content to analyze from the configured URL or local
// file. Local HTML files go through the same extraction as fetched pages;
// anything else is treated as markdown or plain text.
func (a *App) acquire(ctx context.Context) (extract.ContentData, string, error) {
	if a.cfg.URL != "" {
		client := &fetch.Client{
			HTTPClient:        newHTTPClient(),
			MaxAttempts:       2,
			PerRequestTimeout: 15 * time.Second,
			Cache:             a.pageCache,
			RedirectMaxHops:   5,
			BypassCache:       a.cfg.CacheMaxAge == 0 && a.cfg.CacheClear,
		}
		body, _, err := client.Get(ctx, a.cfg.URL)
		if err != nil {
			return extract.ContentData{}, "", fmt.Errorf("fetch %s: %w", a.cfg.URL, err)
		}
		content, err := a.extractor.Extract(string(body), a.cfg.URL)
		if err != nil {
			return extract.ContentData{}, "", fmt.Errorf("extract %s: %w", a.cfg.URL, err)
		}
		return content, a.cfg.URL, nil
	}

	raw, err := os.ReadFile(a.cfg.InputPath)
	if err != nil {
		return extract.ContentData{}, "", fmt.Errorf("read input: %w", err)
	}
	switch strings.ToLower(filepath.Ext(a.cfg.InputPath)) {
	case ".html", ".htm":
		content, err := a.extractor.Extract(string(raw), "")
		if err != nil {
			return extract.ContentData{}, "", fmt.Errorf("extract %s: %w", a.cfg.InputPath, err)
		}
		return content, a.cfg.InputPath, nil
	default:
		text := string(raw)
		if len(text) < extract.MinContentLength {
			return extract.ContentData{}, "", fmt.Errorf("%w: %d characters (minimum %d required)",
				extract.ErrTooShort, len(text), extract.MinContentLength)
		}
		return extract.ContentData{
			Title:     filepath.Base(a.cfg.InputPath),
			Text:      text,
			WordCount: len(strings.Fields(text)),
		}, a.cfg.InputPath, nil
	}
}

// augment runs the language-model pass and merges its metrics into the
// result. Failures are non-fatal: the pattern-only result stands.
func (a *App) augment(ctx context.Context, res analyze.Result, text string) analyze.Result {
	aug := &semantic.Augmenter{
		Client: a.ai,
		Model:  a.cfg.LLMModel,
	}
	if a.cfg.CacheDir != "" {
		aug.Cache = &cache.LLMCache{Dir: a.cfg.CacheDir}
	}
	sem, err := aug.Analyze(ctx, text)
	if err != nil {
		if errors.Is(err, semantic.ErrUnavailable) {
			log.Info().Msg("semantic analysis unavailable; using pattern metrics only")
		} else {
			log.Warn().Err(err).Msg("semantic analysis failed; using pattern metrics only")
		}
		return res
	}
	wordCount := len(analyze.SplitWords(text))
	return semantic.Merge(res, sem, wordCount)
}

// deriveSidecarPath places the JSON envelope next to the markdown report.
func deriveSidecarPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	if ext == "" {
		return outputPath + ".json"
	}
	return strings.TrimSuffix(outputPath, ext) + ".json"
}
