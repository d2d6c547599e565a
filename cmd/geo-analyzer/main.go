package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/houtini-ai/geo-analyzer/internal/app"
	"github.com/houtini-ai/geo-analyzer/internal/extract"
	"github.com/houtini-ai/geo-analyzer/internal/fetch"
	"github.com/houtini-ai/geo-analyzer/internal/history"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		url            string
		inputPath      string
		query          string
		outputPath     string
		outputPDF      string
		configPath     string
		llmBaseURL     string
		llmModel       string
		llmKey         string
		semanticEnable bool
		cacheDir       string
		cacheMaxAge    time.Duration
		cacheClear     bool
		historyPath    string
		historyList    int
		verbose        bool
	)

	flag.StringVar(&url, "url", "", "URL of the page to analyze")
	flag.StringVar(&inputPath, "input", "", "Path to a local HTML, Markdown, or text file to analyze")
	flag.StringVar(&query, "query", "", "Target query the content should answer")
	flag.StringVar(&outputPath, "output", "geo-report.md", "Path to write the Markdown report")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path to also write a PDF rendition")
	flag.StringVar(&configPath, "config", os.Getenv("GEO_CONFIG"), "Path to YAML or JSON config file")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for semantic analysis")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for semantic analysis")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.BoolVar(&semanticEnable, "semantic.enable", false, "Enable language-model semantic analysis (triples and entities)")
	flag.StringVar(&cacheDir, "cache.dir", ".geo-analyzer-cache", "Cache directory path")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.StringVar(&historyPath, "history", "", "Path to SQLite database recording analysis runs (empty disables)")
	flag.IntVar(&historyList, "history.list", 0, "List the N most recent recorded runs and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Optional dotenv for local development
	_ = app.LoadEnvFiles(".env")

	cfg := app.Config{
		URL:            url,
		InputPath:      inputPath,
		Query:          query,
		OutputPath:     outputPath,
		OutputPDFPath:  outputPDF,
		LLMBaseURL:     llmBaseURL,
		LLMModel:       llmModel,
		LLMAPIKey:      llmKey,
		SemanticEnable: semanticEnable,
		CacheDir:       cacheDir,
		CacheMaxAge:    cacheMaxAge,
		CacheClear:     cacheClear,
		HistoryPath:    historyPath,
		Verbose:        verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config failed")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if historyList > 0 {
		if cfg.HistoryPath == "" {
			log.Error().Msg("-history.list requires -history")
			os.Exit(2)
		}
		if err := listHistory(cfg.HistoryPath, historyList); err != nil {
			log.Error().Err(err).Msg("list history failed")
			os.Exit(1)
		}
		return
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Content problems the user can act on get a distinct exit code.
		if errors.Is(err, fetch.ErrPaywalled) || errors.Is(err, extract.ErrTooShort) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

func listHistory(path string, limit int) error {
	st, err := history.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Recent(limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%d\t%s\t%s\t%q\toverall=%.1f\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Source, r.Query, r.Overall)
	}
	return nil
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
