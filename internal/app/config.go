package app

import (
	"errors"
	"strings"
	"time"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Content source: exactly one of URL or InputPath.
	URL       string
	InputPath string

	// Target query the content should answer.
	Query string

	OutputPath    string
	OutputPDFPath string

	// LLM (semantic augmentation)
	LLMBaseURL     string
	LLMModel       string
	LLMAPIKey      string
	SemanticEnable bool

	// Behavior
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool
	HistoryPath string
	Verbose     bool
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	url := strings.TrimSpace(cfg.URL)
	input := strings.TrimSpace(cfg.InputPath)
	if url == "" && input == "" {
		return errors.New("config: a url or an input path is required")
	}
	if url != "" && input != "" {
		return errors.New("config: url and input path are mutually exclusive")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	if cfg.SemanticEnable && strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required when semantic analysis is enabled (or set LLM_MODEL)")
	}
	return nil
}
