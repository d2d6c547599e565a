package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/houtini-ai/geo-analyzer/internal/extract"
	"github.com/houtini-ai/geo-analyzer/internal/history"
)

func articleHTML() string {
	para := "Solid state batteries deliver 40% higher energy density than lithium ion cells. They charge faster than conventional packs in cold weather. "
	return `<html><head><title>Battery Report</title></head><body><article><h1>Battery Report</h1><h2>Overview</h2><p>` +
		strings.Repeat(para, 6) + `</p><ul><li>Density</li><li>Charging</li></ul></article></body></html>`
}

func TestRunFromFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "post.md")
	text := strings.Repeat("Solid state batteries deliver 40% higher energy density than lithium ion cells. ", 20)
	if err := os.WriteFile(input, []byte(text), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := Config{
		InputPath:   input,
		Query:       "solid state batteries",
		OutputPath:  filepath.Join(dir, "report.md"),
		HistoryPath: filepath.Join(dir, "runs.db"),
	}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	md, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(md), "# GEO Analysis Report") {
		t.Fatal("report missing title")
	}
	if !strings.Contains(string(md), "**Query:** solid state batteries") {
		t.Fatal("report missing query")
	}

	sidecar := filepath.Join(dir, "report.json")
	if _, err := os.Stat(sidecar); err != nil {
		t.Fatalf("json sidecar missing: %v", err)
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()
	runs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d history runs, want 1", len(runs))
	}
	if runs[0].Source != input {
		t.Fatalf("history source = %q", runs[0].Source)
	}
}

func TestRunFromShortFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "short.txt")
	if err := os.WriteFile(input, []byte("Barely forty characters of content here."), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := Config{
		InputPath:  input,
		Query:      "solid state batteries",
		OutputPath: filepath.Join(dir, "report.md"),
	}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	err = a.Run(context.Background())
	if !errors.Is(err, extract.ErrTooShort) {
		t.Fatalf("Run err = %v, want ErrTooShort", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath); !os.IsNotExist(statErr) {
		t.Fatal("no report should be written for short input")
	}
}

func TestRunFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML()))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := Config{
		URL:        srv.URL,
		Query:      "battery energy density",
		OutputPath: filepath.Join(dir, "report.md"),
		CacheDir:   filepath.Join(dir, "cache"),
	}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	md, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{"## Overall Scores", "- Headings: 2", "## Recommendations"} {
		if !strings.Contains(string(md), want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestRunWritesPDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "post.txt")
	text := strings.Repeat("Battery cells improve by 12% each year according to recent tests. ", 30)
	if err := os.WriteFile(input, []byte(text), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := Config{
		InputPath:     input,
		Query:         "battery improvement",
		OutputPath:    filepath.Join(dir, "report.md"),
		OutputPDFPath: filepath.Join(dir, "report.pdf"),
	}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	info, err := os.Stat(cfg.OutputPDFPath)
	if err != nil {
		t.Fatalf("pdf missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("pdf is empty")
	}
}

func TestDeriveSidecarPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"report.md", "report.json"},
		{"out/analysis.markdown", "out/analysis.json"},
		{"report", "report.json"},
	}
	for _, tc := range cases {
		if got := deriveSidecarPath(tc.in); got != tc.want {
			t.Fatalf("deriveSidecarPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
