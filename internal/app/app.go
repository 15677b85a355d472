// Package app wires extraction, normalization, dictionary lookups and
// report rendering into the file-to-vocabulary-report pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/extract"
	"github.com/LavishGent/wordbook/internal/lookup"
	"github.com/LavishGent/wordbook/internal/normalize"
	"github.com/LavishGent/wordbook/internal/report"
	"github.com/LavishGent/wordbook/internal/types"
)

// supportedExtensions are the input formats the pipeline reads.
var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
}

// ProcessingResult summarizes one pipeline run.
type ProcessingResult struct {
	TotalWords               int           `json:"total_words"`
	UniqueWords              int           `json:"unique_words"`
	SuccessfulDefinitions    int           `json:"successful_definitions"`
	SuccessfulPronunciations int           `json:"successful_pronunciations"`
	ProcessingTime           time.Duration `json:"processing_time"`
	SourceFile               string        `json:"source_file"`
	OutputFile               string        `json:"output_file"`
}

// DefinitionRate returns the fraction of unique words that resolved a
// definition, 0 when no words were processed.
func (r ProcessingResult) DefinitionRate() float64 {
	if r.UniqueWords == 0 {
		return 0
	}
	return float64(r.SuccessfulDefinitions) / float64(r.UniqueWords)
}

// PronunciationRate returns the fraction of unique words that resolved
// a pronunciation, 0 when no words were processed.
func (r ProcessingResult) PronunciationRate() float64 {
	if r.UniqueWords == 0 {
		return 0
	}
	return float64(r.SuccessfulPronunciations) / float64(r.UniqueWords)
}

// App runs the extraction pipeline against a lookup manager.
type App struct {
	manager    *lookup.Manager
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	processing config.ProcessingConfig
	logger     *slog.Logger
}

func New(manager *lookup.Manager, cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		manager:    manager,
		extractor:  extract.New(cfg.Processing.StrictTokens),
		normalizer: normalize.New(cfg.Processing),
		processing: cfg.Processing,
		logger:     logger.With("component", "app"),
	}
}

// ProcessFile reads inputPath, looks up every extracted word and writes
// a markdown vocabulary report to outputPath. An empty outputPath
// derives "<input stem>_vocabulary.md" next to the input. Lookup
// failures never abort the run; the report marks what was not found.
func (a *App) ProcessFile(ctx context.Context, inputPath, outputPath string) (*ProcessingResult, error) {
	start := time.Now()

	if err := a.validateInput(inputPath); err != nil {
		return nil, err
	}

	text, err := a.readInput(inputPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content in %s", inputPath)
	}

	words := a.extractor.Extract(text)
	unique := a.normalizer.Normalize(words)
	a.logger.Info("Extracted words",
		"source", inputPath, "total", len(words), "unique", len(unique))

	records := a.manager.BatchLookup(ctx, unique)

	resolved := make([]types.WordRecord, 0, len(unique))
	definitions, pronunciations := 0, 0
	for _, word := range unique {
		record, ok := records[word]
		if !ok {
			record = types.NewWordRecord(word)
		}
		if record.FoundDefinition {
			definitions++
		}
		if record.FoundPronunciation {
			pronunciations++
		}
		resolved = append(resolved, record)
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}

	rep := report.New(filepath.Base(inputPath), len(words), resolved)
	if err := rep.WriteMarkdown(outputPath); err != nil {
		return nil, err
	}

	result := &ProcessingResult{
		TotalWords:               len(words),
		UniqueWords:              len(unique),
		SuccessfulDefinitions:    definitions,
		SuccessfulPronunciations: pronunciations,
		ProcessingTime:           time.Since(start),
		SourceFile:               inputPath,
		OutputFile:               outputPath,
	}

	a.logger.Info("Report written",
		"output", outputPath,
		"definitions", fmt.Sprintf("%d/%d", definitions, len(unique)),
		"pronunciations", fmt.Sprintf("%d/%d", pronunciations, len(unique)),
		"elapsed", result.ProcessingTime)

	return result, nil
}

func (a *App) validateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", path)
		}
		return fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return fmt.Errorf("unsupported input format %q (supported: .txt, .md, .html)", ext)
	}

	maxMB := a.processing.MaxFileSizeMB
	if maxMB <= 0 {
		maxMB = 50
	}
	if info.Size() > int64(maxMB)*1024*1024 {
		return fmt.Errorf("input file too large: %.1fMB (max %dMB)",
			float64(info.Size())/(1024*1024), maxMB)
	}
	return nil
}

func (a *App) readInput(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".html" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()

		text, err := extract.TextFromHTML(f)
		if err != nil {
			return "", fmt.Errorf("parse html input: %w", err)
		}
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func defaultOutputPath(inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), stem+"_vocabulary.md")
}
