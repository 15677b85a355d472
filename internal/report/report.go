// Package report renders vocabulary lookup results as a markdown
// document and optionally converts it to PDF.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

const notFoundMark = "*not found*"

// Report is a renderable vocabulary report. Records are kept sorted by
// word.
type Report struct {
	Source      string
	GeneratedAt time.Time
	TotalWords  int
	Records     []types.WordRecord
}

// New builds a report over a copy of records, sorted by word.
// totalWords is the raw token count of the source before
// normalization.
func New(source string, totalWords int, records []types.WordRecord) *Report {
	sorted := make([]types.WordRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Word < sorted[j].Word
	})

	return &Report{
		Source:      source,
		GeneratedAt: time.Now(),
		TotalWords:  totalWords,
		Records:     sorted,
	}
}

// UniqueWords returns the number of records in the report.
func (r *Report) UniqueWords() int {
	return len(r.Records)
}

// FoundDefinitions returns how many records carry a definition.
func (r *Report) FoundDefinitions() int {
	count := 0
	for _, record := range r.Records {
		if record.FoundDefinition {
			count++
		}
	}
	return count
}

// FoundPronunciations returns how many records carry a pronunciation.
func (r *Report) FoundPronunciations() int {
	count := 0
	for _, record := range r.Records {
		if record.FoundPronunciation {
			count++
		}
	}
	return count
}

// Markdown renders the full report document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Vocabulary Report\n\n")
	if r.Source != "" {
		fmt.Fprintf(&b, "- Source: %s\n", r.Source)
	}
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Words scanned: %d\n", r.TotalWords)
	fmt.Fprintf(&b, "- Unique words: %d\n", r.UniqueWords())
	fmt.Fprintf(&b, "- Definitions found: %d/%d\n", r.FoundDefinitions(), r.UniqueWords())
	fmt.Fprintf(&b, "- Pronunciations found: %d/%d\n", r.FoundPronunciations(), r.UniqueWords())
	b.WriteString("\n")

	if len(r.Records) == 0 {
		b.WriteString("No words to report.\n")
		return b.String()
	}

	b.WriteString("## Words\n\n")
	for _, record := range r.Records {
		fmt.Fprintf(&b, "### %s\n\n", record.Word)

		definition := notFoundMark
		if record.FoundDefinition {
			definition = record.Definition
		}
		pronunciation := notFoundMark
		if record.FoundPronunciation {
			pronunciation = record.Pronunciation
		}
		fmt.Fprintf(&b, "- Definition: %s\n", definition)
		fmt.Fprintf(&b, "- Pronunciation: %s\n\n", pronunciation)
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Word | Pronunciation | Definition |\n")
	b.WriteString("|---|---|---|\n")
	for _, record := range r.Records {
		definition := "-"
		if record.FoundDefinition {
			definition = escapeCell(record.Definition)
		}
		pronunciation := "-"
		if record.FoundPronunciation {
			pronunciation = escapeCell(record.Pronunciation)
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", record.Word, pronunciation, definition)
	}

	return b.String()
}

// WriteMarkdown renders the report to path.
func (r *Report) WriteMarkdown(path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// escapeCell keeps definitions with pipes or newlines from breaking
// the summary table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// RenderPDF converts a rendered markdown report to PDF next to it and
// returns the PDF path.
func RenderPDF(markdownPath string, cfg config.ReportConfig) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("read report %s: %w", markdownPath, err)
	}

	orientation := cfg.Orientation
	if orientation == "" {
		orientation = "P"
	}
	pageSize := cfg.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer(orientation, pageSize, pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
