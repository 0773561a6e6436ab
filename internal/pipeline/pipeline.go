// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs DOI location and section extraction over a
// directory of converted markdown papers. Per-file failures are logged
// and counted without aborting the remaining files.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pvidak/paperdigest/internal/sections"
	"github.com/pvidak/paperdigest/pkg/types"
)

// Summary holds counts from a batch extraction run.
type Summary struct {
	Extracted int
	Empty     int
	Failed    int
}

// Total returns the number of papers processed.
func (s Summary) Total() int {
	return s.Extracted + s.Empty + s.Failed
}

// HasFailures reports whether any papers failed processing.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Pipeline extracts sections and DOIs from markdown papers.
type Pipeline struct {
	extractor *sections.Extractor
	scanLimit int
	log       zerolog.Logger
}

// New builds a pipeline with the default extraction tables. A zero
// DOIScanLimit falls back to the conventional head size.
func New(cfg types.ExtractionConfig, logger zerolog.Logger) *Pipeline {
	limit := cfg.DOIScanLimit
	if limit <= 0 {
		limit = sections.DOIScanLimit
	}
	return &Pipeline{
		extractor: sections.New(nil),
		scanLimit: limit,
		log:       logger,
	}
}

// ProcessFile extracts the DOI and sections from a single markdown file.
func (p *Pipeline) ProcessFile(path string) (types.PaperExtraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PaperExtraction{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc := string(data)

	paper := types.PaperExtraction{
		Filename: filepath.Base(path),
		Sections: p.extractor.Extract(doc),
	}
	if doi, ok := sections.FindDOI(sections.Head(doc, p.scanLimit)); ok {
		paper.DOI = doi
	}
	return paper, nil
}

// ProcessDir runs every .md file in dir through the extractor, printing
// per-file status to w. Failed files are logged and skipped; the rest of
// the batch continues.
func (p *Pipeline) ProcessDir(dir string, w io.Writer) ([]types.PaperExtraction, Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("reading papers directory %s: %w", dir, err)
	}

	var (
		papers  []types.PaperExtraction
		summary Summary
	)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".md") {
			continue
		}

		paper, err := p.ProcessFile(filepath.Join(dir, name))
		if err != nil {
			p.log.Error().Err(err).Str("file", name).Msg("extraction failed")
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			summary.Failed++
			continue
		}

		papers = append(papers, paper)
		if kinds := paper.Found(); len(kinds) > 0 {
			p.log.Info().Str("file", name).Int("sections", len(kinds)).Msg("extracted")
			fmt.Fprintf(w, "extracted: %s (%d sections)\n", name, len(kinds))
			summary.Extracted++
		} else {
			p.log.Warn().Str("file", name).Msg("no sections found")
			fmt.Fprintf(w, "empty:     %s (no sections)\n", name)
			summary.Empty++
		}
	}

	if summary.Total() == 0 {
		fmt.Fprintln(w, "No markdown files found.")
		return papers, summary, nil
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d empty, %d failed (total: %d)\n",
		summary.Extracted, summary.Empty, summary.Failed, summary.Total())
	return papers, summary, nil
}
