// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF-to-Markdown conversion with pluggable
// backends, plus cleanup of converter artifacts (publisher footers,
// figure tags, reference blocks).
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pvidak/paperdigest/internal/sections"
)

// Converter transforms a PDF file into Markdown text. Backends implement
// this interface; the default pipes the PDF through a container image.
type Converter interface {
	// Convert reads a PDF at pdfPath and returns the Markdown content.
	Convert(pdfPath string) (string, error)
}

// Status is the outcome of converting one PDF.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any PDFs failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertPDF converts a single PDF to cleaned Markdown in outDir. An
// existing output file is skipped unless overwrite is set. The converted
// body gets YAML frontmatter carrying the source path, timestamp, and
// the paper's DOI when one is found near the head.
func ConvertPDF(c Converter, pdfPath, outDir string, overwrite bool, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	mdPath := filepath.Join(outDir, base+".md")

	if !overwrite {
		if _, err := os.Stat(mdPath); err == nil {
			fmt.Fprintf(w, "skipped:   %s (already exists)\n", base)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", base, err)
		return StatusFailed
	}

	raw, err := c.Convert(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", base, err)
		return StatusFailed
	}

	body := Clean(raw)
	doi, _ := sections.FindDOI(sections.Head(body, 0))
	content := addFrontmatter(pdfPath, doi, body)

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusConverted
}

// ConvertBatch runs a list of PDF paths through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(c Converter, pdfPaths []string, outDir string, overwrite bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ConvertPDF(c, p, outDir, overwrite, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertDir converts every PDF directly under pdfDir.
func ConvertDir(c Converter, pdfDir, outDir string, overwrite bool, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(pdfDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading PDF directory %s: %w", pdfDir, err)
	}

	var pdfPaths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		pdfPaths = append(pdfPaths, filepath.Join(pdfDir, entry.Name()))
	}
	if len(pdfPaths) == 0 {
		fmt.Fprintln(w, "No PDF files found.")
		return BatchResult{}, nil
	}

	return ConvertBatch(c, pdfPaths, outDir, overwrite, w), nil
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown body.
func addFrontmatter(pdfPath, doi, body string) string {
	ts := time.Now().UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "source_pdf: %q\n", pdfPath)
	fmt.Fprintf(&b, "converted_at: %q\n", ts)
	if doi != "" {
		fmt.Fprintf(&b, "doi: %q\n", doi)
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}
