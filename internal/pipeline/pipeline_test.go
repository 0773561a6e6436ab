// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pvidak/paperdigest/pkg/types"
)

const samplePaper = `# Graphene Synthesis at Scale

doi: 10.1038/nature12345

## 1. Introduction

Graphene has attracted wide attention for its electronic and mechanical
properties, and scalable synthesis remains an open problem.

## 5. Conclusions

In summary, we have demonstrated a route to wafer-scale graphene films
with uniform thickness and low defect density.

References

[1] Novoselov et al. (2004)
`

const headerlessPaper = `Some front matter without any recognizable section headers
and no identifier anywhere in the text body at all.
`

func newTestPipeline(limit int) *Pipeline {
	return New(types.ExtractionConfig{DOIScanLimit: limit}, zerolog.Nop())
}

func writePaper(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	writePaper(t, dir, "graphene.md", samplePaper)

	paper, err := newTestPipeline(0).ProcessFile(filepath.Join(dir, "graphene.md"))
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	if paper.Filename != "graphene.md" {
		t.Errorf("Filename = %q", paper.Filename)
	}
	if paper.DOI != "10.1038/nature12345" {
		t.Errorf("DOI = %q", paper.DOI)
	}

	kinds := paper.Found()
	if len(kinds) != 2 {
		t.Fatalf("found %v, want introduction and conclusion", kinds)
	}
	intro := paper.Sections[types.SectionIntroduction]
	if !strings.Contains(intro.Content, "scalable synthesis") {
		t.Errorf("introduction content = %q", intro.Content)
	}
	conclusion := paper.Sections[types.SectionConclusion]
	if strings.Contains(conclusion.Content, "Novoselov") {
		t.Errorf("conclusion ran past the references: %q", conclusion.Content)
	}
}

func TestProcessFileDOIOutsideScanWindow(t *testing.T) {
	dir := t.TempDir()
	doc := strings.Repeat("padding text before the identifier. ", 10) +
		"\ndoi: 10.1234/late.doi\n"
	writePaper(t, dir, "late.md", doc)

	// A scan limit shorter than the padding must miss the DOI.
	paper, err := newTestPipeline(50).ProcessFile(filepath.Join(dir, "late.md"))
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if paper.DOI != "" {
		t.Errorf("DOI = %q, want none within the scan window", paper.DOI)
	}
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writePaper(t, dir, "graphene.md", samplePaper)
	writePaper(t, dir, "headerless.md", headerlessPaper)
	writePaper(t, dir, "notes.txt", "not a markdown paper")
	if err := os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "broken.md")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	papers, summary, err := newTestPipeline(0).ProcessDir(dir, &buf)
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}

	if summary.Extracted != 1 || summary.Empty != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Total() != 3 {
		t.Errorf("Total = %d, want 3", summary.Total())
	}
	if !summary.HasFailures() {
		t.Error("HasFailures = false, want true")
	}

	// Only readable markdown files yield results; the txt file is ignored.
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	out := buf.String()
	for _, want := range []string{
		"extracted: graphene.md (2 sections)",
		"empty:     headerless.md",
		"failed:    broken.md",
		"Batch summary: 1 extracted, 1 empty, 1 failed (total: 3)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q in:\n%s", want, out)
		}
	}
}

func TestProcessDirEmpty(t *testing.T) {
	var buf bytes.Buffer
	papers, summary, err := newTestPipeline(0).ProcessDir(t.TempDir(), &buf)
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if len(papers) != 0 || summary.Total() != 0 {
		t.Errorf("papers = %v, summary = %+v", papers, summary)
	}
	if !strings.Contains(buf.String(), "No markdown files found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProcessDirMissing(t *testing.T) {
	var buf bytes.Buffer
	_, _, err := newTestPipeline(0).ProcessDir(filepath.Join(t.TempDir(), "absent"), &buf)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
