// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders extraction and DOI-check results to their output
// files: a combined JSON export, a markdown digest for downstream LLM
// analysis, per-paper YAML results, and the DOI-check report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pvidak/paperdigest/pkg/types"
)

// contentNote flags sections recovered without an explicit header.
const contentNote = "Detected by content analysis (no explicit header found)"

// digestOrder fixes the section order in the markdown digest, which
// differs from extraction order.
var digestOrder = []types.SectionKind{
	types.SectionIntroduction,
	types.SectionResults,
	types.SectionDiscussion,
	types.SectionConclusion,
	types.SectionFutureOutlook,
}

var sectionTitles = map[types.SectionKind]string{
	types.SectionIntroduction:  "Introduction",
	types.SectionResults:       "Results",
	types.SectionDiscussion:    "Discussion",
	types.SectionConclusion:    "Conclusion",
	types.SectionFutureOutlook: "Future Outlook",
}

// WriteSectionsJSON writes one record per paper with sections keyed by
// name, plus filename, optional doi, and a _<kind>_note key for sections
// found by the content heuristic.
func WriteSectionsJSON(path string, papers []types.PaperExtraction) error {
	records := make([]map[string]any, 0, len(papers))
	for _, paper := range papers {
		record := map[string]any{"filename": paper.Filename}
		if paper.DOI != "" {
			record["doi"] = paper.DOI
		}
		for kind, section := range paper.Sections {
			record[string(kind)] = section.Content
			if section.Provenance == types.ProvenanceContent {
				record["_"+string(kind)+"_note"] = contentNote
			}
		}
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling extraction records: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// WriteMarkdownDigest writes all papers and their sections to a single
// structured markdown document.
func WriteMarkdownDigest(path string, papers []types.PaperExtraction) error {
	var b strings.Builder

	b.WriteString("# Extracted Academic Paper Sections\n\n")
	fmt.Fprintf(&b, "Total papers processed: %d\n\n", len(papers))
	b.WriteString("---\n\n")

	for i, paper := range papers {
		fmt.Fprintf(&b, "# Paper %d: %s\n\n", i+1, displayName(paper.Filename))

		if paper.DOI != "" {
			fmt.Fprintf(&b, "**DOI:** [https://doi.org/%s](https://doi.org/%s)\n\n",
				paper.DOI, paper.DOI)
		}

		found := 0
		for _, kind := range digestOrder {
			section, ok := paper.Sections[kind]
			if !ok {
				continue
			}
			found++
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", sectionTitles[kind], section.Content)
			if section.Provenance == types.ProvenanceContent {
				fmt.Fprintf(&b, "*Note: %s*\n\n", contentNote)
			}
		}

		if found == 0 {
			b.WriteString("*No sections extracted from this paper.*\n\n")
		}
		b.WriteString("---\n\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// displayName cleans a source filename for digest headings.
func displayName(filename string) string {
	name := strings.TrimSuffix(filename, ".md")
	name = strings.TrimSuffix(name, ".pdf")
	return strings.ReplaceAll(name, "-annotated", "")
}

// WriteResult marshals one paper's extraction to a YAML file.
func WriteResult(path string, paper types.PaperExtraction) error {
	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteCheckJSON writes the DOI-check report.
func WriteCheckJSON(path string, report types.CheckReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling check report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
