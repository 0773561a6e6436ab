// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pvidak/paperdigest/internal/pipeline"
	"github.com/pvidak/paperdigest/internal/report"
	"github.com/pvidak/paperdigest/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract key sections and DOIs from converted papers",
	Long: `Extract reads converted Markdown papers, locates each paper's DOI, and
pulls out the introduction, results, discussion, conclusion, and future
outlook sections. Headers are matched exactly, then by similarity, and a
conclusion is recovered from the closing paragraphs when no header exists.

Results go to the output directory as a combined JSON file, a Markdown
digest, and one YAML file per paper.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	scanLimit, _ := cmd.Flags().GetInt("doi-scan-limit")

	cfg := types.ExtractionConfig{
		PapersDir:    papersDir,
		OutputDir:    outputDir,
		DOIScanLimit: scanLimit,
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	p := pipeline.New(cfg, logger)

	mdDir := filepath.Join(papersDir, "markdown")
	papers, summary, err := p.ProcessDir(mdDir, os.Stdout)
	if err != nil {
		return err
	}

	if len(papers) > 0 {
		if err := writeReports(outputDir, papers); err != nil {
			return err
		}
		fmt.Printf("\nOutput files:\n")
		fmt.Printf("  - %s (JSON, for programmatic access)\n", filepath.Join(outputDir, "extracted_sections.json"))
		fmt.Printf("  - %s (Markdown, for LLM analysis)\n", filepath.Join(outputDir, "extracted_sections.md"))
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed extraction", summary.Failed)
	}
	return nil
}

func writeReports(outputDir string, papers []types.PaperExtraction) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := report.WriteSectionsJSON(filepath.Join(outputDir, "extracted_sections.json"), papers); err != nil {
		return err
	}
	if err := report.WriteMarkdownDigest(filepath.Join(outputDir, "extracted_sections.md"), papers); err != nil {
		return err
	}

	for _, paper := range papers {
		base := strings.TrimSuffix(paper.Filename, filepath.Ext(paper.Filename))
		if err := report.WriteResult(filepath.Join(outputDir, base+".yaml"), paper); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	extractCmd.Flags().String("papers-dir", "papers", "base directory for papers (contains markdown/)")
	extractCmd.Flags().String("output-dir", "output", "directory for extraction reports")
	extractCmd.Flags().Int("doi-scan-limit", 0, "leading characters scanned for a DOI (0 = default)")

	rootCmd.AddCommand(extractCmd)
}
