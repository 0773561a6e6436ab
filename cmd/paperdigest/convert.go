// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pvidak/paperdigest/internal/container"
	"github.com/pvidak/paperdigest/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs...]",
	Short: "Convert PDF papers to cleaned Markdown",
	Long: `Convert transforms PDF files into Markdown by piping them through a
pymupdf4llm container image (docker or podman). Publisher footers, figure
tags, and reference blocks are stripped from the output, and a located
DOI is recorded in the frontmatter.

With no arguments, every PDF under <papers-dir>/raw is converted into
<papers-dir>/markdown.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	image, _ := cmd.Flags().GetString("image")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Using container runtime: %s\n", rt.Name())

	conv, err := convert.NewPymupdfConverter(rt, image)
	if err != nil {
		return err
	}

	outDir := filepath.Join(papersDir, "markdown")

	var result convert.BatchResult
	if len(args) > 0 {
		result = convert.ConvertBatch(conv, args, outDir, overwrite, os.Stdout)
	} else {
		result, err = convert.ConvertDir(conv, filepath.Join(papersDir, "raw"), outDir, overwrite, os.Stdout)
		if err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().String("papers-dir", "papers", "base directory for papers (contains raw/, markdown/)")
	convertCmd.Flags().String("image", convert.DefaultImage, "container image for conversion")
	convertCmd.Flags().Bool("overwrite", false, "overwrite existing Markdown output")

	rootCmd.AddCommand(convertCmd)
}
