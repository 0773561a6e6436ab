// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pvidak/paperdigest/internal/convert"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <paths...>",
	Short: "Strip publisher noise from converted Markdown",
	Long: `Clean rewrites Markdown files in place, removing publisher footer lines,
image tags and figure captions, and everything from the first
reference-like heading onward. Directories are cleaned recursively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	result, err := convert.CleanPaths(args, os.Stdout)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d file(s) failed cleanup", result.Failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
