// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Converted markdown arrives with publisher footers, figure tags, and a
// trailing references block that only add noise downstream. Clean strips
// all three.
var (
	footerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Downloaded from .*Wiley Online Library`),
		regexp.MustCompile(`(?i)See the Terms and Conditions`),
		regexp.MustCompile(`(?i)OA articles are governed by`),
	}

	figurePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*!\[.*\]\(.*\)\s*$`),
		regexp.MustCompile(`(?i)^\s*<img[^>]*>\s*$`),
		regexp.MustCompile(`(?i)^\s*(figure|fig\.?)\s*\d+\s*[:.]`),
	}

	referenceStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*#{1,6}\s*(references|bibliography)\b`),
		regexp.MustCompile(`(?i)^\s*(references|bibliography)\s*$`),
		regexp.MustCompile(`(?i)^\s*-\s*\[\d+\]\s+`),
		regexp.MustCompile(`(?i)^\s*#{1,6}\s*supporting information\b`),
		regexp.MustCompile(`(?i)^\s*#{1,6}\s*acknowledg(e)?ments\b`),
		regexp.MustCompile(`(?i)^\s*#{1,6}\s*conflict of interest\b`),
		regexp.MustCompile(`(?i)^\s*#{1,6}\s*data availability\b`),
	}

	emphasisRe = regexp.MustCompile("[*_`]")
)

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// Clean removes publisher footer lines and figure tags, truncates at the
// first reference-like heading, and trims trailing blank lines. The
// result always ends with a single newline.
func Clean(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if matchesAny(line, footerPatterns) || matchesAny(line, figurePatterns) {
			continue
		}
		// Emphasis markup would hide a "**References**" heading.
		if matchesAny(emphasisRe.ReplaceAllString(line, ""), referenceStartPatterns) {
			break
		}
		kept = append(kept, line)
	}

	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, "\n") + "\n"
}

// CleanFile rewrites a markdown file in place, reporting whether the
// contents changed.
func CleanFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	cleaned := Clean(string(data))
	if cleaned == string(data) {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(cleaned), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// CleanResult holds counts from an in-place cleanup run.
type CleanResult struct {
	Cleaned   int
	Unchanged int
	Failed    int
}

// Total returns the number of files processed.
func (r CleanResult) Total() int {
	return r.Cleaned + r.Unchanged + r.Failed
}

// CleanPaths cleans every markdown file named by paths. Directories are
// walked recursively; duplicates are processed once. Per-file status goes
// to w.
func CleanPaths(paths []string, w io.Writer) (CleanResult, error) {
	files, err := collectMarkdown(paths)
	if err != nil {
		return CleanResult{}, err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No markdown files found.")
		return CleanResult{}, nil
	}

	var result CleanResult
	for _, path := range files {
		changed, err := CleanFile(path)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			result.Failed++
		case changed:
			fmt.Fprintf(w, "cleaned:   %s\n", path)
			result.Cleaned++
		default:
			fmt.Fprintf(w, "unchanged: %s\n", path)
			result.Unchanged++
		}
	}
	return result, nil
}

// collectMarkdown expands files and directories into a sorted, unique
// list of .md paths.
func collectMarkdown(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if strings.EqualFold(filepath.Ext(path), ".md") {
				add(path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".md") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
