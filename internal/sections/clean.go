// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"regexp"
	"strings"
)

// blankRunRe matches runs of three or more newlines, i.e. two or more
// consecutive blank lines.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Clean removes noise lines from extracted content: corresponding-author
// notices, contact lines, bare URLs, standalone page numbers, running
// journal headers, and similar conversion artifacts. A line matching any
// noise pattern is dropped whole; there is no partial-line redaction.
// Blank-line runs left behind are collapsed so at most one blank line
// separates paragraphs, and the result is trimmed. Clean is pure and
// idempotent.
func (e *Extractor) Clean(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		noise := false
		for _, pattern := range e.tables.Noise {
			if pattern.MatchString(line) {
				noise = true
				break
			}
		}
		if !noise {
			kept = append(kept, line)
		}
	}

	result := strings.Join(kept, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
