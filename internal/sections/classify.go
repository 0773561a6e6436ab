// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/pvidak/paperdigest/pkg/types"
)

// defaultThreshold is the minimum similarity score (0-100) for a keyword
// match. Converted headers carry OCR noise and stray decoration, so exact
// comparison misses real headers; 80 recovers most of them without
// accepting arbitrary titles.
const defaultThreshold = 80

var (
	// numberingRe strips leading numbering tokens: "2.", "IV.", "3".
	numberingRe = regexp.MustCompile(`^[\d.IVX]+\s*`)

	// markupRe strips markdown heading and emphasis markers.
	markupRe = regexp.MustCompile(`[#*]+`)
)

// normalizeHeader reduces a raw header line to the bare phrase used for
// similarity scoring.
func normalizeHeader(header string) string {
	cleaned := numberingRe.ReplaceAllString(header, "")
	cleaned = markupRe.ReplaceAllString(cleaned, "")
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// Classify decides which section kind a header line represents, if any.
// The header is normalized, then scored against every keyword with both a
// full-string ratio and a best-substring partial ratio; the first kind in
// table order with a keyword scoring at or above the threshold wins.
// Ordering matters when a phrase qualifies for two kinds: rows earlier in
// the table shadow later ones.
func (e *Extractor) Classify(header string) (types.SectionKind, bool) {
	cleaned := normalizeHeader(header)
	if cleaned == "" {
		return "", false
	}

	for _, row := range e.tables.Keywords {
		for _, keyword := range row.Keywords {
			if fuzzy.Ratio(cleaned, keyword) >= e.threshold ||
				fuzzy.PartialRatio(cleaned, keyword) >= e.threshold {
				return row.Kind, true
			}
		}
	}
	return "", false
}
