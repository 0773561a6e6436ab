// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"strings"

	"github.com/pvidak/paperdigest/pkg/types"
)

// indicatorFloor is the minimum number of distinct indicator phrases that
// must appear before content is attributed to a section kind. One phrase
// alone is too often incidental.
const indicatorFloor = 2

// HasIndicators reports whether text contains enough indicator phrases to
// suggest it belongs to the given section kind. Matching is
// case-insensitive substring containment; each phrase counts at most once.
// Kinds without an indicator table always report false.
func (e *Extractor) HasIndicators(text string, kind types.SectionKind) bool {
	phrases, ok := e.tables.Indicators[kind]
	if !ok {
		return false
	}

	lower := strings.ToLower(text)
	matches := 0
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			matches++
			if matches >= indicatorFloor {
				return true
			}
		}
	}
	return false
}
