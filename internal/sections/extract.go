// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections locates and extracts canonical sections (introduction,
// results, discussion, conclusion, future outlook) from academic papers
// converted from PDF to Markdown. Converted output is noisy: headers carry
// inconsistent numbering, decoration, and OCR artifacts, so detection is
// layered — exact header patterns first, fuzzy keyword matching second,
// content indicators last. Extraction is best-effort; a section the
// detectors cannot place is silently absent, never an error.
package sections

import (
	"strings"

	"github.com/pvidak/paperdigest/pkg/types"
)

const (
	// minSectionLen rejects header-only false positives: matched headers
	// whose trimmed body is shorter than this are discarded.
	minSectionLen = 50

	// selfMatchBuffer keeps a boundary from terminating its own section.
	selfMatchBuffer = 10

	// tailWindow is how much of the document tail the conclusion fallback
	// inspects for indicator phrases.
	tailWindow = 2000

	// fallbackParagraphs is how many trailing paragraphs the conclusion
	// fallback takes as content.
	fallbackParagraphs = 3
)

// Extractor carves documents into named sections using an injected set of
// reference tables. The zero value is not usable; construct with New.
type Extractor struct {
	tables    *Tables
	threshold int
}

// New returns an Extractor over the given tables. A nil tables uses
// DefaultTables.
func New(tables *Tables) *Extractor {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Extractor{tables: tables, threshold: defaultThreshold}
}

// Extract partitions a document into its target sections. For each kind it
// prefers the earliest canonical header match, falling back to the earliest
// fuzzy-classified boundary of that kind. Content runs from the end of the
// matched header to the next boundary of any kind (including end markers
// like References), with a small buffer so a boundary cannot terminate
// itself. Bodies shorter than the minimum length are treated as
// false-positive headers and dropped. A missing conclusion triggers a
// content-based fallback over the document tail. Every returned section is
// noise-filtered.
func (e *Extractor) Extract(doc string) map[types.SectionKind]types.ExtractedSection {
	found := make(map[types.SectionKind]types.ExtractedSection)
	bounds := e.FindBoundaries(doc)

	for _, kind := range types.TargetSections {
		matchStart, matchEnd := -1, -1
		provenance := types.ProvenanceHeader

		if pattern := e.tables.CanonicalFor(kind); pattern != nil {
			if loc := pattern.FindStringIndex(doc); loc != nil {
				matchStart, matchEnd = loc[0], loc[1]
			}
		}
		if matchStart < 0 {
			for _, b := range bounds {
				if b.Kind == types.SectionBoundaryKind(kind) {
					matchStart, matchEnd = b.Pos, b.Pos+len(b.Raw)
					provenance = types.ProvenanceFuzzy
					break
				}
			}
		}
		if matchStart < 0 {
			continue
		}

		end := len(doc)
		for _, b := range bounds {
			if b.Pos > matchStart+selfMatchBuffer {
				end = b.Pos
				break
			}
		}
		// A header match spanning blank lines can reach past a boundary
		// another source found inside it; an inverted window means the
		// match was noise, not a section.
		if end < matchEnd {
			continue
		}

		content := strings.TrimSpace(doc[matchEnd:end])
		if len(content) < minSectionLen {
			continue
		}

		found[kind] = types.ExtractedSection{
			Kind:       kind,
			Content:    content,
			Provenance: provenance,
		}
	}

	if _, ok := found[types.SectionConclusion]; !ok {
		if section, ok := e.fallbackConclusion(doc); ok {
			found[types.SectionConclusion] = section
		}
	}

	for kind, section := range found {
		section.Content = e.Clean(section.Content)
		found[kind] = section
	}
	return found
}

// fallbackConclusion recovers a conclusion with no recognizable header. If
// the document tail reads like a conclusion (enough indicator phrases), the
// final paragraphs are taken as its content.
func (e *Extractor) fallbackConclusion(doc string) (types.ExtractedSection, bool) {
	tail := doc
	if len(doc) > tailWindow {
		tail = doc[len(doc)-tailWindow:]
	}
	if !e.HasIndicators(tail, types.SectionConclusion) {
		return types.ExtractedSection{}, false
	}

	paragraphs := strings.Split(doc, "\n\n")
	if len(paragraphs) < fallbackParagraphs {
		return types.ExtractedSection{}, false
	}

	content := strings.Join(paragraphs[len(paragraphs)-fallbackParagraphs:], "\n\n")
	return types.ExtractedSection{
		Kind:       types.SectionConclusion,
		Content:    strings.TrimSpace(content),
		Provenance: types.ProvenanceContent,
	}, true
}
