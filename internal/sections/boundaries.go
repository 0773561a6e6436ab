// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pvidak/paperdigest/pkg/types"
)

var (
	// genericSectionRe matches numbered section starts like
	// "2. Graphene Properties": digits, a period, then a capitalized
	// title of 5-60 characters.
	genericSectionRe = regexp.MustCompile(`(?m)^\d+\.[ \t]+[A-Z].{5,60}$`)

	// markdownHeaderRe matches any #-prefixed line.
	markdownHeaderRe = regexp.MustCompile(`(?m)^#+[ \t]*.+$`)

	// yearParenRe and pageRangeRe identify citation lines masquerading as
	// numbered sections: "J. Smith (2024)" or "115-138".
	yearParenRe   = regexp.MustCompile(`\(\d{4}\)`)
	pageRangeRe   = regexp.MustCompile(`\d+[-–]\d+`)
	leadingHashRe = regexp.MustCompile(`^#+\s*`)
)

// FindBoundaries scans a document and returns every candidate section
// boundary, sorted by position. Four sources contribute: canonical header
// patterns for each target kind, generic numbered-section lines, markdown
// headers (classified fuzzily where possible), and end-of-paper markers.
// A single physical header line may yield boundaries from more than one
// source; ties at the same offset are ordered so canonical matches come
// first, since a canonical match carries stronger evidence.
func (e *Extractor) FindBoundaries(doc string) []types.Boundary {
	var bounds []types.Boundary

	for _, c := range e.tables.Canonical {
		for _, loc := range c.Pattern.FindAllStringIndex(doc, -1) {
			bounds = append(bounds, types.Boundary{
				Pos:  loc[0],
				Kind: types.SectionBoundaryKind(c.Kind),
				Raw:  doc[loc[0]:loc[1]],
			})
		}
	}

	for _, loc := range genericSectionRe.FindAllStringIndex(doc, -1) {
		header := doc[loc[0]:loc[1]]
		if isCitationLine(header) || len(strings.Fields(header)) < 2 {
			continue
		}
		bounds = append(bounds, types.Boundary{Pos: loc[0], Kind: types.BoundaryGeneric, Raw: header})
	}

	for _, loc := range markdownHeaderRe.FindAllStringIndex(doc, -1) {
		header := doc[loc[0]:loc[1]]
		if rejectMarkdownHeader(header) {
			continue
		}
		kind := types.BoundaryMarkdownHeader
		if section, ok := e.Classify(header); ok {
			kind = types.SectionBoundaryKind(section)
		}
		bounds = append(bounds, types.Boundary{Pos: loc[0], Kind: kind, Raw: header})
	}

	for _, pattern := range e.tables.EndMarkers {
		for _, loc := range pattern.FindAllStringIndex(doc, -1) {
			bounds = append(bounds, types.Boundary{
				Pos:  loc[0],
				Kind: types.BoundaryEndMarker,
				Raw:  doc[loc[0]:loc[1]],
			})
		}
	}

	sort.SliceStable(bounds, func(i, j int) bool {
		if bounds[i].Pos != bounds[j].Pos {
			return bounds[i].Pos < bounds[j].Pos
		}
		return boundaryPriority(bounds[i].Kind) < boundaryPriority(bounds[j].Kind)
	})
	return bounds
}

// boundaryPriority orders boundaries sharing an offset: classified section
// boundaries first, then end markers, then generic catch-alls.
func boundaryPriority(k types.BoundaryKind) int {
	switch k {
	case types.BoundaryEndMarker:
		return 1
	case types.BoundaryGeneric, types.BoundaryMarkdownHeader:
		return 2
	default:
		return 0
	}
}

// isCitationLine reports whether a numbered line looks like a reference
// entry rather than a section header.
func isCitationLine(header string) bool {
	if strings.Contains(strings.ToLower(header), "et al") {
		return true
	}
	return yearParenRe.MatchString(header) || pageRangeRe.MatchString(header)
}

// rejectMarkdownHeader filters #-lines that are conversion noise rather
// than section titles: address/page fragments starting with a digit, very
// short bodies, and contact metadata.
func rejectMarkdownHeader(header string) bool {
	body := leadingHashRe.ReplaceAllString(header, "")
	if body == "" || body[0] >= '0' && body[0] <= '9' {
		return true
	}
	if len(strings.TrimSpace(body)) < 4 {
		return true
	}
	return strings.Contains(body, "@") ||
		strings.Contains(body, "mailto:") ||
		strings.Contains(body, "http")
}
