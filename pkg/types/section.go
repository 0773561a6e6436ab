// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data types shared across pipeline stages.
package types

// SectionKind names one of the canonical paper sections the extractor
// targets. It is a closed set; end-of-paper headings (References,
// Acknowledgments, ...) are boundary markers, not SectionKinds.
type SectionKind string

const (
	SectionIntroduction  SectionKind = "introduction"
	SectionConclusion    SectionKind = "conclusion"
	SectionFutureOutlook SectionKind = "future_outlook"
	SectionResults       SectionKind = "results"
	SectionDiscussion    SectionKind = "discussion"
)

// TargetSections lists the extractable kinds in extraction order.
var TargetSections = []SectionKind{
	SectionIntroduction,
	SectionConclusion,
	SectionFutureOutlook,
	SectionResults,
	SectionDiscussion,
}

// BoundaryKind classifies a detected section boundary. It spans the five
// SectionKind values plus the generic and terminal classes.
type BoundaryKind string

const (
	// BoundaryGeneric marks a numbered section start ("2. Graphene
	// Properties") that did not classify as any target kind.
	BoundaryGeneric BoundaryKind = "generic"

	// BoundaryMarkdownHeader marks a #-prefixed line that did not
	// classify as any target kind.
	BoundaryMarkdownHeader BoundaryKind = "markdown_header"

	// BoundaryEndMarker marks a heading (References, Funding, Appendix,
	// ...) that terminates preceding sections and is never extracted.
	BoundaryEndMarker BoundaryKind = "end_marker"
)

// SectionBoundaryKind wraps a SectionKind as a BoundaryKind.
func SectionBoundaryKind(k SectionKind) BoundaryKind {
	return BoundaryKind(k)
}

// IsSection reports whether the boundary kind is one of the five target
// section kinds rather than a generic or terminal marker.
func (k BoundaryKind) IsSection() bool {
	switch k {
	case BoundaryGeneric, BoundaryMarkdownHeader, BoundaryEndMarker:
		return false
	}
	return true
}

// Boundary is a detected section start within a document.
type Boundary struct {
	// Pos is the byte offset of the boundary's first character.
	Pos int

	// Kind classifies the boundary.
	Kind BoundaryKind

	// Raw is the header text as it appears in the document.
	Raw string
}

// Provenance records which detection path produced an extracted section.
type Provenance string

const (
	// ProvenanceHeader means a canonical header pattern matched verbatim.
	ProvenanceHeader Provenance = "header-match"

	// ProvenanceFuzzy means the header was recovered by similarity
	// scoring against the keyword table.
	ProvenanceFuzzy Provenance = "fuzzy-match"

	// ProvenanceContent means no header was found and the section was
	// inferred from indicator phrases in the document body.
	ProvenanceContent Provenance = "content-heuristic"
)

// ExtractedSection is one cleaned section carved out of a document.
type ExtractedSection struct {
	Kind       SectionKind `json:"kind" yaml:"kind"`
	Content    string      `json:"content" yaml:"content"`
	Provenance Provenance  `json:"provenance" yaml:"provenance"`
}

// PaperExtraction holds everything extracted from one paper.
type PaperExtraction struct {
	// Filename is the source file name, carried for reporting only.
	Filename string `json:"filename" yaml:"filename"`

	// DOI is the identifier located near the head of the document, if any.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Sections maps each found kind to its extracted section. A paper has
	// at most one entry per kind; absent kinds are absent keys.
	Sections map[SectionKind]ExtractedSection `json:"sections" yaml:"sections"`
}

// Found lists the kinds present in the extraction, in extraction order.
func (p PaperExtraction) Found() []SectionKind {
	var kinds []SectionKind
	for _, k := range TargetSections {
		if _, ok := p.Sections[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
