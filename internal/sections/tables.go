// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"regexp"

	"github.com/pvidak/paperdigest/pkg/types"
)

// Header patterns share a common shell: optional markdown heading marker,
// optional bold/italic decoration, optional arabic or roman numbering, the
// synonym phrase, optional closing decoration, end of line.
const (
	headerPrefix = `(?im)^(?:#+\s*)?(?:\*{0,2})`
	numberPrefix = `(?:(?:\d+\.?|[IVX]+\.?)\s*)?`
	headerSuffix = `(?:\*{0,2})[ \t]*$`
)

// sectionPattern compiles a canonical header regex for the given synonym
// alternation.
func sectionPattern(body string) *regexp.Regexp {
	return regexp.MustCompile(headerPrefix + numberPrefix + `(?:` + body + `)` + headerSuffix)
}

// endPattern compiles an end-marker header regex. End-of-paper headings are
// rarely numbered, so the numeric prefix is omitted.
func endPattern(body string) *regexp.Regexp {
	return regexp.MustCompile(headerPrefix + body + headerSuffix)
}

// KeywordRow pairs a section kind with its keyword list. Rows are matched
// in slice order and the first qualifying row wins, so the table order is
// part of the classifier's contract.
type KeywordRow struct {
	Kind     types.SectionKind
	Keywords []string
}

// CanonicalPattern pairs a section kind with its hand-built header regex.
type CanonicalPattern struct {
	Kind    types.SectionKind
	Pattern *regexp.Regexp
}

// Tables bundles the fixed reference data the extractor matches against:
// keyword lists for fuzzy classification, canonical and end-marker header
// patterns, content indicator phrases, and noise-line patterns. Tests
// substitute alternate tables; production code uses DefaultTables.
type Tables struct {
	Keywords   []KeywordRow
	Canonical  []CanonicalPattern
	EndMarkers []*regexp.Regexp
	Indicators map[types.SectionKind][]string
	Noise      []*regexp.Regexp
}

// CanonicalFor returns the canonical header pattern for kind, or nil if the
// tables carry none.
func (t *Tables) CanonicalFor(kind types.SectionKind) *regexp.Regexp {
	for _, c := range t.Canonical {
		if c.Kind == kind {
			return c.Pattern
		}
	}
	return nil
}

// DefaultTables returns the reference data tuned for PDF-converted academic
// papers.
func DefaultTables() *Tables {
	return &Tables{
		Keywords: []KeywordRow{
			{types.SectionIntroduction, []string{
				"introduction", "background", "overview", "preface",
				"motivation", "background and motivation",
			}},
			{types.SectionConclusion, []string{
				"conclusion", "conclusions", "concluding remarks", "summary",
				"summary and conclusions", "final remarks", "closing remarks",
				"general conclusions", "concluding notes",
			}},
			{types.SectionFutureOutlook, []string{
				"future work", "future works", "future outlook",
				"future directions", "future research", "future perspectives",
				"future studies", "outlook", "perspectives",
				"outlook and perspectives", "perspectives and outlook",
				"open questions", "open challenges", "implications",
				"implications and future work", "roadmap",
			}},
			{types.SectionResults, []string{
				"results", "findings", "experimental results",
			}},
			{types.SectionDiscussion, []string{
				"discussion", "analysis", "results and discussion",
			}},
		},

		Canonical: []CanonicalPattern{
			{types.SectionIntroduction, sectionPattern(
				`Introduction|Background(?:\s+and\s+Motivation)?|Overview|Preface|Motivation`)},
			{types.SectionConclusion, sectionPattern(
				`Conclusions?|Concluding\s+Remarks?|Summary(?:\s+and\s+Conclusions?)?|` +
					`Final\s+Remarks?|Closing\s+Remarks?|General\s+Conclusions?|` +
					`Conclusions?\s+and\s+(?:Outlook|Future\s+(?:Work|Directions?))|` +
					`Summary\s+and\s+(?:Outlook|Perspectives?)`)},
			{types.SectionFutureOutlook, sectionPattern(
				`Future\s+(?:Works?|Outlook|Directions?|Research|Perspectives?|Studies)|` +
					`Outlook(?:\s+and\s+(?:Perspectives?|Future\s+(?:Work|Directions?)))?|` +
					`Perspectives?(?:\s+and\s+(?:Outlook|Future\s+(?:Work|Directions?)))?|` +
					`(?:Open\s+)?(?:Questions|Challenges)(?:\s+and\s+(?:Outlook|Future\s+Directions?))?|` +
					`Implications(?:\s+and\s+Future\s+(?:Work|Directions?))?|Road\s*map|` +
					`What'?s\s+Next|Looking\s+(?:Ahead|Forward)`)},
			{types.SectionResults, sectionPattern(
				`Results?|Findings|Experimental\s+Results?`)},
			{types.SectionDiscussion, sectionPattern(
				`Discussion|Analysis|Results?\s+and\s+Discussion`)},
		},

		EndMarkers: []*regexp.Regexp{
			endPattern(`References?`),
			endPattern(`Bibliography`),
			endPattern(`Acknowledg(?:e)?ments?`),
			endPattern(`Author\s+Contributions?`),
			endPattern(`Declaration\s+of\s+(?:Competing\s+)?Interests?`),
			endPattern(`Conflicts?\s+of\s+Interest`),
			endPattern(`Funding`),
			endPattern(`Supplementary\s+(?:Materials?|Information)`),
			endPattern(`Appendix`),
		},

		Indicators: map[types.SectionKind][]string{
			types.SectionConclusion: {
				"in conclusion", "to conclude", "in summary", "we have shown",
				"this study demonstrates", "our findings suggest", "we conclude",
				"this work has demonstrated", "the results demonstrate",
				"we have presented", "this paper has presented", "to summarize",
				"in this paper, we have", "our results show that",
				"we have demonstrated",
			},
			types.SectionIntroduction: {
				"in this paper", "in this study", "in this work", "we present",
				"this paper presents", "the purpose of this", "the goal of this",
				"the aim of this", "this study aims", "we propose", "we introduce",
			},
		},

		Noise: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*[-*]?\s*Corresponding\s+author\.?.*$`),
			regexp.MustCompile(`(?i)^\s*\*{1,2}\s*Corresponding\s+author\.?.*$`),
			regexp.MustCompile(`(?i)^\s*E-?mail\s*:.*$`),
			regexp.MustCompile(`(?i)^\s*\[E-?mail\s+address:.*$`),
			regexp.MustCompile(`(?i)^\s*Tel\.?\s*:.*$`),
			regexp.MustCompile(`(?i)^\s*Fax\s*:.*$`),
			regexp.MustCompile(`(?i)^\s*https?://.*$`),
			regexp.MustCompile(`(?i)^\s*\[https?://.*$`),
			// Standalone page numbers.
			regexp.MustCompile(`^\s*\d{1,3}\s*$`),
			// Running headers like "Q. Zhu et al. Nano Materials Science ...".
			regexp.MustCompile(`(?i)^\s*[A-Z]\.\s*[A-Z][a-z]+\s+et\s+al\..*$`),
			// Journal citations like "Nano Materials Science 6 (2024) 115-138".
			regexp.MustCompile(`^.*\(\d{4}\)\s*\d+[-–]\d+\s*$`),
			// Address fragments like "#08-03, 138634, Singapore".
			regexp.MustCompile(`^\s*#\d+[-–].*$`),
			regexp.MustCompile(`(?i)^\s*\d+\s+These\s+authors\s+contribute.*$`),
			regexp.MustCompile(`(?i)^\s*Received\s+\d+.*$`),
			regexp.MustCompile(`(?i)^\s*Available\s+online.*$`),
			// ISSN/DOI boilerplate like "2589-9651/© ...".
			regexp.MustCompile(`^\s*\d{4}-\d{4}/.*$`),
			regexp.MustCompile(`(?i)^\[BY-NC-ND\s+license.*$`),
		},
	}
}
