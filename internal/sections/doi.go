// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"regexp"
	"sort"
	"strings"
)

// DOIScanLimit is the conventional cap on how far into a document callers
// scan for a DOI; identifiers sit in the title/metadata block.
const DOIScanLimit = 5000

var (
	// doiRe tolerates a "doi:" prefix or a doi.org / dx.doi.org URL and
	// captures the bare 10.NNNN/suffix identifier.
	doiRe = regexp.MustCompile(`(?i)(?:doi\s*[:/]?\s*|https?://(?:dx\.)?doi\.org/)?(10\.\d{4,}/\S+)`)

	// doiTrailRe strips punctuation that sentence context glues onto the
	// identifier.
	doiTrailRe = regexp.MustCompile(`[.,;:)\]]+$`)
)

// FindDOI returns the first DOI in text, without any prefix or trailing
// punctuation. The second return is false when text contains no DOI.
func FindDOI(text string) (string, bool) {
	m := doiRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return doiTrailRe.ReplaceAllString(m[1], ""), true
}

// harvestRes cover the ways DOIs appear in annotated Markdown: doi.org
// URLs, DOIs used as markdown link text, and "DOI:" prefixed mentions.
var harvestRes = []*regexp.Regexp{
	regexp.MustCompile(`https?://doi\.org/(10\.\d{4,}/[^)\s]+)`),
	regexp.MustCompile(`\[(10\.\d{4,}/[^\]]+)\]\(`),
	regexp.MustCompile(`DOI:\s*\[?(10\.\d{4,}/[^\])>\s]+)`),
}

// HarvestDOIs collects every DOI mentioned anywhere in a Markdown
// document, deduplicated and sorted. Unlike FindDOI it is not limited to
// the metadata head; it is meant for reading-list documents that cite
// many papers.
func HarvestDOIs(text string) []string {
	seen := make(map[string]struct{})
	for _, re := range harvestRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			doi := strings.TrimRight(strings.TrimSpace(m[1]), ").,;:")
			if doi == "" {
				continue
			}
			seen[doi] = struct{}{}
		}
	}

	dois := make([]string, 0, len(seen))
	for doi := range seen {
		dois = append(dois, doi)
	}
	sort.Strings(dois)
	return dois
}

// Head returns the leading portion of a document a DOI scan should cover.
func Head(doc string, limit int) string {
	if limit <= 0 {
		limit = DOIScanLimit
	}
	if len(doc) <= limit {
		return doc
	}
	return doc[:limit]
}
