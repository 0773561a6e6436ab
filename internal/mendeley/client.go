// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mendeley

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pvidak/paperdigest/internal/httputil"
	"github.com/pvidak/paperdigest/pkg/types"
)

// acceptDocument is the versioned media type for document resources.
const acceptDocument = "application/vnd.mendeley-document.1+json"

// apiDocument captures the fields we need from a Mendeley document record.
type apiDocument struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Year        int               `json:"year"`
	Authors     []apiAuthor       `json:"authors"`
	Identifiers map[string]string `json:"identifiers"`
}

type apiAuthor struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Library is the user's document library keyed by lowercased DOI.
type Library struct {
	// Docs maps lowercased DOI to document metadata.
	Docs map[string]types.LibraryDocument

	// TotalDocuments counts every library document, with or without a DOI.
	TotalDocuments int
}

// FetchLibrary pages through the user's documents and collects those that
// carry a DOI. Pagination follows the Link header's rel="next" URL until
// the API stops providing one.
func (c *Client) FetchLibrary(ctx context.Context, accessToken string) (*Library, error) {
	lib := &Library{Docs: make(map[string]types.LibraryDocument)}
	now := time.Now().UTC()

	next := documentsBase + "?limit=" + strconv.Itoa(c.cfg.PageLimit)
	for next != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, fmt.Errorf("creating documents request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", acceptDocument)
		if c.cfg.UserAgent != "" {
			req.Header.Set("User-Agent", c.cfg.UserAgent)
		}

		resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
		if err != nil {
			return nil, fmt.Errorf("fetching documents: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("documents endpoint returned HTTP %d", resp.StatusCode)
		}

		var page []apiDocument
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("parsing documents page: %w", err)
		}
		linkHeader := resp.Header.Get("Link")
		resp.Body.Close()

		for _, doc := range page {
			lib.TotalDocuments++
			doi := strings.TrimSpace(doc.Identifiers["doi"])
			if doi == "" {
				continue
			}

			entry := types.LibraryDocument{
				DOI:        doi,
				Title:      doc.Title,
				Year:       doc.Year,
				MendeleyID: doc.ID,
				FetchedAt:  now,
			}
			if entry.Title == "" {
				entry.Title = "Untitled"
			}
			for _, a := range doc.Authors {
				entry.Authors = append(entry.Authors, types.LibraryAuthor{
					FirstName: a.FirstName,
					LastName:  a.LastName,
				})
			}
			lib.Docs[strings.ToLower(doi)] = entry
		}

		next = nextLink(linkHeader)
	}

	return lib, nil
}

// nextLink extracts the rel="next" URL from a Link header, or "" when the
// header names no next page.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(segments[0]), "<>")
		for _, param := range segments[1:] {
			if strings.EqualFold(strings.TrimSpace(param), `rel="next"`) {
				return target
			}
		}
	}
	return ""
}

// CheckDOIs splits a DOI list into those present in the library and those
// missing. Comparison is case-insensitive and ignores surrounding
// whitespace.
func CheckDOIs(dois []string, docs map[string]types.LibraryDocument) types.CheckReport {
	report := types.CheckReport{
		InLibrary:    []types.LibraryDocument{},
		NotInLibrary: []string{},
	}

	for _, doi := range dois {
		trimmed := strings.TrimSpace(doi)
		if trimmed == "" {
			continue
		}
		if doc, ok := docs[strings.ToLower(trimmed)]; ok {
			report.InLibrary = append(report.InLibrary, doc)
		} else {
			report.NotInLibrary = append(report.NotInLibrary, trimmed)
		}
	}

	report.Summary = types.CheckSummary{
		TotalChecked:   len(report.InLibrary) + len(report.NotInLibrary),
		FoundInLibrary: len(report.InLibrary),
		NotInLibrary:   len(report.NotInLibrary),
	}
	return report
}
