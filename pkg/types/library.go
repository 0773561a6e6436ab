// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LibraryAuthor is one author of a reference-manager document.
type LibraryAuthor struct {
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
}

// LibraryDocument is a document from the user's Mendeley library that
// carries a DOI. DOIs are compared case-insensitively; DOI preserves the
// original casing for display.
type LibraryDocument struct {
	DOI        string          `json:"doi" yaml:"doi"`
	Title      string          `json:"title" yaml:"title"`
	Year       int             `json:"year,omitempty" yaml:"year,omitempty"`
	Authors    []LibraryAuthor `json:"authors,omitempty" yaml:"authors,omitempty"`
	MendeleyID string          `json:"mendeley_id" yaml:"mendeley_id"`
	FetchedAt  time.Time       `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
}

// CheckSummary counts the outcome of a DOI membership check.
type CheckSummary struct {
	TotalChecked   int `json:"total_checked" yaml:"total_checked"`
	FoundInLibrary int `json:"found_in_library" yaml:"found_in_library"`
	NotInLibrary   int `json:"not_in_library" yaml:"not_in_library"`
}

// CheckReport is the full result of checking a DOI list against the library.
type CheckReport struct {
	Summary      CheckSummary      `json:"summary" yaml:"summary"`
	InLibrary    []LibraryDocument `json:"in_library" yaml:"in_library"`
	NotInLibrary []string          `json:"not_in_library" yaml:"not_in_library"`
}
