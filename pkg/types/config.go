// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperdigest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ConversionConfig holds settings for the PDF-to-Markdown stage.
type ConversionConfig struct {
	// Image is the container image used for conversion.
	Image string `json:"image" yaml:"image"`

	// PapersDir is the base directory for papers (contains raw/, markdown/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// ExtractionConfig holds settings for the section extraction stage.
type ExtractionConfig struct {
	// PapersDir is the base directory for papers (contains markdown/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`

	// OutputDir is the directory for extraction reports (JSON, digest,
	// per-paper YAML).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DOIScanLimit caps how many leading characters are scanned for a DOI
	// (default 5000; DOIs sit in the title/metadata block).
	DOIScanLimit int `json:"doi_scan_limit" yaml:"doi_scan_limit"`
}

// MendeleyConfig holds settings for the reference-manager check stage.
type MendeleyConfig struct {
	HTTPConfig `yaml:",inline"`

	// ClientID and ClientSecret are the registered OAuth app credentials.
	ClientID     string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`

	// RedirectURI must match the URI registered with the OAuth app
	// (default "http://localhost:8080").
	RedirectURI string `json:"redirect_uri" yaml:"redirect_uri"`

	// TokenFile is where the OAuth token is persisted between runs.
	TokenFile string `json:"token_file" yaml:"token_file"`

	// PageLimit is the page size for library pagination (default 100).
	PageLimit int `json:"page_limit" yaml:"page_limit"`

	// CacheDir is the directory holding the local library cache database.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Mendeley   MendeleyConfig   `json:"mendeley" yaml:"mendeley"`
}
