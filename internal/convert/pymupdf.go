// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pvidak/paperdigest/internal/container"
)

// DefaultImage is the conversion image used when config names none.
const DefaultImage = "pymupdf4llm:latest"

// PymupdfConverter converts PDFs by piping them through a pymupdf4llm
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type PymupdfConverter struct {
	runtime container.Runtime
	image   string
}

// NewPymupdfConverter creates a converter that runs the given image on
// the given runtime. An empty image falls back to DefaultImage. It
// verifies that the image exists locally before returning.
func NewPymupdfConverter(rt container.Runtime, image string) (*PymupdfConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	return &PymupdfConverter{runtime: rt, image: image}, nil
}

// Convert reads the PDF at pdfPath, pipes it through the container, and
// returns the resulting Markdown text.
func (p *PymupdfConverter) Convert(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(p.image, f, &out); err != nil {
		return "", fmt.Errorf("converting %s: %w", pdfPath, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("converter produced empty output for %s", pdfPath)
	}

	return out.String(), nil
}
