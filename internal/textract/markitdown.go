// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/criaah/medmaps/internal/container"
)

// DefaultImage is the markitdown image used by the container backend.
const DefaultImage = "markitdown:latest"

// Markitdown pipes the document through a markitdown container.
type Markitdown struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdown verifies that image exists in rt before returning.
func NewMarkitdown(ctx context.Context, rt container.Runtime, image string) (*Markitdown, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &Markitdown{runtime: rt, image: image}, nil
}

func (m *Markitdown) Name() string { return "markitdown" }

func (m *Markitdown) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, f, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}
