package driven

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// NormaliserRegistry selects the normaliser for a file by its lowercase extension.
type NormaliserRegistry interface {
	// Normalise extracts text using the normaliser registered for the file's extension.
	// Returns domain.ErrUnsupportedFormat when no normaliser handles it.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions that can be normalised, sorted.
	SupportedExtensions() []string

	// Supports reports whether a filename has a registered extension.
	Supports(filename string) bool
}
