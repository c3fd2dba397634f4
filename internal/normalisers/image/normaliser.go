// Package image extracts text from raster images using OCR.
package image

import (
	"context"
	"fmt"
	"time"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PNG and JPEG images.
type Normaliser struct {
	ocr driven.OCREngine
}

// New creates an image normaliser backed by the given OCR engine.
func New(ocr driven.OCREngine) *Normaliser {
	return &Normaliser{ocr: ocr}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

// Normalise runs OCR over the image. Recogniser failures wrap domain.ErrExtraction.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var (
		text string
		err  error
	)
	if raw.Content == nil && raw.Path != "" {
		text, err = n.ocr.RecogniseFile(ctx, raw.Path)
	} else {
		text, err = n.ocr.Recognise(ctx, raw.Content)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, raw.Filename, err)
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Filename:  raw.Filename,
			FileType:  raw.Extension(),
			Content:   text,
			Metadata:  map[string]string{"ocr": "true"},
			CreatedAt: time.Now(),
		},
	}, nil
}
