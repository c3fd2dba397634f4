package normalisers

import (
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/normalisers/csv"
	"github.com/iamshubh29/RAG-Project-CSI/internal/normalisers/image"
	"github.com/iamshubh29/RAG-Project-CSI/internal/normalisers/pdf"
	"github.com/iamshubh29/RAG-Project-CSI/internal/normalisers/plaintext"
)

// NewDefaultRegistry registers the built-in normalisers for .txt, .csv,
// .png/.jpg/.jpeg and .pdf. The OCR engine serves images and scanned PDFs.
func NewDefaultRegistry(ocr driven.OCREngine, renderer driven.PageRenderer) *Registry {
	return NewRegistry(
		plaintext.New(),
		csv.New(),
		image.New(ocr),
		pdf.New(ocr, renderer),
	)
}
