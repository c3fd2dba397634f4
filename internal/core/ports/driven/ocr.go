package driven

import "context"

// OCREngine recognises text in images.
type OCREngine interface {
	// RecogniseFile runs recognition on an image file on disk.
	RecogniseFile(ctx context.Context, path string) (string, error)

	// Recognise runs recognition on encoded image bytes (PNG or JPEG).
	Recognise(ctx context.Context, image []byte) (string, error)
}

// PageRenderer rasterises pages of a PDF so they can be passed to OCR.
type PageRenderer interface {
	// RenderPage renders one 1-based page of the PDF at path as a PNG.
	RenderPage(ctx context.Context, path string, page int) ([]byte, error)
}
