// Package pdf extracts text from PDF documents, falling back to OCR
// for scanned files with little or no embedded text.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// MinEmbeddedTextLength is the trimmed length below which a PDF is treated as
// scanned and every page is sent through OCR. It is a heuristic, not a
// measure of quality.
const MinEmbeddedTextLength = 100

// Normaliser handles PDF documents.
type Normaliser struct {
	ocr      driven.OCREngine
	renderer driven.PageRenderer
}

// New creates a PDF normaliser. The OCR engine and page renderer are only
// used for the scanned-document fallback.
func New(ocr driven.OCREngine, renderer driven.PageRenderer) *Normaliser {
	return &Normaliser{ocr: ocr, renderer: renderer}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise extracts embedded text page by page, each non-empty page followed
// by a newline. If the result is too short, per-page OCR output is appended.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	data, err := raw.Bytes()
	if err != nil {
		return nil, err
	}

	pages, err := extractPages(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, raw.Filename, err)
	}

	var b strings.Builder
	for _, text := range pages {
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	text := b.String()

	metadata := map[string]string{
		"page_count": strconv.Itoa(pageCount(data, len(pages))),
	}

	if len([]rune(strings.TrimSpace(text))) < MinEmbeddedTextLength {
		logger.Debug("pdf: %s has little embedded text, using OCR", raw.Filename)
		ocrText, err := n.ocrPages(ctx, raw, data, len(pages))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: ocr fallback: %v", domain.ErrExtraction, raw.Filename, err)
		}
		text += ocrText
		metadata["ocr"] = "true"
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Filename:  raw.Filename,
			FileType:  raw.Extension(),
			Content:   text,
			Metadata:  metadata,
			CreatedAt: time.Now(),
		},
	}, nil
}

// ocrPages renders every page and appends its recognised text.
func (n *Normaliser) ocrPages(ctx context.Context, raw *domain.RawDocument, data []byte, pages int) (string, error) {
	if n.ocr == nil || n.renderer == nil {
		return "", errors.New("ocr is not configured")
	}

	path := raw.Path
	if raw.Content != nil || path == "" {
		tmp, err := writeTemp(data)
		if err != nil {
			return "", err
		}
		defer os.Remove(tmp)
		path = tmp
	}

	var b strings.Builder
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		image, err := n.renderer.RenderPage(ctx, path, page)
		if err != nil {
			return "", err
		}
		text, err := n.ocr.Recognise(ctx, image)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// extractPages returns the plain text of each page in order.
// The parser panics on some malformed files; that is reported as an error.
func extractPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pageCount reads the page count with pdfcpu, falling back to the parsed count.
func pageCount(data []byte, parsed int) int {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		logger.Debug("pdf: page count: %v", err)
		return parsed
	}
	return count
}

func writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp("", "docchat-*.pdf")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
