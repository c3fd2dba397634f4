// Package tesseract provides OCR by shelling out to the tesseract binary,
// and PDF page rendering via poppler's pdftoppm.
package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.OCREngine    = (*Engine)(nil)
	_ driven.PageRenderer = (*Engine)(nil)
)

// ErrToolNotFound is returned when a required binary is not on PATH.
var ErrToolNotFound = errors.New("ocr tool not found")

const (
	tesseractBin = "tesseract"
	pdftoppmBin  = "pdftoppm"

	// renderDPI is the resolution pages are rasterised at before OCR.
	renderDPI = 300
)

// CommandRunner executes external commands. Injected so tests never need the binaries.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

// Run executes name with args, feeding stdin when non-nil, and returns stdout.
func (execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Engine recognises text in images and renders PDF pages.
type Engine struct {
	runner   CommandRunner
	language string
}

// Option configures the engine.
type Option func(*Engine)

// WithRunner overrides the command runner.
func WithRunner(r CommandRunner) Option {
	return func(e *Engine) {
		e.runner = r
	}
}

// WithLanguage sets the tesseract language (e.g. "eng+deu").
func WithLanguage(lang string) Option {
	return func(e *Engine) {
		e.language = lang
	}
}

// New creates an engine backed by the system binaries.
func New(opts ...Option) *Engine {
	e := &Engine{runner: execRunner{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RecogniseFile runs OCR on an image file.
func (e *Engine) RecogniseFile(ctx context.Context, path string) (string, error) {
	out, err := e.runner.Run(ctx, nil, tesseractBin, e.args(path)...)
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Recognise runs OCR on encoded image bytes passed on stdin.
func (e *Engine) Recognise(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("tesseract failed: empty image")
	}
	out, err := e.runner.Run(ctx, image, tesseractBin, e.args("stdin")...)
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RenderPage rasterises one 1-based page of a PDF to PNG bytes.
func (e *Engine) RenderPage(ctx context.Context, path string, page int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("pdftoppm failed: invalid page %d", page)
	}
	p := strconv.Itoa(page)
	out, err := e.runner.Run(ctx, nil, pdftoppmBin,
		"-png", "-r", strconv.Itoa(renderDPI), "-f", p, "-l", p, "-singlefile", path)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed on page %d: %w", page, err)
	}
	return out, nil
}

func (e *Engine) args(input string) []string {
	args := []string{input, "stdout"}
	if e.language != "" {
		args = append(args, "-l", e.language)
	}
	return args
}

// CheckAvailable verifies that tesseract and pdftoppm are on PATH.
func CheckAvailable() error {
	for _, bin := range []string{tesseractBin, pdftoppmBin} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %s", ErrToolNotFound, bin)
		}
	}
	return nil
}

// InstallInstructions returns instructions for installing the OCR tools.
func InstallInstructions() string {
	return `OCR requires tesseract and pdftoppm (poppler).

Install:
  macOS:         brew install tesseract poppler
  Ubuntu/Debian: sudo apt install tesseract-ocr poppler-utils
  Fedora:        sudo dnf install tesseract poppler-utils
  Arch:          sudo pacman -S tesseract poppler`
}
