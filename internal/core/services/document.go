package services

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/docker/go-units"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService extracts, chunks, embeds and stores uploaded files.
type DocumentService struct {
	normalisers driven.NormaliserRegistry
	pipeline    driven.PostProcessorPipeline
	embedder    driven.EmbeddingService
	store       driven.VectorStore
	archive     driven.Archive

	workers   int
	maxUpload int64

	// ids maps each assigned document ID to the filename holding it.
	mu  sync.Mutex
	ids map[string]string
}

// NewDocumentService creates a document service.
func NewDocumentService(
	normalisers driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
) *DocumentService {
	return &DocumentService{
		normalisers: normalisers,
		pipeline:    pipeline,
		embedder:    embedder,
		store:       store,
		workers:     domain.DefaultWorkers(),
		ids:         make(map[string]string),
	}
}

// SetArchive keeps a copy of every successfully processed original.
func (s *DocumentService) SetArchive(archive driven.Archive) {
	s.archive = archive
}

// SetWorkers sets how many files Upload processes in parallel.
func (s *DocumentService) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	s.workers = n
}

// SetMaxUploadSize rejects files larger than limit bytes. Zero disables the check.
func (s *DocumentService) SetMaxUploadSize(limit int64) {
	s.maxUpload = limit
}

// Process runs one file through extraction, chunking, embedding and storage.
func (s *DocumentService) Process(ctx context.Context, raw domain.RawDocument) domain.ProcessResult {
	result := domain.ProcessResult{Filename: raw.Filename}
	start := time.Now()

	if err := s.checkSize(&raw); err != nil {
		result.Err = err
		return result
	}

	normalised, err := s.normalisers.Normalise(ctx, &raw)
	if err != nil {
		result.Err = err
		return result
	}
	doc := normalised.Document
	if doc.Filename == "" {
		doc.Filename = raw.Filename
	}
	if doc.FileType == "" {
		doc.FileType = domain.FileType(doc.Filename)
	}
	doc.ID = s.assignID(doc.Filename)
	result.Document = &doc

	chunks, err := s.pipeline.Process(ctx, &doc)
	if err != nil {
		result.Err = err
		return result
	}
	if len(chunks) == 0 {
		logger.Warn("%s: no text extracted, nothing stored", raw.Filename)
		return result
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		result.Err = fmt.Errorf("embed %s: %w", raw.Filename, err)
		return result
	}
	if len(vectors) != len(chunks) {
		result.Err = fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingUnavailable, len(vectors), len(chunks))
		return result
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	if err := s.store.Upsert(ctx, chunks); err != nil {
		result.Err = fmt.Errorf("store %s: %w", raw.Filename, err)
		return result
	}
	result.Chunks = chunks

	s.archiveOriginal(ctx, &raw, &doc)

	logger.Info("%s: %d chunks stored in %s", raw.Filename, len(chunks), time.Since(start).Round(time.Millisecond))
	return result
}

// Upload processes files with a bounded pool of workers.
// Results keep the input order.
func (s *DocumentService) Upload(ctx context.Context, raws []domain.RawDocument) []domain.ProcessResult {
	results := make([]domain.ProcessResult, len(raws))
	if len(raws) == 0 {
		return results
	}

	tasks := make(chan int, len(raws))
	for i := range raws {
		tasks <- i
	}
	close(tasks)

	workers := min(s.workers, len(raws))
	logger.Debug("uploading %d files with %d workers", len(raws), workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range tasks {
				if err := ctx.Err(); err != nil {
					results[i] = domain.ProcessResult{Filename: raws[i].Filename, Err: err}
					continue
				}
				results[i] = s.Process(ctx, raws[i])
			}
		}()
	}
	wg.Wait()

	return results
}

// Count returns the number of stored chunk records. Store failures count as 0.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		logger.Warn("count documents: %v", err)
		return 0, nil
	}
	return n, nil
}

// Clear removes every stored chunk and forgets assigned document IDs.
func (s *DocumentService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}

	s.mu.Lock()
	s.ids = make(map[string]string)
	s.mu.Unlock()

	logger.Info("cleared all documents")
	return nil
}

// SupportedExtensions returns the file extensions that can be uploaded.
func (s *DocumentService) SupportedExtensions() []string {
	return s.normalisers.SupportedExtensions()
}

// assignID returns the short ID for filename, or the full digest when a
// different filename already holds the short one.
func (s *DocumentService) assignID(filename string) string {
	short := domain.DocumentID(filename)

	s.mu.Lock()
	defer s.mu.Unlock()

	owner, taken := s.ids[short]
	if !taken || owner == filename {
		s.ids[short] = filename
		return short
	}

	full := domain.FullDocumentID(filename)
	logger.Warn("document id %s already used by %s, using %s for %s", short, owner, full, filename)
	s.ids[full] = filename
	return full
}

func (s *DocumentService) checkSize(raw *domain.RawDocument) error {
	if s.maxUpload <= 0 {
		return nil
	}

	size := int64(len(raw.Content))
	if raw.Content == nil && raw.Path != "" {
		info, err := os.Stat(raw.Path)
		if err != nil {
			return fmt.Errorf("%w: stat %s: %v", domain.ErrExtraction, raw.Filename, err)
		}
		size = info.Size()
	}

	if size > s.maxUpload {
		return fmt.Errorf("%w: %s is %s, larger than the %s upload limit", domain.ErrExtraction,
			raw.Filename, units.BytesSize(float64(size)), units.BytesSize(float64(s.maxUpload)))
	}
	return nil
}

// archiveOriginal uploads the original file. Failures are logged only.
func (s *DocumentService) archiveOriginal(ctx context.Context, raw *domain.RawDocument, doc *domain.Document) {
	if s.archive == nil {
		return
	}

	data, err := raw.Bytes()
	if err != nil {
		logger.Warn("archive %s: %v", raw.Filename, err)
		return
	}

	key := path.Join(doc.ID, filepath.Base(raw.Filename))
	location, err := s.archive.Put(ctx, key, data, mime.TypeByExtension(doc.FileType))
	if err != nil {
		logger.Warn("archive %s: %v", raw.Filename, err)
		return
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]string)
	}
	doc.Metadata["archive"] = location
	logger.Debug("archived %s to %s", raw.Filename, location)
}
