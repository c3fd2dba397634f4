package services

import (
	"context"
	"errors"
	"sync"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/storage/memory"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/normalisers"
	"github.com/iamshubh29/RAG-Project-CSI/internal/normalisers/plaintext"
	"github.com/iamshubh29/RAG-Project-CSI/internal/postprocessors"
)

// fakeEmbedder maps every text to the same unit vector.
type fakeEmbedder struct {
	mu      sync.Mutex
	err     error
	short   bool
	batches int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.batches++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	n := len(texts)
	if f.short {
		n--
	}
	out := make([][]float32, n)
	for i := range out {
		out[i], _ = f.Embed(ctx, texts[i])
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return 3 }
func (f *fakeEmbedder) ModelName() string            { return "fake-embed" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

// fakeLLM records prompts and returns a canned reply.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	models  []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string, opts driven.CompleteOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, opts.Model)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeLLM) ModelName() string            { return domain.ModelClaudeHaiku }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

// fakeArchive keeps objects in a map.
type fakeArchive struct {
	mu      sync.Mutex
	err     error
	objects map[string]string
}

func (f *fakeArchive) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string]string)
	}
	f.objects[key] = contentType + ":" + string(data)
	return "s3://originals/" + key, nil
}

func (f *fakeArchive) Close() error { return nil }

// brokenStore fails every operation.
type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (brokenStore) Upsert(_ context.Context, _ []domain.Chunk) error { return errStoreDown }
func (brokenStore) Search(_ context.Context, _ []float32, _ domain.SearchOptions) ([]domain.RetrievedChunk, error) {
	return nil, errStoreDown
}
func (brokenStore) Count(_ context.Context) (int, error) { return 0, errStoreDown }
func (brokenStore) Clear(_ context.Context) error        { return errStoreDown }
func (brokenStore) Close() error                         { return nil }

// fixedPrompts serves a single template.
type fixedPrompts struct {
	template string
	err      error
}

func (p fixedPrompts) Load(_ string) (string, error) { return p.template, p.err }
func (p fixedPrompts) Reload()                        {}

// newTestDocumentService wires the real text extractor and chunking
// pipeline to an in-memory vector store.
func newTestDocumentService(embedder driven.EmbeddingService, store driven.VectorStore) *DocumentService {
	registry := normalisers.NewRegistry(plaintext.New())

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline, err := postprocessors.BuildPipeline(processors, domain.PipelineConfigFor(domain.ChunkerSettings{
		ChunkSize: domain.DefaultChunkSize,
		Overlap:   domain.DefaultChunkOverlap,
	}))
	if err != nil {
		panic(err)
	}

	if store == nil {
		store = memory.NewVectorStore()
	}
	return NewDocumentService(registry, pipeline, embedder, store)
}

func textFile(name, content string) domain.RawDocument {
	return domain.RawDocument{Filename: name, Content: []byte(content)}
}
